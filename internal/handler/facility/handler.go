package facility

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/facility"
)

type Handler struct {
	*handler.Resource[*model.Facility]
	svc *facility.Service
}

func NewHandler(svc *facility.Service) *Handler {
	return &Handler{
		Resource: handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Facility]{}),
		svc:      svc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	facilities := r.Group("/facilities")
	{
		h.Register(facilities)
		facilities.GET("/:id/open", h.IsOpen)
	}
}

// IsOpen answers whether a facility opens on ?date=YYYY-MM-DD.
func (h *Handler) IsOpen(c *gin.Context) {
	date := c.Query("date")
	open, err := h.svc.IsOpen(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"date": date, "open": open}))
}
