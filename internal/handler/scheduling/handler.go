package scheduling

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/service/scheduling"
)

type Handler struct {
	resolver *scheduling.Resolver
}

func NewHandler(resolver *scheduling.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	s := r.Group("/scheduling")
	{
		s.GET("/doctors", h.ListDoctors)
		s.GET("/doctors/:id/slots", h.ListSlots)
	}
}

// ListDoctors returns the doctors practising ?speciality=. Without a
// speciality the list is empty.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.resolver.DoctorsFor(c.Request.Context(), c.Query("speciality"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) ListSlots(c *gin.Context) {
	slots, err := h.resolver.SlotsFor(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}
