package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/service/audit"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	audit := r.Group("/audit")
	{
		audit.GET("/logs", h.ListLogs)
		audit.GET("/logs/entity/:type/:id", h.GetEntityLogs)
	}
}

// ListLogs returns retained entries newest first, narrowed by
// ?entity_type= when given.
func (h *Handler) ListLogs(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Recent(c.Query("entity_type"), "")))
}

func (h *Handler) GetEntityLogs(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Recent(c.Param("type"), c.Param("id"))))
}
