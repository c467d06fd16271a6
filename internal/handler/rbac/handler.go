package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/rbac"
)

type Handler struct {
	*handler.Resource[*model.Role]
	svc *rbac.Service
}

func NewHandler(svc *rbac.Service) *Handler {
	return &Handler{
		Resource: handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Role]{}),
		svc:      svc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	roles := r.Group("/roles")
	{
		roles.GET("/screens", h.ListScreens)
		h.Register(roles)
		roles.POST("/:id/permissions/toggle", h.TogglePermission)
	}
}

// ListScreens returns the rows of the permission grid with the actions
// each row can grant.
func (h *Handler) ListScreens(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"screens": h.svc.Screens(),
		"actions": model.Actions,
	}))
}

type toggleRequest struct {
	ScreenID string       `json:"screen_id" binding:"required"`
	Action   model.Action `json:"action" binding:"required"`
}

func (h *Handler) TogglePermission(c *gin.Context) {
	var req toggleRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	role, err := h.svc.TogglePermission(c.Request.Context(), c.Param("id"), req.ScreenID, req.Action)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(role))
}
