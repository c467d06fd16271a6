package organization

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/organization"
)

type Handler struct {
	*handler.Resource[*model.Organization]
}

// NewHandler serves organizations with their facility names resolved.
func NewHandler(svc *organization.Service) *Handler {
	return &Handler{
		Resource: handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Organization]{
			List: func(ctx context.Context, filter string) (interface{}, error) {
				return svc.ListViews(ctx, filter)
			},
			Get: func(ctx context.Context, id string) (interface{}, error) {
				return svc.GetView(ctx, id)
			},
		}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.Register(r.Group("/organizations"))
}
