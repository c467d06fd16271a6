package user

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/user"
)

type Handler struct {
	*handler.Resource[*model.User]
}

// NewHandler serves users without credentials. Reads resolve role and
// facility names.
func NewHandler(svc *user.Service) *Handler {
	return &Handler{
		Resource: handler.NewResource(svc.Controller, handler.ResourceOptions[*model.User]{
			List: func(ctx context.Context, filter string) (interface{}, error) {
				return svc.ListViews(ctx, filter)
			},
			Get: func(ctx context.Context, id string) (interface{}, error) {
				return svc.GetView(ctx, id)
			},
			Present: func(u *model.User) interface{} {
				return u.Public()
			},
		}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.Register(r.Group("/users"))
}
