package speciality

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/speciality"
)

type Handler struct {
	*handler.Resource[*model.Speciality]
}

func NewHandler(svc *speciality.Service) *Handler {
	return &Handler{
		Resource: handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Speciality]{}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.Register(r.Group("/specialities"))
}
