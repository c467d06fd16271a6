package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/patient"
)

type Handler struct {
	*handler.Resource[*model.Patient]
}

func NewHandler(svc *patient.Service) *Handler {
	return &Handler{
		Resource: handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Patient]{}),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.Register(r.Group("/patients"))
}
