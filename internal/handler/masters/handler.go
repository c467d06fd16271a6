package masters

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/masters"
)

type Handler struct {
	svc *masters.Service
}

func NewHandler(svc *masters.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	m := r.Group("/masters")
	{
		m.GET("/countries", h.ListCountries)
		m.GET("/countries/:id/states", h.ListStates)
		m.GET("/states/:id/cities", h.ListCities)
		m.GET("/blood-groups", h.list(h.svc.BloodGroups))
		m.GET("/identification-types", h.list(h.svc.IdentificationTypes))
		m.GET("/insurers", h.list(h.svc.Insurers))
		m.GET("/nationalities", h.list(h.svc.Nationalities))
	}
}

func (h *Handler) ListCountries(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.Countries()))
}

func (h *Handler) ListStates(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.States(c.Param("id"))))
}

func (h *Handler) ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.Cities(c.Param("id"))))
}

func (h *Handler) list(fn func() []model.Reference) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(fn()))
	}
}
