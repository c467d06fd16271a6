package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/appointment"
)

type Handler struct {
	*handler.Resource[*model.Appointment]
	svc     *appointment.Service
	booking *appointment.Booking
}

func NewHandler(svc *appointment.Service, booking *appointment.Booking) *Handler {
	return &Handler{
		Resource: handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Appointment]{}),
		svc:      svc,
		booking:  booking,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/upcoming", h.ListUpcoming)
		h.Register(appointments)

		drafts := appointments.Group("/drafts")
		drafts.POST("", h.CreateDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.DELETE("/:id", h.DiscardDraft)
		drafts.PUT("/:id/patient", h.UpdatePatient)
		drafts.PUT("/:id/address", h.UpdateAddress)
		drafts.PUT("/:id/contact", h.UpdateContact)
		drafts.PUT("/:id/identification", h.UpdateIdentification)
		drafts.PUT("/:id/details", h.UpdateDetails)
		drafts.PUT("/:id/insurance", h.UpdateInsurance)
		drafts.POST("/:id/submit", h.SubmitDraft)
	}
}

// ListUpcoming lists a doctor's appointments from ?date= onwards, today
// when no date is given.
func (h *Handler) ListUpcoming(c *gin.Context) {
	date := c.DefaultQuery("date", h.svc.Today())
	items, err := h.svc.Upcoming(c.Request.Context(), c.Query("doctor_id"), date)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) CreateDraft(c *gin.Context) {
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(h.booking.NewDraft()))
}

func (h *Handler) GetDraft(c *gin.Context) {
	d, err := h.booking.Get(c.Param("id"))
	respond(c, d, err)
}

func (h *Handler) DiscardDraft(c *gin.Context) {
	h.booking.Discard(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	var p appointment.PatientPatch
	if !handler.BindJSON(c, &p) {
		return
	}
	d, err := h.booking.UpdatePatient(c.Param("id"), p)
	respond(c, d, err)
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	var p appointment.AddressPatch
	if !handler.BindJSON(c, &p) {
		return
	}
	d, err := h.booking.UpdateAddress(c.Param("id"), p)
	respond(c, d, err)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	var p appointment.ContactPatch
	if !handler.BindJSON(c, &p) {
		return
	}
	d, err := h.booking.UpdateContact(c.Param("id"), p)
	respond(c, d, err)
}

func (h *Handler) UpdateIdentification(c *gin.Context) {
	var p appointment.IdentificationPatch
	if !handler.BindJSON(c, &p) {
		return
	}
	d, err := h.booking.UpdateIdentification(c.Param("id"), p)
	respond(c, d, err)
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	var p appointment.DetailsPatch
	if !handler.BindJSON(c, &p) {
		return
	}
	d, err := h.booking.UpdateDetails(c.Request.Context(), c.Param("id"), p)
	respond(c, d, err)
}

func (h *Handler) UpdateInsurance(c *gin.Context) {
	var p appointment.InsurancePatch
	if !handler.BindJSON(c, &p) {
		return
	}
	d, err := h.booking.UpdateInsurance(c.Param("id"), p)
	respond(c, d, err)
}

func (h *Handler) SubmitDraft(c *gin.Context) {
	booked, err := h.booking.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	resp := handler.NewSuccessResponse(booked)
	if booked.Appointment.DoubleBooked {
		resp.Message = "doctor already has an appointment at this time"
	}
	c.JSON(http.StatusCreated, resp)
}

func respond(c *gin.Context, d appointment.Draft, err error) {
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}
