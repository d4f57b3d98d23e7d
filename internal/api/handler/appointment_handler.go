package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	pkgerrors "github.com/pepeccz/atrevete-bot-sub002/pkg/errors"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// AppointmentHandler appointment booking endpoints.
type AppointmentHandler struct {
	apptSvc service.AppointmentService
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(apptSvc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc}
}

// Create books an appointment.
// POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	appt, err := h.apptSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, appt)
}

// Get returns one appointment.
// GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.apptSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, appt)
}

// List queries the agenda by date range, optionally per stylist.
// GET /api/v1/appointments?from=2025-01-06&to=2025-01-13&stylist_id=...
func (h *AppointmentHandler) List(c *gin.Context) {
	var req dto.AppointmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	list, err := h.apptSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// UpdateStatus advances the appointment lifecycle.
// PUT /api/v1/appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	appt, err := h.apptSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, appt)
}

func (h *AppointmentHandler) handleError(c *gin.Context, err error) {
	if handleValidationError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrAppointmentNotFound):
		response.NotFound(c, 14001, service.ErrAppointmentNotFound.Error())
	case errors.Is(err, service.ErrStylistNotFound):
		response.NotFound(c, 12001, service.ErrStylistNotFound.Error())
	case errors.Is(err, service.ErrSlotConflict):
		response.Error(c, http.StatusConflict, 14002, service.ErrSlotConflict.Error())
	case errors.Is(err, service.ErrBadStatusTransition):
		response.BadRequest(c, 14003, service.ErrBadStatusTransition.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 14004, pkgerrors.ErrOptimisticLock.Error())
	default:
		response.InternalError(c)
	}
}
