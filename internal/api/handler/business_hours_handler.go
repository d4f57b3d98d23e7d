package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// BusinessHoursHandler opening-hours endpoints.
type BusinessHoursHandler struct {
	hoursSvc service.BusinessHoursService
}

// NewBusinessHoursHandler creates a BusinessHoursHandler.
func NewBusinessHoursHandler(hoursSvc service.BusinessHoursService) *BusinessHoursHandler {
	return &BusinessHoursHandler{hoursSvc: hoursSvc}
}

// Summary returns the opening window of all 7 weekdays.
// GET /api/v1/business-hours
func (h *BusinessHoursHandler) Summary(c *gin.Context) {
	summary, err := h.hoursSvc.Summary(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.WeekSummaryResponse{Days: summary})
}

// RemainingOpenDays lists the open days left in the current ISO week.
// GET /api/v1/business-hours/remaining-days
func (h *BusinessHoursHandler) RemainingOpenDays(c *gin.Context) {
	after := time.Now()
	if q := c.Query("after"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			response.BadRequest(c, 10001, "fecha no válida")
			return
		}
		after = t
	}

	days, err := h.hoursSvc.RemainingOpenDays(c.Request.Context(), after)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": days})
}

// Upsert replaces one weekday's configuration.
// PUT /api/v1/business-hours
func (h *BusinessHoursHandler) Upsert(c *gin.Context) {
	var req dto.UpsertBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.hoursSvc.Upsert(c.Request.Context(), &req, callerID); err != nil {
		if handleValidationError(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
