package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// SeriesHandler recurring blocked-time endpoints.
type SeriesHandler struct {
	seriesSvc service.SeriesService
}

// NewSeriesHandler creates a SeriesHandler.
func NewSeriesHandler(seriesSvc service.SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesSvc: seriesSvc}
}

// Preview dry-runs a series draft: dates plus conflict report, no writes.
// POST /api/v1/series/preview
func (h *SeriesHandler) Preview(c *gin.Context) {
	var req dto.PreviewSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	preview, err := h.seriesSvc.Preview(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, preview)
}

// Create materializes a series.
// POST /api/v1/series
func (h *SeriesHandler) Create(c *gin.Context) {
	var req dto.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	series, err := h.seriesSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, series)
}

// Get returns one series template.
// GET /api/v1/series/:id
func (h *SeriesHandler) Get(c *gin.Context) {
	series, err := h.seriesSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, series)
}

// ListByStylist lists a stylist's series templates.
// GET /api/v1/stylists/:id/series
func (h *SeriesHandler) ListByStylist(c *gin.Context) {
	list, err := h.seriesSvc.ListByStylist(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// ListOccurrences lists the materialized instances of a series.
// GET /api/v1/series/:id/occurrences
func (h *SeriesHandler) ListOccurrences(c *gin.Context) {
	list, err := h.seriesSvc.ListOccurrences(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Update bulk-edits the template and its future non-exception instances.
// PUT /api/v1/series/:id
func (h *SeriesHandler) Update(c *gin.Context) {
	var req dto.UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	series, err := h.seriesSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, series)
}

// Append extends the series with trailing occurrences.
// POST /api/v1/series/:id/append
func (h *SeriesHandler) Append(c *gin.Context) {
	var req dto.AppendOccurrencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	series, err := h.seriesSvc.Append(c.Request.Context(), c.Param("id"), req.Count, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, series)
}

// Trim drops trailing occurrences.
// POST /api/v1/series/:id/trim
func (h *SeriesHandler) Trim(c *gin.Context) {
	var req dto.TrimOccurrencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	series, err := h.seriesSvc.Trim(c.Request.Context(), c.Param("id"), req.Count, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, series)
}

// Delete removes the template, detaching its instances.
// DELETE /api/v1/series/:id
func (h *SeriesHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.seriesSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateOccurrence edits one instance, flagging it as an exception.
// PUT /api/v1/occurrences/:id
func (h *SeriesHandler) UpdateOccurrence(c *gin.Context) {
	var req dto.UpdateOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.seriesSvc.UpdateOccurrence(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, event)
}

// CancelOccurrence cancels one instance, leaving its siblings untouched.
// DELETE /api/v1/occurrences/:id
func (h *SeriesHandler) CancelOccurrence(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.seriesSvc.CancelOccurrence(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *SeriesHandler) handleError(c *gin.Context, err error) {
	if handleValidationError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSeriesNotFound):
		response.NotFound(c, 15001, service.ErrSeriesNotFound.Error())
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 15002, service.ErrEventNotFound.Error())
	case errors.Is(err, service.ErrStylistNotFound):
		response.NotFound(c, 12001, service.ErrStylistNotFound.Error())
	default:
		response.InternalError(c)
	}
}
