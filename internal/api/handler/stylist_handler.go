package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// StylistHandler stylist management endpoints.
type StylistHandler struct {
	stylistSvc service.StylistService
}

// NewStylistHandler creates a StylistHandler.
func NewStylistHandler(stylistSvc service.StylistService) *StylistHandler {
	return &StylistHandler{stylistSvc: stylistSvc}
}

// List lists stylists. ?include_inactive=true includes deactivated ones.
// GET /api/v1/stylists
func (h *StylistHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	list, err := h.stylistSvc.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// Get returns one stylist.
// GET /api/v1/stylists/:id
func (h *StylistHandler) Get(c *gin.Context) {
	stylist, err := h.stylistSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, stylist)
}

// Context returns the cached conversational snapshot.
// GET /api/v1/stylists/:id/context
func (h *StylistHandler) Context(c *gin.Context) {
	sc, err := h.stylistSvc.Context(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, sc)
}

// Create creates a stylist.
// POST /api/v1/stylists
func (h *StylistHandler) Create(c *gin.Context) {
	var req dto.CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stylist, err := h.stylistSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, stylist)
}

// Update partially updates a stylist.
// PUT /api/v1/stylists/:id
func (h *StylistHandler) Update(c *gin.Context) {
	var req dto.UpdateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stylist, err := h.stylistSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, stylist)
}

// Delete soft-deletes a stylist.
// DELETE /api/v1/stylists/:id
func (h *StylistHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.stylistSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *StylistHandler) handleError(c *gin.Context, err error) {
	if handleValidationError(c, err) {
		return
	}
	if errors.Is(err, service.ErrStylistNotFound) {
		response.NotFound(c, 12001, service.ErrStylistNotFound.Error())
		return
	}
	response.InternalError(c)
}
