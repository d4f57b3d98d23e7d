package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// CalendarFeedHandler iCalendar subscription endpoint.
type CalendarFeedHandler struct {
	feedSvc service.CalendarFeedService
}

// NewCalendarFeedHandler creates a CalendarFeedHandler.
func NewCalendarFeedHandler(feedSvc service.CalendarFeedService) *CalendarFeedHandler {
	return &CalendarFeedHandler{feedSvc: feedSvc}
}

// StylistFeed serves the stylist's agenda as text/calendar. Calendar apps
// poll this URL, so it replies with the raw ics body instead of the JSON
// envelope.
// GET /feeds/stylists/:id/calendar.ics
func (h *CalendarFeedHandler) StylistFeed(c *gin.Context) {
	ics, err := h.feedSvc.StylistFeed(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStylistNotFound) {
			response.NotFound(c, 12001, service.ErrStylistNotFound.Error())
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `inline; filename="agenda.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
