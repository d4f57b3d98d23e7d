package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/webhook"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// Webhook payload hard cap. Meta notification batches stay well under this.
const maxWebhookBody = 1 << 20

// WebhookHandler messaging-platform callback endpoints.
type WebhookHandler struct {
	registry *webhook.Registry
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(registry *webhook.Registry) *WebhookHandler {
	return &WebhookHandler{registry: registry}
}

// Verify answers the platform's subscription handshake. The challenge goes
// back as a raw body, which is what the platforms expect.
// GET /webhook/:provider
func (h *WebhookHandler) Verify(c *gin.Context) {
	provider, err := h.registry.Resolve(c.Param("provider"))
	if err != nil {
		response.NotFound(c, 16001, "plataforma desconocida")
		return
	}

	challenge, err := provider.Verify(c.Request.URL.Query())
	if err != nil {
		if errors.Is(err, webhook.ErrVerificationFailed) {
			response.Forbidden(c, 16002, "verificación rechazada")
			return
		}
		response.InternalError(c)
		return
	}
	c.String(http.StatusOK, challenge)
}

// Receive accepts one inbound callback.
// POST /webhook/:provider
func (h *WebhookHandler) Receive(c *gin.Context) {
	provider, err := h.registry.Resolve(c.Param("provider"))
	if err != nil {
		response.NotFound(c, 16001, "plataforma desconocida")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, 16003, "cuerpo ilegible")
		return
	}

	if err := provider.HandleMessage(c.Request.Context(), payload); err != nil {
		response.InternalError(c)
		return
	}
	c.Status(http.StatusOK)
}
