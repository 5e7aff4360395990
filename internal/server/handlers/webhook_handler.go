package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/danken4445/hospital-management/internal/domain/models"
	service "github.com/danken4445/hospital-management/internal/service/whatsapp"
)

const whatsappObject = "whatsapp_business_account"

// WebhookHandler handles inbound WhatsApp command callbacks.
type WebhookHandler struct {
	svc    service.CommandService
	logger *zap.Logger
}

// NewWebhookHandler wires the staff command service behind the WhatsApp webhook routes.
func NewWebhookHandler(svc service.CommandService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, logger: logger}
}

// Verify echoes the subscription challenge so Meta enables delivery of staff
// dashboard commands. A mismatched verify token is rejected with 403.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.svc.VerifyWebhookToken(
		c.Query("hub.mode"),
		c.Query("hub.verify_token"),
		c.Query("hub.challenge"),
	)
	if err != nil {
		h.logger.Warn("command webhook subscription rejected",
			zap.String("mode", c.Query("hub.mode")),
			zap.Error(err),
		)
		c.String(http.StatusForbidden, "command webhook subscription rejected")
		return
	}

	h.logger.Info("command webhook subscribed")
	c.String(http.StatusOK, challenge)
}

// Receive answers staff commands delivered by webhook POST callbacks. Meta retries
// any non-2xx delivery, so reply failures are logged and still acknowledged.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.Object != "" && payload.Object != whatsappObject {
		h.logger.Warn("ignoring webhook for unexpected object", zap.String("object", payload.Object))
		c.Status(http.StatusOK)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("failed answering webhook commands", zap.Error(err))
	}

	c.Status(http.StatusOK)
}
