package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/server/http/dto"
)

// WebhookHandler receives settlement callbacks from the payment provider.
type WebhookHandler struct {
	facade PaymentWebhookFacade
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade PaymentWebhookFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Handle processes POST /api/payments/webhook. Repeated deliveries after
// settlement are acknowledged with zero settled entries.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Reference == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	var settled int
	var err error
	switch model.PaymentIntentStatus(req.Status) {
	case model.PaymentIntentStatusSucceeded:
		settled, err = h.facade.ConfirmPayment(c.Request.Context(), req.Reference)
	case model.PaymentIntentStatusFailed:
		settled, err = h.facade.CancelPayment(c.Request.Context(), req.Reference)
	case model.PaymentIntentStatusPending:
		c.JSON(http.StatusOK, dto.WebhookResponse{Settled: 0})
		return
	default:
		c.Status(http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("webhook settlement failed", "reference", req.Reference, "error", err)
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Settled: settled})
}
