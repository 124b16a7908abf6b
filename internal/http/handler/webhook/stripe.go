package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"knowvalue.app/server/internal/service"
)

const (
	signatureHeader = "Stripe-Signature"
	maxPayloadBytes = 64 << 10
)

type StripeWebhookHandler struct {
	paymentService service.PaymentService
}

func NewStripeWebhookHandler(paymentService service.PaymentService) *StripeWebhookHandler {
	return &StripeWebhookHandler{paymentService: paymentService}
}

// HandleEvent verifies and applies a Stripe event. A 200 tells Stripe the
// event is settled; any 5xx makes it redeliver.
func (h *StripeWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	outcome, err := h.paymentService.HandleWebhook(ctx, body, c.GetHeader(signatureHeader))
	if err != nil {
		if errors.Is(err, service.ErrSignatureInvalid) {
			slog.WarnContext(ctx, "stripe webhook signature rejected", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		slog.ErrorContext(ctx, "stripe webhook failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		return
	}

	slog.InfoContext(ctx, "stripe webhook handled", "outcome", outcome)
	c.Status(http.StatusOK)
}
