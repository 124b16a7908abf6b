// Package payment creates hosted checkout sessions and verifies gateway webhooks.
package payment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSignatureInvalid = errors.New("webhook signature invalid")
	ErrNotConfigured    = errors.New("payment gateway not configured")
	ErrGateway          = errors.New("payment gateway error")
)

// EventCheckoutCompleted is the only event type acted on.
const EventCheckoutCompleted = "checkout.session.completed"

type CheckoutRequest struct {
	ProductName string
	// Amount is in the smallest currency unit; for JPY that is whole yen.
	Amount     int64
	Intent     Intent
	SuccessURL string
	CancelURL  string
	ExpiresAt  time.Time
}

type Session struct {
	ID  string
	URL string
}

// Event is a verified webhook delivery reduced to the fields the marketplace uses.
type Event struct {
	ID            string
	Type          string
	SessionID     string
	PaymentStatus string
	AmountTotal   int64
	Metadata      map[string]string
}

// Gateway is the payment provider seen by the service layer.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Session, error)
	// ParseWebhook verifies the signature before decoding the payload.
	ParseWebhook(payload []byte, signature string) (Event, error)
	Provider() string
}
