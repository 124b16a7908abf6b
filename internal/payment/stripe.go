package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

const providerStripe = "stripe"

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	// Backend overrides the API backend. Used by tests to point at a local server.
	Backend stripe.Backend
}

type stripeGateway struct {
	sessions      session.Client
	secretKey     string
	webhookSecret string
	currency      string
}

// NewStripeGateway returns a Gateway backed by Stripe Checkout. Missing keys are not an
// error here; the affected operation returns ErrNotConfigured instead.
func NewStripeGateway(cfg StripeConfig) Gateway {
	backend := cfg.Backend
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyJPY)
	}
	return &stripeGateway{
		sessions:      session.Client{B: backend, Key: cfg.SecretKey},
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		currency:      currency,
	}
}

func (g *stripeGateway) Provider() string {
	return providerStripe
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Session, error) {
	if g.secretKey == "" {
		return Session{}, fmt.Errorf("%w: STRIPE_SECRET_KEY is not set", ErrNotConfigured)
	}
	if req.Amount <= 0 {
		return Session{}, fmt.Errorf("%w: amount must be positive", ErrGateway)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	if !req.ExpiresAt.IsZero() {
		params.ExpiresAt = stripe.Int64(req.ExpiresAt.Unix())
	}
	if req.Intent != nil {
		for k, v := range req.Intent.Metadata() {
			params.AddMetadata(k, v)
		}
	}
	params.Context = ctx

	cs, err := g.sessions.New(params)
	if err != nil {
		return Session{}, fmt.Errorf("%w: creating checkout session: %v", ErrGateway, err)
	}
	if cs.URL == "" {
		return Session{}, fmt.Errorf("%w: checkout session %s has no url", ErrGateway, cs.ID)
	}

	return Session{ID: cs.ID, URL: cs.URL}, nil
}

func (g *stripeGateway) ParseWebhook(payload []byte, signature string) (Event, error) {
	if g.webhookSecret == "" {
		return Event{}, fmt.Errorf("%w: STRIPE_WEBHOOK_SECRET is not set", ErrNotConfigured)
	}
	if signature == "" {
		return Event{}, fmt.Errorf("%w: missing signature header", ErrSignatureInvalid)
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	out := Event{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != EventCheckoutCompleted || evt.Data == nil {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &cs); err != nil {
		return Event{}, fmt.Errorf("%w: decoding checkout session: %v", ErrSignatureInvalid, err)
	}
	out.SessionID = cs.ID
	out.PaymentStatus = string(cs.PaymentStatus)
	out.AmountTotal = cs.AmountTotal
	out.Metadata = cs.Metadata

	return out, nil
}
