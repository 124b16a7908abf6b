package model

import "time"

// Purchase is an immutable ledger entry for a confirmed payment.
type Purchase struct {
	ID                int64     `json:"id"`
	QuestionID        int64     `json:"question_id"`
	PayerID           int64     `json:"payer_id"`
	Amount            int32     `json:"amount"`
	NegotiationID     *int64    `json:"negotiation_id,omitempty"`
	ProviderSessionID *string   `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentKind tags what a checkout session pays for.
type PaymentKind string

const (
	PaymentKindNegotiation PaymentKind = "negotiation"
	PaymentKindQuestion    PaymentKind = "question"
)
