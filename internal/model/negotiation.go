package model

import "time"

type NegotiationStatus string

const (
	NegotiationStatusPending  NegotiationStatus = "PENDING"
	NegotiationStatusAccepted NegotiationStatus = "ACCEPTED"
	NegotiationStatusRejected NegotiationStatus = "REJECTED"
)

// Terminal statuses admit no further transition.
func (s NegotiationStatus) Terminal() bool {
	return s == NegotiationStatusAccepted || s == NegotiationStatusRejected
}

func (s NegotiationStatus) Valid() bool {
	switch s {
	case NegotiationStatusPending, NegotiationStatusAccepted, NegotiationStatusRejected:
		return true
	}
	return false
}

// CanTransition allows only PENDING to ACCEPTED or REJECTED.
func (s NegotiationStatus) CanTransition(to NegotiationStatus) bool {
	return s == NegotiationStatusPending && to.Terminal()
}

type Negotiation struct {
	ID                    int64             `json:"id"`
	AnswerID              int64             `json:"answer_id"`
	ProposedAmount        int32             `json:"proposed_amount"`
	Status                NegotiationStatus `json:"status"`
	LastCheckoutSessionID *string           `json:"-"`
	CheckoutStartedAt     *time.Time        `json:"-"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// NegotiationContext is a negotiation resolved through its answer to the question and its owner.
type NegotiationContext struct {
	Negotiation
	AnswerAuthorID  int64
	QuestionID      int64
	QuestionOwnerID int64
	QuestionTitle   string
}
