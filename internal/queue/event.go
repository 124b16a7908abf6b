package queue

import (
	"fmt"

	"knowvalue.app/server/internal/model"
)

type EventType string

const (
	EventAnswerCreated       EventType = "answer.created"
	EventNegotiationRejected EventType = "negotiation.rejected"
	EventPurchaseCompleted   EventType = "purchase.completed"
)

// Event is a committed domain change the worker turns into a notification.
// RecipientID is the user to notify.
type Event struct {
	Type          EventType
	RecipientID   int64
	QuestionID    int64
	AnswerID      *int64
	NegotiationID *int64
	PurchaseID    *int64
	Kind          model.PaymentKind
	TraceID       string
}

func (e Event) Validate() error {
	if e.RecipientID == 0 || e.QuestionID == 0 {
		return fmt.Errorf("missing recipient_id or question_id")
	}

	switch e.Type {
	case EventAnswerCreated:
		if e.AnswerID == nil {
			return fmt.Errorf("missing answer_id")
		}
	case EventNegotiationRejected:
		if e.NegotiationID == nil {
			return fmt.Errorf("missing negotiation_id")
		}
	case EventPurchaseCompleted:
		switch e.Kind {
		case model.PaymentKindNegotiation:
			if e.NegotiationID == nil {
				return fmt.Errorf("missing negotiation_id")
			}
		case model.PaymentKindQuestion:
		default:
			return fmt.Errorf("unknown payment kind %q", e.Kind)
		}
	case "":
		return fmt.Errorf("missing event_type")
	default:
		return fmt.Errorf("unknown event_type %q", e.Type)
	}
	return nil
}

func eventValues(e Event, attempt int) map[string]any {
	values := map[string]any{
		"event_type":   string(e.Type),
		"recipient_id": e.RecipientID,
		"question_id":  e.QuestionID,
		"attempt":      attempt,
	}
	if e.AnswerID != nil {
		values["answer_id"] = *e.AnswerID
	}
	if e.NegotiationID != nil {
		values["negotiation_id"] = *e.NegotiationID
	}
	if e.PurchaseID != nil {
		values["purchase_id"] = *e.PurchaseID
	}
	if e.Kind != "" {
		values["kind"] = string(e.Kind)
	}
	if e.TraceID != "" {
		values["trace_id"] = e.TraceID
	}
	return values
}
