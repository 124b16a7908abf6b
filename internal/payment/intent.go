package payment

import (
	"errors"
	"fmt"
	"strconv"

	"knowvalue.app/server/common/id"
)

// Metadata keys written on checkout sessions.
const (
	metaNegotiationID  = "negotiationId"
	metaQuestionID     = "questionId"
	metaAnswerID       = "answerId"
	metaProposedAmount = "proposedAmount"
	metaKind           = "kind"

	kindQuestion = "question"
)

var ErrUnknownIntent = errors.New("checkout metadata matches no payment intent")

// Intent is what a checkout session pays for. It is either a NegotiationIntent or a
// QuestionIntent.
type Intent interface {
	Metadata() map[string]string
	isIntent()
}

// NegotiationIntent unlocks an answer by paying its negotiated amount.
type NegotiationIntent struct {
	NegotiationID  int64
	QuestionID     int64
	AnswerID       int64
	ProposedAmount int32
}

// QuestionIntent publishes a question by paying its reward.
type QuestionIntent struct {
	QuestionID int64
}

func (NegotiationIntent) isIntent() {}
func (QuestionIntent) isIntent()    {}

func (i NegotiationIntent) Metadata() map[string]string {
	return map[string]string{
		metaNegotiationID:  id.Format(i.NegotiationID),
		metaQuestionID:     id.Format(i.QuestionID),
		metaAnswerID:       id.Format(i.AnswerID),
		metaProposedAmount: strconv.FormatInt(int64(i.ProposedAmount), 10),
	}
}

func (i QuestionIntent) Metadata() map[string]string {
	return map[string]string{
		metaKind:       kindQuestion,
		metaQuestionID: id.Format(i.QuestionID),
	}
}

// ParseIntent decodes checkout metadata. A negotiationId takes precedence over a
// questionId; kind, when present, must be "question" for the question shape. Only negotiationId is required for a NegotiationIntent; the other keys
// are informational and left zero when absent or malformed.
func ParseIntent(md map[string]string) (Intent, error) {
	if raw, ok := md[metaNegotiationID]; ok && raw != "" {
		negotiationID, err := id.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: negotiationId: %v", ErrUnknownIntent, err)
		}
		intent := NegotiationIntent{NegotiationID: negotiationID}
		intent.QuestionID, _ = id.Parse(md[metaQuestionID])
		intent.AnswerID, _ = id.Parse(md[metaAnswerID])
		if amount, err := strconv.ParseInt(md[metaProposedAmount], 10, 32); err == nil {
			intent.ProposedAmount = int32(amount)
		}
		return intent, nil
	}

	if kind := md[metaKind]; kind != "" && kind != kindQuestion {
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownIntent, kind)
	}

	if raw, ok := md[metaQuestionID]; ok && raw != "" {
		questionID, err := id.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: questionId: %v", ErrUnknownIntent, err)
		}
		return QuestionIntent{QuestionID: questionID}, nil
	}

	return nil, ErrUnknownIntent
}
