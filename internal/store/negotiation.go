package store

import (
	"context"
	"time"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type negotiationStore struct {
	queries *sqlc.Queries
}

func newNegotiationStore(queries *sqlc.Queries) NegotiationStore {
	return &negotiationStore{queries: queries}
}

func (s *negotiationStore) Create(ctx context.Context, n *model.Negotiation) error {
	row, err := s.queries.CreateNegotiation(ctx, sqlc.CreateNegotiationParams{
		ID:             n.ID,
		AnswerID:       n.AnswerID,
		ProposedAmount: n.ProposedAmount,
	})
	if err != nil {
		return err
	}
	*n = toNegotiationModel(row)
	return nil
}

func (s *negotiationStore) GetContext(ctx context.Context, id int64) (*model.NegotiationContext, error) {
	row, err := s.queries.GetNegotiationContext(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	nc := toNegotiationContext(sqlc.ListExpiredPendingNegotiationsRow(row))
	return &nc, nil
}

func (s *negotiationStore) GetContextForUpdate(ctx context.Context, id int64) (*model.NegotiationContext, error) {
	row, err := s.queries.GetNegotiationContextForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	nc := toNegotiationContext(sqlc.ListExpiredPendingNegotiationsRow(row))
	return &nc, nil
}

func (s *negotiationStore) RecordCheckoutStarted(ctx context.Context, id int64, sessionID string) (bool, error) {
	n, err := s.queries.RecordCheckoutStarted(ctx, sqlc.RecordCheckoutStartedParams{
		ID:                    id,
		LastCheckoutSessionID: &sessionID,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *negotiationStore) Transition(ctx context.Context, id int64, to model.NegotiationStatus) (bool, error) {
	n, err := s.queries.TransitionPendingNegotiation(ctx, sqlc.TransitionPendingNegotiationParams{
		ToStatus: string(to),
		ID:       id,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *negotiationStore) ListExpiredPending(ctx context.Context, createdBefore, checkoutBefore time.Time, limit int32) ([]model.NegotiationContext, error) {
	rows, err := s.queries.ListExpiredPendingNegotiations(ctx, sqlc.ListExpiredPendingNegotiationsParams{
		CreatedBefore:  timestamptz(createdBefore),
		CheckoutBefore: timestamptz(checkoutBefore),
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.NegotiationContext, len(rows))
	for i, row := range rows {
		result[i] = toNegotiationContext(row)
	}
	return result, nil
}

func toNegotiationModel(row sqlc.Negotiation) model.Negotiation {
	return model.Negotiation{
		ID:                    row.ID,
		AnswerID:              row.AnswerID,
		ProposedAmount:        row.ProposedAmount,
		Status:                model.NegotiationStatus(row.Status),
		LastCheckoutSessionID: row.LastCheckoutSessionID,
		CheckoutStartedAt:     timePtr(row.CheckoutStartedAt),
		CreatedAt:             row.CreatedAt.Time,
		UpdatedAt:             row.UpdatedAt.Time,
	}
}

// The three context queries share one column list, so their row types convert freely.
func toNegotiationContext(row sqlc.ListExpiredPendingNegotiationsRow) model.NegotiationContext {
	return model.NegotiationContext{
		Negotiation: model.Negotiation{
			ID:                    row.ID,
			AnswerID:              row.AnswerID,
			ProposedAmount:        row.ProposedAmount,
			Status:                model.NegotiationStatus(row.Status),
			LastCheckoutSessionID: row.LastCheckoutSessionID,
			CheckoutStartedAt:     timePtr(row.CheckoutStartedAt),
			CreatedAt:             row.CreatedAt.Time,
			UpdatedAt:             row.UpdatedAt.Time,
		},
		AnswerAuthorID:  row.AuthorID,
		QuestionID:      row.QuestionID,
		QuestionOwnerID: row.OwnerID,
		QuestionTitle:   row.QuestionTitle,
	}
}
