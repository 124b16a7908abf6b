package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type purchaseStore struct {
	queries *sqlc.Queries
}

func newPurchaseStore(queries *sqlc.Queries) PurchaseStore {
	return &purchaseStore{queries: queries}
}

func (s *purchaseStore) Create(ctx context.Context, p *model.Purchase) (bool, error) {
	row, err := s.queries.CreatePurchase(ctx, sqlc.CreatePurchaseParams{
		ID:                p.ID,
		QuestionID:        p.QuestionID,
		PayerID:           p.PayerID,
		Amount:            p.Amount,
		NegotiationID:     p.NegotiationID,
		ProviderSessionID: p.ProviderSessionID,
	})
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	*p = toPurchaseModel(row)
	return true, nil
}

func (s *purchaseStore) QuestionPurchaseExists(ctx context.Context, questionID, payerID int64) (bool, error) {
	return s.queries.QuestionPurchaseExists(ctx, sqlc.QuestionPurchaseExistsParams{
		QuestionID: questionID,
		PayerID:    payerID,
	})
}

func (s *purchaseStore) ListByPayer(ctx context.Context, payerID int64, limit, offset int32) ([]model.Purchase, error) {
	rows, err := s.queries.ListPurchasesByPayer(ctx, sqlc.ListPurchasesByPayerParams{
		PayerID: payerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Purchase, len(rows))
	for i, row := range rows {
		result[i] = toPurchaseModel(row)
	}
	return result, nil
}

func toPurchaseModel(row sqlc.Purchase) model.Purchase {
	return model.Purchase{
		ID:                row.ID,
		QuestionID:        row.QuestionID,
		PayerID:           row.PayerID,
		Amount:            row.Amount,
		NegotiationID:     row.NegotiationID,
		ProviderSessionID: row.ProviderSessionID,
		CreatedAt:         row.CreatedAt.Time,
	}
}
