package store

import (
	"context"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/core/db/sqlc"
)

type paymentEventStore struct {
	queries *sqlc.Queries
}

func newPaymentEventStore(queries *sqlc.Queries) PaymentEventStore {
	return &paymentEventStore{queries: queries}
}

func (s *paymentEventStore) Record(ctx context.Context, provider, eventID, eventType string) (bool, error) {
	n, err := s.queries.InsertPaymentEvent(ctx, sqlc.InsertPaymentEventParams{
		ID:              id.New(),
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       eventType,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
