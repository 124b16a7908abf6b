package service

import (
	"context"

	"knowvalue.app/server/core/db"
	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/store"
)

// StoreProvider exposes the stores a service operation may touch. *store.Stores satisfies it,
// both for plain reads against the pool and for transaction-bound queries.
type StoreProvider interface {
	Users() store.UserStore
	Sessions() store.SessionStore
	Categories() store.CategoryStore
	Questions() store.QuestionStore
	Answers() store.AnswerStore
	Negotiations() store.NegotiationStore
	Purchases() store.PurchaseStore
	PaymentEvents() store.PaymentEventStore
	Notifications() store.NotificationStore
	AnswerReads() store.AnswerReadStore
	Comments() store.CommentStore
	Likes() store.LikeStore
	UnreadCounters() store.UnreadCounterStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}
