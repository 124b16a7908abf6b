package store

import (
	"knowvalue.app/server/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Categories() CategoryStore {
	return newCategoryStore(s.queries)
}

func (s *Stores) Questions() QuestionStore {
	return newQuestionStore(s.queries)
}

func (s *Stores) Answers() AnswerStore {
	return newAnswerStore(s.queries)
}

func (s *Stores) Negotiations() NegotiationStore {
	return newNegotiationStore(s.queries)
}

func (s *Stores) Purchases() PurchaseStore {
	return newPurchaseStore(s.queries)
}

func (s *Stores) PaymentEvents() PaymentEventStore {
	return newPaymentEventStore(s.queries)
}

func (s *Stores) Notifications() NotificationStore {
	return newNotificationStore(s.queries)
}

func (s *Stores) AnswerReads() AnswerReadStore {
	return newAnswerReadStore(s.queries)
}

func (s *Stores) Comments() CommentStore {
	return newCommentStore(s.queries)
}

func (s *Stores) Likes() LikeStore {
	return newLikeStore(s.queries)
}

func (s *Stores) UnreadCounters() UnreadCounterStore {
	return newUnreadCounterStore(s.queries)
}
