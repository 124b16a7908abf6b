package store

import (
	"context"
	"errors"
	"time"

	"knowvalue.app/server/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
	RecordConsent(ctx context.Context, userID int64, version string) (*model.User, error)
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
}

type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*model.Question, error)
	ListPaid(ctx context.Context, categoryID *int64, limit, offset int32) ([]model.Question, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int32) ([]model.Question, error)
	// MarkPaid returns false when the question was already paid.
	MarkPaid(ctx context.Context, id int64) (bool, error)
	// SetBestAnswer returns false when the question is closed or already has a best answer.
	SetBestAnswer(ctx context.Context, questionID, answerID int64) (bool, error)
	AddImage(ctx context.Context, img *model.QuestionImage) error
	ListImages(ctx context.Context, questionID int64) ([]model.QuestionImage, error)
}

type AnswerStore interface {
	Create(ctx context.Context, a *model.Answer) error
	GetByID(ctx context.Context, id int64) (*model.Answer, error)
	ListDetailsByQuestion(ctx context.Context, questionID int64) ([]model.AnswerDetail, error)
	ListSummariesByAuthor(ctx context.Context, authorID int64, limit, offset int32) ([]model.AnswerSummary, error)
	AddImage(ctx context.Context, img *model.AnswerImage) error
}

type NegotiationStore interface {
	Create(ctx context.Context, n *model.Negotiation) error
	GetContext(ctx context.Context, id int64) (*model.NegotiationContext, error)
	// GetContextForUpdate locks the negotiation row until the surrounding transaction ends.
	GetContextForUpdate(ctx context.Context, id int64) (*model.NegotiationContext, error)
	RecordCheckoutStarted(ctx context.Context, id int64, sessionID string) (bool, error)
	// Transition moves a PENDING negotiation to a terminal status. It returns false when
	// the negotiation had already left PENDING.
	Transition(ctx context.Context, id int64, to model.NegotiationStatus) (bool, error)
	ListExpiredPending(ctx context.Context, createdBefore, checkoutBefore time.Time, limit int32) ([]model.NegotiationContext, error)
}

type PurchaseStore interface {
	// Create returns false when a purchase for the same negotiation is already recorded.
	Create(ctx context.Context, p *model.Purchase) (bool, error)
	QuestionPurchaseExists(ctx context.Context, questionID, payerID int64) (bool, error)
	ListByPayer(ctx context.Context, payerID int64, limit, offset int32) ([]model.Purchase, error)
}

type PaymentEventStore interface {
	// Record returns false when the provider event was already recorded.
	Record(ctx context.Context, provider, eventID, eventType string) (bool, error)
}

type NotificationStore interface {
	// Create returns false when a notification with the same dedupe key exists.
	Create(ctx context.Context, n *model.Notification) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64, limit, offset int32) ([]model.Notification, error)
	// MarkRead returns false when the notification was already read.
	MarkRead(ctx context.Context, id, recipientID int64) (bool, error)
}

type AnswerReadStore interface {
	// MarkRead returns true only when the read was newly recorded.
	MarkRead(ctx context.Context, userID, answerID int64) (bool, error)
	// MarkQuestionRead records every answer of the question and returns how many were new.
	MarkQuestionRead(ctx context.Context, userID, questionID int64) (int64, error)
	ListReadAnswerIDs(ctx context.Context, userID, questionID int64) ([]int64, error)
}

type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByAnswer(ctx context.Context, answerID int64) ([]model.Comment, error)
}

type LikeStore interface {
	Like(ctx context.Context, userID, answerID int64) (bool, error)
	Unlike(ctx context.Context, userID, answerID int64) (bool, error)
	Count(ctx context.Context, answerID int64) (int32, error)
	ListLikedAnswerIDs(ctx context.Context, userID, questionID int64) ([]int64, error)
}

type UnreadCounterStore interface {
	Get(ctx context.Context, userID int64) (model.UnreadCounts, error)
	AddAnswers(ctx context.Context, userID int64, delta int32) error
	AddNotifications(ctx context.Context, userID int64, delta int32) error
}
