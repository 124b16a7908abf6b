package model

import "time"

type NotificationType string

const (
	NotificationTypeBestSelected        NotificationType = "BEST_SELECTED"
	NotificationTypeAnswerReceived      NotificationType = "ANSWER_RECEIVED"
	NotificationTypeAnswerPurchased     NotificationType = "ANSWER_PURCHASED"
	NotificationTypeQuestionPublished   NotificationType = "QUESTION_PUBLISHED"
	NotificationTypeNegotiationRejected NotificationType = "NEGOTIATION_REJECTED"
)

type Notification struct {
	ID          int64            `json:"id"`
	RecipientID int64            `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	Link        *string          `json:"link,omitempty"`
	DedupeKey   *string          `json:"-"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// UnreadCounts is the materialized per-user unread state.
type UnreadCounts struct {
	UnreadAnswers       int32 `json:"unread_answers"`
	UnreadNotifications int32 `json:"unread_notifications"`
}

func (c UnreadCounts) Total() int32 {
	return c.UnreadAnswers + c.UnreadNotifications
}
