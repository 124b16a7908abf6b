package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/store"
)

type NotificationService interface {
	List(ctx context.Context, userID int64, limit, offset int32) ([]model.Notification, error)
	Unread(ctx context.Context, userID int64) (model.UnreadCounts, error)
	// MarkRead is idempotent. A notification that belongs to someone else is reported as missing.
	MarkRead(ctx context.Context, userID, notificationID int64) error
	// HandleEvent turns a domain event into a notification for its recipient. Redelivered
	// events are absorbed by the dedupe key.
	HandleEvent(ctx context.Context, evt queue.Event) (bool, error)
}

type notificationService struct {
	stores   StoreProvider
	txRunner TxRunner
}

func NewNotificationService(stores StoreProvider, txRunner TxRunner) NotificationService {
	return &notificationService{stores: stores, txRunner: txRunner}
}

func (s *notificationService) List(ctx context.Context, userID int64, limit, offset int32) ([]model.Notification, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	limit, offset = page(limit, offset)
	items, err := s.stores.Notifications().ListByRecipient(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return items, nil
}

func (s *notificationService) Unread(ctx context.Context, userID int64) (model.UnreadCounts, error) {
	if userID == 0 {
		return model.UnreadCounts{}, ErrUnauthenticated
	}
	counts, err := s.stores.UnreadCounters().Get(ctx, userID)
	if err != nil {
		return model.UnreadCounts{}, fmt.Errorf("getting unread counts: %w", err)
	}
	return counts, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if userID == 0 {
		return ErrUnauthenticated
	}

	n, err := s.stores.Notifications().GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotificationMissing
		}
		return fmt.Errorf("getting notification: %w", err)
	}
	if n.RecipientID != userID {
		return ErrNotificationMissing
	}
	if n.IsRead() {
		return nil
	}

	return s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		marked, err := sp.Notifications().MarkRead(ctx, notificationID, userID)
		if err != nil {
			return fmt.Errorf("marking notification read: %w", err)
		}
		if !marked {
			return nil
		}
		if err := sp.UnreadCounters().AddNotifications(ctx, userID, -1); err != nil {
			return fmt.Errorf("decrementing unread notifications: %w", err)
		}
		return nil
	})
}

func (s *notificationService) HandleEvent(ctx context.Context, evt queue.Event) (bool, error) {
	if err := evt.Validate(); err != nil {
		return false, fmt.Errorf("invalid event: %w", err)
	}

	n := notificationFor(evt)
	if n == nil {
		return false, nil
	}

	var created bool
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var err error
		created, err = createNotification(ctx, sp, n)
		return err
	})
	if err != nil {
		return false, err
	}

	if created {
		slog.InfoContext(ctx, "notification created",
			"notification_type", n.Type,
			"recipient_id", n.RecipientID)
	} else {
		slog.DebugContext(ctx, "notification already exists", "dedupe_key", *n.DedupeKey)
	}
	return created, nil
}

func notificationFor(evt queue.Event) *model.Notification {
	link := fmt.Sprintf("/questions/%d", evt.QuestionID)
	n := &model.Notification{
		ID:          id.New(),
		RecipientID: evt.RecipientID,
		Link:        &link,
	}

	var dedupe string
	switch evt.Type {
	case queue.EventAnswerCreated:
		n.Type = model.NotificationTypeAnswerReceived
		n.Message = "あなたの質問に新しい回答が届きました"
		dedupe = fmt.Sprintf("answer:%d", *evt.AnswerID)
	case queue.EventNegotiationRejected:
		n.Type = model.NotificationTypeNegotiationRejected
		n.Message = "あなたの回答の提案は見送られました"
		dedupe = fmt.Sprintf("rejected:%d", *evt.NegotiationID)
	case queue.EventPurchaseCompleted:
		if evt.Kind == model.PaymentKindQuestion {
			n.Type = model.NotificationTypeQuestionPublished
			n.Message = "質問が公開されました"
			dedupe = fmt.Sprintf("published:%d", evt.QuestionID)
		} else {
			n.Type = model.NotificationTypeAnswerPurchased
			n.Message = "あなたの回答が購入されました"
			dedupe = fmt.Sprintf("purchased:%d", *evt.NegotiationID)
		}
	default:
		return nil
	}
	n.DedupeKey = &dedupe
	return n
}
