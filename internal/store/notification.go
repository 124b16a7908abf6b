package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type notificationStore struct {
	queries *sqlc.Queries
}

func newNotificationStore(queries *sqlc.Queries) NotificationStore {
	return &notificationStore{queries: queries}
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) (bool, error) {
	row, err := s.queries.CreateNotification(ctx, sqlc.CreateNotificationParams{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		Message:     n.Message,
		Link:        n.Link,
		DedupeKey:   n.DedupeKey,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	*n = toNotificationModel(row)
	return true, nil
}

func (s *notificationStore) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	row, err := s.queries.GetNotification(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	n := toNotificationModel(row)
	return &n, nil
}

func (s *notificationStore) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int32) ([]model.Notification, error) {
	rows, err := s.queries.ListNotificationsByRecipient(ctx, sqlc.ListNotificationsByRecipientParams{
		RecipientID: recipientID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Notification, len(rows))
	for i, row := range rows {
		result[i] = toNotificationModel(row)
	}
	return result, nil
}

func (s *notificationStore) MarkRead(ctx context.Context, id, recipientID int64) (bool, error) {
	n, err := s.queries.MarkNotificationRead(ctx, sqlc.MarkNotificationReadParams{
		ID:          id,
		RecipientID: recipientID,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func toNotificationModel(row sqlc.Notification) model.Notification {
	return model.Notification{
		ID:          row.ID,
		RecipientID: row.RecipientID,
		Type:        model.NotificationType(row.Type),
		Message:     row.Message,
		Link:        row.Link,
		DedupeKey:   row.DedupeKey,
		ReadAt:      timePtr(row.ReadAt),
		CreatedAt:   row.CreatedAt.Time,
	}
}
