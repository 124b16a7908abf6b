package store

import (
	"context"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type sessionStore struct {
	queries *sqlc.Queries
}

func newSessionStore(queries *sqlc.Queries) SessionStore {
	return &sessionStore{queries: queries}
}

func (s *sessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	row, err := s.queries.GetValidSession(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toSessionModel(row), nil
}

func (s *sessionStore) Create(ctx context.Context, session *model.Session) error {
	row, err := s.queries.CreateSession(ctx, sqlc.CreateSessionParams{
		ID:        session.ID,
		UserID:    session.UserID,
		ExpiresAt: timestamptz(session.ExpiresAt),
	})
	if err != nil {
		return err
	}
	*session = *toSessionModel(row)
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteSession(ctx, id)
}

func (s *sessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	return s.queries.DeleteExpiredSessions(ctx)
}

func toSessionModel(row sqlc.Session) *model.Session {
	return &model.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt.Time,
		ExpiresAt: row.ExpiresAt.Time,
	}
}
