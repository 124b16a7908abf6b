package store

import (
	"context"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err)
	}
	return toUserModel(row), nil
}

// UpsertByWorkOSID keeps the existing local id when the identity was seen before.
func (s *userStore) UpsertByWorkOSID(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUserByWorkOSID(ctx, sqlc.UpsertUserByWorkOSIDParams{
		ID:        user.ID,
		WorkosID:  user.WorkOSID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarUrl: user.AvatarURL,
	})
	if err != nil {
		return err
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) RecordConsent(ctx context.Context, userID int64, version string) (*model.User, error) {
	row, err := s.queries.UpdateUserConsent(ctx, sqlc.UpdateUserConsentParams{
		ID:             userID,
		ConsentVersion: &version,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toUserModel(row), nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:             row.ID,
		WorkOSID:       row.WorkosID,
		Name:           row.Name,
		Email:          row.Email,
		AvatarURL:      row.AvatarUrl,
		ConsentAt:      timePtr(row.ConsentAt),
		ConsentVersion: row.ConsentVersion,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
