package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/store"
)

const maxConsentVersionLength = 32

type UserService interface {
	Get(ctx context.Context, userID int64) (*model.User, error)
	// RecordConsent stores the accepted terms version and timestamps it.
	RecordConsent(ctx context.Context, userID int64, version string) (*model.User, error)
	ListPurchases(ctx context.Context, userID int64, limit, offset int32) ([]model.Purchase, error)
}

type userService struct {
	userStore     store.UserStore
	purchaseStore store.PurchaseStore
}

func NewUserService(userStore store.UserStore, purchaseStore store.PurchaseStore) UserService {
	return &userService{
		userStore:     userStore,
		purchaseStore: purchaseStore,
	}
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) RecordConsent(ctx context.Context, userID int64, version string) (*model.User, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, invalid("version", "is required")
	}
	if len(version) > maxConsentVersionLength {
		return nil, invalid("version", fmt.Sprintf("must be at most %d characters", maxConsentVersionLength))
	}

	user, err := s.userStore.RecordConsent(ctx, userID, version)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		slog.ErrorContext(ctx, "failed to record consent",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("recording consent: %w", err)
	}

	slog.InfoContext(ctx, "consent recorded", "user_id", userID, "consent_version", version)
	return user, nil
}

func (s *userService) ListPurchases(ctx context.Context, userID int64, limit, offset int32) ([]model.Purchase, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	limit, offset = page(limit, offset)
	purchases, err := s.purchaseStore.ListByPayer(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	return purchases, nil
}
