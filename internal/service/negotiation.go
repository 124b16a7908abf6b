package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/store"
)

// CheckoutConfig controls hosted checkout sessions.
type CheckoutConfig struct {
	AppBaseURL string
	SessionTTL time.Duration
	// NegotiationTTL is the age after which a PENDING negotiation expires. Zero disables expiry.
	NegotiationTTL time.Duration
}

func (c CheckoutConfig) successURL(questionID int64) string {
	return fmt.Sprintf("%s/questions/%d?paid=1", strings.TrimRight(c.AppBaseURL, "/"), questionID)
}

func (c CheckoutConfig) cancelURL(questionID int64) string {
	return fmt.Sprintf("%s/questions/%d?cancel=1", strings.TrimRight(c.AppBaseURL, "/"), questionID)
}

type NegotiationService interface {
	// Accept starts a checkout for the negotiated amount and returns the hosted checkout URL.
	// The negotiation stays PENDING until the payment webhook confirms it.
	Accept(ctx context.Context, callerID, negotiationID int64) (string, error)
	Reject(ctx context.Context, callerID, negotiationID int64) error
	// ExpireStale rejects PENDING negotiations older than the configured TTL whose last
	// checkout, if any, can no longer complete. It returns how many were rejected.
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}

type negotiationService struct {
	stores    StoreProvider
	gateway   payment.Gateway
	publisher EventPublisher
	metrics   *metrics.Metrics
	cfg       CheckoutConfig
	now       func() time.Time
}

func NewNegotiationService(stores StoreProvider, gateway payment.Gateway, publisher EventPublisher, m *metrics.Metrics, cfg CheckoutConfig) NegotiationService {
	return &negotiationService{
		stores:    stores,
		gateway:   gateway,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ownedPending loads the negotiation and checks the caller owns its question and it is still open.
func (s *negotiationService) ownedPending(ctx context.Context, callerID, negotiationID int64) (*model.NegotiationContext, error) {
	if callerID == 0 {
		return nil, ErrUnauthenticated
	}
	if negotiationID <= 0 {
		return nil, invalid("negotiationId", "is required")
	}

	nc, err := s.stores.Negotiations().GetContext(ctx, negotiationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNegotiationNotFound
		}
		return nil, fmt.Errorf("getting negotiation: %w", err)
	}
	if nc.QuestionOwnerID != callerID {
		return nil, ErrNotQuestionOwner
	}
	if nc.Status != model.NegotiationStatusPending {
		return nil, ErrNegotiationSettled
	}
	return nc, nil
}

func (s *negotiationService) Accept(ctx context.Context, callerID, negotiationID int64) (string, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:        &callerID,
		NegotiationID: &negotiationID,
	})

	nc, err := s.ownedPending(ctx, callerID, negotiationID)
	if err != nil {
		return "", err
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ProductName: "Answer unlock: " + nc.QuestionTitle,
		Amount:      int64(nc.ProposedAmount),
		Intent: payment.NegotiationIntent{
			NegotiationID:  nc.ID,
			QuestionID:     nc.QuestionID,
			AnswerID:       nc.AnswerID,
			ProposedAmount: nc.ProposedAmount,
		},
		SuccessURL: s.cfg.successURL(nc.QuestionID),
		CancelURL:  s.cfg.cancelURL(nc.QuestionID),
		ExpiresAt:  s.now().Add(s.cfg.SessionTTL),
	})
	s.metrics.ObserveCheckout(string(model.PaymentKindNegotiation), err)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create checkout session", "error", err)
		return "", gatewayError(err)
	}

	recorded, err := s.stores.Negotiations().RecordCheckoutStarted(ctx, nc.ID, sess.ID)
	if err != nil {
		return "", fmt.Errorf("recording checkout session: %w", err)
	}
	if !recorded {
		// Settled between the status check and now; do not hand out a payable link.
		slog.WarnContext(ctx, "negotiation settled while creating checkout", "session_id", sess.ID)
		return "", ErrNegotiationSettled
	}

	slog.InfoContext(ctx, "checkout session created",
		"session_id", sess.ID,
		"amount", nc.ProposedAmount)
	return sess.URL, nil
}

func (s *negotiationService) Reject(ctx context.Context, callerID, negotiationID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:        &callerID,
		NegotiationID: &negotiationID,
	})

	nc, err := s.ownedPending(ctx, callerID, negotiationID)
	if err != nil {
		return err
	}

	ok, err := s.stores.Negotiations().Transition(ctx, nc.ID, model.NegotiationStatusRejected)
	if err != nil {
		return fmt.Errorf("rejecting negotiation: %w", err)
	}
	if !ok {
		return ErrNegotiationSettled
	}

	slog.InfoContext(ctx, "negotiation rejected")
	s.publishRejected(ctx, nc)
	return nil
}

const expireBatchSize = 100

func (s *negotiationService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	if s.cfg.NegotiationTTL <= 0 {
		return 0, nil
	}

	createdBefore := now.Add(-s.cfg.NegotiationTTL)
	checkoutBefore := now.Add(-s.cfg.SessionTTL)

	expired := 0
	for {
		batch, err := s.stores.Negotiations().ListExpiredPending(ctx, createdBefore, checkoutBefore, expireBatchSize)
		if err != nil {
			return expired, fmt.Errorf("listing expired negotiations: %w", err)
		}

		rejected := 0
		for i := range batch {
			nc := &batch[i]
			ok, err := s.stores.Negotiations().Transition(ctx, nc.ID, model.NegotiationStatusRejected)
			if err != nil {
				return expired, fmt.Errorf("expiring negotiation %d: %w", nc.ID, err)
			}
			if !ok {
				continue
			}
			rejected++
			nctx := logger.WithLogFields(ctx, logger.LogFields{NegotiationID: &nc.ID})
			slog.InfoContext(nctx, "negotiation expired", "created_at", nc.CreatedAt)
			s.publishRejected(nctx, nc)
		}
		expired += rejected
		s.metrics.ObserveExpired(rejected)

		// A short batch is the last one. A batch where nothing moved would loop forever.
		if len(batch) < expireBatchSize || rejected == 0 {
			return expired, nil
		}
	}
}

func (s *negotiationService) publishRejected(ctx context.Context, nc *model.NegotiationContext) {
	publish(ctx, s.publisher, queue.Event{
		Type:          queue.EventNegotiationRejected,
		RecipientID:   nc.AnswerAuthorID,
		QuestionID:    nc.QuestionID,
		AnswerID:      &nc.AnswerID,
		NegotiationID: &nc.ID,
	})
}

func gatewayError(err error) error {
	if errors.Is(err, payment.ErrNotConfigured) {
		return fmt.Errorf("%w: %v", ErrMissingConfiguration, err)
	}
	return fmt.Errorf("%w: %v", ErrGateway, err)
}
