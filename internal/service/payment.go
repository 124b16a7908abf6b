package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/store"
)

// WebhookOutcome says what a verified delivery did. Every outcome is acknowledged with 200.
type WebhookOutcome string

const (
	WebhookProcessed WebhookOutcome = "processed"
	WebhookDuplicate WebhookOutcome = "duplicate"
	WebhookIgnored   WebhookOutcome = "ignored"
)

type PaymentService interface {
	// HandleWebhook verifies and applies a gateway delivery. Errors wrapping
	// ErrSignatureInvalid must not be retried; any other error should be.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookOutcome, error)
}

type paymentService struct {
	txRunner  TxRunner
	gateway   payment.Gateway
	publisher EventPublisher
	metrics   *metrics.Metrics
}

func NewPaymentService(txRunner TxRunner, gateway payment.Gateway, publisher EventPublisher, m *metrics.Metrics) PaymentService {
	return &paymentService{
		txRunner:  txRunner,
		gateway:   gateway,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookOutcome, error) {
	sc := logger.StartSpan(ctx, "payment.handle_webhook")
	defer sc.End()
	ctx = sc.Context()

	evt, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotConfigured):
			s.metrics.ObserveWebhook("misconfigured")
			return "", fmt.Errorf("%w: %v", ErrMissingConfiguration, err)
		case errors.Is(err, payment.ErrSignatureInvalid):
			s.metrics.ObserveWebhook("signature_invalid")
			slog.WarnContext(ctx, "webhook signature verification failed", "error", err)
			return "", fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
		default:
			return "", fmt.Errorf("parsing webhook: %w", err)
		}
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{EventType: &evt.Type})

	outcome, published, err := s.apply(ctx, evt)
	if err != nil {
		sc.RecordError(err)
		s.metrics.ObserveWebhook("error")
		slog.ErrorContext(ctx, "webhook processing failed", "error", err, "event_id", evt.ID)
		return "", err
	}
	s.metrics.ObserveWebhook(string(outcome))

	if published != nil {
		publish(ctx, s.publisher, *published)
	}
	return outcome, nil
}

func (s *paymentService) apply(ctx context.Context, evt payment.Event) (WebhookOutcome, *queue.Event, error) {
	if evt.Type != payment.EventCheckoutCompleted {
		slog.InfoContext(ctx, "ignoring unhandled webhook event", "event_id", evt.ID)
		return WebhookIgnored, nil, nil
	}
	if evt.PaymentStatus != "" && evt.PaymentStatus != "paid" && evt.PaymentStatus != "no_payment_required" {
		slog.InfoContext(ctx, "ignoring checkout completed without payment",
			"event_id", evt.ID,
			"payment_status", evt.PaymentStatus)
		return WebhookIgnored, nil, nil
	}

	intent, err := payment.ParseIntent(evt.Metadata)
	if err != nil {
		slog.WarnContext(ctx, "checkout completed without usable metadata",
			"event_id", evt.ID,
			"session_id", evt.SessionID,
			"error", err)
		return WebhookIgnored, nil, nil
	}

	var (
		outcome   WebhookOutcome
		published *queue.Event
	)
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		recorded, err := sp.PaymentEvents().Record(ctx, s.gateway.Provider(), evt.ID, evt.Type)
		if err != nil {
			return fmt.Errorf("recording payment event: %w", err)
		}
		if !recorded {
			slog.InfoContext(ctx, "duplicate webhook delivery", "event_id", evt.ID)
			outcome = WebhookDuplicate
			return nil
		}

		switch in := intent.(type) {
		case payment.NegotiationIntent:
			outcome, published, err = s.applyNegotiation(ctx, sp, evt, in)
		case payment.QuestionIntent:
			outcome, published, err = s.applyQuestion(ctx, sp, evt, in)
		default:
			outcome = WebhookIgnored
		}
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return outcome, published, nil
}

func (s *paymentService) applyNegotiation(ctx context.Context, sp StoreProvider, evt payment.Event, in payment.NegotiationIntent) (WebhookOutcome, *queue.Event, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{NegotiationID: &in.NegotiationID})

	nc, err := sp.Negotiations().GetContextForUpdate(ctx, in.NegotiationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "payment for unknown negotiation", "event_id", evt.ID)
			return WebhookIgnored, nil, nil
		}
		return "", nil, fmt.Errorf("locking negotiation: %w", err)
	}

	switch nc.Status {
	case model.NegotiationStatusAccepted:
		slog.InfoContext(ctx, "negotiation already accepted", "event_id", evt.ID)
		return WebhookDuplicate, nil, nil
	case model.NegotiationStatusRejected:
		// Paid after rejection; the payment needs a manual refund.
		slog.WarnContext(ctx, "payment received for rejected negotiation",
			"event_id", evt.ID,
			"session_id", evt.SessionID,
			"amount_total", evt.AmountTotal)
		return WebhookIgnored, nil, nil
	}

	if evt.AmountTotal != 0 && evt.AmountTotal != int64(nc.ProposedAmount) {
		slog.WarnContext(ctx, "paid amount differs from proposed amount",
			"amount_total", evt.AmountTotal,
			"proposed_amount", nc.ProposedAmount)
	}

	purchase := &model.Purchase{
		ID:            id.New(),
		QuestionID:    nc.QuestionID,
		PayerID:       nc.QuestionOwnerID,
		Amount:        nc.ProposedAmount,
		NegotiationID: &nc.ID,
	}
	if evt.SessionID != "" {
		purchase.ProviderSessionID = &evt.SessionID
	}
	created, err := sp.Purchases().Create(ctx, purchase)
	if err != nil {
		return "", nil, fmt.Errorf("creating purchase: %w", err)
	}
	if !created {
		slog.WarnContext(ctx, "purchase already recorded for pending negotiation")
	}

	moved, err := sp.Negotiations().Transition(ctx, nc.ID, model.NegotiationStatusAccepted)
	if err != nil {
		return "", nil, fmt.Errorf("accepting negotiation: %w", err)
	}
	if !moved {
		return "", nil, fmt.Errorf("negotiation %d left PENDING while locked", nc.ID)
	}

	slog.InfoContext(ctx, "negotiation accepted",
		"event_id", evt.ID,
		"amount", nc.ProposedAmount,
		"payer_id", nc.QuestionOwnerID)

	evtOut := &queue.Event{
		Type:          queue.EventPurchaseCompleted,
		RecipientID:   nc.AnswerAuthorID,
		QuestionID:    nc.QuestionID,
		AnswerID:      &nc.AnswerID,
		NegotiationID: &nc.ID,
		Kind:          model.PaymentKindNegotiation,
	}
	if created {
		evtOut.PurchaseID = &purchase.ID
	}
	return WebhookProcessed, evtOut, nil
}

func (s *paymentService) applyQuestion(ctx context.Context, sp StoreProvider, evt payment.Event, in payment.QuestionIntent) (WebhookOutcome, *queue.Event, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{QuestionID: &in.QuestionID})

	question, err := sp.Questions().GetForUpdate(ctx, in.QuestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "payment for unknown question", "event_id", evt.ID)
			return WebhookIgnored, nil, nil
		}
		return "", nil, fmt.Errorf("locking question: %w", err)
	}

	exists, err := sp.Purchases().QuestionPurchaseExists(ctx, question.ID, question.OwnerID)
	if err != nil {
		return "", nil, fmt.Errorf("checking question purchase: %w", err)
	}
	var purchaseID *int64
	if !exists {
		purchase := &model.Purchase{
			ID:         id.New(),
			QuestionID: question.ID,
			PayerID:    question.OwnerID,
			Amount:     question.RewardAmount,
		}
		if evt.SessionID != "" {
			purchase.ProviderSessionID = &evt.SessionID
		}
		if _, err := sp.Purchases().Create(ctx, purchase); err != nil {
			return "", nil, fmt.Errorf("creating purchase: %w", err)
		}
		purchaseID = &purchase.ID
	}

	published, err := sp.Questions().MarkPaid(ctx, question.ID)
	if err != nil {
		return "", nil, fmt.Errorf("marking question paid: %w", err)
	}
	if !published {
		slog.InfoContext(ctx, "question already paid", "event_id", evt.ID)
		return WebhookDuplicate, nil, nil
	}

	slog.InfoContext(ctx, "question published", "event_id", evt.ID, "reward_amount", question.RewardAmount)
	return WebhookProcessed, &queue.Event{
		Type:        queue.EventPurchaseCompleted,
		RecipientID: question.OwnerID,
		QuestionID:  question.ID,
		PurchaseID:  purchaseID,
		Kind:        model.PaymentKindQuestion,
	}, nil
}
