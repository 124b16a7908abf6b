package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/blob"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/store"
)

// MinProposedAmount is the smallest amount, in yen, an answer may ask for.
const MinProposedAmount = 100

type CreateAnswerParams struct {
	QuestionID     int64
	AuthorID       int64
	Pitch          string
	Content        string
	ProposedAmount int32
	Images         []Upload
}

type AnswerService interface {
	// Create submits an answer proposal with its PENDING negotiation.
	Create(ctx context.Context, params CreateAnswerParams) (*model.AnswerDetail, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int32) ([]model.AnswerSummary, error)
	// MarkRead records that the question owner has read one answer. It returns false
	// when the answer was already read.
	MarkRead(ctx context.Context, ownerID, answerID int64) (bool, error)
}

// EventPublisher hands committed domain events to the worker. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, evt queue.Event) error
}

type answerService struct {
	stores    StoreProvider
	txRunner  TxRunner
	blobs     blob.Store
	publisher EventPublisher
}

func NewAnswerService(stores StoreProvider, txRunner TxRunner, blobs blob.Store, publisher EventPublisher) AnswerService {
	return &answerService{
		stores:    stores,
		txRunner:  txRunner,
		blobs:     blobs,
		publisher: publisher,
	}
}

func (s *answerService) Create(ctx context.Context, params CreateAnswerParams) (*model.AnswerDetail, error) {
	if params.AuthorID == 0 {
		return nil, ErrUnauthenticated
	}

	pitch := strings.TrimSpace(params.Pitch)
	switch {
	case params.QuestionID <= 0:
		return nil, invalid("questionId", "is required")
	case pitch == "":
		return nil, invalid("pitch", "is required")
	case params.ProposedAmount < MinProposedAmount:
		return nil, invalid("proposedAmount", fmt.Sprintf("must be at least %d", MinProposedAmount))
	case len(params.Images) > MaxImages:
		return nil, invalid("images", fmt.Sprintf("at most %d images are allowed", MaxImages))
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:     &params.AuthorID,
		QuestionID: &params.QuestionID,
	})

	question, err := s.stores.Questions().GetByID(ctx, params.QuestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, invalid("questionId", "question not found")
		}
		return nil, fmt.Errorf("getting question: %w", err)
	}
	if !question.VisibleTo(params.AuthorID) {
		return nil, ErrQuestionNotPublic
	}
	if !question.AcceptsBestAnswer() {
		return nil, ErrQuestionClosed
	}
	if question.OwnerID == params.AuthorID {
		return nil, invalid("questionId", "cannot answer your own question")
	}

	answer := &model.Answer{
		ID:         id.New(),
		QuestionID: question.ID,
		AuthorID:   params.AuthorID,
		Pitch:      pitch,
	}
	if content := strings.TrimSpace(params.Content); content != "" {
		answer.Content = &content
	}
	negotiation := &model.Negotiation{
		ID:             id.New(),
		AnswerID:       answer.ID,
		ProposedAmount: params.ProposedAmount,
		Status:         model.NegotiationStatusPending,
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Answers().Create(ctx, answer); err != nil {
			return fmt.Errorf("creating answer: %w", err)
		}
		if err := sp.Negotiations().Create(ctx, negotiation); err != nil {
			return fmt.Errorf("creating negotiation: %w", err)
		}
		if err := sp.UnreadCounters().AddAnswers(ctx, question.OwnerID, 1); err != nil {
			return fmt.Errorf("incrementing unread answers: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create answer", "error", err)
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		AnswerID:      &answer.ID,
		NegotiationID: &negotiation.ID,
	})
	slog.InfoContext(ctx, "answer created",
		"proposed_amount", negotiation.ProposedAmount,
		"image_count", len(params.Images))

	detail := &model.AnswerDetail{
		Answer:      *answer,
		Negotiation: negotiation,
		Images:      s.attachImages(ctx, answer.ID, params.Images),
	}

	publish(ctx, s.publisher, queue.Event{
		Type:          queue.EventAnswerCreated,
		RecipientID:   question.OwnerID,
		QuestionID:    question.ID,
		AnswerID:      &answer.ID,
		NegotiationID: &negotiation.ID,
	})

	return detail, nil
}

func (s *answerService) attachImages(ctx context.Context, answerID int64, uploads []Upload) []model.AnswerImage {
	stored := storeImages(ctx, s.blobs, uploads, func(name string) (string, error) {
		return blob.AnswerImageKey(answerID, name)
	})

	images := make([]model.AnswerImage, 0, len(stored))
	for _, st := range stored {
		img := &model.AnswerImage{
			ID:        id.New(),
			AnswerID:  answerID,
			ObjectKey: st.Key,
			URL:       st.URL,
			SortOrder: st.SortOrder,
		}
		if err := s.stores.Answers().AddImage(ctx, img); err != nil {
			slog.ErrorContext(ctx, "failed to record answer image",
				"error", err,
				"object_key", st.Key)
			continue
		}
		images = append(images, *img)
	}
	return images
}

func (s *answerService) ListByAuthor(ctx context.Context, authorID int64, limit, offset int32) ([]model.AnswerSummary, error) {
	limit, offset = page(limit, offset)
	answers, err := s.stores.Answers().ListSummariesByAuthor(ctx, authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing answers: %w", err)
	}
	return answers, nil
}

// publish sends an event after commit. Failures only cost a notification, so they are logged.
func (s *answerService) MarkRead(ctx context.Context, ownerID, answerID int64) (bool, error) {
	if ownerID == 0 {
		return false, ErrUnauthenticated
	}

	answer, err := s.stores.Answers().GetByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrAnswerNotFound
		}
		return false, fmt.Errorf("getting answer: %w", err)
	}
	question, err := s.stores.Questions().GetByID(ctx, answer.QuestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrQuestionNotFound
		}
		return false, fmt.Errorf("getting question: %w", err)
	}
	if question.OwnerID != ownerID {
		return false, ErrNotQuestionOwner
	}

	var marked bool
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		marked, err = sp.AnswerReads().MarkRead(ctx, ownerID, answerID)
		if err != nil {
			return fmt.Errorf("marking answer read: %w", err)
		}
		if !marked {
			return nil
		}
		if err := sp.UnreadCounters().AddAnswers(ctx, ownerID, -1); err != nil {
			return fmt.Errorf("decrementing unread answers: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark answer read", "error", err, "answer_id", answerID)
		return false, err
	}
	return marked, nil
}

func publish(ctx context.Context, p EventPublisher, evt queue.Event) {
	if p == nil {
		return
	}
	evt.TraceID = logger.TraceID(ctx)
	if err := p.Publish(ctx, evt); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"error", err,
			"event_type", evt.Type)
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func page(limit, offset int32) (int32, int32) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
