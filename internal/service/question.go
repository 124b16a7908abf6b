package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/blob"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/store"
)

const (
	MinRewardAmount   = 100
	maxTitleLength    = 200
	maxQuestionLength = 10000
)

type CreateQuestionParams struct {
	OwnerID      int64
	Title        string
	Content      string
	RewardAmount int32
	CategoryID   *int64
	Images       []Upload
}

// QuestionDetail is a question as seen by one viewer.
type QuestionDetail struct {
	Question model.Question
	Category *model.Category
	Images   []model.QuestionImage
	Answers  []AnswerView
	IsOwner  bool
}

// AnswerView is an answer with its locked parts removed unless the viewer may see them.
type AnswerView struct {
	model.AnswerDetail
	// Revealed is true when Content and Images are included.
	Revealed  bool
	Read      bool
	LikedByMe bool
}

type QuestionService interface {
	Create(ctx context.Context, params CreateQuestionParams) (*QuestionDetail, error)
	// Get returns the question for viewerID, which is zero for anonymous viewers.
	Get(ctx context.Context, viewerID, questionID int64) (*QuestionDetail, error)
	ListPublic(ctx context.Context, categoryID *int64, limit, offset int32) ([]model.Question, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int32) ([]model.Question, error)
	// MarkAnswersRead records every answer of the question as read by its owner and returns
	// how many were newly read.
	MarkAnswersRead(ctx context.Context, ownerID, questionID int64) (int64, error)
	// StartCheckout creates the checkout session that publishes the question.
	StartCheckout(ctx context.Context, ownerID, questionID int64) (string, error)
}

type questionService struct {
	stores   StoreProvider
	txRunner TxRunner
	blobs    blob.Store
	gateway  payment.Gateway
	metrics  *metrics.Metrics
	cfg      CheckoutConfig
}

func NewQuestionService(stores StoreProvider, txRunner TxRunner, blobs blob.Store, gateway payment.Gateway, m *metrics.Metrics, cfg CheckoutConfig) QuestionService {
	return &questionService{
		stores:   stores,
		txRunner: txRunner,
		blobs:    blobs,
		gateway:  gateway,
		metrics:  m,
		cfg:      cfg,
	}
}

func (s *questionService) Create(ctx context.Context, params CreateQuestionParams) (*QuestionDetail, error) {
	if params.OwnerID == 0 {
		return nil, ErrUnauthenticated
	}

	title := strings.TrimSpace(params.Title)
	content := strings.TrimSpace(params.Content)
	switch {
	case title == "":
		return nil, invalid("title", "is required")
	case utf8.RuneCountInString(title) > maxTitleLength:
		return nil, invalid("title", fmt.Sprintf("must be at most %d characters", maxTitleLength))
	case content == "":
		return nil, invalid("content", "is required")
	case utf8.RuneCountInString(content) > maxQuestionLength:
		return nil, invalid("content", fmt.Sprintf("must be at most %d characters", maxQuestionLength))
	case params.RewardAmount < MinRewardAmount:
		return nil, invalid("rewardAmount", fmt.Sprintf("must be at least %d", MinRewardAmount))
	case len(params.Images) > MaxImages:
		return nil, invalid("images", fmt.Sprintf("at most %d images are allowed", MaxImages))
	}

	var category *model.Category
	if params.CategoryID != nil {
		c, err := s.stores.Categories().GetByID(ctx, *params.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, invalid("categoryId", "category does not exist")
			}
			return nil, fmt.Errorf("getting category: %w", err)
		}
		category = c
	}

	question := &model.Question{
		ID:           id.New(),
		OwnerID:      params.OwnerID,
		CategoryID:   params.CategoryID,
		Title:        title,
		Content:      content,
		RewardAmount: params.RewardAmount,
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:     &params.OwnerID,
		QuestionID: &question.ID,
	})

	if err := s.stores.Questions().Create(ctx, question); err != nil {
		slog.ErrorContext(ctx, "failed to create question", "error", err)
		return nil, fmt.Errorf("creating question: %w", err)
	}

	stored := storeImages(ctx, s.blobs, params.Images, func(name string) (string, error) {
		return blob.QuestionImageKey(question.ID, name)
	})
	images := make([]model.QuestionImage, 0, len(stored))
	for _, st := range stored {
		img := &model.QuestionImage{
			ID:         id.New(),
			QuestionID: question.ID,
			ObjectKey:  st.Key,
			URL:        st.URL,
			SortOrder:  st.SortOrder,
		}
		if err := s.stores.Questions().AddImage(ctx, img); err != nil {
			slog.ErrorContext(ctx, "failed to record question image", "error", err, "object_key", st.Key)
			continue
		}
		images = append(images, *img)
	}

	slog.InfoContext(ctx, "question created",
		"reward_amount", question.RewardAmount,
		"image_count", len(images))

	return &QuestionDetail{
		Question: *question,
		Category: category,
		Images:   images,
		Answers:  []AnswerView{},
		IsOwner:  true,
	}, nil
}

func (s *questionService) Get(ctx context.Context, viewerID, questionID int64) (*QuestionDetail, error) {
	question, err := s.stores.Questions().GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("getting question: %w", err)
	}
	if !question.VisibleTo(viewerID) {
		return nil, ErrQuestionNotPublic
	}

	detail := &QuestionDetail{
		Question: *question,
		IsOwner:  viewerID != 0 && question.OwnerID == viewerID,
	}

	if question.CategoryID != nil {
		c, err := s.stores.Categories().GetByID(ctx, *question.CategoryID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("getting category: %w", err)
		}
		detail.Category = c
	}

	if detail.Images, err = s.stores.Questions().ListImages(ctx, questionID); err != nil {
		return nil, fmt.Errorf("listing question images: %w", err)
	}

	answers, err := s.stores.Answers().ListDetailsByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("listing answers: %w", err)
	}

	read := map[int64]bool{}
	liked := map[int64]bool{}
	if viewerID != 0 {
		readIDs, err := s.stores.AnswerReads().ListReadAnswerIDs(ctx, viewerID, questionID)
		if err != nil {
			return nil, fmt.Errorf("listing read answers: %w", err)
		}
		for _, aid := range readIDs {
			read[aid] = true
		}
		likedIDs, err := s.stores.Likes().ListLikedAnswerIDs(ctx, viewerID, questionID)
		if err != nil {
			return nil, fmt.Errorf("listing liked answers: %w", err)
		}
		for _, aid := range likedIDs {
			liked[aid] = true
		}
	}

	detail.Answers = make([]AnswerView, len(answers))
	for i, a := range answers {
		view := AnswerView{
			AnswerDetail: a,
			Revealed:     CanSeeAnswerContent(viewerID, question, &a),
			Read:         read[a.ID],
			LikedByMe:    liked[a.ID],
		}
		if !view.Revealed {
			view.Content = nil
			view.Images = nil
		}
		detail.Answers[i] = view
	}

	return detail, nil
}

// CanSeeAnswerContent reports whether the viewer may read an answer's content and images:
// its author always can, and the question owner can once the negotiation is ACCEPTED.
func CanSeeAnswerContent(viewerID int64, question *model.Question, answer *model.AnswerDetail) bool {
	if viewerID == 0 {
		return false
	}
	if answer.AuthorID == viewerID {
		return true
	}
	return question.OwnerID == viewerID &&
		answer.Negotiation != nil &&
		answer.Negotiation.Status == model.NegotiationStatusAccepted
}

func (s *questionService) ListPublic(ctx context.Context, categoryID *int64, limit, offset int32) ([]model.Question, error) {
	limit, offset = page(limit, offset)
	questions, err := s.stores.Questions().ListPaid(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) ListByOwner(ctx context.Context, ownerID int64, limit, offset int32) ([]model.Question, error) {
	limit, offset = page(limit, offset)
	questions, err := s.stores.Questions().ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) ownedQuestion(ctx context.Context, ownerID, questionID int64) (*model.Question, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	question, err := s.stores.Questions().GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("getting question: %w", err)
	}
	if question.OwnerID != ownerID {
		return nil, ErrNotQuestionOwner
	}
	return question, nil
}

func (s *questionService) MarkAnswersRead(ctx context.Context, ownerID, questionID int64) (int64, error) {
	if _, err := s.ownedQuestion(ctx, ownerID, questionID); err != nil {
		return 0, err
	}

	var marked int64
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		n, err := sp.AnswerReads().MarkQuestionRead(ctx, ownerID, questionID)
		if err != nil {
			return fmt.Errorf("marking answers read: %w", err)
		}
		if n > 0 {
			if err := sp.UnreadCounters().AddAnswers(ctx, ownerID, -int32(n)); err != nil {
				return fmt.Errorf("decrementing unread answers: %w", err)
			}
		}
		marked = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

func (s *questionService) StartCheckout(ctx context.Context, ownerID, questionID int64) (string, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:     &ownerID,
		QuestionID: &questionID,
	})

	question, err := s.ownedQuestion(ctx, ownerID, questionID)
	if err != nil {
		return "", err
	}
	if question.IsPaid {
		return "", ErrQuestionAlreadyPaid
	}
	if question.RewardAmount <= 0 {
		return "", invalid("rewardAmount", "must be positive")
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ProductName: "Question reward: " + question.Title,
		Amount:      int64(question.RewardAmount),
		Intent:      payment.QuestionIntent{QuestionID: question.ID},
		SuccessURL:  s.cfg.successURL(question.ID),
		CancelURL:   s.cfg.cancelURL(question.ID),
		ExpiresAt:   time.Now().Add(s.cfg.SessionTTL),
	})
	s.metrics.ObserveCheckout(string(model.PaymentKindQuestion), err)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create question checkout session", "error", err)
		return "", gatewayError(err)
	}

	slog.InfoContext(ctx, "question checkout session created", "session_id", sess.ID)
	return sess.URL, nil
}
