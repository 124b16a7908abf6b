package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/store"
)

const maxCommentLength = 2000

// EngagementService covers likes and comments on answers.
type EngagementService interface {
	// ToggleLike flips the caller's like on an answer and returns the new state and count.
	ToggleLike(ctx context.Context, userID, answerID int64) (bool, int32, error)
	AddComment(ctx context.Context, userID, answerID int64, content string) (*model.Comment, error)
	ListComments(ctx context.Context, viewerID, answerID int64) ([]model.Comment, error)
}

type engagementService struct {
	stores   StoreProvider
	txRunner TxRunner
}

func NewEngagementService(stores StoreProvider, txRunner TxRunner) EngagementService {
	return &engagementService{stores: stores, txRunner: txRunner}
}

// visibleAnswer loads an answer the viewer is allowed to see through its question.
func (s *engagementService) visibleAnswer(ctx context.Context, viewerID, answerID int64) (*model.Answer, error) {
	answer, err := s.stores.Answers().GetByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("getting answer: %w", err)
	}
	question, err := s.stores.Questions().GetByID(ctx, answer.QuestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("getting question: %w", err)
	}
	if !question.VisibleTo(viewerID) {
		return nil, ErrQuestionNotPublic
	}
	return answer, nil
}

func (s *engagementService) ToggleLike(ctx context.Context, userID, answerID int64) (bool, int32, error) {
	if userID == 0 {
		return false, 0, ErrUnauthenticated
	}
	if _, err := s.visibleAnswer(ctx, userID, answerID); err != nil {
		return false, 0, err
	}

	var (
		liked bool
		count int32
	)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		inserted, err := sp.Likes().Like(ctx, userID, answerID)
		if err != nil {
			return fmt.Errorf("liking answer: %w", err)
		}
		liked = inserted
		if !inserted {
			if _, err := sp.Likes().Unlike(ctx, userID, answerID); err != nil {
				return fmt.Errorf("removing like: %w", err)
			}
		}
		count, err = sp.Likes().Count(ctx, answerID)
		if err != nil {
			return fmt.Errorf("counting likes: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (s *engagementService) AddComment(ctx context.Context, userID, answerID int64, content string) (*model.Comment, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, invalid("content", fmt.Sprintf("must be at most %d characters", maxCommentLength))
	}
	if _, err := s.visibleAnswer(ctx, userID, answerID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:       id.New(),
		AnswerID: answerID,
		AuthorID: userID,
		Content:  content,
	}
	if err := s.stores.Comments().Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

func (s *engagementService) ListComments(ctx context.Context, viewerID, answerID int64) ([]model.Comment, error) {
	if _, err := s.visibleAnswer(ctx, viewerID, answerID); err != nil {
		return nil, err
	}
	comments, err := s.stores.Comments().ListByAnswer(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}
