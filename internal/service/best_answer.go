package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"knowvalue.app/server/common/id"
	"knowvalue.app/server/common/logger"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/store"
)

const bestSelectedMessage = "あなたの回答がBESTに選ばれました！"

type BestAnswerService interface {
	// Select records the best answer, closes the question and notifies the answer author,
	// all in one transaction.
	Select(ctx context.Context, callerID, questionID, answerID int64) error
}

type bestAnswerService struct {
	txRunner TxRunner
}

func NewBestAnswerService(txRunner TxRunner) BestAnswerService {
	return &bestAnswerService{txRunner: txRunner}
}

func (s *bestAnswerService) Select(ctx context.Context, callerID, questionID, answerID int64) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}
	if questionID <= 0 {
		return invalid("questionId", "is required")
	}
	if answerID <= 0 {
		return invalid("answerId", "is required")
	}

	sc := logger.StartSpan(ctx, "best_answer.select")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		UserID:     &callerID,
		QuestionID: &questionID,
		AnswerID:   &answerID,
	})

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		question, err := sp.Questions().GetForUpdate(ctx, questionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return fmt.Errorf("locking question: %w", err)
		}
		if question.OwnerID != callerID {
			return ErrNotQuestionOwner
		}
		if !question.AcceptsBestAnswer() {
			return ErrQuestionClosed
		}

		answer, err := sp.Answers().GetByID(ctx, answerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAnswerNotFound
			}
			return fmt.Errorf("getting answer: %w", err)
		}
		if answer.QuestionID != question.ID {
			return fmt.Errorf("%w: answer does not belong to this question", ErrNotFound)
		}

		set, err := sp.Questions().SetBestAnswer(ctx, question.ID, answer.ID)
		if err != nil {
			return fmt.Errorf("setting best answer: %w", err)
		}
		if !set {
			return ErrQuestionClosed
		}

		link := fmt.Sprintf("/questions/%d", question.ID)
		dedupe := fmt.Sprintf("best:%d", question.ID)
		_, err = createNotification(ctx, sp, &model.Notification{
			ID:          id.New(),
			RecipientID: answer.AuthorID,
			Type:        model.NotificationTypeBestSelected,
			Message:     bestSelectedMessage,
			Link:        &link,
			DedupeKey:   &dedupe,
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrForbidden) && !errors.Is(err, ErrNotFound) {
			sc.RecordError(err)
			slog.ErrorContext(ctx, "failed to select best answer", "error", err)
		}
		return err
	}

	slog.InfoContext(ctx, "best answer selected")
	return nil
}

// createNotification inserts the notification and bumps the recipient's unread counter in the
// caller's transaction. It returns false when the dedupe key was already used.
func createNotification(ctx context.Context, sp StoreProvider, n *model.Notification) (bool, error) {
	created, err := sp.Notifications().Create(ctx, n)
	if err != nil {
		return false, fmt.Errorf("creating notification: %w", err)
	}
	if !created {
		return false, nil
	}
	if err := sp.UnreadCounters().AddNotifications(ctx, n.RecipientID, 1); err != nil {
		return false, fmt.Errorf("incrementing unread notifications: %w", err)
	}
	return true, nil
}
