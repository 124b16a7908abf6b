package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type answerReadStore struct {
	queries *sqlc.Queries
}

func newAnswerReadStore(queries *sqlc.Queries) AnswerReadStore {
	return &answerReadStore{queries: queries}
}

func (s *answerReadStore) MarkRead(ctx context.Context, userID, answerID int64) (bool, error) {
	n, err := s.queries.InsertAnswerRead(ctx, sqlc.InsertAnswerReadParams{
		UserID:   userID,
		AnswerID: answerID,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *answerReadStore) MarkQuestionRead(ctx context.Context, userID, questionID int64) (int64, error) {
	return s.queries.InsertAnswerReadsForQuestion(ctx, sqlc.InsertAnswerReadsForQuestionParams{
		UserID:     userID,
		QuestionID: questionID,
	})
}

func (s *answerReadStore) ListReadAnswerIDs(ctx context.Context, userID, questionID int64) ([]int64, error) {
	return s.queries.ListReadAnswerIDsForQuestion(ctx, sqlc.ListReadAnswerIDsForQuestionParams{
		UserID:     userID,
		QuestionID: questionID,
	})
}

type commentStore struct {
	queries *sqlc.Queries
}

func newCommentStore(queries *sqlc.Queries) CommentStore {
	return &commentStore{queries: queries}
}

func (s *commentStore) Create(ctx context.Context, c *model.Comment) error {
	row, err := s.queries.CreateComment(ctx, sqlc.CreateCommentParams{
		ID:       c.ID,
		AnswerID: c.AnswerID,
		AuthorID: c.AuthorID,
		Content:  c.Content,
	})
	if err != nil {
		return err
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt.Time
	return nil
}

func (s *commentStore) ListByAnswer(ctx context.Context, answerID int64) ([]model.Comment, error) {
	rows, err := s.queries.ListCommentsByAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Comment, len(rows))
	for i, row := range rows {
		result[i] = model.Comment{
			ID:         row.ID,
			AnswerID:   row.AnswerID,
			AuthorID:   row.AuthorID,
			AuthorName: row.AuthorName,
			Content:    row.Content,
			CreatedAt:  row.CreatedAt.Time,
		}
	}
	return result, nil
}

type likeStore struct {
	queries *sqlc.Queries
}

func newLikeStore(queries *sqlc.Queries) LikeStore {
	return &likeStore{queries: queries}
}

func (s *likeStore) Like(ctx context.Context, userID, answerID int64) (bool, error) {
	n, err := s.queries.InsertAnswerLike(ctx, sqlc.InsertAnswerLikeParams{UserID: userID, AnswerID: answerID})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *likeStore) Unlike(ctx context.Context, userID, answerID int64) (bool, error) {
	n, err := s.queries.DeleteAnswerLike(ctx, sqlc.DeleteAnswerLikeParams{UserID: userID, AnswerID: answerID})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *likeStore) Count(ctx context.Context, answerID int64) (int32, error) {
	return s.queries.CountAnswerLikes(ctx, answerID)
}

func (s *likeStore) ListLikedAnswerIDs(ctx context.Context, userID, questionID int64) ([]int64, error) {
	return s.queries.ListLikedAnswerIDsForQuestion(ctx, sqlc.ListLikedAnswerIDsForQuestionParams{
		UserID:     userID,
		QuestionID: questionID,
	})
}

type unreadCounterStore struct {
	queries *sqlc.Queries
}

func newUnreadCounterStore(queries *sqlc.Queries) UnreadCounterStore {
	return &unreadCounterStore{queries: queries}
}

// Get reports zero counts for users without a counter row.
func (s *unreadCounterStore) Get(ctx context.Context, userID int64) (model.UnreadCounts, error) {
	row, err := s.queries.GetUnreadCounter(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UnreadCounts{}, nil
		}
		return model.UnreadCounts{}, err
	}
	return model.UnreadCounts{
		UnreadAnswers:       row.UnreadAnswers,
		UnreadNotifications: row.UnreadNotifications,
	}, nil
}

func (s *unreadCounterStore) AddAnswers(ctx context.Context, userID int64, delta int32) error {
	if delta == 0 {
		return nil
	}
	return s.queries.AddUnreadAnswers(ctx, sqlc.AddUnreadAnswersParams{UserID: userID, Delta: delta})
}

func (s *unreadCounterStore) AddNotifications(ctx context.Context, userID int64, delta int32) error {
	if delta == 0 {
		return nil
	}
	return s.queries.AddUnreadNotifications(ctx, sqlc.AddUnreadNotificationsParams{UserID: userID, Delta: delta})
}
