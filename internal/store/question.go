package store

import (
	"context"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type questionStore struct {
	queries *sqlc.Queries
}

func newQuestionStore(queries *sqlc.Queries) QuestionStore {
	return &questionStore{queries: queries}
}

func (s *questionStore) Create(ctx context.Context, q *model.Question) error {
	row, err := s.queries.CreateQuestion(ctx, sqlc.CreateQuestionParams{
		ID:           q.ID,
		OwnerID:      q.OwnerID,
		CategoryID:   q.CategoryID,
		Title:        q.Title,
		Content:      q.Content,
		RewardAmount: q.RewardAmount,
	})
	if err != nil {
		return err
	}
	*q = *toQuestionModel(row)
	return nil
}

func (s *questionStore) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	row, err := s.queries.GetQuestion(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toQuestionModel(row), nil
}

func (s *questionStore) GetForUpdate(ctx context.Context, id int64) (*model.Question, error) {
	row, err := s.queries.GetQuestionForUpdate(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toQuestionModel(row), nil
}

func (s *questionStore) ListPaid(ctx context.Context, categoryID *int64, limit, offset int32) ([]model.Question, error) {
	rows, err := s.queries.ListPaidQuestions(ctx, sqlc.ListPaidQuestionsParams{
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return toQuestionModels(rows), nil
}

func (s *questionStore) ListByOwner(ctx context.Context, ownerID int64, limit, offset int32) ([]model.Question, error) {
	rows, err := s.queries.ListQuestionsByOwner(ctx, sqlc.ListQuestionsByOwnerParams{
		OwnerID: ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	return toQuestionModels(rows), nil
}

func (s *questionStore) MarkPaid(ctx context.Context, id int64) (bool, error) {
	n, err := s.queries.MarkQuestionPaid(ctx, id)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *questionStore) SetBestAnswer(ctx context.Context, questionID, answerID int64) (bool, error) {
	n, err := s.queries.SetBestAnswer(ctx, sqlc.SetBestAnswerParams{
		ID:           questionID,
		BestAnswerID: &answerID,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *questionStore) AddImage(ctx context.Context, img *model.QuestionImage) error {
	row, err := s.queries.CreateQuestionImage(ctx, sqlc.CreateQuestionImageParams{
		ID:         img.ID,
		QuestionID: img.QuestionID,
		ObjectKey:  img.ObjectKey,
		Url:        img.URL,
		SortOrder:  img.SortOrder,
	})
	if err != nil {
		return err
	}
	*img = toQuestionImageModel(row)
	return nil
}

func (s *questionStore) ListImages(ctx context.Context, questionID int64) ([]model.QuestionImage, error) {
	rows, err := s.queries.ListQuestionImages(ctx, questionID)
	if err != nil {
		return nil, err
	}
	result := make([]model.QuestionImage, len(rows))
	for i, row := range rows {
		result[i] = toQuestionImageModel(row)
	}
	return result, nil
}

func toQuestionModel(row sqlc.Question) *model.Question {
	return &model.Question{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		CategoryID:   row.CategoryID,
		Title:        row.Title,
		Content:      row.Content,
		RewardAmount: row.RewardAmount,
		IsPaid:       row.IsPaid,
		IsClosed:     row.IsClosed,
		BestAnswerID: row.BestAnswerID,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func toQuestionModels(rows []sqlc.Question) []model.Question {
	result := make([]model.Question, len(rows))
	for i, row := range rows {
		result[i] = *toQuestionModel(row)
	}
	return result
}

func toQuestionImageModel(row sqlc.QuestionImage) model.QuestionImage {
	return model.QuestionImage{
		ID:         row.ID,
		QuestionID: row.QuestionID,
		ObjectKey:  row.ObjectKey,
		URL:        row.Url,
		SortOrder:  row.SortOrder,
	}
}
