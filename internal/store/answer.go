package store

import (
	"context"
	"fmt"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type answerStore struct {
	queries *sqlc.Queries
}

func newAnswerStore(queries *sqlc.Queries) AnswerStore {
	return &answerStore{queries: queries}
}

func (s *answerStore) Create(ctx context.Context, a *model.Answer) error {
	row, err := s.queries.CreateAnswer(ctx, sqlc.CreateAnswerParams{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AuthorID:   a.AuthorID,
		Pitch:      a.Pitch,
		Content:    a.Content,
	})
	if err != nil {
		return err
	}
	*a = *toAnswerModel(row)
	return nil
}

func (s *answerStore) GetByID(ctx context.Context, id int64) (*model.Answer, error) {
	row, err := s.queries.GetAnswer(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toAnswerModel(row), nil
}

// ListDetailsByQuestion returns answers in creation order with their negotiation, like count and images.
func (s *answerStore) ListDetailsByQuestion(ctx context.Context, questionID int64) ([]model.AnswerDetail, error) {
	rows, err := s.queries.ListAnswerDetailsByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("listing answers: %w", err)
	}
	images, err := s.queries.ListAnswerImagesByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("listing answer images: %w", err)
	}

	byAnswer := make(map[int64][]model.AnswerImage, len(rows))
	for _, img := range images {
		byAnswer[img.AnswerID] = append(byAnswer[img.AnswerID], toAnswerImageModel(img))
	}

	result := make([]model.AnswerDetail, len(rows))
	for i, row := range rows {
		d := model.AnswerDetail{
			Answer: model.Answer{
				ID:         row.ID,
				QuestionID: row.QuestionID,
				AuthorID:   row.AuthorID,
				Pitch:      row.Pitch,
				Content:    row.Content,
				CreatedAt:  row.CreatedAt.Time,
			},
			AuthorName: row.AuthorName,
			LikeCount:  row.LikeCount,
			Images:     byAnswer[row.ID],
		}
		if row.NegotiationID != nil && row.ProposedAmount != nil && row.Status != nil {
			d.Negotiation = &model.Negotiation{
				ID:             *row.NegotiationID,
				AnswerID:       row.ID,
				ProposedAmount: *row.ProposedAmount,
				Status:         model.NegotiationStatus(*row.Status),
			}
		}
		result[i] = d
	}
	return result, nil
}

func (s *answerStore) ListSummariesByAuthor(ctx context.Context, authorID int64, limit, offset int32) ([]model.AnswerSummary, error) {
	rows, err := s.queries.ListAnswerSummariesByAuthor(ctx, sqlc.ListAnswerSummariesByAuthorParams{
		AuthorID: authorID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.AnswerSummary, len(rows))
	for i, row := range rows {
		sum := model.AnswerSummary{
			ID:             row.ID,
			QuestionID:     row.QuestionID,
			QuestionTitle:  row.QuestionTitle,
			Pitch:          row.Pitch,
			ProposedAmount: row.ProposedAmount,
			CreatedAt:      row.CreatedAt.Time,
		}
		if row.Status != nil {
			status := model.NegotiationStatus(*row.Status)
			sum.Status = &status
		}
		result[i] = sum
	}
	return result, nil
}

func (s *answerStore) AddImage(ctx context.Context, img *model.AnswerImage) error {
	row, err := s.queries.CreateAnswerImage(ctx, sqlc.CreateAnswerImageParams{
		ID:        img.ID,
		AnswerID:  img.AnswerID,
		ObjectKey: img.ObjectKey,
		Url:       img.URL,
		SortOrder: img.SortOrder,
	})
	if err != nil {
		return err
	}
	*img = toAnswerImageModel(row)
	return nil
}

func toAnswerModel(row sqlc.Answer) *model.Answer {
	return &model.Answer{
		ID:         row.ID,
		QuestionID: row.QuestionID,
		AuthorID:   row.AuthorID,
		Pitch:      row.Pitch,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt.Time,
	}
}

func toAnswerImageModel(row sqlc.AnswerImage) model.AnswerImage {
	return model.AnswerImage{
		ID:        row.ID,
		AnswerID:  row.AnswerID,
		ObjectKey: row.ObjectKey,
		URL:       row.Url,
		SortOrder: row.SortOrder,
	}
}
