package store

import (
	"context"

	"knowvalue.app/server/core/db/sqlc"
	"knowvalue.app/server/internal/model"
)

type categoryStore struct {
	queries *sqlc.Queries
}

func newCategoryStore(queries *sqlc.Queries) CategoryStore {
	return &categoryStore{queries: queries}
}

func (s *categoryStore) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Category, len(rows))
	for i, row := range rows {
		result[i] = toCategoryModel(row)
	}
	return result, nil
}

func (s *categoryStore) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	row, err := s.queries.GetCategory(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	c := toCategoryModel(row)
	return &c, nil
}

func toCategoryModel(row sqlc.Category) model.Category {
	return model.Category{
		ID:        row.ID,
		Slug:      row.Slug,
		Name:      row.Name,
		SortOrder: row.SortOrder,
	}
}
