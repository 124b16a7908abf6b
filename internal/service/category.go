package service

import (
	"context"
	"fmt"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/store"
)

type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	categoryStore store.CategoryStore
}

func NewCategoryService(categoryStore store.CategoryStore) CategoryService {
	return &categoryService{categoryStore: categoryStore}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}
