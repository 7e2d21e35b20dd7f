package service

import (
	"context"

	"github.com/erp-suite/backend/internal/db"
	"github.com/erp-suite/backend/internal/model"
)

type categoryRepo interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, name, description string) (int64, error)
	UpdateCategory(ctx context.Context, id int64, name, description string) error
	DeleteCategory(ctx context.Context, id int64) error
}

type CategoryService struct {
	repo categoryRepo
}

func NewCategoryService(repo categoryRepo) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	id, err := s.repo.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return &model.Category{ID: id, Name: req.Name, Description: req.Description}, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req model.CategoryRequest) error {
	if err := s.repo.UpdateCategory(ctx, id, req.Name, req.Description); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
