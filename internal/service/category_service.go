package service

import (
	"context"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	List(ctx context.Context, params query.Params) (*query.Result[model.Category], error)
	GetByID(ctx context.Context, id int) (*model.Category, error)
	Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error)
	Delete(ctx context.Context, id int) error
}

type CategoryServiceImpl struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &CategoryServiceImpl{repo: repo}
}

func (s *CategoryServiceImpl) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	return s.repo.Create(ctx, category)
}

func (s *CategoryServiceImpl) List(ctx context.Context, params query.Params) (*query.Result[model.Category], error) {
	return s.repo.List(ctx, params)
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id int) (*model.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
