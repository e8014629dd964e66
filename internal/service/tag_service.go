package service

import (
	"context"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/repository"
)

type TagService interface {
	Create(ctx context.Context, req model.CreateTagRequest) (*model.Tag, error)
	List(ctx context.Context, params query.Params) (*query.Result[model.Tag], error)
	GetByID(ctx context.Context, id int) (*model.Tag, error)
	Update(ctx context.Context, id int, params model.UpdateTagParams) (*model.Tag, error)
	Delete(ctx context.Context, id int) error
}

type TagServiceImpl struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &TagServiceImpl{repo: repo}
}

func (s *TagServiceImpl) Create(ctx context.Context, req model.CreateTagRequest) (*model.Tag, error) {
	tag := &model.Tag{
		Name:  req.Name,
		Color: req.Color,
	}
	return s.repo.Create(ctx, tag)
}

func (s *TagServiceImpl) List(ctx context.Context, params query.Params) (*query.Result[model.Tag], error) {
	return s.repo.List(ctx, params)
}

func (s *TagServiceImpl) GetByID(ctx context.Context, id int) (*model.Tag, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TagServiceImpl) Update(ctx context.Context, id int, params model.UpdateTagParams) (*model.Tag, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *TagServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
