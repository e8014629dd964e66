package service

import (
	"context"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/repository"
)

type UserService interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context, params query.Params, role *model.Role) (*query.Result[model.User], error)
}

type UserServiceImpl struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &UserServiceImpl{repo: repo}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) List(ctx context.Context, params query.Params, role *model.Role) (*query.Result[model.User], error) {
	return s.repo.List(ctx, params, role)
}
