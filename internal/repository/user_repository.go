package repository

import (
	"context"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context, params query.Params, role *model.Role) (*query.Result[model.User], error)
}

var userSortConfig = query.SortConfig{
	Fields: map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
	},
	DefaultField: "createdAt",
	DefaultOrder: query.OrderDesc,
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	sql := `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, params query.Params, role *model.Role) (*query.Result[model.User], error) {
	res := query.Resource[model.User]{
		SelectSQL: `SELECT id, name, email, role, created_at, updated_at FROM users`,
		CountSQL:  `SELECT COUNT(*) FROM users`,
		Sort:      userSortConfig,
	}

	if role != nil {
		res.Where = "role = $1"
		res.Args = []any{*role}
	}

	return query.Run(ctx, r.pool, res, params)
}
