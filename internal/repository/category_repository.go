package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	List(ctx context.Context, params query.Params) (*query.Result[model.Category], error)
	FindByID(ctx context.Context, id int) (*model.Category, error)
	Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error)
	Delete(ctx context.Context, id int) error
}

var categorySortConfig = query.SortConfig{
	Fields: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	},
	DefaultField: "createdAt",
	DefaultOrder: query.OrderDesc,
}

type CategoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &CategoryRepositoryImpl{
		pool: pool,
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	sql := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, sql, category.Name, category.Description).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context, params query.Params) (*query.Result[model.Category], error) {
	res := query.Resource[model.Category]{
		SelectSQL: `SELECT id, name, description, created_at, updated_at FROM categories`,
		CountSQL:  `SELECT COUNT(*) FROM categories`,
		Sort:      categorySortConfig,
	}

	return query.Run(ctx, r.pool, res, params)
}

func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Category, error) {
	sql := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var category model.Category
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateCategoryParams) (*model.Category, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}
	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	args = append(args, id)

	sql := fmt.Sprintf(`
		UPDATE categories
		SET %s
		WHERE id = $%d
		RETURNING id, name, description, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)

	var category model.Category
	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}
