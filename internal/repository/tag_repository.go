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

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) (*model.Tag, error)
	List(ctx context.Context, params query.Params) (*query.Result[model.Tag], error)
	FindByID(ctx context.Context, id int) (*model.Tag, error)
	Update(ctx context.Context, id int, params model.UpdateTagParams) (*model.Tag, error)
	Delete(ctx context.Context, id int) error
}

var tagSortConfig = query.SortConfig{
	Fields: map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	},
	DefaultField: "createdAt",
	DefaultOrder: query.OrderDesc,
}

type TagRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) TagRepository {
	return &TagRepositoryImpl{
		pool: pool,
	}
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *model.Tag) (*model.Tag, error) {
	sql := `
		INSERT INTO tags (name, color)
		VALUES ($1, $2)
		RETURNING id, name, color, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, sql, tag.Name, tag.Color).Scan(
		&tag.ID,
		&tag.Name,
		&tag.Color,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

func (r *TagRepositoryImpl) List(ctx context.Context, params query.Params) (*query.Result[model.Tag], error) {
	res := query.Resource[model.Tag]{
		SelectSQL: `SELECT id, name, color, created_at, updated_at FROM tags`,
		CountSQL:  `SELECT COUNT(*) FROM tags`,
		Sort:      tagSortConfig,
	}

	return query.Run(ctx, r.pool, res, params)
}

func (r *TagRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Tag, error) {
	sql := `
		SELECT id, name, color, created_at, updated_at
		FROM tags
		WHERE id = $1
	`

	var tag model.Tag
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&tag.ID,
		&tag.Name,
		&tag.Color,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}

	return &tag, nil
}

func (r *TagRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateTagParams) (*model.Tag, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}
	if params.Color != nil {
		sets = append(sets, fmt.Sprintf("color = $%d", argPos))
		args = append(args, *params.Color)
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
		UPDATE tags
		SET %s
		WHERE id = $%d
		RETURNING id, name, color, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)

	var tag model.Tag
	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&tag.ID,
		&tag.Name,
		&tag.Color,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTagNotFound
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, err
	}

	return &tag, nil
}

func (r *TagRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTagNotFound
	}

	return nil
}
