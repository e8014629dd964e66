package query

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool the engine needs. Both a pool and
// an open transaction satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Resource configures the engine for one entity type. SelectSQL and
// CountSQL are trusted, repository-owned query heads; Where is an optional
// predicate fragment with $1..$n placeholders matching Args. The same
// predicate drives both the count and the page query so the reported total
// stays consistent with the returned rows.
type Resource[T any] struct {
	SelectSQL string
	CountSQL  string
	Where     string
	Args      []any
	Sort      SortConfig

	// Transform optionally maps each item before it is returned, e.g. to
	// strip internal fields. It must not reorder or drop items.
	Transform func(T) T
}

type Sort struct {
	SortBy    string `json:"sortBy"`
	SortOrder Order  `json:"sortOrder"`
}

type Pagination struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Size        int   `json:"size"`
	TotalPages  int64 `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type Result[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
	Sort       Sort       `json:"sort"`
}

// Run normalizes the raw parameters, issues the count query and the
// bounded, ordered page query, and assembles the result envelope.
// Malformed pagination input never errors; persistence errors propagate
// unmodified.
func Run[T any](ctx context.Context, q Querier, res Resource[T], params Params) (*Result[T], error) {
	page := params.Normalize(res.Sort)

	where := ""
	if res.Where != "" {
		where = " WHERE " + res.Where
	}

	var total int64
	err := q.QueryRow(ctx, res.CountSQL+where, res.Args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	// Sort column and order both come from validated config, never from
	// raw caller input.
	sql := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		res.SelectSQL, where, page.SortColumn, page.SortOrder,
		len(res.Args)+1, len(res.Args)+2)
	args := append(append([]any{}, res.Args...), page.Size, page.Offset)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, err
	}

	if res.Transform != nil {
		for i := range items {
			items[i] = res.Transform(items[i])
		}
	}

	return &Result[T]{
		Items:      items,
		Pagination: NewPagination(total, page.Page, page.Size),
		Sort:       Sort{SortBy: page.SortBy, SortOrder: page.SortOrder},
	}, nil
}

// NewPagination computes the metadata block for one page of a total.
func NewPagination(total int64, page, size int) Pagination {
	totalPages := (total + int64(size) - 1) / int64(size)
	return Pagination{
		Total:       total,
		Page:        page,
		Size:        size,
		TotalPages:  totalPages,
		HasNext:     int64(page)*int64(size) < total,
		HasPrevious: page > 1,
	}
}
