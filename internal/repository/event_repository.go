package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, params query.Params, search string) (*query.Result[model.Event], error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
	Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateEventParams) (*model.Event, error)
	IncrementParticipants(ctx context.Context, tx pgx.Tx, id int) error
	DecrementParticipants(ctx context.Context, tx pgx.Tx, id int) error
}

// API-facing sort field -> column. Caller input outside this map falls back
// to the default field.
var eventSortConfig = query.SortConfig{
	Fields: map[string]string{
		"title":             "title",
		"startDate":         "start_date",
		"endDate":           "end_date",
		"participantsCount": "participants_count",
		"createdAt":         "created_at",
	},
	DefaultField: "createdAt",
	DefaultOrder: query.OrderDesc,
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, event_id, title, description, location, capacity,
		participants_count, start_date, end_date, created_by, created_at, updated_at`

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	sql := `
		INSERT INTO events (event_id, title, description, location, capacity,
			start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	err := r.pool.QueryRow(ctx, sql,
		event.EventID, event.Title, event.Description, event.Location,
		event.Capacity, event.StartDate, event.EndDate, event.CreatedBy,
	).Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Capacity,
		&event.ParticipantsCount,
		&event.StartDate,
		&event.EndDate,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, params query.Params, search string) (*query.Result[model.Event], error) {
	res := query.Resource[model.Event]{
		SelectSQL: `SELECT ` + eventColumns + ` FROM events`,
		CountSQL:  `SELECT COUNT(*) FROM events`,
		Sort:      eventSortConfig,
	}

	if search != "" {
		res.Where = "(title ILIKE $1 OR description ILIKE $1)"
		res.Args = []any{"%" + search + "%"}
	}

	return query.Run(ctx, r.pool, res, params)
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	sql := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, sql, id))
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	sql := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, sql, eventID))
}

// FindByIDWithLock reads the event row FOR UPDATE. Every registration
// transaction takes this lock first, so competing capacity checks on the
// same event serialize on the row.
func (r *EventRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	sql := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	return r.scanOne(tx.QueryRow(ctx, sql, id))
}

func (r *EventRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		set("title", *params.Title)
	}
	if params.Description != nil {
		set("description", *params.Description)
	}
	if params.Location != nil {
		set("location", *params.Location)
	}
	if params.Capacity != nil {
		set("capacity", *params.Capacity)
	}
	if params.StartDate != nil {
		set("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		set("end_date", *params.EndDate)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	sql := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING `+eventColumns,
		strings.Join(sets, ", "), argPos)

	return r.scanOne(tx.QueryRow(ctx, sql, args...))
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

func (r *EventRepositoryImpl) IncrementParticipants(ctx context.Context, tx pgx.Tx, id int) error {
	sql := `
		UPDATE events
		SET participants_count = participants_count + 1, updated_at = $1
		WHERE id = $2
	`

	result, err := tx.Exec(ctx, sql, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// DecrementParticipants refuses to drive the counter below zero. Zero rows
// affected while the event exists means the counter disagrees with the
// membership rows.
func (r *EventRepositoryImpl) DecrementParticipants(ctx context.Context, tx pgx.Tx, id int) error {
	sql := `
		UPDATE events
		SET participants_count = participants_count - 1, updated_at = $1
		WHERE id = $2 AND participants_count >= 1
	`

	result, err := tx.Exec(ctx, sql, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCounterOutOfSync
	}

	return nil
}

func (r *EventRepositoryImpl) scanOne(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Capacity,
		&event.ParticipantsCount,
		&event.StartDate,
		&event.EndDate,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}
