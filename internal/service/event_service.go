package service

import (
	"context"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/repository"
	"event-management-api/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventService interface {
	Create(ctx context.Context, req model.CreateEventRequest, createdBy int) (*model.Event, error)
	List(ctx context.Context, params query.Params, search string) (*query.Result[model.Event], error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) error
}

type EventServiceImpl struct {
	pool *pgxpool.Pool
	repo repository.EventRepository
}

func NewEventService(pool *pgxpool.Pool, repo repository.EventRepository) EventService {
	return &EventServiceImpl{pool: pool, repo: repo}
}

func (s *EventServiceImpl) Create(ctx context.Context, req model.CreateEventRequest, createdBy int) (*model.Event, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, apperrors.ErrInvalidInput
	}

	event := &model.Event{
		EventID:     uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Capacity:    req.Capacity,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   createdBy,
	}

	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) List(ctx context.Context, params query.Params, search string) (*query.Result[model.Event], error) {
	return s.repo.List(ctx, params, search)
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

// UpdateByEventID applies a partial update inside a transaction that locks
// the event row, so a capacity change cannot race a registration. Shrinking
// capacity below the current enrollment is rejected rather than silently
// over-subscribing the event.
func (s *EventServiceImpl) UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	current, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	locked, err := s.repo.FindByIDWithLock(ctx, tx, current.ID)
	if err != nil {
		return nil, err
	}

	start := locked.StartDate
	if params.StartDate != nil {
		start = *params.StartDate
	}
	end := locked.EndDate
	if params.EndDate != nil {
		end = *params.EndDate
	}
	if !end.After(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	if params.Capacity != nil {
		if *params.Capacity < 1 {
			return nil, apperrors.ErrInvalidInput
		}
		if *params.Capacity < locked.ParticipantsCount {
			return nil, apperrors.ErrCapacityBelowEnrollment
		}
	}

	updated, err := s.repo.Update(ctx, tx, locked.ID, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *EventServiceImpl) DeleteByEventID(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, event.ID)
}
