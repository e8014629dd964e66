package repository

import (
	"context"
	"errors"
	"fmt"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipRepository interface {
	ListByEvent(ctx context.Context, params query.Params, eventID int, status *model.MembershipStatus) (*query.Result[model.Participant], error)
	CountByEvent(ctx context.Context, eventID int) (int, error)

	// Transaction methods
	FindForEvent(ctx context.Context, tx pgx.Tx, eventID, userID int) (*model.Membership, error)
	Create(ctx context.Context, tx pgx.Tx, m *model.Membership) (*model.Membership, error)
	Delete(ctx context.Context, tx pgx.Tx, eventID, userID int) error
}

var participantSortConfig = query.SortConfig{
	Fields: map[string]string{
		"registrationDate": "m.registration_date",
		"status":           "m.status",
		"userName":         "u.name",
	},
	DefaultField: "registrationDate",
	DefaultOrder: query.OrderDesc,
}

type MembershipRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &MembershipRepositoryImpl{
		pool: pool,
	}
}

func (r *MembershipRepositoryImpl) ListByEvent(ctx context.Context, params query.Params, eventID int, status *model.MembershipStatus) (*query.Result[model.Participant], error) {
	res := query.Resource[model.Participant]{
		SelectSQL: `
			SELECT m.id, m.event_id, m.user_id, u.name AS user_name,
			       u.email AS user_email, m.status, m.registration_date, m.notes
			FROM memberships m
			JOIN users u ON u.id = m.user_id`,
		CountSQL: `
			SELECT COUNT(*)
			FROM memberships m
			JOIN users u ON u.id = m.user_id`,
		Where: "m.event_id = $1",
		Args:  []any{eventID},
		Sort:  participantSortConfig,
	}

	if status != nil {
		res.Where += " AND m.status = $2"
		res.Args = append(res.Args, *status)
	}

	return query.Run(ctx, r.pool, res, params)
}

func (r *MembershipRepositoryImpl) CountByEvent(ctx context.Context, eventID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM memberships WHERE event_id = $1`, eventID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *MembershipRepositoryImpl) FindForEvent(ctx context.Context, tx pgx.Tx, eventID, userID int) (*model.Membership, error) {
	sql := `
		SELECT id, event_id, user_id, status, registration_date, notes
		FROM memberships
		WHERE event_id = $1 AND user_id = $2
	`

	var m model.Membership
	err := tx.QueryRow(ctx, sql, eventID, userID).Scan(
		&m.ID,
		&m.EventID,
		&m.UserID,
		&m.Status,
		&m.RegistrationDate,
		&m.Notes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, err
	}

	return &m, nil
}

// Create relies on the unique index on (user_id, event_id) as the last line
// of defense against duplicate registrations; a unique violation maps to
// the same conflict error the precondition check produces.
func (r *MembershipRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, m *model.Membership) (*model.Membership, error) {
	sql := `
		INSERT INTO memberships (event_id, user_id, status, registration_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, user_id, status, registration_date, notes
	`

	err := tx.QueryRow(ctx, sql,
		m.EventID, m.UserID, m.Status, m.RegistrationDate, m.Notes,
	).Scan(
		&m.ID,
		&m.EventID,
		&m.UserID,
		&m.Status,
		&m.RegistrationDate,
		&m.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return m, nil
}

func (r *MembershipRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, eventID, userID int) error {
	result, err := tx.Exec(ctx,
		`DELETE FROM memberships WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMembershipNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
