package repository

import (
	"context"
	"fmt"

	"event-management-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistrationLogRepository appends to the membership history log. Entries
// are written inside the same transaction as the membership change they
// record, so the log never disagrees with committed state.
type RegistrationLogRepository interface {
	Append(ctx context.Context, tx pgx.Tx, entry *model.RegistrationLogEntry) error
	ListByEvent(ctx context.Context, eventID int) ([]*model.RegistrationLogEntry, error)
}

type RegistrationLogRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRegistrationLogRepository(pool *pgxpool.Pool) RegistrationLogRepository {
	return &RegistrationLogRepositoryImpl{
		pool: pool,
	}
}

func (r *RegistrationLogRepositoryImpl) Append(ctx context.Context, tx pgx.Tx, entry *model.RegistrationLogEntry) error {
	sql := `
		INSERT INTO registration_log (event_id, user_id, action, actor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, sql,
		entry.EventID, entry.UserID, entry.Action, entry.ActorID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append registration log: %w", err)
	}

	return nil
}

func (r *RegistrationLogRepositoryImpl) ListByEvent(ctx context.Context, eventID int) ([]*model.RegistrationLogEntry, error) {
	sql := `
		SELECT id, event_id, user_id, action, actor_id, created_at
		FROM registration_log
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, sql, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.RegistrationLogEntry, 0)
	for rows.Next() {
		var entry model.RegistrationLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.EventID,
			&entry.UserID,
			&entry.Action,
			&entry.ActorID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
