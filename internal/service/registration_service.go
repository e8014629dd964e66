package service

import (
	"context"
	"errors"
	"time"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/repository"
	"event-management-api/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistrationService owns the event-membership lifecycle and the capacity
// invariant: the number of membership rows for an event never exceeds its
// capacity, and the event's participants_count always matches the rows.
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID int, notes *string) (*model.Participant, error)
	Withdraw(ctx context.Context, eventID, userID int) (*model.Membership, error)
	AdminRemove(ctx context.Context, eventID, userID, actingAdminID int) (*model.Membership, error)
	ListParticipants(ctx context.Context, eventID int, params query.Params, status *model.MembershipStatus) (*query.Result[model.Participant], error)
}

type RegistrationServiceImpl struct {
	pool           *pgxpool.Pool
	eventRepo      repository.EventRepository
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	logRepo        repository.RegistrationLogRepository
	now            func() time.Time
}

func NewRegistrationService(
	pool *pgxpool.Pool,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	logRepo repository.RegistrationLogRepository,
) *RegistrationServiceImpl {
	return &RegistrationServiceImpl{
		pool:           pool,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		logRepo:        logRepo,
		now:            time.Now,
	}
}

// Register creates a membership for the user after the preconditions pass,
// all inside one transaction. The FOR UPDATE lock on the event row taken by
// the first read serializes concurrent attempts, so two registrations racing
// for the last open slot cannot both observe it as available.
func (s *RegistrationServiceImpl) Register(ctx context.Context, eventID, userID int, notes *string) (*model.Participant, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	event, err := s.eventRepo.FindByIDWithLock(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.Role.Can(model.CapParticipate) {
		return nil, apperrors.ErrAdminCannotRegister
	}

	now := s.now()
	if event.HasEnded(now) {
		return nil, apperrors.ErrEventEnded
	}

	_, err = s.membershipRepo.FindForEvent(ctx, tx, eventID, userID)
	if err == nil {
		return nil, apperrors.ErrAlreadyRegistered
	}
	if !errors.Is(err, apperrors.ErrMembershipNotFound) {
		return nil, err
	}

	if event.IsFull() {
		return nil, apperrors.ErrEventFull
	}

	membership := &model.Membership{
		EventID:          eventID,
		UserID:           userID,
		Status:           model.MembershipStatusRegistered,
		RegistrationDate: now,
		Notes:            notes,
	}

	membership, err = s.membershipRepo.Create(ctx, tx, membership)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.IncrementParticipants(ctx, tx, eventID); err != nil {
		return nil, err
	}

	entry := &model.RegistrationLogEntry{
		EventID: eventID,
		UserID:  userID,
		Action:  model.ActionRegistered,
	}
	if err := s.logRepo.Append(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &model.Participant{
		ID:               membership.ID,
		EventID:          membership.EventID,
		UserID:           membership.UserID,
		UserName:         user.Name,
		UserEmail:        user.Email,
		Status:           membership.Status,
		RegistrationDate: membership.RegistrationDate,
		Notes:            membership.Notes,
	}, nil
}

// Withdraw removes the caller's own membership. The row is hard-deleted;
// the registration log keeps the history.
func (s *RegistrationServiceImpl) Withdraw(ctx context.Context, eventID, userID int) (*model.Membership, error) {
	return s.remove(ctx, eventID, userID, model.ActionWithdrawn, nil)
}

// AdminRemove removes another user's membership on behalf of an
// administrator. Role authorization on the actor is the caller's
// responsibility.
func (s *RegistrationServiceImpl) AdminRemove(ctx context.Context, eventID, userID, actingAdminID int) (*model.Membership, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.remove(ctx, eventID, userID, model.ActionRemoved, &actingAdminID)
}

func (s *RegistrationServiceImpl) remove(ctx context.Context, eventID, userID int, action model.RegistrationAction, actorID *int) (*model.Membership, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the event row so the delete and the counter decrement serialize
	// with concurrent registrations on the same event.
	if _, err := s.eventRepo.FindByIDWithLock(ctx, tx, eventID); err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.FindForEvent(ctx, tx, eventID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.membershipRepo.Delete(ctx, tx, eventID, userID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.DecrementParticipants(ctx, tx, eventID); err != nil {
		return nil, err
	}

	entry := &model.RegistrationLogEntry{
		EventID: eventID,
		UserID:  userID,
		Action:  action,
		ActorID: actorID,
	}
	if err := s.logRepo.Append(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return membership, nil
}

func (s *RegistrationServiceImpl) ListParticipants(ctx context.Context, eventID int, params query.Params, status *model.MembershipStatus) (*query.Result[model.Participant], error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	return s.membershipRepo.ListByEvent(ctx, params, eventID, status)
}
