package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/repository"
	"event-management-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()

	eventID := createUpcomingEvent(t, "Launch Party", intPtr(50))
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)

	notes := "vegetarian"
	participant, err := svc.Register(ctx, eventID, userID, &notes)
	require.NoError(t, err)

	assert.Equal(t, eventID, participant.EventID)
	assert.Equal(t, userID, participant.UserID)
	assert.Equal(t, "Alice", participant.UserName)
	assert.Equal(t, "alice@test.com", participant.UserEmail)
	assert.Equal(t, model.MembershipStatusRegistered, participant.Status)
	require.NotNil(t, participant.Notes)
	assert.Equal(t, "vegetarian", *participant.Notes)

	assertCounterMatchesRows(t, eventID, 1)

	entries, err := repository.NewRegistrationLogRepository(getTestDB()).ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionRegistered, entries[0].Action)
	assert.Nil(t, entries[0].ActorID)
}

func TestRegister_EventNotFound(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newTestRegistrationService()
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)

	_, err := svc.Register(context.Background(), 9999, userID, nil)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestRegister_UserNotFound(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", nil)

	_, err := svc.Register(context.Background(), eventID, 9999, nil)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	assertCounterMatchesRows(t, eventID, 0)
}

func TestRegister_AdminForbidden(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", intPtr(10))
	adminID := createTestUser(t, "Root", "root@test.com", model.RoleAdmin)

	_, err := svc.Register(context.Background(), eventID, adminID, nil)
	assert.ErrorIs(t, err, apperrors.ErrAdminCannotRegister)

	// Failed precondition leaves no membership row and an unchanged counter.
	assertCounterMatchesRows(t, eventID, 0)
}

func TestRegister_EventEnded(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newTestRegistrationService()
	adminID := createTestUser(t, "Creator", "creator@test.com", model.RoleAdmin)
	start := time.Now().Add(-48 * time.Hour)
	eventID := createTestEvent(t, "Past Event", nil, start, start.Add(2*time.Hour), adminID)
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)

	_, err := svc.Register(context.Background(), eventID, userID, nil)
	assert.ErrorIs(t, err, apperrors.ErrEventEnded)

	assertCounterMatchesRows(t, eventID, 0)
}

// Register, then Register again for the same pair: the second attempt fails
// without touching the counter.
func TestRegister_Duplicate(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", intPtr(10))
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)

	_, err := svc.Register(ctx, eventID, userID, nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, eventID, userID, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)

	assertCounterMatchesRows(t, eventID, 1)
}

func TestRegister_CapacityExceeded(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Tiny Event", intPtr(1))

	firstID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)
	secondID := createTestUser(t, "Bob", "bob@test.com", model.RoleUser)

	_, err := svc.Register(ctx, eventID, firstID, nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, eventID, secondID, nil)
	assert.ErrorIs(t, err, apperrors.ErrEventFull)

	assertCounterMatchesRows(t, eventID, 1)
}

func TestRegister_UnlimitedCapacity(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Open Event", nil)

	for i := 0; i < 5; i++ {
		userID := createTestUser(t, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@test.com", i), model.RoleUser)
		_, err := svc.Register(ctx, eventID, userID, nil)
		require.NoError(t, err)
	}

	assertCounterMatchesRows(t, eventID, 5)
}

// Register then withdraw: the row disappears, the counter returns to zero
// and the same pair can register again.
func TestWithdraw_ThenReRegister(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", intPtr(10))
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)

	_, err := svc.Register(ctx, eventID, userID, nil)
	require.NoError(t, err)

	prior, err := svc.Withdraw(ctx, eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipStatusRegistered, prior.Status)
	assert.Equal(t, userID, prior.UserID)

	assertCounterMatchesRows(t, eventID, 0)

	_, err = svc.Register(ctx, eventID, userID, nil)
	require.NoError(t, err)
	assertCounterMatchesRows(t, eventID, 1)

	entries, err := repository.NewRegistrationLogRepository(getTestDB()).ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, model.ActionRegistered, entries[0].Action)
	assert.Equal(t, model.ActionWithdrawn, entries[1].Action)
	assert.Equal(t, model.ActionRegistered, entries[2].Action)
}

func TestWithdraw_NotRegistered(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", nil)
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)

	_, err := svc.Withdraw(context.Background(), eventID, userID)
	assert.ErrorIs(t, err, apperrors.ErrMembershipNotFound)
}

func TestAdminRemove(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", intPtr(10))
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)
	adminID := createTestUser(t, "Root", "root@test.com", model.RoleAdmin)

	_, err := svc.Register(ctx, eventID, userID, nil)
	require.NoError(t, err)

	prior, err := svc.AdminRemove(ctx, eventID, userID, adminID)
	require.NoError(t, err)
	assert.Equal(t, userID, prior.UserID)

	assertCounterMatchesRows(t, eventID, 0)

	entries, err := repository.NewRegistrationLogRepository(getTestDB()).ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.ActionRemoved, entries[1].Action)
	require.NotNil(t, entries[1].ActorID)
	assert.Equal(t, adminID, *entries[1].ActorID)
}

func TestAdminRemove_UserNotFound(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", nil)
	adminID := createTestUser(t, "Root", "root@test.com", model.RoleAdmin)

	_, err := svc.AdminRemove(context.Background(), eventID, 9999, adminID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

// 100 users racing for 10 slots: exactly 10 registrations succeed, the rest
// fail with the capacity error, and the counter matches the rows.
func TestConcurrentRegister_CapacityNeverExceeded(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()

	concurrentUsers := 100
	capacity := 10
	eventID := createUpcomingEvent(t, "Popular Event", intPtr(capacity))

	userIDs := make([]int, concurrentUsers)
	for i := 0; i < concurrentUsers; i++ {
		userIDs[i] = createTestUser(t, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@test.com", i), model.RoleUser)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	capacityFailures := 0
	otherFailures := 0

	for i := 0; i < concurrentUsers; i++ {
		wg.Add(1)
		go func(userIndex int) {
			defer wg.Done()

			_, err := svc.Register(ctx, eventID, userIDs[userIndex], nil)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successCount++
			case err == apperrors.ErrEventFull:
				capacityFailures++
			default:
				otherFailures++
			}
		}(i)
	}

	wg.Wait()

	t.Logf("%d users competing for %d slots - success: %d, capacity failures: %d",
		concurrentUsers, capacity, successCount, capacityFailures)

	assert.Equal(t, capacity, successCount, "successes should equal capacity")
	assert.Equal(t, concurrentUsers-capacity, capacityFailures)
	assert.Equal(t, 0, otherFailures)
	assertCounterMatchesRows(t, eventID, capacity)
}

// The same user racing against themselves must end up with exactly one
// membership.
func TestConcurrentRegister_SameUserOnce(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", intPtr(50))
	userID := createTestUser(t, "Alice", "alice@test.com", model.RoleUser)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.Register(ctx, eventID, userID, nil)

			mu.Lock()
			if err == nil {
				successCount++
			}
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, successCount)
	assertCounterMatchesRows(t, eventID, 1)
}

// Mixed registers and withdrawals, concurrent, always leave the counter
// equal to the membership rows.
func TestConcurrentRegisterWithdraw_CounterConsistent(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Busy Event", nil)

	users := 20
	userIDs := make([]int, users)
	for i := 0; i < users; i++ {
		userIDs[i] = createTestUser(t, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@test.com", i), model.RoleUser)
	}

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(userIndex int) {
			defer wg.Done()

			if _, err := svc.Register(ctx, eventID, userIDs[userIndex], nil); err != nil {
				return
			}
			// Half the users leave again.
			if userIndex%2 == 0 {
				svc.Withdraw(ctx, eventID, userIDs[userIndex])
			}
		}(i)
	}

	wg.Wait()

	count, err := repository.NewMembershipRepository(getTestDB()).CountByEvent(ctx, eventID)
	require.NoError(t, err)
	assertCounterMatchesRows(t, eventID, count)
}

func TestListParticipants(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestRegistrationService()
	eventID := createUpcomingEvent(t, "Launch Party", nil)

	for i := 0; i < 12; i++ {
		userID := createTestUser(t, fmt.Sprintf("User%02d", i), fmt.Sprintf("user%d@test.com", i), model.RoleUser)
		_, err := svc.Register(ctx, eventID, userID, nil)
		require.NoError(t, err)
	}

	t.Run("unknown sort field and oversized page", func(t *testing.T) {
		params := query.Params{SortBy: "unknownField", Size: "500"}
		result, err := svc.ListParticipants(ctx, eventID, params, nil)
		require.NoError(t, err)

		assert.Len(t, result.Items, 12)
		assert.Equal(t, int64(12), result.Pagination.Total)
		assert.Equal(t, 100, result.Pagination.Size)
		assert.Equal(t, int64(1), result.Pagination.TotalPages)
		assert.False(t, result.Pagination.HasNext)
		assert.Equal(t, "registrationDate", result.Sort.SortBy)
		assert.Equal(t, query.OrderDesc, result.Sort.SortOrder)
	})

	t.Run("repeated identical queries return identical pages", func(t *testing.T) {
		params := query.Params{Page: "2", Size: "5", SortBy: "userName", SortOrder: "asc"}

		first, err := svc.ListParticipants(ctx, eventID, params, nil)
		require.NoError(t, err)
		second, err := svc.ListParticipants(ctx, eventID, params, nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first.Items, 5)
		assert.Equal(t, int64(3), first.Pagination.TotalPages)
		assert.True(t, first.Pagination.HasNext)
		assert.True(t, first.Pagination.HasPrevious)
		assert.Equal(t, "User05", first.Items[0].UserName)
	})

	t.Run("status filter", func(t *testing.T) {
		status := model.MembershipStatusRegistered
		result, err := svc.ListParticipants(ctx, eventID, query.Params{}, &status)
		require.NoError(t, err)
		assert.Equal(t, int64(12), result.Pagination.Total)

		status = model.MembershipStatusAttended
		result, err = svc.ListParticipants(ctx, eventID, query.Params{}, &status)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Pagination.Total)
	})

	t.Run("event not found", func(t *testing.T) {
		_, err := svc.ListParticipants(ctx, 9999, query.Params{}, nil)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

// assertCounterMatchesRows checks the denormalized counter against both the
// expected value and the actual membership rows.
func assertCounterMatchesRows(t *testing.T, eventID int, want int) {
	t.Helper()
	ctx := context.Background()

	event, err := repository.NewEventRepository(getTestDB()).FindByID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, want, event.ParticipantsCount, "participants_count")

	count, err := repository.NewMembershipRepository(getTestDB()).CountByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, want, count, "membership rows")
}
