package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/repository"
	"event-management-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreate(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestEventService()
	adminID := createTestUser(t, "Root", "root@test.com", model.RoleAdmin)

	start := time.Now().Add(24 * time.Hour)

	t.Run("success", func(t *testing.T) {
		event, err := svc.Create(ctx, model.CreateEventRequest{
			Title:     "Launch Party",
			Capacity:  intPtr(100),
			StartDate: start,
			EndDate:   start.Add(2 * time.Hour),
		}, adminID)
		require.NoError(t, err)

		assert.NotZero(t, event.ID)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", event.EventID.String())
		assert.Equal(t, 0, event.ParticipantsCount)
		assert.Equal(t, adminID, event.CreatedBy)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.Create(ctx, model.CreateEventRequest{
			Title:     "Backwards Event",
			StartDate: start,
			EndDate:   start.Add(-time.Hour),
		}, adminID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
	})
}

func TestEventUpdate_CapacityShrink(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	eventSvc := newTestEventService()
	regSvc := newTestRegistrationService()

	eventID := createUpcomingEvent(t, "Launch Party", intPtr(5))
	event, err := repository.NewEventRepository(getTestDB()).FindByID(ctx, eventID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		userID := createTestUser(t, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@test.com", i), model.RoleUser)
		_, err := regSvc.Register(ctx, eventID, userID, nil)
		require.NoError(t, err)
	}

	t.Run("below current enrollment is rejected", func(t *testing.T) {
		_, err := eventSvc.UpdateByEventID(ctx, event.EventID, model.UpdateEventParams{
			Capacity: intPtr(1),
		})
		assert.ErrorIs(t, err, apperrors.ErrCapacityBelowEnrollment)
	})

	t.Run("down to current enrollment is allowed", func(t *testing.T) {
		updated, err := eventSvc.UpdateByEventID(ctx, event.EventID, model.UpdateEventParams{
			Capacity: intPtr(2),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Capacity)
		assert.Equal(t, 2, *updated.Capacity)
	})

	t.Run("full event rejects the next registration", func(t *testing.T) {
		userID := createTestUser(t, "Late", "late@test.com", model.RoleUser)
		_, err := regSvc.Register(ctx, eventID, userID, nil)
		assert.ErrorIs(t, err, apperrors.ErrEventFull)
	})
}

func TestEventUpdate_Dates(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestEventService()

	eventID := createUpcomingEvent(t, "Launch Party", nil)
	event, err := repository.NewEventRepository(getTestDB()).FindByID(ctx, eventID)
	require.NoError(t, err)

	badEnd := event.StartDate.Add(-time.Hour)
	_, err = svc.UpdateByEventID(ctx, event.EventID, model.UpdateEventParams{
		EndDate: &badEnd,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	title := "Renamed Party"
	updated, err := svc.UpdateByEventID(ctx, event.EventID, model.UpdateEventParams{
		Title: &title,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Party", updated.Title)
}

func TestEventList(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestEventService()
	adminID := createTestUser(t, "Root", "root@test.com", model.RoleAdmin)

	start := time.Now().Add(24 * time.Hour)
	for i := 0; i < 3; i++ {
		createTestEvent(t, fmt.Sprintf("Conference %d", i), nil, start, start.Add(time.Hour), adminID)
	}
	createTestEvent(t, "Workshop", nil, start, start.Add(time.Hour), adminID)

	t.Run("all events", func(t *testing.T) {
		result, err := svc.List(ctx, query.Params{}, "")
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.Pagination.Total)
	})

	t.Run("search narrows the predicate and the total together", func(t *testing.T) {
		result, err := svc.List(ctx, query.Params{}, "conference")
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Pagination.Total)
		assert.Len(t, result.Items, 3)
	})

	t.Run("sorted by title ascending", func(t *testing.T) {
		result, err := svc.List(ctx, query.Params{SortBy: "title", SortOrder: "asc"}, "")
		require.NoError(t, err)
		require.Len(t, result.Items, 4)
		assert.Equal(t, "Conference 0", result.Items[0].Title)
		assert.Equal(t, "Workshop", result.Items[3].Title)
	})
}

func TestEventDelete(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	svc := newTestEventService()

	eventID := createUpcomingEvent(t, "Doomed Event", nil)
	event, err := repository.NewEventRepository(getTestDB()).FindByID(ctx, eventID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByEventID(ctx, event.EventID))

	_, err = svc.GetByEventID(ctx, event.EventID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
