package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumentix/auth"
	"lumentix/internal/status"
	"lumentix/models"
)

func TestEventService_CreateEvent_AssignsSequentialIDs(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	first, err := env.events.CreateEvent(ctx, validEventInput("org-1"))
	require.NoError(t, err)
	second, err := env.events.CreateEvent(ctx, validEventInput("org-2"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)

	event, err := env.events.GetEvent(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "org-1", event.Organizer)
	assert.Equal(t, models.EventDraft, event.Status)
	assert.Equal(t, uint32(0), event.TicketsSold)
}

func TestEventService_CreateEvent_Validation(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateEventInput)
		wantErr error
	}{
		{"empty name", func(in *CreateEventInput) { in.Name = "" }, status.ErrEmptyField},
		{"blank location", func(in *CreateEventInput) { in.Location = "   " }, status.ErrEmptyField},
		{"empty description", func(in *CreateEventInput) { in.Description = "" }, status.ErrEmptyField},
		{"zero price", func(in *CreateEventInput) { in.TicketPrice = 0 }, status.ErrInvalidAmount},
		{"negative price", func(in *CreateEventInput) { in.TicketPrice = -5 }, status.ErrInvalidAmount},
		{"zero capacity", func(in *CreateEventInput) { in.MaxTickets = 0 }, status.ErrInvalidCapacity},
		{"start after end", func(in *CreateEventInput) { in.StartTime = 5_000 }, status.ErrInvalidTimeRange},
		{"start equals end", func(in *CreateEventInput) { in.StartTime = in.EndTime }, status.ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEventInput("org-1")
			tt.mutate(&in)

			_, err := env.events.CreateEvent(ctx, in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing persisted by the failed attempts.
	assert.Equal(t, 0, env.store.Len())
}

func TestEventService_CreateEvent_Unauthorized(t *testing.T) {
	env := setupTestEnv()
	env.events.auth = auth.NewStatic("someone-else")

	_, err := env.events.CreateEvent(context.Background(), validEventInput("org-1"))
	assert.ErrorIs(t, err, status.ErrUnauthorized)
}

func TestEventService_UpdateStatus_LegalTransitions(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID, err := env.events.CreateEvent(ctx, validEventInput("org-1"))
	require.NoError(t, err)

	require.NoError(t, env.events.UpdateStatus(ctx, eventID, models.EventPublished, "org-1"))

	event, err := env.events.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, models.EventPublished, event.Status)

	require.NoError(t, env.events.UpdateStatus(ctx, eventID, models.EventCancelled, "org-1"))

	event, err = env.events.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, models.EventCancelled, event.Status)
}

func TestEventService_UpdateStatus_IllegalTransitions(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID, err := env.events.CreateEvent(ctx, validEventInput("org-1"))
	require.NoError(t, err)

	// Draft cannot go anywhere but Published.
	err = env.events.UpdateStatus(ctx, eventID, models.EventCancelled, "org-1")
	assert.ErrorIs(t, err, status.ErrInvalidStatusTransition)
	err = env.events.UpdateStatus(ctx, eventID, models.EventCompleted, "org-1")
	assert.ErrorIs(t, err, status.ErrInvalidStatusTransition)

	// No transition is reversible.
	require.NoError(t, env.events.UpdateStatus(ctx, eventID, models.EventPublished, "org-1"))
	err = env.events.UpdateStatus(ctx, eventID, models.EventDraft, "org-1")
	assert.ErrorIs(t, err, status.ErrInvalidStatusTransition)

	require.NoError(t, env.events.UpdateStatus(ctx, eventID, models.EventCancelled, "org-1"))
	err = env.events.UpdateStatus(ctx, eventID, models.EventPublished, "org-1")
	assert.ErrorIs(t, err, status.ErrInvalidStatusTransition)
}

func TestEventService_UpdateStatus_CompletionTimeGate(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID, err := env.events.CreateEvent(ctx, validEventInput("org-1"))
	require.NoError(t, err)
	require.NoError(t, env.events.UpdateStatus(ctx, eventID, models.EventPublished, "org-1"))

	// End time is 3000; completion is rejected until the clock passes it.
	env.clock.Set(3_000)
	err = env.events.UpdateStatus(ctx, eventID, models.EventCompleted, "org-1")
	assert.ErrorIs(t, err, status.ErrInvalidStatusTransition)

	env.clock.Set(3_001)
	require.NoError(t, env.events.UpdateStatus(ctx, eventID, models.EventCompleted, "org-1"))

	event, err := env.events.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, event.Status)
}

func TestEventService_UpdateStatus_OrganizerOnly(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID, err := env.events.CreateEvent(ctx, validEventInput("org-1"))
	require.NoError(t, err)

	err = env.events.UpdateStatus(ctx, eventID, models.EventPublished, "intruder")
	assert.ErrorIs(t, err, status.ErrUnauthorized)

	event, err := env.events.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, models.EventDraft, event.Status)
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	env := setupTestEnv()

	_, err := env.events.GetEvent(context.Background(), 42)
	assert.ErrorIs(t, err, status.ErrEventNotFound)
}

func TestEventService_GetAvailability(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	eventID := createPublishedEvent(t, env, "org-1", 100, 3)

	available, err := env.events.GetAvailability(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), available)

	_, err = env.tickets.PurchaseTicket(ctx, "buyer-1", eventID, 100)
	require.NoError(t, err)

	available, err = env.events.GetAvailability(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), available)
}
