package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumentix/internal/status"
	"lumentix/models"
)

func TestTx_StagedWritesVisibleBeforeCommit(t *testing.T) {
	store := NewMemoryStore()
	tx := NewTx(store)
	ctx := context.Background()

	tx.Set(KeyAdmin, []byte("admin"))

	val, ok, err := tx.Get(ctx, KeyAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "admin", string(val))

	// The store itself sees nothing until Commit.
	assert.Equal(t, 0, store.Len())
	_, ok, err = store.Get(ctx, KeyAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, store.Len())

	val, ok, err = store.Get(ctx, KeyAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "admin", string(val))
}

func TestTx_StagedRemoveShadowsStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seed := NewTx(store)
	seed.Set(EscrowKey(1), []byte("100"))
	require.NoError(t, seed.Commit(ctx))

	tx := NewTx(store)
	tx.Remove(EscrowKey(1))

	_, ok, err := tx.Get(ctx, EscrowKey(1))
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := tx.Has(ctx, EscrowKey(1))
	require.NoError(t, err)
	assert.False(t, has)

	// Still present in the store until the removal commits.
	has, err = store.Has(ctx, EscrowKey(1))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, tx.Commit(ctx))

	has, err = store.Has(ctx, EscrowKey(1))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestTx_AbandonedTxLeavesStoreUntouched(t *testing.T) {
	store := NewMemoryStore()
	tx := NewTx(store)

	tx.Set(EventKey(1), []byte(`{}`))
	tx.Set(KeyEventCounter, []byte("2"))
	// No Commit: simulates an operation failing midway.

	assert.Equal(t, 0, store.Len())
}

func TestTx_CountersStartAtOne(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := NewTx(store)

	eventID, err := tx.NextEventID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), eventID)

	ticketID, err := tx.NextTicketID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ticketID)

	require.NoError(t, tx.Commit(ctx))

	// The increments persisted: a fresh tx sees the next ids.
	next := NewTx(store)
	eventID, err = next.NextEventID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), eventID)
}

func TestTx_LastWriteWinsWithinTx(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := NewTx(store)
	tx.Set(EscrowKey(7), []byte("50"))
	tx.Set(EscrowKey(7), []byte("150"))
	require.NoError(t, tx.Commit(ctx))

	balance, err := NewTx(store).EscrowBalance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(150), balance)
}

func TestTx_EventRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	event := &models.Event{
		ID:          3,
		Organizer:   "org-1",
		Name:        "Launch Party",
		Description: "Product launch",
		Location:    "Warehouse 12",
		StartTime:   2_000,
		EndTime:     3_000,
		TicketPrice: 250,
		MaxTickets:  40,
		Status:      models.EventPublished,
	}

	tx := NewTx(store)
	require.NoError(t, tx.PutEvent(event))
	require.NoError(t, tx.Commit(ctx))

	got, err := NewTx(store).Event(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, event, got)

	_, err = NewTx(store).Event(ctx, 99)
	assert.ErrorIs(t, err, status.ErrEventNotFound)
}

func TestTx_DeductEscrowRefusesOverdraft(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seed := NewTx(store)
	require.NoError(t, seed.AddEscrow(ctx, 1, 80))
	require.NoError(t, seed.Commit(ctx))

	tx := NewTx(store)
	err := tx.DeductEscrow(ctx, 1, 100)
	assert.ErrorIs(t, err, status.ErrInsufficientEscrow)

	require.NoError(t, tx.DeductEscrow(ctx, 1, 80))
	require.NoError(t, tx.Commit(ctx))

	balance, err := NewTx(store).EscrowBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestTx_AdminAbsentMeansNotInitialized(t *testing.T) {
	store := NewMemoryStore()

	_, err := NewTx(store).Admin(context.Background())
	assert.ErrorIs(t, err, status.ErrNotInitialized)
}
