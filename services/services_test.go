package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lumentix/auth"
	"lumentix/clock"
	"lumentix/models"
	"lumentix/notify"
	"lumentix/storage"
	"lumentix/transfer"
)

// sinkRecorder captures payout requests for assertions.
type sinkRecorder struct {
	payouts []*transfer.Payout
}

func (s *sinkRecorder) Transfer(_ context.Context, payout *transfer.Payout) error {
	s.payouts = append(s.payouts, payout)
	return nil
}

type testEnv struct {
	store    *storage.MemoryStore
	clock    *clock.Manual
	recorder *notify.Recorder
	sink     *sinkRecorder
	events   *EventService
	tickets  *TicketService
	escrow   *EscrowService
	multisig *MultisigService
}

func setupTestEnv() *testEnv {
	store := storage.NewMemoryStore()
	clk := clock.NewManual(1_000)
	recorder := &notify.Recorder{}
	emitter := notify.NewEmitter(recorder, "test-activity")
	sink := &sinkRecorder{}
	authorizer := auth.AllowAll{}

	events := NewEventService(store, authorizer, clk, emitter, nil)
	tickets := NewTicketService(store, authorizer, clk, emitter, nil)
	escrow := NewEscrowService(store, authorizer, clk, events, sink, emitter, nil, "USD")
	multisig := NewMultisigService(store, authorizer, sink, emitter, nil, "USD")

	return &testEnv{
		store:    store,
		clock:    clk,
		recorder: recorder,
		sink:     sink,
		events:   events,
		tickets:  tickets,
		escrow:   escrow,
		multisig: multisig,
	}
}

func validEventInput(organizer string) CreateEventInput {
	return CreateEventInput{
		Organizer:   organizer,
		Name:        "Summer Gala",
		Description: "Annual fundraiser",
		Location:    "City Hall",
		StartTime:   2_000,
		EndTime:     3_000,
		TicketPrice: 100,
		MaxTickets:  50,
	}
}

// createPublishedEvent creates an event and moves it to Published.
func createPublishedEvent(t *testing.T, env *testEnv, organizer string, price int64, maxTickets uint32) uint64 {
	t.Helper()

	in := validEventInput(organizer)
	in.TicketPrice = price
	in.MaxTickets = maxTickets

	eventID, err := env.events.CreateEvent(context.Background(), in)
	require.NoError(t, err)
	require.NoError(t, env.events.UpdateStatus(context.Background(), eventID, models.EventPublished, organizer))
	return eventID
}

func escrowBalance(t *testing.T, env *testEnv, eventID uint64) int64 {
	t.Helper()

	balance, err := storage.NewTx(env.store).EscrowBalance(context.Background(), eventID)
	require.NoError(t, err)
	return balance
}
