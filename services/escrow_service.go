package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lumentix/auth"
	"lumentix/clock"
	"lumentix/internal/status"
	"lumentix/models"
	"lumentix/monitoring"
	"lumentix/notify"
	"lumentix/storage"
	"lumentix/transfer"
)

// EscrowService owns the per-event escrow balances and the global
// platform-fee ledger. Released and withdrawn amounts are handed to the
// transfer sink; the service itself never moves value.
type EscrowService struct {
	store    storage.Store
	auth     auth.Authorizer
	clock    clock.Clock
	events   *EventService
	sink     transfer.Sink
	notify   *notify.Emitter
	monitor  *monitoring.Monitor
	currency string
}

func NewEscrowService(store storage.Store, authorizer auth.Authorizer, clk clock.Clock, events *EventService, sink transfer.Sink, emitter *notify.Emitter, monitor *monitoring.Monitor, currency string) *EscrowService {
	return &EscrowService{
		store:    store,
		auth:     authorizer,
		clock:    clk,
		events:   events,
		sink:     sink,
		notify:   emitter,
		monitor:  monitor,
		currency: currency,
	}
}

// Initialize stores the platform admin. Callable exactly once.
func (s *EscrowService) Initialize(ctx context.Context, admin string) (err error) {
	defer func() { track(s.monitor, "initialize", err) }()

	if strings.TrimSpace(admin) == "" {
		return status.ErrEmptyField
	}

	tx := storage.NewTx(s.store)

	initialized, err := tx.Initialized(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return status.ErrAlreadyInitialized
	}

	tx.SetAdmin(admin)
	tx.SetInitialized()
	return tx.Commit(ctx)
}

// CancelEvent moves a published event to Cancelled. Escrow is left
// untouched; refunds are processed per ticket afterwards.
func (s *EscrowService) CancelEvent(ctx context.Context, organizer string, eventID uint64) error {
	return s.events.UpdateStatus(ctx, eventID, models.EventCancelled, organizer)
}

// CompleteEvent moves a published event to Completed once its end time
// has passed.
func (s *EscrowService) CompleteEvent(ctx context.Context, organizer string, eventID uint64) error {
	return s.events.UpdateStatus(ctx, eventID, models.EventCompleted, organizer)
}

// ReleaseEscrow drains the escrow of a completed event and returns the
// amount now owed to the organizer. A second release on the same balance
// fails EscrowAlreadyReleased.
func (s *EscrowService) ReleaseEscrow(ctx context.Context, organizer string, eventID uint64) (amount int64, err error) {
	defer func() { track(s.monitor, "release_escrow", err) }()

	if err = s.auth.RequireAuthorized(ctx, organizer); err != nil {
		return 0, err
	}

	tx := storage.NewTx(s.store)

	event, err := tx.Event(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if event.Organizer != organizer {
		return 0, status.ErrUnauthorized
	}
	if event.Status != models.EventCompleted {
		return 0, status.ErrInvalidStatusTransition
	}

	amount, err = tx.EscrowBalance(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, status.ErrEscrowAlreadyReleased
	}

	tx.ClearEscrow(eventID)
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	s.monitor.TrackRelease(eventLabel(eventID), amount)
	s.requestPayout(ctx, fmt.Sprintf("escrow-release-%d", eventID), organizer, amount)
	s.notify.Emit(ctx, "escrow_released", map[string]any{
		"event_id":  eventID,
		"organizer": organizer,
		"amount":    amount,
	})

	return amount, nil
}

// SetPlatformFee sets the purchase fee in basis points. Admin-only.
func (s *EscrowService) SetPlatformFee(ctx context.Context, admin string, feeBps int64) (err error) {
	defer func() { track(s.monitor, "set_platform_fee", err) }()

	if err = s.auth.RequireAuthorized(ctx, admin); err != nil {
		return err
	}

	tx := storage.NewTx(s.store)

	stored, err := tx.Admin(ctx)
	if err != nil {
		return err
	}
	if stored != admin {
		return status.ErrUnauthorized
	}
	if feeBps < 0 || feeBps > 10000 {
		return status.ErrInvalidPlatformFee
	}

	tx.SetPlatformFeeBps(feeBps)
	return tx.Commit(ctx)
}

// GetPlatformFee returns the current fee in basis points.
func (s *EscrowService) GetPlatformFee(ctx context.Context) (int64, error) {
	return storage.NewTx(s.store).PlatformFeeBps(ctx)
}

// GetPlatformBalance returns the accumulated platform fee balance.
func (s *EscrowService) GetPlatformBalance(ctx context.Context) (int64, error) {
	balance, err := storage.NewTx(s.store).PlatformBalance(ctx)
	if err != nil {
		return 0, err
	}
	s.monitor.SetPlatformBalance(balance)
	return balance, nil
}

// WithdrawPlatformFees drains the platform fee balance and returns the
// amount owed to the admin. Admin-only.
func (s *EscrowService) WithdrawPlatformFees(ctx context.Context, admin string) (amount int64, err error) {
	defer func() { track(s.monitor, "withdraw_platform_fees", err) }()

	if err = s.auth.RequireAuthorized(ctx, admin); err != nil {
		return 0, err
	}

	tx := storage.NewTx(s.store)

	stored, err := tx.Admin(ctx)
	if err != nil {
		return 0, err
	}
	if stored != admin {
		return 0, status.ErrUnauthorized
	}

	amount, err = tx.PlatformBalance(ctx)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, status.ErrNoPlatformFees
	}

	tx.ClearPlatformBalance()
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	s.monitor.SetPlatformBalance(0)
	s.requestPayout(ctx, "platform-fees", admin, amount)
	s.notify.Emit(ctx, "platform_fees_withdrawn", map[string]any{
		"admin":  admin,
		"amount": amount,
	})

	return amount, nil
}

// requestPayout hands a drained balance to the transfer sink. The ledger
// state is already committed; a sink failure is logged, not rolled back,
// and the returned amount remains the caller's entitlement.
func (s *EscrowService) requestPayout(ctx context.Context, reference, destination string, amount int64) {
	if s.sink == nil {
		return
	}
	payout := transfer.NewPayout(reference, destination, amount, s.currency)
	if err := s.sink.Transfer(ctx, payout); err != nil {
		slog.Error("payout request failed", "reference", reference, "destination", destination, "error", err)
	}
}
