package services

import (
	"context"
	"strings"

	"lumentix/auth"
	"lumentix/clock"
	"lumentix/internal/status"
	"lumentix/models"
	"lumentix/monitoring"
	"lumentix/notify"
	"lumentix/storage"
)

// TicketService owns ticket records: purchase, check-in, transfer and
// refund, plus the per-event validator registry.
type TicketService struct {
	store   storage.Store
	auth    auth.Authorizer
	clock   clock.Clock
	notify  *notify.Emitter
	monitor *monitoring.Monitor
}

func NewTicketService(store storage.Store, authorizer auth.Authorizer, clk clock.Clock, emitter *notify.Emitter, monitor *monitoring.Monitor) *TicketService {
	return &TicketService{
		store:   store,
		auth:    authorizer,
		clock:   clk,
		notify:  emitter,
		monitor: monitor,
	}
}

// PurchaseTicket issues a ticket on a published event. The platform fee
// is taken out of the paid amount, the remainder goes to the event
// escrow, and the sold counter moves with the ticket in the same commit.
func (s *TicketService) PurchaseTicket(ctx context.Context, buyer string, eventID uint64, amount int64) (ticketID uint64, err error) {
	defer func() { track(s.monitor, "purchase_ticket", err) }()

	if err = s.auth.RequireAuthorized(ctx, buyer); err != nil {
		return 0, err
	}

	tx := storage.NewTx(s.store)

	event, err := tx.Event(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if event.Status != models.EventPublished {
		return 0, status.ErrInvalidStatusTransition
	}
	if event.TicketsSold >= event.MaxTickets {
		return 0, status.ErrEventSoldOut
	}
	if amount < event.TicketPrice {
		return 0, status.ErrInsufficientFunds
	}

	feeBps, err := tx.PlatformFeeBps(ctx)
	if err != nil {
		return 0, err
	}
	fee := amount * feeBps / 10000
	escrowAmount := amount - fee

	if fee > 0 {
		if err = tx.AddPlatformBalance(ctx, fee); err != nil {
			return 0, err
		}
	}
	if err = tx.AddEscrow(ctx, eventID, escrowAmount); err != nil {
		return 0, err
	}

	event.TicketsSold++
	if err = tx.PutEvent(event); err != nil {
		return 0, err
	}

	ticketID, err = tx.NextTicketID(ctx)
	if err != nil {
		return 0, err
	}
	ticket := &models.Ticket{
		ID:           ticketID,
		EventID:      eventID,
		Owner:        buyer,
		PurchaseTime: s.clock.Now(),
		Used:         false,
		Refunded:     false,
	}
	if err = tx.PutTicket(ticket); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	s.monitor.TrackPurchase(eventLabel(eventID))
	s.notify.Emit(ctx, "ticket_purchased", map[string]any{
		"ticket_id": ticketID,
		"event_id":  eventID,
		"owner":     buyer,
		"amount":    amount,
	})

	return ticketID, nil
}

// GetTicket returns the ticket record by id.
func (s *TicketService) GetTicket(ctx context.Context, ticketID uint64) (*models.Ticket, error) {
	return storage.NewTx(s.store).Ticket(ctx, ticketID)
}

// UseTicket marks a ticket as checked in. The caller must be the event
// organizer or one of its registered validators. Refunded tickets cannot
// be checked in: their price has already left the escrow.
func (s *TicketService) UseTicket(ctx context.Context, ticketID uint64, caller string) (err error) {
	defer func() { track(s.monitor, "use_ticket", err) }()

	if err = s.auth.RequireAuthorized(ctx, caller); err != nil {
		return err
	}

	tx := storage.NewTx(s.store)

	ticket, err := tx.Ticket(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Used {
		return status.ErrTicketAlreadyUsed
	}
	if ticket.Refunded {
		return status.ErrRefundNotAllowed
	}

	authorized, err := s.isValidator(ctx, tx, ticket.EventID, caller)
	if err != nil {
		return err
	}
	if !authorized {
		return status.ErrUnauthorized
	}

	ticket.Used = true
	if err = tx.PutTicket(ticket); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	s.notify.Emit(ctx, "ticket_used", map[string]any{
		"ticket_id": ticketID,
		"event_id":  ticket.EventID,
		"caller":    caller,
	})

	return nil
}

// TransferTicket moves ticket ownership from its current owner to
// another principal. Used and refunded tickets cannot move.
func (s *TicketService) TransferTicket(ctx context.Context, ticketID uint64, from, to string) (err error) {
	defer func() { track(s.monitor, "transfer_ticket", err) }()

	if err = s.auth.RequireAuthorized(ctx, from); err != nil {
		return err
	}
	if strings.TrimSpace(to) == "" {
		return status.ErrEmptyField
	}

	tx := storage.NewTx(s.store)

	ticket, err := tx.Ticket(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Owner != from {
		return status.ErrUnauthorized
	}
	if ticket.Used {
		return status.ErrTicketAlreadyUsed
	}
	if ticket.Refunded {
		return status.ErrRefundNotAllowed
	}

	ticket.Owner = to
	if err = tx.PutTicket(ticket); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	s.notify.Emit(ctx, "ticket_transferred", map[string]any{
		"ticket_id": ticketID,
		"event_id":  ticket.EventID,
		"from":      from,
		"to":        to,
	})

	return nil
}

// RefundTicket pays the ticket price back out of escrow once the event
// has been cancelled. The refund frees the sold-counter slot for
// accounting symmetry; a cancelled event has no further purchase path.
func (s *TicketService) RefundTicket(ctx context.Context, ticketID uint64, buyer string) (err error) {
	defer func() { track(s.monitor, "refund_ticket", err) }()

	if err = s.auth.RequireAuthorized(ctx, buyer); err != nil {
		return err
	}

	tx := storage.NewTx(s.store)

	ticket, err := tx.Ticket(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Owner != buyer {
		return status.ErrUnauthorized
	}
	if ticket.Used {
		return status.ErrTicketAlreadyUsed
	}
	if ticket.Refunded {
		return status.ErrRefundNotAllowed
	}

	event, err := tx.Event(ctx, ticket.EventID)
	if err != nil {
		return err
	}
	if event.Status != models.EventCancelled {
		return status.ErrEventNotCancelled
	}

	if err = tx.DeductEscrow(ctx, ticket.EventID, event.TicketPrice); err != nil {
		return err
	}

	ticket.Refunded = true
	if err = tx.PutTicket(ticket); err != nil {
		return err
	}

	if event.TicketsSold > 0 {
		event.TicketsSold--
	}
	if err = tx.PutEvent(event); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	s.monitor.TrackRefund(eventLabel(ticket.EventID))
	s.notify.Emit(ctx, "ticket_refunded", map[string]any{
		"ticket_id": ticketID,
		"event_id":  ticket.EventID,
		"owner":     buyer,
		"amount":    event.TicketPrice,
	})

	return nil
}

// AddValidator registers a principal allowed to check in tickets for the
// event. Organizer-only and idempotent.
func (s *TicketService) AddValidator(ctx context.Context, caller string, eventID uint64, validator string) (err error) {
	defer func() { track(s.monitor, "add_validator", err) }()

	if err = s.auth.RequireAuthorized(ctx, caller); err != nil {
		return err
	}
	if strings.TrimSpace(validator) == "" {
		return status.ErrEmptyField
	}

	tx := storage.NewTx(s.store)

	event, err := tx.Event(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Organizer != caller {
		return status.ErrUnauthorized
	}

	validators, err := tx.Validators(ctx, eventID)
	if err != nil {
		return err
	}
	for _, v := range validators {
		if v == validator {
			return nil
		}
	}

	if err = tx.PutValidators(eventID, append(validators, validator)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveValidator removes a principal from the validator set.
// Organizer-only and idempotent.
func (s *TicketService) RemoveValidator(ctx context.Context, caller string, eventID uint64, validator string) (err error) {
	defer func() { track(s.monitor, "remove_validator", err) }()

	if err = s.auth.RequireAuthorized(ctx, caller); err != nil {
		return err
	}

	tx := storage.NewTx(s.store)

	event, err := tx.Event(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Organizer != caller {
		return status.ErrUnauthorized
	}

	validators, err := tx.Validators(ctx, eventID)
	if err != nil {
		return err
	}

	kept := validators[:0]
	for _, v := range validators {
		if v != validator {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(validators) {
		return nil
	}

	if err = tx.PutValidators(eventID, kept); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// IsAuthorizedValidator reports whether principal may check in tickets
// for the event. The organizer is always authorized.
func (s *TicketService) IsAuthorizedValidator(ctx context.Context, eventID uint64, principal string) (bool, error) {
	return s.isValidator(ctx, storage.NewTx(s.store), eventID, principal)
}

func (s *TicketService) isValidator(ctx context.Context, tx *storage.Tx, eventID uint64, principal string) (bool, error) {
	event, err := tx.Event(ctx, eventID)
	if err != nil {
		return false, err
	}
	if event.Organizer == principal {
		return true, nil
	}

	validators, err := tx.Validators(ctx, eventID)
	if err != nil {
		return false, err
	}
	for _, v := range validators {
		if v == principal {
			return true, nil
		}
	}
	return false, nil
}
