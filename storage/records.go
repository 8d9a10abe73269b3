package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"lumentix/internal/status"
	"lumentix/models"
)

// Typed record accessors. All reads and writes of domain records go
// through these so key construction and encoding stay in one place.

func (tx *Tx) Event(ctx context.Context, eventID uint64) (*models.Event, error) {
	data, ok, err := tx.Get(ctx, EventKey(eventID))
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", eventID, err)
	}
	if !ok {
		return nil, status.ErrEventNotFound
	}

	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("decode event %d: %w", eventID, err)
	}
	return &event, nil
}

func (tx *Tx) PutEvent(event *models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %d: %w", event.ID, err)
	}
	tx.Set(EventKey(event.ID), data)
	return nil
}

func (tx *Tx) Ticket(ctx context.Context, ticketID uint64) (*models.Ticket, error) {
	data, ok, err := tx.Get(ctx, TicketKey(ticketID))
	if err != nil {
		return nil, fmt.Errorf("get ticket %d: %w", ticketID, err)
	}
	if !ok {
		return nil, status.ErrTicketNotFound
	}

	var ticket models.Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, fmt.Errorf("decode ticket %d: %w", ticketID, err)
	}
	return &ticket, nil
}

func (tx *Tx) PutTicket(ticket *models.Ticket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("encode ticket %d: %w", ticket.ID, err)
	}
	tx.Set(TicketKey(ticket.ID), data)
	return nil
}

// NextEventID returns the next sequential event id and stages the
// counter increment. Ids start at 1.
func (tx *Tx) NextEventID(ctx context.Context) (uint64, error) {
	return tx.nextID(ctx, KeyEventCounter)
}

// NextTicketID returns the next sequential ticket id and stages the
// counter increment. Ids start at 1.
func (tx *Tx) NextTicketID(ctx context.Context) (uint64, error) {
	return tx.nextID(ctx, KeyTicketCounter)
}

func (tx *Tx) nextID(ctx context.Context, key Key) (uint64, error) {
	id, err := tx.getUint(ctx, key, 1)
	if err != nil {
		return 0, err
	}
	tx.Set(key, []byte(strconv.FormatUint(id+1, 10)))
	return id, nil
}

func (tx *Tx) Initialized(ctx context.Context) (bool, error) {
	return tx.Has(ctx, KeyInitialized)
}

func (tx *Tx) SetInitialized() {
	tx.Set(KeyInitialized, []byte("1"))
}

func (tx *Tx) Admin(ctx context.Context) (string, error) {
	data, ok, err := tx.Get(ctx, KeyAdmin)
	if err != nil {
		return "", fmt.Errorf("get admin: %w", err)
	}
	if !ok {
		return "", status.ErrNotInitialized
	}
	return string(data), nil
}

func (tx *Tx) SetAdmin(admin string) {
	tx.Set(KeyAdmin, []byte(admin))
}

func (tx *Tx) PlatformFeeBps(ctx context.Context) (int64, error) {
	return tx.getInt(ctx, KeyPlatformFeeBps, 0)
}

func (tx *Tx) SetPlatformFeeBps(feeBps int64) {
	tx.Set(KeyPlatformFeeBps, []byte(strconv.FormatInt(feeBps, 10)))
}

func (tx *Tx) PlatformBalance(ctx context.Context) (int64, error) {
	return tx.getInt(ctx, KeyPlatformBalance, 0)
}

func (tx *Tx) AddPlatformBalance(ctx context.Context, amount int64) error {
	current, err := tx.PlatformBalance(ctx)
	if err != nil {
		return err
	}
	tx.Set(KeyPlatformBalance, []byte(strconv.FormatInt(current+amount, 10)))
	return nil
}

func (tx *Tx) ClearPlatformBalance() {
	tx.Set(KeyPlatformBalance, []byte("0"))
}

func (tx *Tx) EscrowBalance(ctx context.Context, eventID uint64) (int64, error) {
	return tx.getInt(ctx, EscrowKey(eventID), 0)
}

func (tx *Tx) AddEscrow(ctx context.Context, eventID uint64, amount int64) error {
	current, err := tx.EscrowBalance(ctx, eventID)
	if err != nil {
		return err
	}
	tx.Set(EscrowKey(eventID), []byte(strconv.FormatInt(current+amount, 10)))
	return nil
}

// DeductEscrow lowers the event escrow by amount, refusing to go
// negative.
func (tx *Tx) DeductEscrow(ctx context.Context, eventID uint64, amount int64) error {
	current, err := tx.EscrowBalance(ctx, eventID)
	if err != nil {
		return err
	}
	if current < amount {
		return status.ErrInsufficientEscrow
	}
	tx.Set(EscrowKey(eventID), []byte(strconv.FormatInt(current-amount, 10)))
	return nil
}

func (tx *Tx) ClearEscrow(eventID uint64) {
	tx.Set(EscrowKey(eventID), []byte("0"))
}

// Validators returns the validator set for an event; absent means empty.
func (tx *Tx) Validators(ctx context.Context, eventID uint64) ([]string, error) {
	data, ok, err := tx.Get(ctx, ValidatorsKey(eventID))
	if err != nil {
		return nil, fmt.Errorf("get validators %d: %w", eventID, err)
	}
	if !ok {
		return nil, nil
	}

	var validators []string
	if err := json.Unmarshal(data, &validators); err != nil {
		return nil, fmt.Errorf("decode validators %d: %w", eventID, err)
	}
	return validators, nil
}

func (tx *Tx) PutValidators(eventID uint64, validators []string) error {
	data, err := json.Marshal(validators)
	if err != nil {
		return fmt.Errorf("encode validators %d: %w", eventID, err)
	}
	tx.Set(ValidatorsKey(eventID), data)
	return nil
}

func (tx *Tx) EscrowConfig(ctx context.Context, eventID uint64) (*models.EscrowConfig, error) {
	data, ok, err := tx.Get(ctx, EscrowConfigKey(eventID))
	if err != nil {
		return nil, fmt.Errorf("get escrow config %d: %w", eventID, err)
	}
	if !ok {
		return nil, status.ErrEscrowNotConfigured
	}

	var config models.EscrowConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("decode escrow config %d: %w", eventID, err)
	}
	return &config, nil
}

func (tx *Tx) PutEscrowConfig(config *models.EscrowConfig) error {
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode escrow config %d: %w", config.EventID, err)
	}
	tx.Set(EscrowConfigKey(config.EventID), data)
	return nil
}

func (tx *Tx) HasApproval(ctx context.Context, eventID uint64, signer string) (bool, error) {
	return tx.Has(ctx, ApprovalKey(eventID, signer))
}

func (tx *Tx) SetApproval(eventID uint64, signer string) {
	tx.Set(ApprovalKey(eventID, signer), []byte("1"))
}

func (tx *Tx) RemoveApproval(eventID uint64, signer string) {
	tx.Remove(ApprovalKey(eventID, signer))
}

func (tx *Tx) getInt(ctx context.Context, key Key, fallback int64) (int64, error) {
	data, ok, err := tx.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return fallback, nil
	}
	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	return val, nil
}

func (tx *Tx) getUint(ctx context.Context, key Key, fallback uint64) (uint64, error) {
	data, ok, err := tx.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return fallback, nil
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	return val, nil
}
