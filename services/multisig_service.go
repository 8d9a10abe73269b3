package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lumentix/auth"
	"lumentix/internal/status"
	"lumentix/models"
	"lumentix/monitoring"
	"lumentix/notify"
	"lumentix/storage"
	"lumentix/transfer"
)

// MultisigService is the joint release gate for pooled escrow funds: a
// configured signer set must reach its approval threshold before a
// distribution drains the event escrow.
type MultisigService struct {
	store    storage.Store
	auth     auth.Authorizer
	sink     transfer.Sink
	notify   *notify.Emitter
	monitor  *monitoring.Monitor
	currency string
}

func NewMultisigService(store storage.Store, authorizer auth.Authorizer, sink transfer.Sink, emitter *notify.Emitter, monitor *monitoring.Monitor, currency string) *MultisigService {
	return &MultisigService{
		store:    store,
		auth:     authorizer,
		sink:     sink,
		notify:   emitter,
		monitor:  monitor,
		currency: currency,
	}
}

// SetSigners configures the signer set and approval threshold for an
// event. Organizer-only; the threshold must be between 1 and the number
// of signers.
func (s *MultisigService) SetSigners(ctx context.Context, organizer string, eventID uint64, signers []string, threshold uint32) (err error) {
	defer func() { track(s.monitor, "set_signers", err) }()

	if err = s.auth.RequireAuthorized(ctx, organizer); err != nil {
		return err
	}
	if threshold == 0 || int(threshold) > len(signers) {
		return status.ErrInvalidThreshold
	}
	for _, signer := range signers {
		if strings.TrimSpace(signer) == "" {
			return status.ErrEmptyField
		}
	}

	tx := storage.NewTx(s.store)

	event, err := tx.Event(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Organizer != organizer {
		return status.ErrUnauthorized
	}

	config := &models.EscrowConfig{
		EventID:   eventID,
		Signers:   signers,
		Threshold: threshold,
	}
	if err = tx.PutEscrowConfig(config); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetConfig returns the configured signer set and threshold.
func (s *MultisigService) GetConfig(ctx context.Context, eventID uint64) (*models.EscrowConfig, error) {
	return storage.NewTx(s.store).EscrowConfig(ctx, eventID)
}

// ApproveRelease records the signer's approval for releasing the event
// escrow. Idempotent; only configured signers may approve.
func (s *MultisigService) ApproveRelease(ctx context.Context, eventID uint64, signer string) (err error) {
	defer func() { track(s.monitor, "approve_release", err) }()

	if err = s.auth.RequireAuthorized(ctx, signer); err != nil {
		return err
	}

	tx := storage.NewTx(s.store)

	config, err := tx.EscrowConfig(ctx, eventID)
	if err != nil {
		return err
	}
	if !config.HasSigner(signer) {
		return status.ErrUnauthorized
	}

	tx.SetApproval(eventID, signer)
	if err = tx.Commit(ctx); err != nil {
		return err
	}

	s.notify.Emit(ctx, "release_approved", map[string]any{
		"event_id": eventID,
		"signer":   signer,
	})

	return nil
}

// RevokeApproval withdraws a previously given approval. No-op when none
// was recorded.
func (s *MultisigService) RevokeApproval(ctx context.Context, eventID uint64, signer string) (err error) {
	defer func() { track(s.monitor, "revoke_approval", err) }()

	if err = s.auth.RequireAuthorized(ctx, signer); err != nil {
		return err
	}

	tx := storage.NewTx(s.store)
	tx.RemoveApproval(eventID, signer)
	if err = tx.Commit(ctx); err != nil {
		return err
	}

	s.notify.Emit(ctx, "approval_revoked", map[string]any{
		"event_id": eventID,
		"signer":   signer,
	})

	return nil
}

// ApprovalCount counts configured signers with an active approval.
// Approvals from principals no longer in the signer set do not count.
func (s *MultisigService) ApprovalCount(ctx context.Context, eventID uint64) (uint32, error) {
	tx := storage.NewTx(s.store)
	config, err := tx.EscrowConfig(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return s.countApprovals(ctx, tx, config)
}

func (s *MultisigService) countApprovals(ctx context.Context, tx *storage.Tx, config *models.EscrowConfig) (uint32, error) {
	var count uint32
	for _, signer := range config.Signers {
		approved, err := tx.HasApproval(ctx, config.EventID, signer)
		if err != nil {
			return 0, err
		}
		if approved {
			count++
		}
	}
	return count, nil
}

// DistributeEscrow releases the pooled event escrow to destination once
// the approval threshold is met. All approvals are cleared in the same
// commit, so the next release round starts from zero.
func (s *MultisigService) DistributeEscrow(ctx context.Context, eventID uint64, destination string) (amount int64, err error) {
	defer func() { track(s.monitor, "distribute_escrow", err) }()

	if strings.TrimSpace(destination) == "" {
		return 0, status.ErrEmptyField
	}

	tx := storage.NewTx(s.store)

	config, err := tx.EscrowConfig(ctx, eventID)
	if err != nil {
		return 0, err
	}

	count, err := s.countApprovals(ctx, tx, config)
	if err != nil {
		return 0, err
	}
	if count < config.Threshold {
		return 0, status.ErrThresholdNotMet
	}

	amount, err = tx.EscrowBalance(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, status.ErrEscrowAlreadyReleased
	}

	tx.ClearEscrow(eventID)
	for _, signer := range config.Signers {
		tx.RemoveApproval(eventID, signer)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	s.monitor.TrackRelease(eventLabel(eventID), amount)
	s.requestPayout(ctx, fmt.Sprintf("escrow-distribution-%d", eventID), destination, amount)
	s.notify.Emit(ctx, "escrow_distributed", map[string]any{
		"event_id":    eventID,
		"destination": destination,
		"amount":      amount,
	})

	return amount, nil
}

func (s *MultisigService) requestPayout(ctx context.Context, reference, destination string, amount int64) {
	if s.sink == nil {
		return
	}
	payout := transfer.NewPayout(reference, destination, amount, s.currency)
	if err := s.sink.Transfer(ctx, payout); err != nil {
		slog.Error("payout request failed", "reference", reference, "destination", destination, "error", err)
	}
}
