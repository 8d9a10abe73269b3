// Package status defines the sentinel errors shared across services and
// handlers. Services return them unwrapped so callers can match with
// errors.Is; handlers translate them into HTTP responses.
package status

import "errors"

var (
	ErrAlreadyInitialized = errors.New("platform: already initialized")
	ErrNotInitialized     = errors.New("platform: not initialized")

	ErrEventNotFound  = errors.New("event: event not found")
	ErrTicketNotFound = errors.New("ticket: ticket not found")

	ErrUnauthorized = errors.New("auth: unauthorized")

	ErrInvalidStatusTransition = errors.New("event: invalid status transition")
	ErrEventSoldOut            = errors.New("event: sold out")
	ErrEventNotCancelled       = errors.New("event: not cancelled")

	ErrInsufficientFunds = errors.New("ticket: insufficient funds")
	ErrTicketAlreadyUsed = errors.New("ticket: already used")
	ErrRefundNotAllowed  = errors.New("ticket: refund not allowed")

	ErrInsufficientEscrow    = errors.New("escrow: insufficient escrow balance")
	ErrEscrowAlreadyReleased = errors.New("escrow: already released")
	ErrEscrowNotConfigured   = errors.New("escrow: signers not configured")
	ErrInvalidThreshold      = errors.New("escrow: invalid signer threshold")
	ErrThresholdNotMet       = errors.New("escrow: approval threshold not met")

	ErrInvalidPlatformFee = errors.New("platform: invalid platform fee")
	ErrNoPlatformFees     = errors.New("platform: no platform fees to withdraw")

	ErrEmptyField       = errors.New("validation: required field is empty")
	ErrInvalidAmount    = errors.New("validation: amount must be positive")
	ErrInvalidCapacity  = errors.New("validation: capacity must be positive")
	ErrInvalidTimeRange = errors.New("validation: start time must be before end time")
)
