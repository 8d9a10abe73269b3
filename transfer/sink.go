// Package transfer is the seam to the external asset-transfer mechanism.
// The ledger only tracks balances; once a release or withdrawal drains a
// balance, the drained amount is handed to a Sink that moves real value.
package transfer

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Payout is one requested movement of funds to a destination account.
type Payout struct {
	Reference   string          `json:"reference"`
	Destination string          `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

// Sink executes payouts. Implementations wrap a bank or token transfer
// provider; the ledger never blocks on settlement.
type Sink interface {
	Transfer(ctx context.Context, payout *Payout) error
}

// LogSink records payouts to the log instead of moving funds. Default
// sink for development and tests.
type LogSink struct{}

func (LogSink) Transfer(_ context.Context, payout *Payout) error {
	slog.Info("payout requested",
		"reference", payout.Reference,
		"destination", payout.Destination,
		"amount", payout.Amount.String(),
		"currency", payout.Currency,
	)
	return nil
}

// NewPayout builds a Payout from a ledger amount.
func NewPayout(reference, destination string, amount int64, currency string) *Payout {
	return &Payout{
		Reference:   reference,
		Destination: destination,
		Amount:      decimal.NewFromInt(amount),
		Currency:    currency,
	}
}
