// Package services implements the transactional core: event lifecycle,
// ticket issuance and redemption, escrow and platform-fee bookkeeping,
// and the multisig release policy. Every operation authorizes its acting
// principal first, stages all writes in a storage transaction, and
// commits only on success, so a failed operation never leaves partial
// state behind.
package services

import (
	"strconv"

	"lumentix/monitoring"
)

func track(m *monitoring.Monitor, operation string, err error) {
	if err != nil {
		m.TrackOperation(operation, "error")
		return
	}
	m.TrackOperation(operation, "success")
}

func eventLabel(eventID uint64) string {
	return strconv.FormatUint(eventID, 10)
}
