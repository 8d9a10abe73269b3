package models

// EscrowConfig is the multisig release policy for one event: the signer
// set and how many distinct approvals a distribution needs.
type EscrowConfig struct {
	EventID   uint64   `json:"event_id"`
	Signers   []string `json:"signers"`
	Threshold uint32   `json:"threshold"`
}

// HasSigner reports whether principal is part of the configured set.
func (c *EscrowConfig) HasSigner(principal string) bool {
	for _, s := range c.Signers {
		if s == principal {
			return true
		}
	}
	return false
}
