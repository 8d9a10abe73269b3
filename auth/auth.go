// Package auth is the authorization oracle: every mutating operation
// names the principal it acts for, and the oracle checks that the caller
// actually authenticated as that principal.
package auth

import (
	"context"

	"lumentix/internal/status"
)

// Authorizer aborts an operation when the caller did not authenticate as
// principal. The caller's credential travels in the context.
type Authorizer interface {
	RequireAuthorized(ctx context.Context, principal string) error
}

// Static authorizes a fixed set of principals, regardless of context.
// Test helper: it stands in for a caller who proved those identities.
type Static struct {
	principals map[string]bool
}

func NewStatic(principals ...string) *Static {
	s := &Static{principals: make(map[string]bool, len(principals))}
	for _, p := range principals {
		s.principals[p] = true
	}
	return s
}

func (s *Static) RequireAuthorized(_ context.Context, principal string) error {
	if !s.principals[principal] {
		return status.ErrUnauthorized
	}
	return nil
}

// AllowAll authorizes every principal. For tests that exercise state
// machine and ledger rules rather than authentication.
type AllowAll struct{}

func (AllowAll) RequireAuthorized(context.Context, string) error { return nil }
