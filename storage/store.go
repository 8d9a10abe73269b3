// Package storage persists every record of the platform in a key-value
// store. The store itself has no multi-key transactions, so each public
// operation runs through a Tx that buffers its writes and applies them in
// a single batch only when the operation has fully succeeded.
package storage

import "context"

// Op is one staged write: a set when Remove is false, a delete otherwise.
type Op struct {
	Key    Key
	Value  []byte
	Remove bool
}

// Store is the key-value collaborator. Get returns ok=false when the key
// is absent. Apply must be all-or-nothing: either every op lands or none.
type Store interface {
	Get(ctx context.Context, key Key) (value []byte, ok bool, err error)
	Has(ctx context.Context, key Key) (bool, error)
	Apply(ctx context.Context, ops []Op) error
}
