package storage

import "context"

// Tx stages the writes of one operation on top of a Store. Reads see the
// staged writes first, then fall through to the store. Nothing touches
// the store until Commit, which hands every staged op to Store.Apply in
// one batch; an operation that fails before Commit therefore leaves the
// store untouched.
type Tx struct {
	store  Store
	writes map[Key]Op
	order  []Key
}

func NewTx(store Store) *Tx {
	return &Tx{
		store:  store,
		writes: make(map[Key]Op),
	}
}

func (tx *Tx) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	if op, ok := tx.writes[key]; ok {
		if op.Remove {
			return nil, false, nil
		}
		return op.Value, true, nil
	}
	return tx.store.Get(ctx, key)
}

func (tx *Tx) Has(ctx context.Context, key Key) (bool, error) {
	if op, ok := tx.writes[key]; ok {
		return !op.Remove, nil
	}
	return tx.store.Has(ctx, key)
}

func (tx *Tx) Set(key Key, value []byte) {
	tx.stage(Op{Key: key, Value: value})
}

func (tx *Tx) Remove(key Key) {
	tx.stage(Op{Key: key, Remove: true})
}

func (tx *Tx) stage(op Op) {
	if _, ok := tx.writes[op.Key]; !ok {
		tx.order = append(tx.order, op.Key)
	}
	tx.writes[op.Key] = op
}

// Commit applies every staged write in staging order.
func (tx *Tx) Commit(ctx context.Context) error {
	if len(tx.order) == 0 {
		return nil
	}
	ops := make([]Op, 0, len(tx.order))
	for _, key := range tx.order {
		ops = append(ops, tx.writes[key])
	}
	return tx.store.Apply(ctx, ops)
}
