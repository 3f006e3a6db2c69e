// Package store is the durable key-value surface for one taker's exam
// state. Writes are last-write-wins by contract; concurrent writers (two
// tabs on the same session) are not reconciled.
package store

import "context"

// Store is a minimal durable key-value backend. Get returns ok=false when
// the key is absent. Set overwrites unconditionally. Clear removes every
// key owned by this store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
