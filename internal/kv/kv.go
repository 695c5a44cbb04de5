// Package kv provides the durable key-value slots backing the local cache.
package kv

import "context"

// Store is a byte-oriented key-value store. Get reports false for a key
// that was never set or has been deleted.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
