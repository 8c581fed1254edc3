package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is a durable key-value backend for the persistence adapter.
type KV interface {
	// Get returns ErrKeyNotFound when key has no value
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	// Delete is a no-op for missing keys
	Delete(ctx context.Context, key string) error
}
