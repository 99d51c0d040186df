// Package kv provides the local key-value store the register persists its
// root state into. A backend holds opaque blobs under string keys.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or
// was deleted.
var ErrNotFound = errors.New("key not found")

// Backend is a durable key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
