package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Slot when nothing was ever written under the key.
var ErrNotFound = errors.New("key not found")

// Slot is a durable key-value cell. Put replaces the whole value.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
