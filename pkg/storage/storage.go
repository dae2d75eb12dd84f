// Package storage persists opaque named records (one per cart session).
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no record exists under the name.
var ErrNotFound = errors.New("storage: record not found")

// Store is a key/value record store. Implementations must be safe for
// concurrent use.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, payload []byte) error
	Ping(ctx context.Context) error
	Close() error
}
