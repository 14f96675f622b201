// Package storage defines the key-value persistence contract shared by every
// storefront component, plus typed JSON helpers on top of it.
package storage

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Store.Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// Well-known keys of the persisted records.
const (
	KeyUsers   = "os_users"
	KeySession = "os_current_user"
	KeyCart    = "os_cart"
	KeyReceipt = "os_last_receipt"
)

// Store is a raw key-value store. Values are opaque byte slices; callers use
// Load and Save to work with structured records.
//
// Implementations assume a single reader/writer and need not coordinate
// concurrent writers beyond keeping their own state consistent.
type Store interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value for key in a single write.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}

// Load decodes the JSON record stored under key into a T. Missing entries,
// malformed data and backend read failures all yield fallback: absence is the
// only outcome a reader ever observes.
func Load[T any](ctx context.Context, s Store, key string, fallback T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zctx.From(ctx).Warn("Store read failed, using fallback",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return fallback
	}
	if len(raw) == 0 {
		return fallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		zctx.From(ctx).Warn("Malformed record, using fallback",
			zap.String("key", key),
			zap.Error(err),
		)
		return fallback
	}
	return v
}

// Save encodes v as JSON and stores it under key.
func Save(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "write %s", key)
	}
	return nil
}

// Delete removes key from the store.
func Delete(ctx context.Context, s Store, key string) error {
	if err := s.Remove(ctx, key); err != nil {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}
