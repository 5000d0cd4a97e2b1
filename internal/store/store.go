// Package store persists JSON-encoded values under string keys for a single
// browser profile.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	applog "doubtsolver/internal/log"
)

// Keys used by the application. Each one is saved and restored independently.
const (
	KeyDoubts     = "react-doubts"
	KeyActiveUser = "react-doubtUser"
	KeyDarkMode   = "react-isDarkMode"
	KeyAccounts   = "react-userAccounts"
)

// Store is a key/value blob store. Writes are visible to subsequent reads as
// soon as Save returns.
type Store interface {
	// Save encodes value and associates it with key, replacing any prior value.
	Save(ctx context.Context, key string, value any) error
	// Load decodes the value saved under key into dst. It reports false when
	// nothing is saved under key.
	Load(ctx context.Context, key string, dst any) (bool, error)
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

func encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return data, nil
}

func decode(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}

// Restore loads key into dst and treats any store failure as absence, so
// callers fall back to their built-in defaults.
func Restore(ctx context.Context, s Store, key string, dst any) bool {
	found, err := s.Load(ctx, key, dst)
	if err != nil {
		applog.Warn(ctx, "store load failed, using defaults", "key", key, "error", err)
		return false
	}
	return found
}

// Persist saves value under key. Failures are logged and the caller's
// in-memory state stays authoritative.
func Persist(ctx context.Context, s Store, key string, value any) {
	if err := s.Save(ctx, key, value); err != nil {
		applog.Warn(ctx, "store save failed, continuing in memory", "key", key, "error", err)
	}
}

// Forget removes key, logging failures.
func Forget(ctx context.Context, s Store, key string) {
	if err := s.Remove(ctx, key); err != nil {
		applog.Warn(ctx, "store remove failed", "key", key, "error", err)
	}
}
