package store

import (
	"context"
	"strings"
)

const scopePrefix = "profile/"

type scoped struct {
	inner  Store
	prefix string
}

// Scope namespaces every key of s under the given browser profile. A nil
// store yields Unavailable.
func Scope(s Store, profile string) Store {
	if s == nil {
		return Unavailable{}
	}
	return scoped{inner: s, prefix: ScopedKey(profile, "")}
}

// ScopedKey returns the key under which a profile's value is stored.
func ScopedKey(profile, key string) string {
	return scopePrefix + strings.TrimSpace(profile) + "/" + key
}

func (s scoped) Save(ctx context.Context, key string, value any) error {
	return s.inner.Save(ctx, s.prefix+key, value)
}

func (s scoped) Load(ctx context.Context, key string, dst any) (bool, error) {
	return s.inner.Load(ctx, s.prefix+key, dst)
}

func (s scoped) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, s.prefix+key)
}
