// Package store defines the durable key-value contract shared by the
// rotation engine, streak tracker and achievement engine. Values are keyed
// by stable string names; missing keys read back as zero values rather than
// errors, so callers only deal with genuine transport failures.
package store

import (
	"context"
	"time"
)

// KV is the persisted cursor store. Implementations must round-trip string
// arrays and integers losslessly; the deck ordering and the serialized
// achievement list depend on it. Writes that fail are reported but callers
// treat in-memory state as authoritative and retry on the next save.
type KV interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string) error

	GetStrings(ctx context.Context, key string) ([]string, error)
	SetStrings(ctx context.Context, key string, values []string) error

	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int) error

	GetTime(ctx context.Context, key string) (time.Time, error)
	SetTime(ctx context.Context, key string, value time.Time) error

	Delete(ctx context.Context, keys ...string) error
}
