// Package redis implements the persisted cursor store on top of a Redis
// connection. No TTLs: user state lives until an explicit reset.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the production KV implementation.
type Store struct {
	client *redis.Client
}

// NewStore wraps an established Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// GetString returns the value at key, or "" when the key does not exist.
func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

// SetString stores value at key.
func (s *Store) SetString(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// GetStrings returns the string array at key, or nil when absent.
// Arrays are stored as JSON so ordering and ids round-trip exactly.
func (s *Store) GetStrings(ctx context.Context, key string) ([]string, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return values, nil
}

// SetStrings stores the string array at key.
func (s *Store) SetStrings(ctx context.Context, key string, values []string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// GetInt returns the integer at key, or 0 when absent.
func (s *Store) GetInt(ctx context.Context, key string) (int, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get %s: %w", key, err)
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s as int: %w", key, err)
	}
	return n, nil
}

// SetInt stores value at key.
func (s *Store) SetInt(ctx context.Context, key string, value int) error {
	if err := s.client.Set(ctx, key, strconv.Itoa(value), 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// GetTime returns the timestamp at key, or the zero time when absent.
func (s *Store) GetTime(ctx context.Context, key string) (time.Time, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get %s: %w", key, err)
	}

	t, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s as time: %w", key, err)
	}
	return t, nil
}

// SetTime stores value at key in RFC3339 with nanoseconds.
func (s *Store) SetTime(ctx context.Context, key string, value time.Time) error {
	if err := s.client.Set(ctx, key, value.Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys; missing keys are not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}
