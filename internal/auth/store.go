package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/solivera/gatekeeper/internal/platform/httpx"
)

// Store is the credential store consumed by the service: a durable key-value
// mapping from canonical email to user record.
type Store interface {
	// Get returns the record for email, or httpx.ErrNotFound when absent.
	Get(ctx context.Context, email string) (*User, error)
	// Put writes the record unconditionally.
	Put(ctx context.Context, email string, user *User) error
	// PutIfAbsent writes the record only when no record exists for email and
	// reports whether the write happened. This is the atomic insert the
	// signup path relies on to keep one record per email under concurrency.
	PutIfAbsent(ctx context.Context, email string, user *User) (bool, error)
}

// RedisStore implements Store on Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed credential store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// userKey builds the store key for a canonical email.
func userKey(email string) string {
	return "users." + email
}

// Get fetches a user record by canonical email.
func (s *RedisStore) Get(ctx context.Context, email string) (*User, error) {
	payload, err := s.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("auth store: get %q: %w", email, err)
	}
	var user User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("auth store: decode record for %q: %w", email, err)
	}
	return &user, nil
}

// Put writes a user record. Records do not expire.
func (s *RedisStore) Put(ctx context.Context, email string, user *User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("auth store: encode record for %q: %w", email, err)
	}
	if err := s.client.Set(ctx, userKey(email), payload, 0).Err(); err != nil {
		return fmt.Errorf("auth store: set %q: %w", email, err)
	}
	return nil
}

// PutIfAbsent writes a record via SETNX so that exactly one of any number of
// concurrent writers for the same email wins.
func (s *RedisStore) PutIfAbsent(ctx context.Context, email string, user *User) (bool, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return false, fmt.Errorf("auth store: encode record for %q: %w", email, err)
	}
	inserted, err := s.client.SetNX(ctx, userKey(email), payload, 0).Result()
	if err != nil {
		return false, fmt.Errorf("auth store: setnx %q: %w", email, err)
	}
	return inserted, nil
}

var _ Store = (*RedisStore)(nil)
