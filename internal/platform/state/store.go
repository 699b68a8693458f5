// Package state stores single-use federated-login state nonces in Redis.
// A nonce is issued before redirecting to the identity provider and must be
// presented back, exactly once, on the callback.
package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "login:state"
	defaultTTL    = 5 * time.Minute
)

// ErrUnknownState is returned when a presented state is missing, expired,
// or already consumed.
var ErrUnknownState = errors.New("unknown or expired login state")

// Store issues and consumes login-state nonces.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore creates a Store. Zero ttl and empty prefix fall back to defaults.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(nonce string) string {
	return fmt.Sprintf("%s:%s", s.prefix, nonce)
}

// Issue creates a fresh nonce valid for the configured TTL.
func (s *Store) Issue(ctx context.Context) (string, error) {
	nonce := uuid.NewString()
	if err := s.client.Set(ctx, s.key(nonce), "1", s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store login state: %w", err)
	}
	return nonce, nil
}

// Consume validates and deletes a nonce in one step, so a state can never
// be replayed.
func (s *Store) Consume(ctx context.Context, nonce string) error {
	if nonce == "" {
		return ErrUnknownState
	}
	err := s.client.GetDel(ctx, s.key(nonce)).Err()
	if errors.Is(err, redis.Nil) {
		return ErrUnknownState
	}
	if err != nil {
		return fmt.Errorf("consume login state: %w", err)
	}
	return nil
}
