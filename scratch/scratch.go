// Package scratch is the local key-value scratch storage: it remembers the
// last signed-in email across reloads so the current profile can be matched
// before any fresh sign-in completes. Nothing else is persisted locally.
package scratch

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const lastEmailKey = "crossconnect:lastEmail"

type Store struct {
	redis *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{redis: client}
}

// SetLastEmail records the email at login or registration time.
func (s *Store) SetLastEmail(ctx context.Context, email string) error {
	if err := s.redis.Set(ctx, lastEmailKey, email, 0).Err(); err != nil {
		return fmt.Errorf("failed to store last email: %w", err)
	}
	return nil
}

// LastEmail returns the remembered email, or "" when none is recorded.
func (s *Store) LastEmail(ctx context.Context) (string, error) {
	email, err := s.redis.Get(ctx, lastEmailKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last email: %w", err)
	}
	return email, nil
}

// Clear forgets the remembered email, typically at sign-out.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, lastEmailKey).Err(); err != nil {
		return fmt.Errorf("failed to clear last email: %w", err)
	}
	return nil
}
