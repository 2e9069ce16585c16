package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound means no confirmation code is pending for the username,
// either because signup never happened or because the code expired.
var ErrCodeNotFound = errors.New("confirmation code not found")

// ConfirmationStore keeps pending confirmation codes (hashed) until they are
// rotated by a new signup or expire.
type ConfirmationStore interface {
	Set(ctx context.Context, username, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, username string) (string, error)
}

type redisConfirmationStore struct {
	client *redis.Client
}

func NewConfirmationStore(client *redis.Client) ConfirmationStore {
	return &redisConfirmationStore{client: client}
}

func key(username string) string {
	return "confirmation:" + username
}

func (s *redisConfirmationStore) Set(ctx context.Context, username, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(username), codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

func (s *redisConfirmationStore) Get(ctx context.Context, username string) (string, error) {
	val, err := s.client.Get(ctx, key(username)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load confirmation code: %w", err)
	}
	return val, nil
}
