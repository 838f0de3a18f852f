package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

// ttl returns 0 (no expiry) for sessions without ExpiresAt.
func ttl(s *Session) (time.Duration, error) {
	if s.ExpiresAt.IsZero() {
		return 0, nil
	}
	d := time.Until(s.ExpiresAt)
	if d <= 0 {
		return 0, fmt.Errorf("session: expires_at must be in the future")
	}
	return d, nil
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s.ID == "" {
		return fmt.Errorf("session: missing session_id")
	}

	d, err := ttl(s)
	if err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(s.ID), data, d).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrIDTaken
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}

	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	if s.ID == "" {
		return fmt.Errorf("session: missing session_id")
	}

	d, err := ttl(s)
	if err != nil {
		// If expired, delete session instead of extending
		return r.client.Del(ctx, r.key(s.ID)).Err()
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	// XX: a session deleted by logout must stay deleted.
	ok, err := r.client.SetXX(ctx, r.key(s.ID), data, d).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Len(ctx context.Context) (int, error) {
	n := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n, iter.Err()
}
