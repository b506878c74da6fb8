package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStorage adapts the go-redis client to fiber.Storage so the session
// middleware can keep server-side session state in Redis.
type SessionStorage struct {
	client *redis.Client
}

// NewSessionStorage builds storage over an existing Redis connection.
func NewSessionStorage(r *Redis) *SessionStorage {
	if r == nil {
		return &SessionStorage{}
	}
	return &SessionStorage{client: r.Client}
}

// Get returns the session payload, or nil when the key is absent or expired.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if s.client == nil {
		return nil, nil
	}
	val, err := s.client.Get(context.Background(), sessionKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores the session payload with the given expiry.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Set(context.Background(), sessionKeyPrefix+key, val, exp).Err()
}

// Delete removes a single session.
func (s *SessionStorage) Delete(key string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(context.Background(), sessionKeyPrefix+key).Err()
}

// Reset removes all sessions.
func (s *SessionStorage) Reset() error {
	if s.client == nil {
		return nil
	}
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the underlying client is owned by persistence.Redis.
func (s *SessionStorage) Close() error {
	return nil
}
