// Package consent records whether a client has accepted the privacy notice.
package consent

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Key is the name of the persisted consent flag.
const Key = "lgpd_consent"

// Store persists one consent flag per client.
type Store interface {
	Accepted(ctx context.Context, clientID string) (bool, error)
	Accept(ctx context.Context, clientID string) error
}

var ErrMissingClient = errors.New("consent: missing client id")

// RedisStore keeps flags under "lgpd_consent:<clientID>" with no expiry.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Accepted(ctx context.Context, clientID string) (bool, error) {
	if clientID == "" {
		return false, ErrMissingClient
	}
	n, err := s.client.Exists(ctx, redisKey(clientID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Accept(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrMissingClient
	}
	return s.client.Set(ctx, redisKey(clientID), "true", 0).Err()
}

func redisKey(clientID string) string {
	return Key + ":" + clientID
}

// MemoryStore is used when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	accepted map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accepted: make(map[string]struct{})}
}

func (s *MemoryStore) Accepted(_ context.Context, clientID string) (bool, error) {
	if clientID == "" {
		return false, ErrMissingClient
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accepted[clientID]
	return ok, nil
}

func (s *MemoryStore) Accept(_ context.Context, clientID string) error {
	if clientID == "" {
		return ErrMissingClient
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted[clientID] = struct{}{}
	return nil
}
