package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
)

const defaultSessionKeyPrefix = "ico:session:"

// RedisSessionStore keeps sessions in Redis with the session expiry as key
// TTL, so several BFF instances can share logins.
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisSessionStore connects to Redis and verifies the connection
func NewRedisSessionStore(ctx context.Context, cfg RedisConfig) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSessionStoreWithClient(client, ""), nil
}

// NewRedisSessionStoreWithClient wraps an existing client
func NewRedisSessionStoreWithClient(client *redis.Client, keyPrefix string) *RedisSessionStore {
	if keyPrefix == "" {
		keyPrefix = defaultSessionKeyPrefix
	}
	return &RedisSessionStore{client: client, keyPrefix: keyPrefix, now: time.Now}
}

// Save stores the session as JSON until it expires
func (s *RedisSessionStore) Save(ctx context.Context, session *identity.Session) error {
	ttl := session.TTL(s.now())
	if ttl <= 0 {
		return identity.ErrSessionNotFound
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get loads a session, returning identity.ErrSessionNotFound when missing
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*identity.Session, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, identity.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session identity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.IsExpired(s.now()) {
		return nil, identity.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes a session
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

var _ identity.SessionStore = (*RedisSessionStore)(nil)
