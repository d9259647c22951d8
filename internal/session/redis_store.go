package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore mirrors sessions to Redis keys that expire with the session.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
	logger *slog.Logger
}

// NewRedisStore creates a new Redis-backed session store
func NewRedisStore(addr, password string, db int, logger *slog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return NewRedisStoreWithClient(client, logger)
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		now:    time.Now,
		logger: logger,
	}
}

// Ping checks that Redis is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Save stores the session with a TTL matching its remaining lifetime.
func (r *RedisStore) Save(ctx context.Context, id string, s *Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes a session key
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}

// LoadAll scans every session key.
func (r *RedisStore) LoadAll(ctx context.Context) (map[string]*Session, error) {
	sessions := make(map[string]*Session)

	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			// expired between SCAN and GET
			if err == redis.Nil {
				continue
			}
			r.logger.Error("Error reading session key", "key", key, "error", err)
			continue
		}

		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			r.logger.Error("Error parsing session key", "key", key, "error", err)
			continue
		}
		sessions[strings.TrimPrefix(key, redisKeyPrefix)] = &s
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	return sessions, nil
}
