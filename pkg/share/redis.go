package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "share:"

// RedisStore keeps one JSON-encoded State per form under share:{formID}.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("share: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("share: connect to redis: %w", err)
	}
	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: keyPrefix}
}

func (s *RedisStore) key(formID string) string {
	return s.prefix + formID
}

func (s *RedisStore) Get(ctx context.Context, formID string) (State, error) {
	raw, err := s.client.Get(ctx, s.key(formID)).Result()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrUnknownForm
	}
	if err != nil {
		return State{}, fmt.Errorf("share: get %s: %w", formID, err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, fmt.Errorf("share: decode %s: %w", formID, err)
	}
	return state, nil
}

func (s *RedisStore) SetPublic(ctx context.Context, formID string, public bool, at time.Time) (State, error) {
	state := State{FormID: formID, Public: public, UpdatedAt: at.UTC()}
	data, err := json.Marshal(state)
	if err != nil {
		return State{}, fmt.Errorf("share: encode %s: %w", formID, err)
	}
	if err := s.client.Set(ctx, s.key(formID), data, 0).Err(); err != nil {
		return State{}, fmt.Errorf("share: save %s: %w", formID, err)
	}
	return state, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
