package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "responses:"

// RedisStore keeps one list per form under responses:{formID}, newest record
// at the head.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("responses: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("responses: connect to redis: %w", err)
	}
	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: keyPrefix, now: time.Now}
}

func (s *RedisStore) key(formID string) string {
	return s.prefix + formID
}

func (s *RedisStore) Submit(ctx context.Context, record Record) (Record, error) {
	record, err := prepare(record, s.now)
	if err != nil {
		return Record{}, err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("responses: encode record: %w", err)
	}
	if err := s.client.LPush(ctx, s.key(record.FormID), data).Err(); err != nil {
		return Record{}, fmt.Errorf("responses: save record: %w", err)
	}
	return record, nil
}

// List decodes every stored record. Entries that fail to decode are skipped.
func (s *RedisStore) List(ctx context.Context, formID string) ([]Record, error) {
	items, err := s.client.LRange(ctx, s.key(formID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("responses: list %s: %w", formID, err)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var record Record
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	newestFirst(records)
	return records, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
