package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
)

// DefaultKey is the hash holding the settings.
const DefaultKey = "gamebot:settings"

// RedisStore keeps settings in one Redis hash, one field per settings key.
type RedisStore struct {
	client *goredis.Client
	key    string
}

// New connects to addr and pings the server.
func New(ctx context.Context, addr string, db int, key string) (*RedisStore, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, key), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *goredis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

// Load reads every field of the hash.
func (s *RedisStore) Load(ctx context.Context) (store.Settings, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}
	settings := make(store.Settings, len(fields))
	for field, raw := range fields {
		var values []string
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, fmt.Errorf("decode setting %q: %w", field, err)
		}
		settings[field] = values
	}
	return settings, nil
}

// Save replaces the hash atomically.
func (s *RedisStore) Save(ctx context.Context, settings store.Settings) error {
	fields := make(map[string]any, len(settings))
	for key, values := range settings {
		if values == nil {
			values = []string{}
		}
		raw, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("encode setting %q: %w", key, err)
		}
		fields[key] = string(raw)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, s.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
