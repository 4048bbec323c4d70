package preferences

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKey is the hash holding the preference fields.
const RedisKey = "pfh:preferences"

// RedisStore persists preferences as fields of one Redis hash.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a store backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context) (Preferences, error) {
	values, err := s.client.HGetAll(ctx, RedisKey).Result()
	if err != nil {
		return Defaults(), fmt.Errorf("loading preferences: %w", err)
	}
	return FromValues(values), nil
}

func (s *RedisStore) Save(ctx context.Context, p Preferences) error {
	values := p.Values()
	args := make([]any, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}
	if err := s.client.HSet(ctx, RedisKey, args...).Err(); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}
