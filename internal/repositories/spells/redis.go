package spells

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// Key patterns
	spellKeyPrefix = "spell:cache:"
	indexKey       = "spell:cache:index"

	// TTL for cached spells
	defaultTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed spell cache
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}
}

// NewRedis creates a new Redis-backed spell cache with the default TTL
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client: client,
		TTL:    defaultTTL,
	})
}

// Get retrieves a spell by key
func (r *redisRepository) Get(ctx context.Context, key string) (*spell.Spell, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("cache key cannot be empty")
	}

	data, err := r.client.Get(ctx, spellKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("spell not cached: %s", key)
		}
		return nil, dnderr.Wrap(err, "failed to get cached spell")
	}

	var s spell.Spell
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, dnderr.Wrap(err, "failed to deserialize cached spell")
	}

	return &s, nil
}

// Set stores a spell with the configured TTL and records its key in the index
func (r *redisRepository) Set(ctx context.Context, key string, s *spell.Spell) error {
	if key == "" {
		return dnderr.InvalidArgument("cache key cannot be empty")
	}
	if s == nil {
		return errors.New("spell cannot be nil")
	}

	jsonData, err := json.Marshal(s)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize spell")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, spellKeyPrefix+key, string(jsonData), r.ttl)
	pipe.SAdd(ctx, indexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to cache spell")
	}

	return nil
}

// Len counts indexed keys. Entries that expired since they were indexed are
// still counted until the next Clear.
func (r *redisRepository) Len(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, indexKey).Result()
	if err != nil {
		return 0, dnderr.Wrap(err, "failed to count cached spells")
	}
	return int(n), nil
}

// Clear deletes every indexed spell and the index itself
func (r *redisRepository) Clear(ctx context.Context) error {
	keys, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return dnderr.Wrap(err, "failed to list cached spells")
	}

	toDelete := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		toDelete = append(toDelete, spellKeyPrefix+key)
	}
	toDelete = append(toDelete, indexKey)

	if err := r.client.Del(ctx, toDelete...).Err(); err != nil {
		return dnderr.Wrap(err, "failed to clear cached spells")
	}

	return nil
}
