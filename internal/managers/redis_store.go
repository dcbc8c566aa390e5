package managers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// sessionRetention bounds how long an idle browser session's storage is kept.
const sessionRetention = 30 * 24 * time.Hour

// NewRedisClient creates the client shared by every browser session's store.
func NewRedisClient(addr, password string) *redis.Client {
	log.Infof("Initializing redis storage at %s", addr)
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// RedisStore is a KeyValueStore namespaced to one browser session inside Redis,
// so sessions survive a restart of the service.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, sessionID string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "skillswap:" + sessionID + ":",
	}
}

func (rs *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := rs.client.Get(ctx, rs.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (rs *RedisStore) Set(ctx context.Context, key, value string) error {
	return rs.client.Set(ctx, rs.prefix+key, value, sessionRetention).Err()
}

func (rs *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = rs.prefix + key
	}
	return rs.client.Del(ctx, prefixed...).Err()
}
