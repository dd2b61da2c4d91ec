package tokenstore

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

// Redis is a Store on a shared Redis instance. Keys are namespaced "<scope>:<key>".
type Redis struct {
	client *redis.Client
	scope  string
}

// NewRedis creates a Redis-backed store. The connection is established lazily.
func NewRedis(addr string, db int, scope string) *Redis {
	if addr == "" {
		addr = "localhost:6379"
	}
	return NewRedisWithClient(redis.NewClient(&redis.Options{Addr: addr, DB: db}), scope)
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, scope string) *Redis {
	return &Redis{client: client, scope: scope}
}

func (r *Redis) key(k string) string {
	return r.scope + ":" + k
}

func (r *Redis) Get(key string) string {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Warning: redis get %s failed: %v", r.key(key), err)
		}
		return ""
	}
	return v
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *Redis) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.client.Del(ctx, r.key(key)).Err()
}
