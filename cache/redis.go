package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

func (r *Redis) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Ping reports whether the server is reachable.
func (r *Redis) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

var _ Cache = (*Redis)(nil)
