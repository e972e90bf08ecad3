package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisKVRepo implements KVRepo on a Redis server. Keys are stored as plain
// strings under an optional prefix.
type RedisKVRepo struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisKVRepo connects to addr and verifies the server answers a ping.
func NewRedisKVRepo(ctx context.Context, addr, password string, database int, prefix string) (*RedisKVRepo, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          database,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisKVRepo{rdb: rdb, prefix: prefix}, nil
}

func (r *RedisKVRepo) key(k string) string {
	return r.prefix + k
}

func (r *RedisKVRepo) Get(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("kv entry %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading kv entry %q: %w", key, err)
	}
	return v, nil
}

func (r *RedisKVRepo) Put(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("writing kv entry %q: %w", key, err)
	}
	return nil
}

func (r *RedisKVRepo) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("deleting kv entry %q: %w", key, err)
	}
	return nil
}

func (r *RedisKVRepo) Close() error {
	return r.rdb.Close()
}
