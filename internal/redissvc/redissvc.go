// Package redissvc holds the Redis-backed pieces of the storefront: the
// catalog page cache and the refresh token store.
package redissvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageKeyPrefix    = "storefront:catalog:"
	refreshKeyPrefix = "storefront:refresh:"
)

type RedisService struct {
	rdb     *redis.Client
	pageTTL time.Duration
}

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func NewRedisService(rdb *redis.Client, pageTTL time.Duration) *RedisService {
	if pageTTL <= 0 {
		pageTTL = time.Minute
	}
	return &RedisService{rdb: rdb, pageTTL: pageTTL}
}

// Get returns a cached catalog page. A missing key is a miss, not an error.
func (s *RedisService) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return data, true, nil
}

func (s *RedisService) Set(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, pageKeyPrefix+key, data, s.pageTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate deletes every cached catalog page.
func (s *RedisService) Invalidate(ctx context.Context) error {
	return s.deleteByPattern(ctx, pageKeyPrefix+"*")
}

func (s *RedisService) deleteByPattern(ctx context.Context, pattern string) error {
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis delete failed: %w", err)
		}
	}
	return iter.Err()
}

func (s *RedisService) SaveRefreshToken(ctx context.Context, token, username string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+token, username, ttl).Err()
}

// LookupRefreshToken returns the username the token was issued to.
func (s *RedisService) LookupRefreshToken(ctx context.Context, token string) (string, bool, error) {
	username, err := s.rdb.Get(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return username, true, nil
}

// RevokeRefreshToken deletes the token and reports whether it existed.
func (s *RedisService) RevokeRefreshToken(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Del(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
