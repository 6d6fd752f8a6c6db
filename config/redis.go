package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis dials redis at addr and verifies the connection. A missing
// addr is not an error: auth caching is optional and callers treat a nil
// client as "cache disabled".
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return rdb, nil
}
