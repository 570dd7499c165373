package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the client that backs the job queues and the screen
// update pub/sub. Fails fast: without Redis neither workers nor the KDS
// screens work, so the server should not come up half-alive.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.ClientName = "puestito-backend"

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
