package output

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rsilvagit/jobfit/internal/model"
)

// DefaultChannel is the pub/sub channel postings are announced on.
const DefaultChannel = "jobfit:postings"

// RedisPublisher announces postings on a Redis pub/sub channel. Nothing is
// stored; subscribers that are not listening miss the message.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis at the given URL.
// URL format: redis://localhost:6379
func NewRedisPublisher(ctx context.Context, redisURL, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return newRedisPublisher(client, channel), nil
}

func newRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Publish sends the posting as JSON.
func (rp *RedisPublisher) Publish(ctx context.Context, p model.JobPosting) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("redis: marshal posting: %w", err)
	}
	if err := rp.client.Publish(ctx, rp.channel, data).Err(); err != nil {
		return fmt.Errorf("redis: publish to %s: %w", rp.channel, err)
	}
	return nil
}

func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}
