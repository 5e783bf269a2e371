package notifyredis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adilnv/internlink/pkg/notify"
	"github.com/go-redis/redis/v8"
)

// RedisQueue implements notify.Queue on a Redis list plus a sorted set
// for delayed retries.
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue creates a new Redis-based notification queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a notification to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, n *notify.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue notification %s: %w", n.ID, err)
	}

	return nil
}

// EnqueueDelayed schedules a notification for later delivery (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, n *notify.Notification, delay time.Duration) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal delayed notification %s: %w", n.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	delayedQueue := q.queueName + ":delayed"

	if err := q.client.ZAdd(ctx, delayedQueue, &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed notification %s: %w", n.ID, err)
	}

	return nil
}

// Dequeue gets a notification from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if err == redis.Nil {
			return nil, nil // No notifications pending
		}
		return nil, fmt.Errorf("dequeue notification: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// MoveDelayedToReady moves delayed notifications that are due to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	delayedQueue := q.queueName + ":delayed"
	now := float64(time.Now().Unix())

	due, err := q.client.ZRangeByScore(ctx, delayedQueue, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed notifications: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	// Use pipeline for atomic operations
	pipe := q.client.Pipeline()
	for _, item := range due {
		pipe.LPush(ctx, q.queueName, item)
		pipe.ZRem(ctx, delayedQueue, item)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed notifications to ready: %w", err)
	}

	return len(due), nil
}

// Size returns the number of pending notifications
func (q *RedisQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

// Ping checks if the Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
