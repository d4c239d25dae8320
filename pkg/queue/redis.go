package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"OptScreen/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisQueue pushes messages onto capped Redis lists, one list per message
// type. It only produces; consumers pop from the tail with BRPOP.
type RedisQueue struct {
	logger    *logger.Logger
	client    redis.Cmdable
	keyPrefix string
	maxLen    int64
	now       func() time.Time
	newID     func() string
}

var _ QueueService = (*RedisQueue)(nil)

// RedisQueueOption configures RedisQueue.
type RedisQueueOption func(*RedisQueue)

// WithKeyPrefix sets custom key prefix.
func WithKeyPrefix(prefix string) RedisQueueOption {
	return func(r *RedisQueue) {
		r.keyPrefix = prefix
	}
}

// WithMaxLen caps every list at n entries. Zero leaves lists unbounded.
func WithMaxLen(n int64) RedisQueueOption {
	return func(r *RedisQueue) {
		r.maxLen = n
	}
}

// NewRedisPublisher creates a publisher-only queue on client. The client
// stays owned by the caller.
func NewRedisPublisher(lgr *logger.Logger, client redis.Cmdable, opts ...RedisQueueOption) *RedisQueue {
	if lgr == nil {
		lgr = logger.Nop()
	}
	q := &RedisQueue{
		logger:    lgr,
		client:    client,
		keyPrefix: "optscreen:queue",
		maxLen:    1000,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Key returns the list a message type is pushed to.
func (r *RedisQueue) Key(msgType string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, msgType)
}

// Enqueue adds a message to the head of its type's list and trims the tail.
func (r *RedisQueue) Enqueue(ctx context.Context, msgType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msgData, err := json.Marshal(Message{
		ID:        r.newID(),
		Type:      msgType,
		Payload:   raw,
		Timestamp: r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := r.Key(msgType)
	if err := r.client.LPush(ctx, key, msgData).Err(); err != nil {
		return fmt.Errorf("lpush: %w", err)
	}
	if r.maxLen > 0 {
		if err := r.client.LTrim(ctx, key, 0, r.maxLen-1).Err(); err != nil {
			r.logger.Warn("redis queue trim failed", logger.String("key", key), logger.Error(err))
		}
	}
	return nil
}

// PublishMessage publishes a message (implements QueueService).
func (r *RedisQueue) PublishMessage(ctx context.Context, msgType string, payload interface{}) error {
	return r.Enqueue(ctx, msgType, payload)
}
