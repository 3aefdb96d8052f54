package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmpty reports that no transfer was waiting within the poll window.
var ErrEmpty = errors.New("payout queue empty")

// Queue buffers refund transfers that could not be completed inline. The
// ledger enqueues after committing its accounting; the worker drains.
type Queue interface {
	Enqueue(ctx context.Context, t Transfer) error
	// Dequeue blocks up to the given timeout and returns ErrEmpty when
	// nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*Transfer, error)
}

const redisQueueKey = "courze:payout:retry"

// RedisQueue is a redis-list-backed transfer queue, durable across service
// restarts.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue constructs a redis-backed payout queue.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, t Transfer) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal transfer: %w", err)
	}
	if err := q.client.LPush(ctx, redisQueueKey, raw).Err(); err != nil {
		return fmt.Errorf("enqueue transfer: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Transfer, error) {
	res, err := q.client.BRPop(ctx, timeout, redisQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("dequeue transfer: %w", err)
	}
	// BRPop returns [key, value].
	var t Transfer
	if err := json.Unmarshal([]byte(res[1]), &t); err != nil {
		return nil, fmt.Errorf("unmarshal transfer: %w", err)
	}
	return &t, nil
}

// MemoryQueue is the in-memory queue used in tests and single-process
// development setups.
type MemoryQueue struct {
	mu       sync.Mutex
	pending  []Transfer
	notEmpty chan struct{}
}

// NewMemoryQueue constructs an empty in-memory payout queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{notEmpty: make(chan struct{}, 1)}
}

func (q *MemoryQueue) Enqueue(_ context.Context, t Transfer) error {
	q.mu.Lock()
	q.pending = append(q.pending, t)
	q.mu.Unlock()
	select {
	case q.notEmpty <- struct{}{}:
	default:
	}
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Transfer, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			t := q.pending[0]
			q.pending = q.pending[1:]
			q.mu.Unlock()
			return &t, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrEmpty
		case <-q.notEmpty:
		}
	}
}

// Len reports the number of pending transfers. Test helper.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
