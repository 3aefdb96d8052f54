//go:build integration

package payout_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"courze/internal/payout"
	"courze/pkg/testutil/containers"
)

// transferFunc adapts a function to the Transferer interface.
type transferFunc func(ctx context.Context, t payout.Transfer) error

func (f transferFunc) Transfer(ctx context.Context, t payout.Transfer) error { return f(ctx, t) }

type RedisQueueSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	queue *payout.RedisQueue
}

func TestRedisQueueSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisQueueSuite))
}

func (s *RedisQueueSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.queue = payout.NewRedisQueue(s.redis.Client)
}

func (s *RedisQueueSuite) SetupTest() {
	s.Require().NoError(s.redis.Client.FlushAll(context.Background()).Err())
}

func (s *RedisQueueSuite) TestRoundTrip() {
	ctx := context.Background()

	queued := payout.Transfer{
		UserID:   "alice",
		CourseID: "go-101",
		Amount:   62.5,
		Attempts: 1,
		QueuedAt: time.Now().UTC().Truncate(time.Second),
	}
	s.Require().NoError(s.queue.Enqueue(ctx, queued))

	got, err := s.queue.Dequeue(ctx, time.Second)
	s.Require().NoError(err)
	s.Equal(queued.UserID, got.UserID)
	s.Equal(queued.CourseID, got.CourseID)
	s.Equal(queued.Amount, got.Amount)
	s.Equal(queued.Attempts, got.Attempts)
}

func (s *RedisQueueSuite) TestFIFOAcrossTransfers() {
	ctx := context.Background()

	s.Require().NoError(s.queue.Enqueue(ctx, payout.Transfer{UserID: "alice", Amount: 10}))
	s.Require().NoError(s.queue.Enqueue(ctx, payout.Transfer{UserID: "bob", Amount: 20}))

	first, err := s.queue.Dequeue(ctx, time.Second)
	s.Require().NoError(err)
	s.Equal(10.0, first.Amount)

	second, err := s.queue.Dequeue(ctx, time.Second)
	s.Require().NoError(err)
	s.Equal(20.0, second.Amount)
}

func (s *RedisQueueSuite) TestEmptyTimesOut() {
	_, err := s.queue.Dequeue(context.Background(), 100*time.Millisecond)
	s.Require().ErrorIs(err, payout.ErrEmpty)
}

// TestWorkerDrainsRedisBackedQueue exercises the worker loop against the
// real queue implementation.
func (s *RedisQueueSuite) TestWorkerDrainsRedisBackedQueue() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivered := make(chan payout.Transfer, 1)
	rail := transferFunc(func(_ context.Context, t payout.Transfer) error {
		delivered <- t
		return nil
	})

	s.Require().NoError(s.queue.Enqueue(ctx, payout.Transfer{UserID: "alice", Amount: 50}))

	worker := payout.NewWorker(s.queue, rail, slog.Default())
	go func() { _ = worker.Run(ctx) }()

	select {
	case got := <-delivered:
		s.Equal(50.0, got.Amount)
		s.Equal(1, got.Attempts)
	case <-time.After(10 * time.Second):
		s.Fail("worker did not drain the queue")
	}
}
