package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"courze/internal/course/metrics"
	"courze/internal/course/models"
	id "courze/pkg/domain"
)

// Store is the persistence surface the cache decorates.
type Store interface {
	CreateIfAbsent(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
}

// Cached is a redis read-through decorator over a course store. Courses are
// immutable after upload, so cached entries can never be stale; the TTL only
// bounds memory, not correctness. Cache failures degrade to the underlying
// store rather than failing the lookup.
type Cached struct {
	next    Store
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCached wraps next with a redis read-through cache on FindByID. Writes
// and listings pass straight through.
func NewCached(next Store, client *redis.Client, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Cached {
	return &Cached{next: next, client: client, ttl: ttl, logger: logger, metrics: m}
}

func (c *Cached) CreateIfAbsent(ctx context.Context, course *models.Course) error {
	return c.next.CreateIfAbsent(ctx, course)
}

func (c *Cached) List(ctx context.Context) ([]models.Course, error) {
	return c.next.List(ctx)
}

func (c *Cached) FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error) {
	key := cacheKey(courseID)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var course models.Course
		if unmarshalErr := json.Unmarshal(raw, &course); unmarshalErr == nil {
			c.metrics.IncrementCacheCheck("hit")
			return &course, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "course cache read failed",
			"course_id", courseID,
			"error", err,
		)
	}

	c.metrics.IncrementCacheCheck("miss")
	course, err := c.next.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(course); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, raw, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "course cache write failed",
				"course_id", courseID,
				"error", setErr,
			)
		}
	}
	return course, nil
}

func cacheKey(courseID id.CourseID) string {
	return fmt.Sprintf("courze:course:%s", courseID)
}
