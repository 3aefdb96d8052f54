package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"courze/internal/enrollment/models"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
)

// Postgres persists enrollment records in PostgreSQL, keyed by the composite
// (user_id, course_id) primary key.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed enrollment store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func (s *Postgres) Create(ctx context.Context, record *models.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enrollments (user_id, course_id, progress, refund_received, enrolled_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		record.UserID.String(), record.CourseID.String(),
		record.Progress, record.RefundReceived, record.EnrolledAt, record.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

func (s *Postgres) Find(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, course_id, progress, refund_received, enrolled_at, updated_at
		FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		userID.String(), courseID.String(),
	)

	var (
		record      models.Record
		userIDRaw   string
		courseIDRaw string
	)
	err := row.Scan(&userIDRaw, &courseIDRaw, &record.Progress, &record.RefundReceived, &record.EnrolledAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	record.UserID = id.UserID(userIDRaw)
	record.CourseID = id.CourseID(courseIDRaw)
	return &record, nil
}

// Update commits a recomputed record. The refund_received guard in the WHERE
// clause makes the monotonicity invariant hold even if a concurrent writer
// slipped past the service-level serialization.
func (s *Postgres) Update(ctx context.Context, record *models.Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE enrollments
		SET progress = $3, refund_received = $4, updated_at = $5
		WHERE user_id = $1 AND course_id = $2 AND refund_received <= $4`,
		record.UserID.String(), record.CourseID.String(),
		record.Progress, record.RefundReceived, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	if affected == 0 {
		// Either the record does not exist or the commit would have
		// decreased refund_received.
		if _, findErr := s.Find(ctx, record.UserID, record.CourseID); findErr != nil {
			return findErr
		}
		return sentinel.ErrConflict
	}
	return nil
}
