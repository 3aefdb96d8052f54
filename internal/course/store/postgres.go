package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"courze/internal/course/models"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
)

// Postgres persists courses in PostgreSQL. The catalog is append-only, so the
// only write path is an INSERT guarded by the primary key.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed course store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func (s *Postgres) CreateIfAbsent(ctx context.Context, course *models.Course) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (id, instructor, title, price, refund_threshold, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		course.ID.String(), course.Instructor.String(), course.Title,
		course.Price, course.RefundThreshold, course.UploadedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, instructor, title, price, refund_threshold, uploaded_at
		FROM courses WHERE id = $1`,
		courseID.String(),
	)
	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return course, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, instructor, title, price, refund_threshold, uploaded_at
		FROM courses ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		course     models.Course
		courseID   string
		instructor string
	)
	if err := row.Scan(&courseID, &instructor, &course.Title, &course.Price, &course.RefundThreshold, &course.UploadedAt); err != nil {
		return nil, err
	}
	course.ID = id.CourseID(courseID)
	course.Instructor = id.UserID(instructor)
	return &course, nil
}
