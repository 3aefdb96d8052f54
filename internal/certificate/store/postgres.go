package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"courze/internal/certificate/models"
	id "courze/pkg/domain"
	"courze/pkg/platform/sentinel"
)

// Postgres persists certificates in PostgreSQL. A unique index on
// (user_id, course_id) enforces the one-certificate-per-pair invariant at the
// storage layer.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed certificate store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

func (s *Postgres) CreateIfAbsent(ctx context.Context, cert *models.Certificate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO certificates (id, user_id, course_id, course_title, instructor, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(cert.ID), cert.UserID.String(), cert.CourseID.String(),
		cert.CourseTitle, cert.Instructor.String(), cert.IssuedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, certID id.CertificateID) (*models.Certificate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, course_id, course_title, instructor, issued_at
		FROM certificates WHERE id = $1`,
		uuid.UUID(certID),
	)
	return scanCertificate(row)
}

func (s *Postgres) FindByEnrollment(ctx context.Context, userID id.UserID, courseID id.CourseID) (*models.Certificate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, course_id, course_title, instructor, issued_at
		FROM certificates WHERE user_id = $1 AND course_id = $2`,
		userID.String(), courseID.String(),
	)
	return scanCertificate(row)
}

func scanCertificate(row *sql.Row) (*models.Certificate, error) {
	var (
		cert       models.Certificate
		certID     uuid.UUID
		userID     string
		courseID   string
		instructor string
	)
	err := row.Scan(&certID, &userID, &courseID, &cert.CourseTitle, &instructor, &cert.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find certificate: %w", err)
	}
	cert.ID = id.CertificateID(certID)
	cert.UserID = id.UserID(userID)
	cert.CourseID = id.CourseID(courseID)
	cert.Instructor = id.UserID(instructor)
	return &cert, nil
}
