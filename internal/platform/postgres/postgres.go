// Package postgres opens the database connection and applies the schema.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL, verifies the connection, and applies
// migrations.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Statements are idempotent so startup can run
// them unconditionally.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id               VARCHAR(128) PRIMARY KEY,
		instructor       VARCHAR(128) NOT NULL,
		title            VARCHAR(255) NOT NULL,
		price            BIGINT NOT NULL,
		refund_threshold DOUBLE PRECISION NOT NULL,
		uploaded_at      TIMESTAMP WITH TIME ZONE NOT NULL,

		CONSTRAINT valid_price CHECK (price >= 0),
		CONSTRAINT valid_threshold CHECK (refund_threshold > 0 AND refund_threshold <= 100)
	)`,

	`CREATE TABLE IF NOT EXISTS enrollments (
		user_id         VARCHAR(128) NOT NULL,
		course_id       VARCHAR(128) NOT NULL REFERENCES courses(id),
		progress        DOUBLE PRECISION NOT NULL DEFAULT 0,
		refund_received DOUBLE PRECISION NOT NULL DEFAULT 0,
		enrolled_at     TIMESTAMP WITH TIME ZONE NOT NULL,
		updated_at      TIMESTAMP WITH TIME ZONE NOT NULL,

		PRIMARY KEY (user_id, course_id),
		CONSTRAINT valid_refund CHECK (refund_received >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS certificates (
		id           UUID PRIMARY KEY,
		user_id      VARCHAR(128) NOT NULL,
		course_id    VARCHAR(128) NOT NULL REFERENCES courses(id),
		course_title VARCHAR(255) NOT NULL,
		instructor   VARCHAR(128) NOT NULL,
		issued_at    TIMESTAMP WITH TIME ZONE NOT NULL,

		CONSTRAINT one_certificate_per_enrollment UNIQUE (user_id, course_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_enrollments_course_id ON enrollments(course_id)`,
	`CREATE INDEX IF NOT EXISTS idx_certificates_user_id ON certificates(user_id)`,
}
