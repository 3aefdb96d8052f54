package models

import (
	"time"

	id "courze/pkg/domain"
)

// Certificate attests that a student completed a course.
//
// Invariants:
//   - At most one certificate exists per (user, course) pair
//   - A certificate is only minted once progress has reached 100
//   - Certificates are immutable and never deleted
type Certificate struct {
	ID          id.CertificateID `json:"id"`
	UserID      id.UserID        `json:"user_id"`
	CourseID    id.CourseID      `json:"course_id"`
	CourseTitle string           `json:"course_title"`
	Instructor  id.UserID        `json:"instructor"`
	IssuedAt    time.Time        `json:"issued_at"`
}

// NewCertificate mints a certificate payload for a completed enrollment.
func NewCertificate(userID id.UserID, courseID id.CourseID, courseTitle string, instructor id.UserID, now time.Time) *Certificate {
	return &Certificate{
		ID:          id.NewCertificateID(),
		UserID:      userID,
		CourseID:    courseID,
		CourseTitle: courseTitle,
		Instructor:  instructor,
		IssuedAt:    now,
	}
}
