package models

import (
	"time"

	id "courze/pkg/domain"
)

// Record is the per-(user, course) enrollment ledger entry.
//
// Invariants:
//   - At most one record exists per (user, course) pair
//   - RefundReceived is monotonically non-decreasing over the record's
//     lifetime and never exceeds the course price
//   - Records are never deleted
//
// Progress itself is last-write-wins: a student's tracking client may report
// out of order, and a lower report must not claw back refunds already
// released. The monotonicity of RefundReceived is carried by the refund
// computation, not by rejecting progress decreases.
type Record struct {
	UserID         id.UserID   `json:"user_id"`
	CourseID       id.CourseID `json:"course_id"`
	Progress       float64     `json:"progress"`
	RefundReceived float64     `json:"refund_received"`
	EnrolledAt     time.Time   `json:"enrolled_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewRecord creates the initial ledger entry for a fresh enrollment.
func NewRecord(userID id.UserID, courseID id.CourseID, now time.Time) *Record {
	return &Record{
		UserID:         userID,
		CourseID:       courseID,
		Progress:       0,
		RefundReceived: 0,
		EnrolledAt:     now,
		UpdatedAt:      now,
	}
}
