package models

import (
	"time"

	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
)

// Course is the immutable catalog entry for a course.
//
// Invariants:
//   - ID, Title, and Instructor are non-empty
//   - Price is non-negative, in the smallest currency unit
//   - RefundThreshold is in (0, 100]: the progress percentage at which a
//     student's earned refund reaches the full price
//   - Courses are never updated or deleted after upload
//
// Immutability is what makes the registry safe to cache indefinitely: a
// cached course can never go stale.
type Course struct {
	ID              id.CourseID `json:"id"`
	Instructor      id.UserID   `json:"instructor"`
	Title           string      `json:"title"`
	Price           int64       `json:"price"`
	RefundThreshold float64     `json:"refund_threshold"`
	UploadedAt      time.Time   `json:"uploaded_at"`
}

const maxTitleLength = 255

// NewCourse validates the upload invariants and constructs a catalog entry.
func NewCourse(courseID id.CourseID, instructor id.UserID, title string, price int64, refundThreshold float64, now time.Time) (*Course, error) {
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "course title cannot be empty")
	}
	if len(title) > maxTitleLength {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "course title must be %d characters or less", maxTitleLength)
	}
	if price < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "course price cannot be negative")
	}
	if refundThreshold <= 0 || refundThreshold > 100 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "refund threshold must be in (0, 100]")
	}
	return &Course{
		ID:              courseID,
		Instructor:      instructor,
		Title:           title,
		Price:           price,
		RefundThreshold: refundThreshold,
		UploadedAt:      now,
	}, nil
}
