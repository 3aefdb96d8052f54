package handler

import (
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
)

// EnrollRequest is the wire shape for POST /enrollments. The student is the
// authenticated principal.
type EnrollRequest struct {
	CourseID string `json:"course_id"`

	parsedCourseID id.CourseID
}

func (r *EnrollRequest) Validate() error {
	courseID, err := id.ParseCourseID(r.CourseID)
	if err != nil {
		return err
	}
	r.parsedCourseID = courseID
	return nil
}

// ParsedCourseID returns the validated course id. Call Validate first.
func (r *EnrollRequest) ParsedCourseID() id.CourseID { return r.parsedCourseID }

// ProgressRequest is the wire shape for POST /enrollments/{courseID}/progress.
type ProgressRequest struct {
	Progress float64 `json:"progress"`
}

func (r *ProgressRequest) Validate() error {
	if r.Progress < 0 || r.Progress > 100 {
		return dErrors.New(dErrors.CodeValidation, "progress must be between 0 and 100")
	}
	return nil
}
