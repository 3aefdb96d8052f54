package handler

import (
	id "courze/pkg/domain"
	dErrors "courze/pkg/domain-errors"
)

// UploadCourseRequest is the wire shape for POST /courses. The instructor is
// taken from the authenticated principal, never from the body.
type UploadCourseRequest struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Price           int64   `json:"price"`
	RefundThreshold float64 `json:"refund_threshold"`

	parsedID id.CourseID
}

// Validate checks wire-level constraints and caches parsed identifiers.
// Domain invariants (price sign, threshold range) are enforced by the model
// constructor; duplicating the cheap ones here keeps garbage out of the logs.
func (r *UploadCourseRequest) Validate() error {
	courseID, err := id.ParseCourseID(r.ID)
	if err != nil {
		return err
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	r.parsedID = courseID
	return nil
}

// ParsedID returns the validated course id. Call Validate first.
func (r *UploadCourseRequest) ParsedID() id.CourseID { return r.parsedID }
