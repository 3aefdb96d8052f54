package handler

import (
	"courze/internal/enrollment/models"
	"courze/internal/enrollment/service"
)

// ProgressResponse is the wire shape returned for a progress report. The
// refund delta is what the value-transfer collaborator is handed; the caller
// sees it for reconciliation, not for initiating its own payment.
type ProgressResponse struct {
	UserID         string  `json:"user_id"`
	CourseID       string  `json:"course_id"`
	Progress       float64 `json:"progress"`
	RefundDelta    float64 `json:"refund_delta"`
	RefundReceived float64 `json:"refund_received"`
	Completed      bool    `json:"completed"`
	CertificateID  string  `json:"certificate_id,omitempty"`
}

// FromResult converts a service result to the wire shape.
func FromResult(res *service.ProgressResult) ProgressResponse {
	out := ProgressResponse{
		UserID:         res.Record.UserID.String(),
		CourseID:       res.Record.CourseID.String(),
		Progress:       res.Record.Progress,
		RefundDelta:    res.RefundDelta,
		RefundReceived: res.Record.RefundReceived,
		Completed:      res.Completed,
	}
	if res.Certificate != nil {
		out.CertificateID = res.Certificate.ID.String()
	}
	return out
}

// RecordResponse is the wire shape for an enrollment record lookup.
type RecordResponse struct {
	UserID         string  `json:"user_id"`
	CourseID       string  `json:"course_id"`
	Progress       float64 `json:"progress"`
	RefundReceived float64 `json:"refund_received"`
}

// FromRecord converts a ledger record to the wire shape.
func FromRecord(record *models.Record) RecordResponse {
	return RecordResponse{
		UserID:         record.UserID.String(),
		CourseID:       record.CourseID.String(),
		Progress:       record.Progress,
		RefundReceived: record.RefundReceived,
	}
}
