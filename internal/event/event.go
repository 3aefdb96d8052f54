// Package event publishes the append-only ledger event stream. Downstream
// consumers (payment reconciliation, notification fan-out, analytics) follow
// the stream instead of polling the stores.
package event

import (
	"context"
	"time"

	id "courze/pkg/domain"
)

// Type names a ledger event.
type Type string

const (
	TypeCourseUploaded    Type = "course.uploaded"
	TypeEnrolled          Type = "enrollment.created"
	TypeRefundReleased    Type = "refund.released"
	TypeCertificateMinted Type = "certificate.minted"
)

// Event is a single entry on the ledger stream. Events are facts about
// committed state transitions; they are emitted after the store commit and
// are never retracted.
type Event struct {
	ID       string      `json:"id"`
	Type     Type        `json:"type"`
	UserID   id.UserID   `json:"user_id,omitempty"`
	CourseID id.CourseID `json:"course_id,omitempty"`
	// Amount carries the refund delta for refund.released events.
	Amount float64 `json:"amount,omitempty"`
	// Progress carries the reported progress for refund.released events.
	Progress float64 `json:"progress,omitempty"`
	// CertificateID is set on certificate.minted events.
	CertificateID string `json:"certificate_id,omitempty"`
	// ClientPlatform describes the reporting client when known.
	ClientPlatform string    `json:"client_platform,omitempty"`
	RequestID      string    `json:"request_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher emits ledger events. Emit is best-effort from the caller's view:
// the ledger commit is already durable, so a publish failure is logged and
// reported, never rolled back into the ledger.
type Publisher interface {
	Emit(ctx context.Context, e Event) error
}
