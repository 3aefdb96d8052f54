// Package payout is the boundary to the value-transfer collaborator. The
// ledger accounts for refunds; this package is the hand-off that actually
// moves money. A failed transfer never rolls the ledger back: the accounting
// already advanced, and the transfer is queued for retry instead.
package payout

import (
	"context"
	"log/slog"
	"time"

	id "courze/pkg/domain"
)

// Transfer is a single refund hand-off to the payment rail.
type Transfer struct {
	UserID   id.UserID   `json:"user_id"`
	CourseID id.CourseID `json:"course_id"`
	// Amount is the refund delta in the smallest currency unit.
	Amount   float64   `json:"amount"`
	Attempts int       `json:"attempts"`
	QueuedAt time.Time `json:"queued_at"`
}

// Transferer performs the actual value transfer. Implementations wrap
// whatever payment rail the deployment uses.
type Transferer interface {
	Transfer(ctx context.Context, t Transfer) error
}

// LogTransferer is the development rail: it records the transfer in the log
// and reports success. Deployments swap in a real rail adapter.
type LogTransferer struct {
	logger *slog.Logger
}

// NewLogTransferer constructs the logging rail.
func NewLogTransferer(logger *slog.Logger) *LogTransferer {
	return &LogTransferer{logger: logger}
}

func (t *LogTransferer) Transfer(ctx context.Context, transfer Transfer) error {
	t.logger.InfoContext(ctx, "refund transfer",
		"user_id", transfer.UserID,
		"course_id", transfer.CourseID,
		"amount", transfer.Amount,
		"attempts", transfer.Attempts,
	)
	return nil
}
