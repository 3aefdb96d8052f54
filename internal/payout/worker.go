package payout

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Worker drains the retry queue in the background. Transfers that fail again
// are re-enqueued with an attempt count so repeated failures stay visible in
// the logs; the ledger itself is never touched, because the amount owed is
// re-derivable from progress and double payment is already prevented by the
// refund formula.
type Worker struct {
	queue       Queue
	transferer  Transferer
	logger      *slog.Logger
	pollTimeout time.Duration
	retryDelay  time.Duration
}

// NewWorker constructs a payout retry worker.
func NewWorker(queue Queue, transferer Transferer, logger *slog.Logger) *Worker {
	return &Worker{
		queue:       queue,
		transferer:  transferer,
		logger:      logger,
		pollTimeout: 5 * time.Second,
		retryDelay:  time.Second,
	}
}

// Run processes transfers until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		transfer, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if errors.Is(err, ErrEmpty) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			w.logger.ErrorContext(ctx, "payout dequeue failed", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.retryDelay):
			}
			continue
		}

		w.process(ctx, *transfer)
	}
}

func (w *Worker) process(ctx context.Context, transfer Transfer) {
	transfer.Attempts++
	if err := w.transferer.Transfer(ctx, transfer); err != nil {
		w.logger.WarnContext(ctx, "refund transfer failed, re-queueing",
			"user_id", transfer.UserID,
			"course_id", transfer.CourseID,
			"amount", transfer.Amount,
			"attempts", transfer.Attempts,
			"error", err,
		)
		if enqErr := w.queue.Enqueue(ctx, transfer); enqErr != nil {
			// The owed amount remains derivable from the ledger, so a
			// dropped retry is reportable rather than fatal.
			w.logger.ErrorContext(ctx, "failed to re-queue refund transfer",
				"user_id", transfer.UserID,
				"course_id", transfer.CourseID,
				"amount", transfer.Amount,
				"error", enqErr,
			)
		}
		return
	}

	w.logger.InfoContext(ctx, "queued refund transfer completed",
		"user_id", transfer.UserID,
		"course_id", transfer.CourseID,
		"amount", transfer.Amount,
		"attempts", transfer.Attempts,
	)
}
