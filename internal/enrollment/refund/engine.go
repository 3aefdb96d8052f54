// Package refund computes the proportional refund owed for a progress
// report. It is a pure function over course terms and the current ledger
// entry: no stored state, no side effects, fully testable in isolation.
package refund

// Terms are the course parameters the computation depends on.
type Terms struct {
	// Price is the course price in the smallest currency unit.
	Price int64
	// Threshold is the progress percentage at which the earned refund
	// reaches the full price. Always in (0, 100].
	Threshold float64
}

// Outcome is the transition computed for a single progress report.
type Outcome struct {
	// Delta is the incremental amount owed for this report. Never negative.
	Delta float64
	// RefundReceived is the new cumulative refund after this report.
	RefundReceived float64
	// Completed reports whether this progress level finishes the course.
	Completed bool
}

// Compute derives the refund transition for a progress report.
//
// The student's entitlement at progress p is the fraction min(p, T)/T of the
// price: refunds are earned progressively and cap at the full price once the
// threshold T is reached. The delta owed is whatever entitlement exceeds the
// amount already received; a report lower than a previous one yields a zero
// delta rather than a clawback, and payment does not advance again until
// progress passes the previously paid level.
//
// Because the entitlement never exceeds the price, the cumulative refund
// stays within the price by construction, and because the delta is clamped
// at zero, the cumulative refund never decreases.
func Compute(terms Terms, refundReceived, newProgress float64) Outcome {
	capped := newProgress
	if capped > terms.Threshold {
		capped = terms.Threshold
	}
	fraction := capped / terms.Threshold
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	entitlement := fraction * float64(terms.Price)
	delta := entitlement - refundReceived
	if delta < 0 {
		delta = 0
	}

	return Outcome{
		Delta:          delta,
		RefundReceived: refundReceived + delta,
		Completed:      newProgress >= 100,
	}
}
