package domain

import "time"

type ReservationState string

const (
	ReservationStateCreated   ReservationState = "CREATED"
	ReservationStateConfirmed ReservationState = "CONFIRMED"
	ReservationStateCanceled  ReservationState = "CANCELED"
)

// Payment is owned by exactly one reservation and is immutable once recorded.
// A declined payment is still recorded: it consumes the reservation's single
// payment slot and blocks any further attempt.
type Payment struct {
	Approved   bool
	RecordedAt time.Time
}

type Reservation struct {
	ID        string
	FlightID  string
	Seat      int
	State     ReservationState
	Payment   *Payment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the reservation still occupies its seat.
func (r *Reservation) Active() bool {
	return r.State != ReservationStateCanceled
}

type Refund string

const (
	RefundFull Refund = "FULL"
	RefundNone Refund = "NONE"
)

// RefundWindow is the cutoff for a full refund: cancelling with strictly less
// than 24h to departure pays nothing, with no rounding at the boundary.
const RefundWindow = 24 * time.Hour

// RefundFor maps remaining time to departure to a refund decision using exact
// duration arithmetic. remaining == RefundWindow is still a full refund;
// one nanosecond less is not.
func RefundFor(remaining time.Duration) Refund {
	if remaining >= RefundWindow {
		return RefundFull
	}
	return RefundNone
}
