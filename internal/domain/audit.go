package domain

import "time"

// Operation names recorded in the audit log, one per state-changing call.
const (
	OpReservationCreated  = "reservation_created"
	OpPaymentConfirmed    = "payment_confirmed"
	OpReservationCanceled = "reservation_canceled"
)

// AuditRecord is appended exactly once after a mutation commits and is never
// written on a rejected call.
type AuditRecord struct {
	ID            string
	Operation     string
	ReservationID string
	FlightID      string
	Seat          int
	State         ReservationState
	Refund        Refund // set only for reservation_canceled
	At            time.Time
}
