package domain

// EventKind is a lifecycle trigger applied to a reservation.
type EventKind string

const (
	EventPaymentApproved EventKind = "payment_approved"
	EventPaymentDeclined EventKind = "payment_declined"
	EventCancel          EventKind = "cancel"
)

type transition struct {
	From  ReservationState
	Event EventKind
	To    ReservationState
}

// transitionsTable is the complete whitelist. Anything not listed here is
// rejected with the current state left untouched.
var transitionsTable = []transition{
	{From: ReservationStateCreated, Event: EventPaymentApproved, To: ReservationStateConfirmed},
	{From: ReservationStateConfirmed, Event: EventCancel, To: ReservationStateCanceled},
}

// NextState resolves the whitelisted transition for state+event. Rejections
// carry the attempted edge and unwrap to ErrInvalidTransition.
func NextState(from ReservationState, ev EventKind) (ReservationState, error) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr.To, nil
		}
	}
	return from, &TransitionError{From: from, Event: ev}
}
