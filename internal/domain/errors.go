package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrDuplicateFlight     = errors.New("flight already registered")
	ErrInvalidCapacity     = errors.New("total seats must not be negative")
	ErrInvalidSeat         = errors.New("seat number must be positive")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSeatUnavailable     = errors.New("seat is already taken")
	ErrCapacityExceeded    = errors.New("flight capacity exceeded")
	ErrInvalidTransition   = errors.New("invalid reservation state transition")
	ErrPaymentNotApproved  = errors.New("payment was not approved")
	ErrAlreadyPaid         = errors.New("a payment was already attempted")
	ErrPastDeparture       = errors.New("flight has already departed")
)

// Named transition rejections. Both unwrap to ErrInvalidTransition so callers
// can match the whole family with a single errors.Is.
var (
	ErrAlreadyConfirmed = fmt.Errorf("%w: reservation already confirmed", ErrInvalidTransition)
	ErrTerminalState    = fmt.Errorf("%w: reservation is canceled", ErrInvalidTransition)
)

// TransitionError records a rejected edge of the lifecycle state machine.
type TransitionError struct {
	From  ReservationState
	Event EventKind
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid reservation state transition: %s on %s", e.Event, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
