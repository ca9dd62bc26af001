package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skyhold/reservation/internal/domain"
)

// FlightSource resolves flight facts for validation. Implemented by the
// flight registry; flights are immutable once registered so reads are safe
// inside the store's critical section.
type FlightSource interface {
	Flight(id string) (domain.Flight, bool)
}

type seatKey struct {
	flightID string
	seat     int
}

// ReservationStore owns every reservation, its payment slot and the seat
// occupancy index. All mutating calls run under one mutex: an operation
// either commits as a whole or leaves nothing behind, and two calls racing
// for the same seat serialize so exactly one wins.
type ReservationStore struct {
	mu           sync.Mutex
	flights      FlightSource
	reservations map[string]*domain.Reservation
	seats        map[seatKey]string // occupied seat -> active reservation id
	confirmed    map[string]int     // flight id -> CONFIRMED count
}

func NewReservationStore(flights FlightSource) *ReservationStore {
	return &ReservationStore{
		flights:      flights,
		reservations: make(map[string]*domain.Reservation),
		seats:        make(map[seatKey]string),
		confirmed:    make(map[string]int),
	}
}

// Create inserts a new CREATED reservation and occupies (flight, seat) in the
// same critical section. The seat check and the insert cannot interleave with
// another call.
func (s *ReservationStore) Create(flightID string, seat int, now time.Time) (*domain.Reservation, error) {
	if seat <= 0 {
		return nil, domain.ErrInvalidSeat
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights.Flight(flightID); !ok {
		return nil, domain.ErrFlightNotFound
	}

	key := seatKey{flightID: flightID, seat: seat}
	if _, taken := s.seats[key]; taken {
		return nil, domain.ErrSeatUnavailable
	}

	res := &domain.Reservation{
		ID:        uuid.NewString(),
		FlightID:  flightID,
		Seat:      seat,
		State:     domain.ReservationStateCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.reservations[res.ID] = res
	s.seats[key] = res.ID

	return snapshot(res), nil
}

// ApplyPayment attempts the one payment a reservation may ever carry. On
// approval the payment attach and the CREATED->CONFIRMED transition commit as
// a single step; no read can observe one without the other. A declined
// payment is still recorded (it permanently consumes the payment slot) and
// surfaces ErrPaymentNotApproved.
func (s *ReservationStore) ApplyPayment(reservationID string, approved bool, now time.Time) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[reservationID]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}

	switch res.State {
	case domain.ReservationStateCanceled:
		return nil, domain.ErrTerminalState
	case domain.ReservationStateConfirmed:
		return nil, domain.ErrAlreadyConfirmed
	}
	if res.Payment != nil {
		return nil, domain.ErrAlreadyPaid
	}

	flight, ok := s.flights.Flight(res.FlightID)
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	if !now.Before(flight.Departure) {
		return nil, domain.ErrPastDeparture
	}

	if !approved {
		res.Payment = &domain.Payment{Approved: false, RecordedAt: now}
		res.UpdatedAt = now
		return nil, domain.ErrPaymentNotApproved
	}

	// Capacity is checked here, not at create: several CREATED reservations
	// may race for the same headroom.
	if s.confirmed[flight.ID]+1 > flight.TotalSeats {
		return nil, domain.ErrCapacityExceeded
	}

	next, err := domain.NextState(res.State, domain.EventPaymentApproved)
	if err != nil {
		return nil, err
	}

	res.Payment = &domain.Payment{Approved: true, RecordedAt: now}
	res.State = next
	res.UpdatedAt = now
	s.confirmed[flight.ID]++

	return snapshot(res), nil
}

// Cancel moves a CONFIRMED reservation to CANCELED, releases its seat and
// decides the refund from the exact remaining time to departure.
func (s *ReservationStore) Cancel(reservationID string, now time.Time) (domain.Refund, *domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[reservationID]
	if !ok {
		return "", nil, domain.ErrReservationNotFound
	}
	if res.State == domain.ReservationStateCanceled {
		return "", nil, domain.ErrTerminalState
	}

	next, err := domain.NextState(res.State, domain.EventCancel)
	if err != nil {
		return "", nil, err
	}

	flight, ok := s.flights.Flight(res.FlightID)
	if !ok {
		return "", nil, domain.ErrFlightNotFound
	}

	refund := domain.RefundFor(flight.Departure.Sub(now))

	res.State = next
	res.UpdatedAt = now
	delete(s.seats, seatKey{flightID: res.FlightID, seat: res.Seat})
	s.confirmed[res.FlightID]--

	return refund, snapshot(res), nil
}

// Get returns a copy of the reservation, never the live record.
func (s *ReservationStore) Get(reservationID string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[reservationID]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return snapshot(res), nil
}

// SeatTaken reports whether a non-CANCELED reservation occupies (flight, seat).
func (s *ReservationStore) SeatTaken(flightID string, seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, taken := s.seats[seatKey{flightID: flightID, seat: seat}]
	return taken
}

// ConfirmedCount reports how many reservations on the flight are CONFIRMED.
func (s *ReservationStore) ConfirmedCount(flightID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.confirmed[flightID]
}

func snapshot(res *domain.Reservation) *domain.Reservation {
	out := *res
	if res.Payment != nil {
		payment := *res.Payment
		out.Payment = &payment
	}
	return &out
}
