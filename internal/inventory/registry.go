package inventory

import (
	"sort"
	"sync"
	"time"

	"github.com/skyhold/reservation/internal/domain"
)

// SeatIndex is the reservation store's occupancy view. The registry exposes
// seat queries through it instead of keeping a second copy of reservation
// state.
type SeatIndex interface {
	SeatTaken(flightID string, seat int) bool
	ConfirmedCount(flightID string) int
}

// FlightRegistry owns flight facts. A registered flight is immutable: the
// only way to "change" one is rejected with ErrDuplicateFlight.
type FlightRegistry struct {
	mu      sync.RWMutex
	flights map[string]domain.Flight
	seats   SeatIndex
}

func NewFlightRegistry() *FlightRegistry {
	return &FlightRegistry{flights: make(map[string]domain.Flight)}
}

// BindIndex wires the occupancy view once at construction time, after the
// reservation store (which needs the registry as its flight source) exists.
func (r *FlightRegistry) BindIndex(idx SeatIndex) {
	r.seats = idx
}

func (r *FlightRegistry) Register(id string, departure time.Time, totalSeats int, now time.Time) (domain.Flight, error) {
	if totalSeats < 0 {
		return domain.Flight{}, domain.ErrInvalidCapacity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.flights[id]; exists {
		return domain.Flight{}, domain.ErrDuplicateFlight
	}

	flight := domain.Flight{
		ID:         id,
		Departure:  departure,
		TotalSeats: totalSeats,
		CreatedAt:  now,
	}
	r.flights[id] = flight
	return flight, nil
}

// Flight implements store.FlightSource.
func (r *FlightRegistry) Flight(id string) (domain.Flight, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flight, ok := r.flights[id]
	return flight, ok
}

func (r *FlightRegistry) Get(id string) (domain.Flight, error) {
	flight, ok := r.Flight(id)
	if !ok {
		return domain.Flight{}, domain.ErrFlightNotFound
	}
	return flight, nil
}

func (r *FlightRegistry) List() []domain.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Flight, 0, len(r.flights))
	for _, flight := range r.flights {
		out = append(out, flight)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Departure.Before(out[j].Departure) })
	return out
}

// SeatIsFree reports whether no non-CANCELED reservation occupies the seat.
func (r *FlightRegistry) SeatIsFree(flightID string, seat int) (bool, error) {
	if _, err := r.Get(flightID); err != nil {
		return false, err
	}
	return !r.seats.SeatTaken(flightID, seat), nil
}

// ConfirmedCount reports the number of CONFIRMED reservations on the flight.
func (r *FlightRegistry) ConfirmedCount(flightID string) (int, error) {
	if _, err := r.Get(flightID); err != nil {
		return 0, err
	}
	return r.seats.ConfirmedCount(flightID), nil
}
