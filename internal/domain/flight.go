package domain

import "time"

// Flight facts are immutable after registration. The registry rejects any
// attempt to re-register an existing id instead of updating in place.
type Flight struct {
	ID         string
	Departure  time.Time
	TotalSeats int
	CreatedAt  time.Time
}
