package email

import (
	"context"
	"fmt"

	"github.com/skyhold/reservation/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	fmt.Printf("notify reservation %s: %s on flight %s seat %d\n", event.ReservationID, event.Type, event.FlightID, event.Seat)
	return nil
}
