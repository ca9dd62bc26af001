package flights

import (
	"context"

	"github.com/skyhold/reservation/internal/domain"
	"github.com/skyhold/reservation/internal/inventory"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (domain.Flight, error)
	SeatIsFree(ctx context.Context, flightID string, seat int) (bool, error)
	ConfirmedCount(ctx context.Context, flightID string) (int, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	registry *inventory.FlightRegistry
	cache    FlightCache
}

func NewFlightService(registry *inventory.FlightRegistry, cache FlightCache) *FlightService {
	return &FlightService{registry: registry, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights := s.registry.List()
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (domain.Flight, error) {
	return s.registry.Get(id)
}

func (s *FlightService) SeatIsFree(ctx context.Context, flightID string, seat int) (bool, error) {
	return s.registry.SeatIsFree(flightID, seat)
}

func (s *FlightService) ConfirmedCount(ctx context.Context, flightID string) (int, error) {
	return s.registry.ConfirmedCount(flightID)
}

var _ FlightUseCase = (*FlightService)(nil)
