package reservation

import (
	"context"
	"log"
	"time"

	"github.com/skyhold/reservation/internal/audit"
	"github.com/skyhold/reservation/internal/clock"
	"github.com/skyhold/reservation/internal/domain"
	"github.com/skyhold/reservation/internal/inventory"
	"github.com/skyhold/reservation/internal/kafka"
	"github.com/skyhold/reservation/internal/store"
)

type ReservationUseCase interface {
	RegisterFlight(ctx context.Context, input RegisterFlightInput) (domain.Flight, error)
	GetFlight(ctx context.Context, flightID string) (domain.Flight, error)
	CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	ConfirmPayment(ctx context.Context, reservationID string, approved bool) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID string) (CancelResult, error)
	GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)
	AuditRecordsFor(ctx context.Context, reservationID string) ([]domain.AuditRecord, error)
}

// Cache is an optional cross-process advisory seat lock. Engine invariants
// never depend on it; it only cuts obviously doomed calls off early.
type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID string, seat int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID string, seat int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Archiver mirrors committed records to durable storage. Called strictly
// after the in-process commit, never inside the critical section.
type Archiver interface {
	SaveReservation(ctx context.Context, res domain.Reservation) error
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error
}

type Service struct {
	registry           *inventory.FlightRegistry
	store              *store.ReservationStore
	auditLog           *audit.Log
	clock              clock.Clock
	cache              Cache
	producer           Producer
	archive            Archiver
	eventsTopic        string
	notificationsTopic string
	seatLockTTL        time.Duration
}

type RegisterFlightInput struct {
	ID         string    `json:"id"`
	Departure  time.Time `json:"departure"`
	TotalSeats int       `json:"total_seats"`
}

type CreateReservationInput struct {
	FlightID string `json:"flight_id"`
	Seat     int    `json:"seat"`
}

type CancelResult struct {
	Refund      domain.Refund
	Reservation *domain.Reservation
}

type ServiceOption func(*Service)

func WithCache(cache Cache, seatLockTTL time.Duration) ServiceOption {
	return func(s *Service) {
		s.cache = cache
		s.seatLockTTL = seatLockTTL
	}
}

func WithProducer(producer Producer, eventsTopic string) ServiceOption {
	return func(s *Service) {
		s.producer = producer
		s.eventsTopic = eventsTopic
	}
}

func WithNotificationsTopic(topic string) ServiceOption {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func WithArchive(archive Archiver) ServiceOption {
	return func(s *Service) {
		s.archive = archive
	}
}

func NewService(
	registry *inventory.FlightRegistry,
	reservations *store.ReservationStore,
	auditLog *audit.Log,
	clk clock.Clock,
	opts ...ServiceOption,
) *Service {
	service := &Service{
		registry: registry,
		store:    reservations,
		auditLog: auditLog,
		clock:    clk,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *Service) RegisterFlight(ctx context.Context, input RegisterFlightInput) (domain.Flight, error) {
	return s.registry.Register(input.ID, input.Departure, input.TotalSeats, s.clock.Now())
}

func (s *Service) GetFlight(ctx context.Context, flightID string) (domain.Flight, error) {
	return s.registry.Get(flightID)
}

func (s *Service) CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	now := s.clock.Now()

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, input.FlightID, input.Seat, s.seatLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatUnavailable
		}
		locked = true
	}

	res, err := s.store.Create(input.FlightID, input.Seat, now)
	if err != nil {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, input.FlightID, input.Seat)
		}
		return nil, err
	}

	record := s.auditLog.Append(domain.OpReservationCreated, res, "", now)
	s.afterCommit(ctx, res, "", record)
	return res, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, reservationID string, approved bool) (*domain.Reservation, error) {
	now := s.clock.Now()

	res, err := s.store.ApplyPayment(reservationID, approved, now)
	if err != nil {
		return nil, err
	}

	record := s.auditLog.Append(domain.OpPaymentConfirmed, res, "", now)
	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, res.FlightID, res.Seat)
	}
	s.afterCommit(ctx, res, "", record)
	return res, nil
}

func (s *Service) CancelReservation(ctx context.Context, reservationID string) (CancelResult, error) {
	now := s.clock.Now()

	refund, res, err := s.store.Cancel(reservationID, now)
	if err != nil {
		return CancelResult{}, err
	}

	record := s.auditLog.Append(domain.OpReservationCanceled, res, refund, now)
	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, res.FlightID, res.Seat)
	}
	s.afterCommit(ctx, res, refund, record)
	return CancelResult{Refund: refund, Reservation: res}, nil
}

func (s *Service) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return s.store.Get(reservationID)
}

func (s *Service) AuditRecordsFor(ctx context.Context, reservationID string) ([]domain.AuditRecord, error) {
	if _, err := s.store.Get(reservationID); err != nil {
		return nil, err
	}
	return s.auditLog.RecordsFor(reservationID), nil
}

// afterCommit runs the best-effort side channels: event publish and durable
// archive. The mutation has already committed, so failures are logged and
// never surfaced to the caller.
func (s *Service) afterCommit(ctx context.Context, res *domain.Reservation, refund domain.Refund, record domain.AuditRecord) {
	if s.archive != nil {
		if err := s.archive.SaveReservation(ctx, *res); err != nil {
			log.Printf("WARNING: failed to archive reservation %s: %v", res.ID, err)
		}
		if err := s.archive.SaveAuditRecord(ctx, record); err != nil {
			log.Printf("WARNING: failed to archive audit record %s: %v", record.ID, err)
		}
	}

	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:          record.Operation,
		ReservationID: res.ID,
		FlightID:      res.FlightID,
		Seat:          res.Seat,
		State:         string(res.State),
		Refund:        string(refund),
		At:            res.UpdatedAt,
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, res.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for reservation %s: %v", record.Operation, res.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, res.ID, event); err != nil {
			log.Printf("WARNING: failed to publish notification for reservation %s: %v", res.ID, err)
		}
	}
}

var _ ReservationUseCase = (*Service)(nil)
