package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyhold/reservation/config"
	"github.com/skyhold/reservation/internal/audit"
	"github.com/skyhold/reservation/internal/bootstrap"
	"github.com/skyhold/reservation/internal/cache"
	"github.com/skyhold/reservation/internal/clock"
	"github.com/skyhold/reservation/internal/inventory"
	"github.com/skyhold/reservation/internal/kafka"
	"github.com/skyhold/reservation/internal/repository"
	"github.com/skyhold/reservation/internal/service/flights"
	"github.com/skyhold/reservation/internal/service/reservation"
	"github.com/skyhold/reservation/internal/store"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Reservation.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	registry := inventory.NewFlightRegistry()
	reservations := store.NewReservationStore(registry)
	registry.BindIndex(reservations)

	auditLog := audit.NewLog()
	archive := repository.NewArchiveRepository(pool)

	reservationSvc := reservation.NewService(
		registry,
		reservations,
		auditLog,
		clock.NewSystem(),
		reservation.WithCache(redisCache, time.Duration(cfg.Reservation.SeatLockTTLMinutes)*time.Minute),
		reservation.WithProducer(producer, cfg.Kafka.EventsTopic),
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		reservation.WithArchive(archive),
	)
	flightSvc := flights.NewFlightService(registry, redisCache)

	if err := bootstrap.Run(ctx, cfg, flightSvc, reservationSvc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
