package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyhold/reservation/internal/domain"
)

// ArchiveRepository persists committed reservations and audit records. The
// engine commits in memory first; archiving happens after commit and is
// upsert-shaped so replays of the same record are harmless.
type ArchiveRepository interface {
	SaveReservation(ctx context.Context, res domain.Reservation) error
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error
	GetReservation(ctx context.Context, id string) (*domain.Reservation, error)
	AuditRecordsFor(ctx context.Context, reservationID string) ([]domain.AuditRecord, error)
}

type PGArchiveRepository struct {
	db *pgxpool.Pool
}

func NewArchiveRepository(db *pgxpool.Pool) ArchiveRepository {
	return &PGArchiveRepository{db: db}
}

func (r *PGArchiveRepository) SaveReservation(ctx context.Context, res domain.Reservation) error {
	var approved *bool
	if res.Payment != nil {
		approved = &res.Payment.Approved
	}
	_, err := r.db.Exec(ctx, `INSERT INTO reservations (id, flight_id, seat, state, payment_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, payment_approved = EXCLUDED.payment_approved, updated_at = EXCLUDED.updated_at`,
		res.ID, res.FlightID, res.Seat, res.State, approved, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *PGArchiveRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	refund := string(record.Refund)
	_, err := r.db.Exec(ctx, `INSERT INTO audit_records (id, operation, reservation_id, flight_id, seat, state, refund, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		record.ID, record.Operation, record.ReservationID, record.FlightID, record.Seat, record.State, refund, record.At)
	return err
}

func (r *PGArchiveRepository) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT id, flight_id, seat, state, payment_approved, created_at, updated_at FROM reservations WHERE id=$1`, id)
	var res domain.Reservation
	var approved *bool
	if err := row.Scan(&res.ID, &res.FlightID, &res.Seat, &res.State, &approved, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	if approved != nil {
		res.Payment = &domain.Payment{Approved: *approved}
	}
	return &res, nil
}

func (r *PGArchiveRepository) AuditRecordsFor(ctx context.Context, reservationID string) ([]domain.AuditRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, operation, reservation_id, flight_id, seat, state, refund, at FROM audit_records WHERE reservation_id=$1 ORDER BY at`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var record domain.AuditRecord
		var refund string
		if err := rows.Scan(&record.ID, &record.Operation, &record.ReservationID, &record.FlightID, &record.Seat, &record.State, &refund, &record.At); err != nil {
			return nil, err
		}
		record.Refund = domain.Refund(refund)
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ ArchiveRepository = (*PGArchiveRepository)(nil)
