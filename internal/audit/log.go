package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skyhold/reservation/internal/domain"
)

// Log is the append-only operation ledger. The service appends exactly one
// record after each committed mutation and never on a rejected call; records
// are immutable once appended.
type Log struct {
	mu       sync.Mutex
	records  []domain.AuditRecord
	byTarget map[string][]int
}

func NewLog() *Log {
	return &Log{byTarget: make(map[string][]int)}
}

func (l *Log) Append(operation string, res *domain.Reservation, refund domain.Refund, at time.Time) domain.AuditRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	record := domain.AuditRecord{
		ID:            uuid.NewString(),
		Operation:     operation,
		ReservationID: res.ID,
		FlightID:      res.FlightID,
		Seat:          res.Seat,
		State:         res.State,
		Refund:        refund,
		At:            at,
	}
	l.records = append(l.records, record)
	l.byTarget[res.ID] = append(l.byTarget[res.ID], len(l.records)-1)
	return record
}

// RecordsFor returns the reservation's records in append order.
func (l *Log) RecordsFor(reservationID string) []domain.AuditRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	idxs := l.byTarget[reservationID]
	out := make([]domain.AuditRecord, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, l.records[i])
	}
	return out
}

// Len reports the total number of records across all reservations.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}
