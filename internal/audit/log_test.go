package audit

import (
	"testing"
	"time"

	"github.com/skyhold/reservation/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendAndRecordsFor(t *testing.T) {
	log := NewLog()
	at := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	resA := &domain.Reservation{ID: "res-a", FlightID: "FL1", Seat: 1, State: domain.ReservationStateCreated}
	resB := &domain.Reservation{ID: "res-b", FlightID: "FL1", Seat: 2, State: domain.ReservationStateCreated}

	log.Append(domain.OpReservationCreated, resA, "", at)
	log.Append(domain.OpReservationCreated, resB, "", at)

	resA.State = domain.ReservationStateConfirmed
	log.Append(domain.OpPaymentConfirmed, resA, "", at.Add(time.Minute))

	resA.State = domain.ReservationStateCanceled
	canceled := log.Append(domain.OpReservationCanceled, resA, domain.RefundFull, at.Add(2*time.Minute))

	records := log.RecordsFor("res-a")
	require.Len(t, records, 3)
	assert.Equal(t, domain.OpReservationCreated, records[0].Operation)
	assert.Equal(t, domain.OpPaymentConfirmed, records[1].Operation)
	assert.Equal(t, domain.OpReservationCanceled, records[2].Operation)
	assert.Equal(t, domain.RefundFull, records[2].Refund)
	assert.NotEmpty(t, canceled.ID)

	// Operations on one reservation never change another's records.
	assert.Len(t, log.RecordsFor("res-b"), 1)
	assert.Empty(t, log.RecordsFor("res-c"))
	assert.Equal(t, 4, log.Len())
}

func TestLog_RecordsAreCopies(t *testing.T) {
	log := NewLog()
	at := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	res := &domain.Reservation{ID: "res-a", FlightID: "FL1", Seat: 1, State: domain.ReservationStateCreated}
	log.Append(domain.OpReservationCreated, res, "", at)

	records := log.RecordsFor("res-a")
	records[0].Operation = "tampered"

	fresh := log.RecordsFor("res-a")
	assert.Equal(t, domain.OpReservationCreated, fresh[0].Operation)
}
