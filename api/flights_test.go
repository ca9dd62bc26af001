package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyhold/reservation/internal/domain"
	"github.com/skyhold/reservation/internal/service/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (domain.Flight, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) SeatIsFree(ctx context.Context, flightID string, seat int) (bool, error) {
	args := m.Called(ctx, flightID, seat)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightUseCase) ConfirmedCount(ctx context.Context, flightID string) (int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Error(1)
}

func TestFlightHandler_register(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	mockReservations := &MockReservationUseCase{}
	handler := NewFlightHandler(mockFlights, mockReservations)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	departure := time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)
	req := registerFlightRequest{ID: "FL1", Departure: departure, TotalSeats: 120}
	body, _ := json.Marshal(req)
	c.Request = httptest.NewRequest("POST", "/flights", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	flight := domain.Flight{ID: "FL1", Departure: departure, TotalSeats: 120}
	mockReservations.On("RegisterFlight", c.Request.Context(), reservation.RegisterFlightInput{
		ID:         "FL1",
		Departure:  departure,
		TotalSeats: 120,
	}).Return(flight, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockReservations.AssertExpectations(t)
}

func TestFlightHandler_register_Duplicate(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	mockReservations := &MockReservationUseCase{}
	handler := NewFlightHandler(mockFlights, mockReservations)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(registerFlightRequest{ID: "FL1", TotalSeats: 120})
	c.Request = httptest.NewRequest("POST", "/flights", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockReservations.On("RegisterFlight", c.Request.Context(), mock.AnythingOfType("reservation.RegisterFlightInput")).
		Return(domain.Flight{}, domain.ErrDuplicateFlight)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockReservations.AssertExpectations(t)
}

func TestFlightHandler_get(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewFlightHandler(mockFlights, &MockReservationUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/flights/FL1", nil)
	c.Params = gin.Params{{Key: "id", Value: "FL1"}}

	mockFlights.On("GetByID", c.Request.Context(), "FL1").Return(domain.Flight{ID: "FL1"}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockFlights.AssertExpectations(t)
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockFlights := &MockFlightUseCase{}
	handler := NewFlightHandler(mockFlights, &MockReservationUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/flights/FL404", nil)
	c.Params = gin.Params{{Key: "id", Value: "FL404"}}

	mockFlights.On("GetByID", c.Request.Context(), "FL404").Return(domain.Flight{}, domain.ErrFlightNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockFlights.AssertExpectations(t)
}
