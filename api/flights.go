package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyhold/reservation/internal/service/flights"
	"github.com/skyhold/reservation/internal/service/reservation"
)

type FlightHandler struct {
	flights      flights.FlightUseCase
	reservations reservation.ReservationUseCase
}

type registerFlightRequest struct {
	ID         string    `json:"id"`
	Departure  time.Time `json:"departure"`
	TotalSeats int       `json:"total_seats"`
}

func NewFlightHandler(flightSvc flights.FlightUseCase, reservationSvc reservation.ReservationUseCase) *FlightHandler {
	return &FlightHandler{flights: flightSvc, reservations: reservationSvc}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.register)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) register(c *gin.Context) {
	var req registerFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.reservations.RegisterFlight(c.Request.Context(), reservation.RegisterFlightInput{
		ID:         req.ID,
		Departure:  req.Departure,
		TotalSeats: req.TotalSeats,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.flights.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.flights.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}
