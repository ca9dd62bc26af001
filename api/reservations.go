package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyhold/reservation/internal/domain"
	"github.com/skyhold/reservation/internal/service/reservation"
)

type ReservationHandler struct {
	service reservation.ReservationUseCase
}

type createReservationRequest struct {
	FlightID string `json:"flight_id"`
	Seat     int    `json:"seat"`
}

type confirmPaymentRequest struct {
	Approved bool `json:"approved"`
}

type reservationResponse struct {
	ID        string `json:"id"`
	FlightID  string `json:"flight_id"`
	Seat      int    `json:"seat"`
	State     string `json:"state"`
	Paid      bool   `json:"paid"`
	CreatedAt string `json:"created_at"`
}

type cancelResponse struct {
	Reservation reservationResponse `json:"reservation"`
	Refund      string              `json:"refund"`
}

func NewReservationHandler(service reservation.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.POST("/:id/payment", h.confirmPayment)
	router.DELETE("/:id", h.cancel)
	router.GET("/:id/audit", h.auditRecords)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.CreateReservation(c.Request.Context(), reservation.CreateReservationInput{
		FlightID: req.FlightID,
		Seat:     req.Seat,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(res))
}

func (h *ReservationHandler) get(c *gin.Context) {
	res, err := h.service.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

func (h *ReservationHandler) confirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.ConfirmPayment(c.Request.Context(), c.Param("id"), req.Approved)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	result, err := h.service.CancelReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelResponse{
		Reservation: toResponse(result.Reservation),
		Refund:      string(result.Refund),
	})
}

func (h *ReservationHandler) auditRecords(c *gin.Context) {
	records, err := h.service.AuditRecordsFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func toResponse(res *domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:        res.ID,
		FlightID:  res.FlightID,
		Seat:      res.Seat,
		State:     string(res.State),
		Paid:      res.Payment != nil,
		CreatedAt: res.CreatedAt.Format(time.RFC3339),
	}
}
