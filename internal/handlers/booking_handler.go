package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/httpresp"
	"github.com/fadehouse/barbershop-api/internal/timezone"
	usecase "github.com/fadehouse/barbershop-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create        *usecase.CreateBooking
	check         *usecase.CheckAvailability
	slots         *usecase.ListSlots
	updatePayment *usecase.UpdatePaymentStatus
	log           *zap.Logger
}

func NewBookingHandler(
	create *usecase.CreateBooking,
	check *usecase.CheckAvailability,
	slots *usecase.ListSlots,
	updatePayment *usecase.UpdatePaymentStatus,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:        create,
		check:         check,
		slots:         slots,
		updatePayment: updatePayment,
		log:           log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// IDs arrive as strings on the public wire; non-numeric values are a 400,
// never a silent coercion.
type CreateBookingRequest struct {
	BarberID      string                        `json:"barberId" binding:"required"`
	ChairID       string                        `json:"chairId" binding:"required"`
	BookingDate   string                        `json:"bookingDate" binding:"required"`
	PhoneNumber   string                        `json:"phoneNumber" binding:"required"`
	CustomerName  string                        `json:"customerName" binding:"required"`
	TotalAmount   string                        `json:"totalAmount" binding:"required"`
	PaymentMethod string                        `json:"paymentMethod"`
	PaymentStatus string                        `json:"paymentStatus"`
	Services      []CreateBookingServiceRequest `json:"services" binding:"required,min=1,dive"`
}

type CreateBookingServiceRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price" binding:"required"`
}

type UpdatePaymentRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func parseUintParam(s string) (uint, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// Booking instants travel as RFC 3339; the legacy "date time" form is still
// accepted in the shop timezone.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, timezone.Location())
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid booking data", err.Error())
		return
	}

	barberID, ok := parseUintParam(req.BarberID)
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barberId must be numeric")
		return
	}

	chairID, ok := parseUintParam(req.ChairID)
	if !ok {
		httperr.BadRequest(c, "invalid_chair_id", "chairId must be numeric")
		return
	}

	start, err := parseInstant(req.BookingDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_date", "bookingDate must be a valid timestamp")
		return
	}

	items := make([]domain.LineItem, 0, len(req.Services))
	for _, s := range req.Services {
		serviceID, ok := parseUintParam(s.ServiceID)
		if !ok {
			httperr.BadRequest(c, "invalid_service_id", "serviceId must be numeric")
			return
		}
		qty := s.Quantity
		if qty == 0 {
			qty = 1
		}
		items = append(items, domain.LineItem{
			ServiceID: serviceID,
			Quantity:  qty,
			Price:     s.Price,
		})
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		BarberID:      barberID,
		ChairID:       chairID,
		Start:         start,
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Items:         items,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	barberStr := c.Query("barberId")
	chairStr := c.Query("chairId")
	dateStr := c.Query("date")

	if barberStr == "" || chairStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "barberId, chairId and date are required")
		return
	}

	barberID, ok := parseUintParam(barberStr)
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barberId must be numeric")
		return
	}

	chairID, ok := parseUintParam(chairStr)
	if !ok {
		httperr.BadRequest(c, "invalid_chair_id", "chairId must be numeric")
		return
	}

	start, err := parseInstant(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be a valid timestamp")
		return
	}

	available, err := h.check.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID: barberID,
		ChairID:  chairID,
		Start:    start,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"available": available})
}

// ======================================================
// FREE SLOTS (day view)
// ======================================================

func (h *BookingHandler) Slots(c *gin.Context) {
	barberID, ok := parseUintParam(c.Query("barberId"))
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barberId must be numeric")
		return
	}

	chairID, ok := parseUintParam(c.Query("chairId"))
	if !ok {
		httperr.BadRequest(c, "invalid_chair_id", "chairId must be numeric")
		return
	}

	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	var serviceIDs []uint
	if raw := c.Query("serviceIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, ok := parseUintParam(part)
			if !ok {
				httperr.BadRequest(c, "invalid_service_id", "serviceIds must be numeric")
				return
			}
			serviceIDs = append(serviceIDs, id)
		}
	}

	slots, err := h.slots.Execute(c.Request.Context(), domain.SlotsInput{
		BarberID:   barberID,
		ChairID:    chairID,
		Date:       date,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// PAYMENT STATUS
// ======================================================

func (h *BookingHandler) UpdatePayment(c *gin.Context) {
	bookingID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Invalid payment data", err.Error())
		return
	}

	if err := h.updatePayment.Execute(
		c.Request.Context(),
		bookingID,
		req.Status,
		"", // anonymous caller, no login on the public surface
	); err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.Message(c, "Payment status updated")
}
