package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/httpresp"
	"github.com/fadehouse/barbershop-api/internal/middleware"
	"github.com/fadehouse/barbershop-api/internal/timezone"
	usecase "github.com/fadehouse/barbershop-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type StaffBookingHandler struct {
	listByDate *usecase.ListBookingsByDate
	listByUser *usecase.ListBookingsByUser
	cancel     *usecase.CancelBooking
	log        *zap.Logger
}

func NewStaffBookingHandler(
	listByDate *usecase.ListBookingsByDate,
	listByUser *usecase.ListBookingsByUser,
	cancel *usecase.CancelBooking,
	log *zap.Logger,
) *StaffBookingHandler {
	return &StaffBookingHandler{
		listByDate: listByDate,
		listByUser: listByUser,
		cancel:     cancel,
		log:        log,
	}
}

func (h *StaffBookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.DefaultQuery("date", timezone.Now().Format("2006-01-02"))

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	bookings, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *StaffBookingHandler) ListByUser(c *gin.Context) {
	userRef := c.Param("userRef")
	if userRef == "" {
		httperr.BadRequest(c, "missing_user_ref", "User reference is required")
		return
	}

	bookings, err := h.listByUser.Execute(c.Request.Context(), userRef)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *StaffBookingHandler) Cancel(c *gin.Context) {
	bookingID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric")
		return
	}

	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	actorRef := "account_" + strconv.FormatUint(uint64(accountID), 10)

	b, err := h.cancel.Execute(c.Request.Context(), bookingID, actorRef)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.OK(c, b)
}
