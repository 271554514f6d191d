package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/httpresp"
	"github.com/fadehouse/barbershop-api/internal/payments"
	usecase "github.com/fadehouse/barbershop-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	gateway       payments.Gateway
	repo          domain.Repository
	updatePayment *usecase.UpdatePaymentStatus
	log           *zap.Logger
}

// NewPaymentHandler accepts a nil gateway: checkout and webhook endpoints
// then answer with payments_disabled.
func NewPaymentHandler(
	gateway payments.Gateway,
	repo domain.Repository,
	updatePayment *usecase.UpdatePaymentStatus,
	log *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		gateway:       gateway,
		repo:          repo,
		updatePayment: updatePayment,
		log:           log,
	}
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *PaymentHandler) Checkout(c *gin.Context) {
	if h.gateway == nil {
		httperr.BadRequest(c, "payments_disabled", "Online payment is not configured")
		return
	}

	bookingID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric")
		return
	}

	b, err := h.repo.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	checkout, err := h.gateway.CreateCheckout(c.Request.Context(), b)
	if err != nil {
		h.log.Error("failed to create checkout",
			zap.Uint("booking_id", bookingID),
			zap.Error(err),
		)
		httperr.Internal(c, "checkout_failed", "Could not start the payment")
		return
	}

	httpresp.OK(c, checkout)
}

// ======================================================
// WEBHOOK
// ======================================================

type webhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID int64 `json:"id,string"`
	} `json:"data"`
}

// Webhook acknowledges everything it can; the gateway retries on non-2xx
// and a permanently failing notification would just pile up retries.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if h.gateway == nil {
		httpresp.Message(c, "ignored")
		return
	}

	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Type != "payment" {
		httpresp.Message(c, "ignored")
		return
	}

	result, err := h.gateway.ResolvePayment(c.Request.Context(), req.Data.ID)
	if err != nil {
		h.log.Error("failed to resolve payment",
			zap.Int64("payment_id", req.Data.ID),
			zap.Error(err),
		)
		httperr.Internal(c, "payment_resolution_failed", "Could not resolve the payment")
		return
	}

	bookingID, ok := parseUintParam(result.BookingRef)
	if !ok {
		h.log.Warn("webhook carried a non-numeric booking reference",
			zap.String("reference", result.BookingRef),
		)
		httpresp.Message(c, "ignored")
		return
	}

	if err := h.updatePayment.Execute(
		c.Request.Context(),
		bookingID,
		result.Status,
		"payment_gateway",
	); err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.Message(c, "Payment status updated")
}
