package handlers

import (
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/fadehouse/barbershop-api/internal/httperr"
)

// mapBusinessError translates usecase outcomes to HTTP. Expected outcomes
// get stable codes; anything unrecognized is a storage failure: logged with
// full context, surfaced without internals.
func mapBusinessError(c *gin.Context, log *zap.Logger, err error) {
	switch httperr.BusinessCode(err) {

	case "slot_unavailable":
		httperr.BadRequest(c, "slot_unavailable", "This slot is not available")

	case "invalid_quantity":
		httperr.BadRequest(c, "invalid_quantity", "Service quantity must be at least 1")
	case "invalid_amount":
		httperr.BadRequest(c, "invalid_amount", "Amounts must be decimal strings")
	case "invalid_payment_status":
		httperr.BadRequest(c, "invalid_payment_status", "Unknown payment status")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "Booking is not in a cancellable state")

	case "barber_not_found":
		httperr.NotFound(c, "barber_not_found", "Barber not found")
	case "chair_not_found":
		httperr.NotFound(c, "chair_not_found", "Chair not found")
	case "service_not_found":
		httperr.NotFound(c, "service_not_found", "Service not found")
	case "booking_not_found":
		httperr.NotFound(c, "booking_not_found", "Booking not found")

	default:
		log.Error("unexpected storage error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Something went wrong")
	}
}
