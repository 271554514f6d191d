package payments

import (
	"context"

	"github.com/fadehouse/barbershop-api/internal/models"
)

// Checkout is an externally payable reference for a booking.
type Checkout struct {
	Reference string `json:"reference"`
	InitPoint string `json:"init_point"`
}

// PaymentResult is what a webhook notification resolves to.
type PaymentResult struct {
	// BookingRef is the external reference the checkout was created with
	// (the booking id as a string).
	BookingRef string
	// Status is already normalized to the booking payment statuses.
	Status string
}

type Gateway interface {
	CreateCheckout(ctx context.Context, b *models.Booking) (*Checkout, error)
	ResolvePayment(ctx context.Context, paymentID int64) (*PaymentResult, error)
}
