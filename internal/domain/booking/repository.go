package booking

import (
	"context"
	"time"

	"github.com/fadehouse/barbershop-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------

	// Single-record getters return the matching *_not_found business error
	// for a missing row; any other error is a storage failure.
	ListBarbers(ctx context.Context) ([]models.Barber, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	ListChairs(ctx context.Context) ([]models.Chair, error)
	GetChair(ctx context.Context, id uint) (*models.Chair, error)

	ListServices(ctx context.Context) ([]models.Service, error)
	GetServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error)

	// -------- Users --------
	UpsertUser(ctx context.Context, u *models.User) (*models.User, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking persists the booking and its line items atomically.
	// The overlap check runs inside the same transaction; a lost race
	// surfaces as the slot-unavailable business error.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		items []LineItem,
	) error

	HasSlotConflict(
		ctx context.Context,
		barberID uint,
		chairID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Booking (read / state change) --------
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	ListBookingsForUser(ctx context.Context, userRef string) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	UpdateBooking(ctx context.Context, b *models.Booking) error

	// UpdatePaymentStatus returns the booking-not-found business error when
	// no row matches: a no-op update is not a success.
	UpdatePaymentStatus(ctx context.Context, id uint, status PaymentStatus) error

	// -------- Availability (slot walking) --------

	// GetWorkingHours returns (nil, nil) when no configuration exists for
	// that weekday.
	GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error)

	ListBookingsForDay(
		ctx context.Context,
		barberID uint,
		chairID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
