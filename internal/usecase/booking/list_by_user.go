package booking

import (
	"context"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/models"
)

type ListBookingsByUser struct {
	repo domain.Repository
}

func NewListBookingsByUser(repo domain.Repository) *ListBookingsByUser {
	return &ListBookingsByUser{repo: repo}
}

func (uc *ListBookingsByUser) Execute(
	ctx context.Context,
	userRef string,
) ([]models.Booking, error) {
	return uc.repo.ListBookingsForUser(ctx, userRef)
}
