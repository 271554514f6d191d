package booking

import (
	"context"
	"time"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
)

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

// Execute is a pure read: true means no confirmed booking overlaps the
// requested interval. An error is an error, never "unavailable".
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (bool, error) {

	duration := in.Duration
	if duration <= 0 {
		duration = domain.DefaultSlotMinutes * time.Minute
	}

	conflict, err := uc.repo.HasSlotConflict(
		ctx,
		in.BarberID,
		in.ChairID,
		in.Start,
		in.Start.Add(duration),
	)
	if err != nil {
		return false, err
	}

	return !conflict, nil
}
