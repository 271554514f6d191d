package booking

import (
	"time"

	"github.com/fadehouse/barbershop-api/internal/models"
)

// DefaultSlotMinutes applies when a booking's services carry no duration.
const DefaultSlotMinutes = 30

type AvailabilityInput struct {
	BarberID uint
	ChairID  uint
	Start    time.Time
	Duration time.Duration
}

type SlotsInput struct {
	BarberID   uint
	ChairID    uint
	Date       time.Time
	ServiceIDs []uint
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LineItem is a validated service selection before persistence.
type LineItem struct {
	ServiceID uint
	Quantity  int
	Price     string
}

// SlotDuration sums service durations weighted by the requested
// quantities, falling back to the default slot.
func SlotDuration(services []models.Service, items []LineItem) time.Duration {
	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	total := 0
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		total += byID[it.ServiceID].DurationMin * qty
	}

	if total <= 0 {
		total = DefaultSlotMinutes
	}
	return time.Duration(total) * time.Minute
}

// Cancel applies the cancelled state, freeing the slot.
func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}
