package booking

import (
	"context"
	"time"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
)

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

// Execute walks the barber's working day in steps of the requested
// service duration and returns the gaps: outside lunch, clear of existing
// confirmed bookings on that chair.
func (uc *ListSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) ([]domain.TimeSlot, error) {

	services, err := uc.repo.GetServicesByIDs(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	items := make([]domain.LineItem, 0, len(services))
	for _, s := range services {
		items = append(items, domain.LineItem{ServiceID: s.ID, Quantity: 1})
	}
	slotDuration := domain.SlotDuration(services, items)

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, weekday)
	if err != nil {
		return nil, err
	}
	if wh == nil || !wh.Active {
		return []domain.TimeSlot{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = parseHM(wh.LunchStart)
		lunchEnd = parseHM(wh.LunchEnd)
	}

	bookings, err := uc.repo.ListBookingsForDay(
		ctx,
		in.BarberID,
		in.ChairID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	var slots []domain.TimeSlot
	bIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasLunch && slotStart.Before(lunchEnd) && slotEnd.After(lunchStart) {
			continue
		}

		// skip bookings that ended at or before this slot
		for bIdx < len(bookings) && !bookings[bIdx].EndTime.After(slotStart) {
			bIdx++
		}

		conflict := false
		for j := bIdx; j < len(bookings); j++ {
			b := bookings[j]
			if !b.BookingDate.Before(slotEnd) {
				break
			}
			if slotStart.Before(b.EndTime) && slotEnd.After(b.BookingDate) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
