package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/models"
)

func TestListSlots_SkipsBookedIntervals(t *testing.T) {
	repo := new(mockRepository)
	uc := NewListSlots(repo)

	// a Monday
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 14, h, m, 0, 0, time.UTC)
	}

	repo.On("GetServicesByIDs", mock.Anything, []uint{10}).
		Return([]models.Service{{ID: 10, DurationMin: 30, Active: true}}, nil)
	repo.On("GetWorkingHours", mock.Anything, uint(1), 1).
		Return(&models.WorkingHours{
			BarberID:  1,
			Weekday:   1,
			StartTime: "09:00",
			EndTime:   "12:00",
			Active:    true,
		}, nil)
	repo.On("ListBookingsForDay", mock.Anything, uint(1), uint(2), at(9, 0), at(12, 0)).
		Return([]models.Booking{
			{BookingDate: at(10, 0), EndTime: at(10, 30)},
		}, nil)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		BarberID:   1,
		ChairID:    2,
		Date:       date,
		ServiceIDs: []uint{10},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
		{Start: "10:30", End: "11:00"},
		{Start: "11:00", End: "11:30"},
		{Start: "11:30", End: "12:00"},
	}, slots)
}

func TestListSlots_SkipsLunch(t *testing.T) {
	repo := new(mockRepository)
	uc := NewListSlots(repo)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	repo.On("GetServicesByIDs", mock.Anything, []uint{20}).
		Return([]models.Service{{ID: 20, DurationMin: 60, Active: true}}, nil)
	repo.On("GetWorkingHours", mock.Anything, uint(1), 1).
		Return(&models.WorkingHours{
			BarberID:   1,
			Weekday:    1,
			StartTime:  "09:00",
			EndTime:    "17:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			Active:     true,
		}, nil)
	repo.On("ListBookingsForDay", mock.Anything, uint(1), uint(2), mock.Anything, mock.Anything).
		Return([]models.Booking{}, nil)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		BarberID:   1,
		ChairID:    2,
		Date:       date,
		ServiceIDs: []uint{20},
	})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}, starts)
}

func TestListSlots_DayOff(t *testing.T) {
	repo := new(mockRepository)
	uc := NewListSlots(repo)

	repo.On("GetServicesByIDs", mock.Anything, mock.Anything).
		Return([]models.Service{}, nil)
	repo.On("GetWorkingHours", mock.Anything, uint(1), mock.Anything).
		Return(nil, nil)

	slots, err := uc.Execute(context.Background(), domain.SlotsInput{
		BarberID: 1,
		ChairID:  2,
		Date:     time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

// A failing working-hours read must not masquerade as a free-less day.
func TestListSlots_StorageErrorPropagates(t *testing.T) {
	repo := new(mockRepository)
	uc := NewListSlots(repo)

	repo.On("GetServicesByIDs", mock.Anything, mock.Anything).
		Return([]models.Service{}, nil)
	repo.On("GetWorkingHours", mock.Anything, uint(1), mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := uc.Execute(context.Background(), domain.SlotsInput{
		BarberID: 1,
		ChairID:  2,
		Date:     time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.Empty(t, httperr.BusinessCode(err))
}

func TestListSlots_UnknownService(t *testing.T) {
	repo := new(mockRepository)
	uc := NewListSlots(repo)

	repo.On("GetServicesByIDs", mock.Anything, []uint{99}).
		Return([]models.Service{}, nil)

	_, err := uc.Execute(context.Background(), domain.SlotsInput{
		BarberID:   1,
		ChairID:    2,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		ServiceIDs: []uint{99},
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
