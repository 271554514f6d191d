package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/models"
)

func TestSlotDuration_SumsWeightedDurations(t *testing.T) {
	services := []models.Service{
		{ID: 1, DurationMin: 30},
		{ID: 2, DurationMin: 15},
	}
	items := []LineItem{
		{ServiceID: 1, Quantity: 1},
		{ServiceID: 2, Quantity: 2},
	}

	assert.Equal(t, 60*time.Minute, SlotDuration(services, items))
}

func TestSlotDuration_FallsBackToDefault(t *testing.T) {
	assert.Equal(
		t,
		time.Duration(DefaultSlotMinutes)*time.Minute,
		SlotDuration(nil, nil),
	)

	// services without a duration still occupy the default slot
	services := []models.Service{{ID: 1, DurationMin: 0}}
	items := []LineItem{{ServiceID: 1, Quantity: 3}}
	assert.Equal(t, time.Duration(DefaultSlotMinutes)*time.Minute, SlotDuration(services, items))
}

func TestCancel(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(b, now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)

	// already cancelled
	err := Cancel(b, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	// completed bookings are final
	done := &models.Booking{Status: string(StatusCompleted)}
	err = Cancel(done, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestValidAmount(t *testing.T) {
	valid := []string{"0", "45", "45.5", "45.50", "12345678.99"}
	for _, s := range valid {
		assert.True(t, ValidAmount(s), s)
	}

	invalid := []string{"", "-45.50", "45,50", "45.505", "abc", "1e3", " 45"}
	for _, s := range invalid {
		assert.False(t, ValidAmount(s), s)
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "failed", "refunded"} {
		assert.True(t, ValidPaymentStatus(s), s)
	}

	assert.False(t, ValidPaymentStatus("approved"))
	assert.False(t, ValidPaymentStatus(""))
	assert.False(t, ValidPaymentStatus("PAID"))
}
