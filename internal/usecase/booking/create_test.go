package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/models"
)

func validCreateInput(start time.Time) CreateBookingInput {
	return CreateBookingInput{
		BarberID:      1,
		ChairID:       2,
		Start:         start,
		CustomerName:  "João Silva",
		PhoneNumber:   "+55 (11) 99999-0000",
		TotalAmount:   "45.00",
		PaymentMethod: "pix",
		Items: []domain.LineItem{
			{ServiceID: 10, Quantity: 1, Price: "45.00"},
		},
	}
}

func TestCreateBooking_Success(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: true}, nil)
	repo.On("GetChair", mock.Anything, uint(2)).
		Return(&models.Chair{ID: 2, Active: true}, nil)
	repo.On("GetServicesByIDs", mock.Anything, []uint{10}).
		Return([]models.Service{{ID: 10, DurationMin: 45, Active: true}}, nil)
	repo.On("UpsertUser", mock.Anything, mock.Anything).
		Return(&models.User{ID: "guest_+5511999990000"}, nil)
	repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Booking).ID = 77
		}).
		Return(nil)

	b, err := uc.Execute(context.Background(), validCreateInput(start))
	require.NoError(t, err)

	assert.Equal(t, uint(77), b.ID)
	assert.Equal(t, "guest_+5511999990000", b.UserRef)
	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, "pending", b.PaymentStatus)
	assert.Equal(t, start, b.BookingDate)
	assert.Equal(t, start.Add(45*time.Minute), b.EndTime)

	repo.AssertExpectations(t)
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: true}, nil)
	repo.On("GetChair", mock.Anything, uint(2)).
		Return(&models.Chair{ID: 2, Active: true}, nil)
	repo.On("GetServicesByIDs", mock.Anything, []uint{10}).
		Return([]models.Service{{ID: 10, DurationMin: 30, Active: true}}, nil)
	repo.On("UpsertUser", mock.Anything, mock.Anything).
		Return(&models.User{}, nil)
	repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).
		Return(httperr.ErrBusiness("slot_unavailable"))

	_, err := uc.Execute(context.Background(), validCreateInput(time.Now()))
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

// A storage outage on the barber read must surface as a storage error,
// not as a not-found answer the client would see as a 404.
func TestCreateBooking_StorageErrorPropagates(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(nil, errors.New("pq: connection refused"))

	_, err := uc.Execute(context.Background(), validCreateInput(time.Now()))
	require.Error(t, err)
	assert.Empty(t, httperr.BusinessCode(err))

	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_InactiveBarber(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: false}, nil)

	_, err := uc.Execute(context.Background(), validCreateInput(time.Now()))
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_UnknownService(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: true}, nil)
	repo.On("GetChair", mock.Anything, uint(2)).
		Return(&models.Chair{ID: 2, Active: true}, nil)
	repo.On("GetServicesByIDs", mock.Anything, []uint{10}).
		Return([]models.Service{}, nil)

	_, err := uc.Execute(context.Background(), validCreateInput(time.Now()))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	repo.AssertNotCalled(t, "UpsertUser", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_InactiveService(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: true}, nil)
	repo.On("GetChair", mock.Anything, uint(2)).
		Return(&models.Chair{ID: 2, Active: true}, nil)
	repo.On("GetServicesByIDs", mock.Anything, []uint{10}).
		Return([]models.Service{{ID: 10, Active: false}}, nil)

	_, err := uc.Execute(context.Background(), validCreateInput(time.Now()))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_InvalidQuantity(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: true}, nil)
	repo.On("GetChair", mock.Anything, uint(2)).
		Return(&models.Chair{ID: 2, Active: true}, nil)

	in := validCreateInput(time.Now())
	in.Items[0].Quantity = 0

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}

func TestCreateBooking_InvalidAmount(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: true}, nil)
	repo.On("GetChair", mock.Anything, uint(2)).
		Return(&models.Chair{ID: 2, Active: true}, nil)
	repo.On("GetServicesByIDs", mock.Anything, []uint{10}).
		Return([]models.Service{{ID: 10, DurationMin: 30, Active: true}}, nil)

	in := validCreateInput(time.Now())
	in.TotalAmount = "45,00"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))
}

func TestCreateBooking_InvalidPaymentStatus(t *testing.T) {
	repo := new(mockRepository)
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	repo.On("GetBarber", mock.Anything, uint(1)).
		Return(&models.Barber{ID: 1, Active: true}, nil)
	repo.On("GetChair", mock.Anything, uint(2)).
		Return(&models.Chair{ID: 2, Active: true}, nil)
	repo.On("GetServicesByIDs", mock.Anything, []uint{10}).
		Return([]models.Service{{ID: 10, DurationMin: 30, Active: true}}, nil)

	in := validCreateInput(time.Now())
	in.PaymentStatus = "approved"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_status"))
}

// ======================================================
// RACING CREATES
// ======================================================

// raceRepo is a minimal in-memory repository whose CreateBooking performs
// the overlap check and the insert under one lock, the contract the real
// repository honors transactionally.
type raceRepo struct {
	domain.Repository

	mu       sync.Mutex
	nextID   uint
	bookings []models.Booking
}

func (r *raceRepo) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	return &models.Barber{ID: id, Active: true}, nil
}

func (r *raceRepo) GetChair(ctx context.Context, id uint) (*models.Chair, error) {
	return &models.Chair{ID: id, Active: true}, nil
}

func (r *raceRepo) GetServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error) {
	services := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		services = append(services, models.Service{ID: id, DurationMin: 30, Active: true})
	}
	return services, nil
}

func (r *raceRepo) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	return u, nil
}

func (r *raceRepo) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	items []domain.LineItem,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.BarberID == b.BarberID &&
			existing.ChairID == b.ChairID &&
			existing.Status == "confirmed" &&
			existing.BookingDate.Before(b.EndTime) &&
			existing.EndTime.After(b.BookingDate) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}

	r.nextID++
	b.ID = r.nextID
	r.bookings = append(r.bookings, *b)
	return nil
}

func TestCreateBooking_ConcurrentCreatesOneWinner(t *testing.T) {
	repo := &raceRepo{}
	uc := NewCreateBooking(repo, newTestDispatcher(t))

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	const racers = 16

	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validCreateInput(start))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	}

	assert.Equal(t, 1, successes)
	assert.Len(t, repo.bookings, 1)
}
