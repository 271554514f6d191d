package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fadehouse/barbershop-api/internal/audit"
	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/models"
)

// ======================================================
// MOCK REPOSITORY
// ======================================================

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Barber), args.Error(1)
}

func (m *mockRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barber), args.Error(1)
}

func (m *mockRepository) ListChairs(ctx context.Context) ([]models.Chair, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Chair), args.Error(1)
}

func (m *mockRepository) GetChair(ctx context.Context, id uint) (*models.Chair, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chair), args.Error(1)
}

func (m *mockRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockRepository) GetServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockRepository) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	items []domain.LineItem,
) error {
	args := m.Called(ctx, b, items)
	return args.Error(0)
}

func (m *mockRepository) HasSlotConflict(
	ctx context.Context,
	barberID uint,
	chairID uint,
	start time.Time,
	end time.Time,
) (bool, error) {
	args := m.Called(ctx, barberID, chairID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepository) ListBookingsForUser(ctx context.Context, userRef string) ([]models.Booking, error) {
	args := m.Called(ctx, userRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepository) ListBookingsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepository) UpdateBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepository) UpdatePaymentStatus(
	ctx context.Context,
	id uint,
	status domain.PaymentStatus,
) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {
	args := m.Called(ctx, barberID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkingHours), args.Error(1)
}

func (m *mockRepository) ListBookingsForDay(
	ctx context.Context,
	barberID uint,
	chairID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {
	args := m.Called(ctx, barberID, chairID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

var _ domain.Repository = (*mockRepository)(nil)

// ======================================================
// HELPERS
// ======================================================

// newTestDispatcher backs the audit queue with a throwaway in-memory
// database so dispatched events have somewhere to land.
func newTestDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open("file:"+t.Name()+"_audit?mode=memory&cache=shared"),
		&gorm.Config{Logger: gormlogger.Discard},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	return audit.NewDispatcher(audit.New(db), zap.NewNop())
}
