package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) ListChairs(ctx context.Context) ([]models.Chair, error) {
	var chairs []models.Chair
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("number ASC").
		Find(&chairs).Error; err != nil {
		return nil, err
	}
	return chairs, nil
}

func (r *BookingGormRepository) GetChair(
	ctx context.Context,
	id uint,
) (*models.Chair, error) {

	var chair models.Chair
	if err := r.db.WithContext(ctx).First(&chair, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("chair_not_found")
		}
		return nil, err
	}
	return &chair, nil
}

func (r *BookingGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}

	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

// UpsertUser is a single atomic write: two guest bookings racing on the
// same phone must both succeed, so the insert and the refresh cannot be
// separate statements.
func (r *BookingGormRepository) UpsertUser(
	ctx context.Context,
	u *models.User,
) (*models.User, error) {

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "updated_at"}),
		}).
		Create(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) HasSlotConflict(
	ctx context.Context,
	barberID uint,
	chairID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	return hasSlotConflict(r.db.WithContext(ctx), barberID, chairID, start, end)
}

func hasSlotConflict(
	tx *gorm.DB,
	barberID uint,
	chairID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := tx.
		Model(&models.Booking{}).
		Where(
			"barber_id = ? AND chair_id = ? AND status = 'confirmed' AND booking_date < ? AND end_time > ?",
			barberID,
			chairID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	items []domain.LineItem,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Re-check inside the transaction: the caller's availability read
		// happened before we held anything.
		conflict, err := hasSlotConflict(tx, b.BarberID, b.ChairID, b.BookingDate, b.EndTime)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		for _, it := range items {
			if it.Quantity < 1 {
				return httperr.ErrBusiness("invalid_quantity")
			}
			row := models.BookingService{
				BookingID: b.ID,
				ServiceID: it.ServiceID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})

	// Two transactions can both pass the overlap count before either
	// commits; the bookings_no_overlap exclusion constraint (postgres) and
	// idx_no_double_booking settle that race, and the loser reports the
	// same way as a plain conflict.
	if isSlotConstraintViolation(err) {
		return httperr.ErrBusiness("slot_unavailable")
	}

	return err
}

// 23505 = unique_violation, 23P01 = exclusion_violation.
func isSlotConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
		return true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// sqlite (tests) reports constraint violations as plain strings.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --------------------------------------------------
// Booking (read / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userRef string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("user_ref = ?", userRef).
		Order("booking_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Chair").
		Preload("Services").
		Where("booking_date >= ? AND booking_date < ?", start, end).
		Order("booking_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) UpdatePaymentStatus(
	ctx context.Context,
	id uint,
	status domain.PaymentStatus,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_status": string(status),
			"updated_at":     time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("booking_not_found")
	}
	return nil
}

// --------------------------------------------------
// Availability (slot walking)
// --------------------------------------------------

// GetWorkingHours returns (nil, nil) when the barber has no configuration
// for that weekday; absence is a day off, not a failure.
func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &wh, nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	barberID uint,
	chairID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("booking_date", "end_time").
		Where(
			"barber_id = ? AND chair_id = ? AND status = 'confirmed' AND booking_date >= ? AND booking_date < ?",
			barberID, chairID, start, end,
		).
		Order("booking_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
