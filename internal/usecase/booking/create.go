package booking

import (
	"context"
	"time"

	"github.com/fadehouse/barbershop-api/internal/audit"
	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
	"github.com/fadehouse/barbershop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID uint
	ChairID  uint

	Start time.Time

	CustomerName string
	PhoneNumber  string

	TotalAmount   string
	PaymentMethod string
	PaymentStatus string

	Items []domain.LineItem
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Barber and chair must exist and be active
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	chair, err := uc.repo.GetChair(ctx, in.ChairID)
	if err != nil {
		return nil, err
	}
	if !chair.Active {
		return nil, httperr.ErrBusiness("chair_not_found")
	}

	// --------------------------------------------------
	// Line items against the catalog
	// --------------------------------------------------
	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
		if !domain.ValidAmount(it.Price) {
			return nil, httperr.ErrBusiness("invalid_amount")
		}
		ids = append(ids, it.ServiceID)
	}

	services, err := uc.repo.GetServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(services) != countUnique(ids) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	for _, s := range services {
		if !s.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}

	if !domain.ValidAmount(in.TotalAmount) {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = string(domain.PaymentPending)
	}
	if !domain.ValidPaymentStatus(paymentStatus) {
		return nil, httperr.ErrBusiness("invalid_payment_status")
	}

	// --------------------------------------------------
	// Guest identity (weak reference, but keep the users
	// table in sync so the reference resolves)
	// --------------------------------------------------
	identity := domain.GuestIdentity(in.PhoneNumber)

	if _, err := uc.repo.UpsertUser(ctx, &models.User{
		ID:    identity.Ref(),
		Name:  in.CustomerName,
		Phone: identity.Phone(),
	}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Occupied interval = sum of service durations
	// --------------------------------------------------
	end := in.Start.Add(domain.SlotDuration(services, in.Items))

	b := &models.Booking{
		UserRef:       identity.Ref(),
		BarberID:      in.BarberID,
		ChairID:       in.ChairID,
		BookingDate:   in.Start,
		EndTime:       end,
		CustomerName:  in.CustomerName,
		PhoneNumber:   in.PhoneNumber,
		TotalAmount:   in.TotalAmount,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: paymentStatus,
		Status:        string(domain.InitialStatus()),
	}

	// The repository re-checks the slot inside its transaction; losing a
	// race comes back as slot_unavailable, same as a plain conflict.
	if err := uc.repo.CreateBooking(ctx, b, in.Items); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRef: identity.Ref(),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func countUnique(ids []uint) int {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
