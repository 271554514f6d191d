package booking

import (
	"context"

	"github.com/fadehouse/barbershop-api/internal/audit"
	domain "github.com/fadehouse/barbershop-api/internal/domain/booking"
	"github.com/fadehouse/barbershop-api/internal/httperr"
)

type UpdatePaymentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePaymentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdatePaymentStatus {
	return &UpdatePaymentStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdatePaymentStatus) Execute(
	ctx context.Context,
	bookingID uint,
	status string,
	actorRef string,
) error {

	if !domain.ValidPaymentStatus(status) {
		return httperr.ErrBusiness("invalid_payment_status")
	}

	if err := uc.repo.UpdatePaymentStatus(
		ctx,
		bookingID,
		domain.PaymentStatus(status),
	); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRef: actorRef,
		Action:   "payment_status_updated",
		Entity:   "booking",
		EntityID: &bookingID,
		Metadata: map[string]string{"status": status},
	})

	return nil
}
