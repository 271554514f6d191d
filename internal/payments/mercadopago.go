package payments

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/fadehouse/barbershop-api/internal/config"
	"github.com/fadehouse/barbershop-api/internal/models"
)

type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	webhookURL  string
}

// NewMercadoPago returns nil when no access token is configured; the
// checkout endpoints are disabled in that case.
func NewMercadoPago(cfg *config.Config) (*MercadoPagoGateway, error) {
	if cfg.MPAccessToken == "" {
		return nil, nil
	}

	mpCfg, err := mpconfig.New(cfg.MPAccessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPagoGateway{
		preferences: preference.NewClient(mpCfg),
		payments:    payment.NewClient(mpCfg),
		webhookURL:  cfg.MPWebhookURL,
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckout(
	ctx context.Context,
	b *models.Booking,
) (*Checkout, error) {

	amount, err := strconv.ParseFloat(b.TotalAmount, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid total amount %q: %w", b.TotalAmount, err)
	}

	ref := strconv.FormatUint(uint64(b.ID), 10)

	req := preference.Request{
		ExternalReference: ref,
		NotificationURL:   g.webhookURL,
		Items: []preference.ItemRequest{
			{
				Title:     fmt.Sprintf("Booking #%d (%s)", b.ID, b.CustomerName),
				Quantity:  1,
				UnitPrice: amount,
			},
		},
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Checkout{
		Reference: ref,
		InitPoint: resp.InitPoint,
	}, nil
}

func (g *MercadoPagoGateway) ResolvePayment(
	ctx context.Context,
	paymentID int64,
) (*PaymentResult, error) {

	resp, err := g.payments.Get(ctx, int(paymentID))
	if err != nil {
		return nil, err
	}

	return &PaymentResult{
		BookingRef: resp.ExternalReference,
		Status:     normalizeStatus(resp.Status),
	}, nil
}

func normalizeStatus(mpStatus string) string {
	switch mpStatus {
	case "approved":
		return "paid"
	case "refunded", "charged_back":
		return "refunded"
	case "rejected", "cancelled":
		return "failed"
	default:
		return "pending"
	}
}

var _ Gateway = (*MercadoPagoGateway)(nil)
