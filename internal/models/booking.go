package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Weak reference: guest ids are synthesized from the phone number and
	// may not exist in the users table at all.
	UserRef string `gorm:"size:64;index" json:"user_id"`

	BarberID uint   `gorm:"index:idx_booking_slot" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ChairID uint  `gorm:"index:idx_booking_slot" json:"chair_id"`
	Chair   Chair `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"chair"`

	// BookingDate is the start of the occupied interval; EndTime is derived
	// from the durations of the selected services.
	BookingDate time.Time `gorm:"index:idx_booking_slot" json:"booking_date"`
	EndTime     time.Time `json:"end_time"`

	CustomerName string `gorm:"size:100;not null" json:"customer_name"`
	PhoneNumber  string `gorm:"size:20;not null" json:"phone_number"`

	// Decimal kept as string end to end; the column stays text so "45.00"
	// reads back exactly, on any engine.
	TotalAmount string `gorm:"size:20;not null" json:"total_amount"`

	PaymentMethod string `gorm:"size:30" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	Status      string     `gorm:"size:20;default:'confirmed'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Services []BookingService `gorm:"constraint:OnDelete:CASCADE;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService is one line item of a booking: a quantity of a service at
// the price it had when the booking was made. Immutable after creation.
type BookingService struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;not null" json:"booking_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity int    `gorm:"default:1" json:"quantity"`
	Price    string `gorm:"size:20;not null" json:"price"`

	CreatedAt time.Time `json:"created_at"`
}
