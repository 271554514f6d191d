package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	BookingDate   time.Time `json:"booking_date"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CustomerName  string    `json:"customer_name"`
	BarberName    string    `json:"barber_name"`
	ChairName     string    `json:"chair_name"`
	TotalAmount   string    `json:"total_amount"`
}
