package models

import "time"

// User is the customer identity a booking points at. Guests get a synthetic
// id derived from their phone number; authenticated ids come from the
// external auth collaborator via upsert.
type User struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`

	Name  string `gorm:"size:100" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
