package models

import "time"

type Barber struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	Specialty string `gorm:"size:100" json:"specialty"`
	Bio       string `gorm:"size:255" json:"bio"`
	PhotoURL  string `gorm:"size:255" json:"photo_url"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
