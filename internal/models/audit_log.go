package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// ActorRef identifies who triggered the event: a guest reference, an
	// account reference, a system source like "payment_gateway", or empty
	// for anonymous public calls.
	ActorRef string `gorm:"size:64" json:"actor_ref"`

	Action string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
