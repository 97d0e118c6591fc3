package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrganizationTherapy = "therapy"
	OrganizationDaycare = "daycare"
)

// Organization is a tenant. Every other row belongs to exactly one.
type Organization struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Kind      string    `db:"kind" json:"kind"` // therapy, daycare
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
