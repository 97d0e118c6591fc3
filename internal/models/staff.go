package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a therapist or a daycare teacher.
type Staff struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Role           string    `db:"role" json:"role"`             // therapist, teacher, director
	Discipline     string    `db:"discipline" json:"discipline"` // speech, ot, pt; empty for daycare
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
