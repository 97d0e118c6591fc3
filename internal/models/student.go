package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is a therapy client or an enrolled child.
type Student struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	Discipline     string     `db:"discipline" json:"discipline"`
	TherapistID    *uuid.UUID `db:"therapist_id" json:"therapist_id,omitempty"`
	ClassroomID    *uuid.UUID `db:"classroom_id" json:"classroom_id,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
