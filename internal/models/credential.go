package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a staff certification or clearance.
type Credential struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	StaffID        uuid.UUID  `db:"staff_id" json:"staff_id"`
	Name           string     `db:"name" json:"name"`
	CredentialType string     `db:"credential_type" json:"credential_type"`
	IssuedOn       *time.Time `db:"issued_on" json:"issued_on,omitempty"`
	ExpirationDate *time.Time `db:"expiration_date" json:"expiration_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`

	// Joined fields
	StaffName string `db:"staff_name" json:"staff_name,omitempty"`
}
