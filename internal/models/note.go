package models

import (
	"time"

	"github.com/google/uuid"
)

// SoapNote is the clinical narrative attached to a session.
type SoapNote struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OrganizationID uuid.UUID  `db:"organization_id" json:"organization_id"`
	SessionID      uuid.UUID  `db:"session_id" json:"session_id"`
	Subjective     string     `db:"subjective" json:"subjective"`
	Objective      string     `db:"objective" json:"objective"`
	Assessment     string     `db:"assessment" json:"assessment"`
	Plan           string     `db:"plan" json:"plan"`
	Status         string     `db:"status" json:"status"` // draft, signed, locked, amended
	SignedBy       *uuid.UUID `db:"signed_by" json:"signed_by,omitempty"`
	SignedAt       *time.Time `db:"signed_at" json:"signed_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
