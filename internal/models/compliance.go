package models

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceItem is one regulatory checklist entry.
type ComplianceItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	Category       string    `db:"category" json:"category"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ComplianceEvidence is an uploaded proof for an item.
type ComplianceEvidence struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ItemID         uuid.UUID  `db:"item_id" json:"item_id"`
	Status         string     `db:"status" json:"status"` // pending, approved, rejected
	DocumentURL    string     `db:"document_url" json:"document_url"`
	ExpirationDate *time.Time `db:"expiration_date" json:"expiration_date,omitempty"`
	ReviewedBy     *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
