package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one scheduled therapy visit.
type Session struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	OrganizationID      uuid.UUID `db:"organization_id" json:"organization_id"`
	StudentID           uuid.UUID `db:"student_id" json:"student_id"`
	TherapistID         uuid.UUID `db:"therapist_id" json:"therapist_id"`
	SessionDate         time.Time `db:"session_date" json:"session_date"`
	AttendanceStatus    string    `db:"attendance_status" json:"attendance_status"`       // present, absent, makeup, cancelled
	DocumentationStatus string    `db:"documentation_status" json:"documentation_status"` // draft, signed, locked, amended
	DurationMinutes     int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`

	// Joined fields
	StudentName   string `db:"student_name" json:"student_name,omitempty"`
	TherapistName string `db:"therapist_name" json:"therapist_name,omitempty"`
	Discipline    string `db:"discipline" json:"discipline,omitempty"`
}
