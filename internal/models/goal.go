package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a treatment goal tracked for a student.
type Goal struct {
	ID             uuid.UUID `db:"id" json:"id"`
	OrganizationID uuid.UUID `db:"organization_id" json:"organization_id"`
	StudentID      uuid.UUID `db:"student_id" json:"student_id"`
	Description    string    `db:"description" json:"description"`
	Discipline     string    `db:"discipline" json:"discipline"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`

	// Joined fields
	StudentName string `db:"student_name" json:"student_name,omitempty"`
}

// GoalProgress is one measured data point, usually percent accuracy.
type GoalProgress struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	GoalID     uuid.UUID  `db:"goal_id" json:"goal_id"`
	SessionID  *uuid.UUID `db:"session_id" json:"session_id,omitempty"`
	RecordedOn time.Time  `db:"recorded_on" json:"recorded_on"`
	Value      float64    `db:"value" json:"value"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
