package models

import (
	"time"

	"github.com/google/uuid"
)

// Classroom is a daycare room with its regulatory ratio.
type Classroom struct {
	ID               uuid.UUID `db:"id" json:"id"`
	OrganizationID   uuid.UUID `db:"organization_id" json:"organization_id"`
	Name             string    `db:"name" json:"name"`
	AgeGroup         string    `db:"age_group" json:"age_group"`
	RatioRequirement *string   `db:"ratio_requirement" json:"ratio_requirement"` // "1:4"
	Capacity         *int      `db:"capacity" json:"capacity,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Headcount is a point-in-time count of adults and children in a room.
type Headcount struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ClassroomID  uuid.UUID  `db:"classroom_id" json:"classroom_id"`
	StaffCount   int        `db:"staff_count" json:"staff_count"`
	StudentCount int        `db:"student_count" json:"student_count"`
	RecordedAt   time.Time  `db:"recorded_at" json:"recorded_at"`
	RecordedBy   *uuid.UUID `db:"recorded_by" json:"recorded_by,omitempty"`
}
