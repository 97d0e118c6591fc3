package repository

import (
	"context"
	"errors"
	"time"

	"care-compliance/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a row does not exist in the caller's organization.
var ErrNotFound = errors.New("not found")

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Staff, error)
	GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Staff, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Student, error)
	GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Student, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Session, error)
	// GetByDateRange returns sessions with start <= session_date < end.
	GetByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]models.Session, error)
	UpdateAttendance(ctx context.Context, orgID, id uuid.UUID, status string) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *models.SoapNote) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.SoapNote, error)
	GetBySession(ctx context.Context, orgID, sessionID uuid.UUID) (*models.SoapNote, error)
	UpdateContent(ctx context.Context, note *models.SoapNote) error
	// UpdateStatus writes the note status and mirrors it onto the session's
	// documentation status in a single transaction.
	UpdateStatus(ctx context.Context, note *models.SoapNote) error
}

type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Goal, error)
	GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Goal, error)
	AddProgress(ctx context.Context, progress *models.GoalProgress) error
	// GetProgress returns points for the goals in chronological order.
	GetProgress(ctx context.Context, goalIDs []uuid.UUID) ([]models.GoalProgress, error)
}

type ClassroomRepository interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Classroom, error)
	GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Classroom, error)
	RecordHeadcount(ctx context.Context, headcount *models.Headcount) error
	// LatestHeadcounts returns the most recent headcount per classroom.
	LatestHeadcounts(ctx context.Context, orgID uuid.UUID) ([]models.Headcount, error)
}

type CredentialRepository interface {
	Create(ctx context.Context, credential *models.Credential) error
	GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Credential, error)
}

type ComplianceRepository interface {
	CreateItem(ctx context.Context, item *models.ComplianceItem) error
	GetItem(ctx context.Context, orgID, id uuid.UUID) (*models.ComplianceItem, error)
	GetItems(ctx context.Context, orgID uuid.UUID) ([]models.ComplianceItem, error)
	AddEvidence(ctx context.Context, evidence *models.ComplianceEvidence) error
	GetEvidence(ctx context.Context, itemIDs []uuid.UUID) ([]models.ComplianceEvidence, error)
}

// IDStrings converts ids for pq.Array binding.
func IDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
