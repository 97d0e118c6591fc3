package service

import (
	"context"
	"time"

	"care-compliance/internal/ai"
	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"

	"github.com/google/uuid"
)

// Clock returns the reference instant for every score. Its location decides
// which calendar day is "today".
type Clock func() time.Time

// Period is a half-open date range [From, To).
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ////////////// therapy

type CreateSessionInput struct {
	StudentID        uuid.UUID `json:"student_id" validate:"required"`
	TherapistID      uuid.UUID `json:"therapist_id" validate:"required"`
	SessionDate      time.Time `json:"session_date" validate:"required"`
	AttendanceStatus string    `json:"attendance_status" validate:"required,oneof=present absent makeup cancelled"`
	DurationMinutes  int       `json:"duration_minutes" validate:"gte=0,lte=480"`
}

type CreateGoalInput struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	Description string    `json:"description" validate:"required,max=1000"`
	Discipline  string    `json:"discipline" validate:"omitempty,max=50"`
}

type RecordProgressInput struct {
	SessionID  *uuid.UUID `json:"session_id"`
	RecordedOn time.Time  `json:"recorded_on" validate:"required"`
	Value      float64    `json:"value" validate:"gte=0,lte=100"`
}

type GoalSummary struct {
	Goal  models.Goal         `json:"goal"`
	Trend evaluator.GoalTrend `json:"trend"`
}

type CaseloadEntry struct {
	TherapistID   uuid.UUID              `json:"therapist_id"`
	TherapistName string                 `json:"therapist_name"`
	Discipline    string                 `json:"discipline"`
	Students      int                    `json:"students"`
	Score         evaluator.SessionScore `json:"score"`
}

// DisciplineCaseload counts students per discipline, including those not yet
// assigned to a therapist.
type DisciplineCaseload struct {
	Discipline string `json:"discipline"`
	Students   int    `json:"students"`
	Unassigned int    `json:"unassigned"`
}

type TherapyDashboard struct {
	Period      Period                 `json:"period"`
	GeneratedAt time.Time              `json:"generated_at"`
	Score       evaluator.SessionScore `json:"score"`
	Caseload    []CaseloadEntry        `json:"caseload"`
	Disciplines []DisciplineCaseload   `json:"disciplines"`
	Goals       []GoalSummary          `json:"goals"`
	// UnsignedSessions lists attended sessions still waiting on a signature.
	UnsignedSessions []models.Session `json:"unsigned_sessions"`
}

type TherapyService interface {
	CreateSession(ctx context.Context, orgID uuid.UUID, in CreateSessionInput) (*models.Session, error)
	ListSessions(ctx context.Context, orgID uuid.UUID, period Period) ([]models.Session, error)
	UpdateAttendance(ctx context.Context, orgID, sessionID uuid.UUID, status string) error
	CreateGoal(ctx context.Context, orgID uuid.UUID, in CreateGoalInput) (*models.Goal, error)
	RecordProgress(ctx context.Context, orgID, goalID uuid.UUID, in RecordProgressInput) (*models.GoalProgress, error)
	Dashboard(ctx context.Context, orgID uuid.UUID, period Period) (*TherapyDashboard, error)
}

// ////////////// notes

type NoteContent struct {
	Subjective string `json:"subjective" validate:"max=20000"`
	Objective  string `json:"objective" validate:"max=20000"`
	Assessment string `json:"assessment" validate:"max=20000"`
	Plan       string `json:"plan" validate:"max=20000"`
}

type SuggestInput struct {
	TherapistNotes string `json:"therapist_notes" validate:"max=5000"`
}

// NoteSuggester drafts note text for a session.
type NoteSuggester interface {
	Suggest(ctx context.Context, s ai.SessionContext) ai.Suggestion
}

type NoteService interface {
	CreateDraft(ctx context.Context, orgID, sessionID uuid.UUID, content NoteContent) (*models.SoapNote, error)
	Update(ctx context.Context, orgID, noteID uuid.UUID, content NoteContent) (*models.SoapNote, error)
	Sign(ctx context.Context, orgID, noteID, signerID uuid.UUID) (*models.SoapNote, error)
	Lock(ctx context.Context, orgID, noteID uuid.UUID) (*models.SoapNote, error)
	Amend(ctx context.Context, orgID, noteID uuid.UUID) (*models.SoapNote, error)
	Suggest(ctx context.Context, orgID, sessionID uuid.UUID, in SuggestInput) (ai.Suggestion, error)
}

// ////////////// daycare

type CreateClassroomInput struct {
	Name             string  `json:"name" validate:"required,max=200"`
	AgeGroup         string  `json:"age_group" validate:"max=100"`
	RatioRequirement *string `json:"ratio_requirement" validate:"omitempty,ratio"`
	Capacity         *int    `json:"capacity" validate:"omitempty,gte=0"`
}

type RecordHeadcountInput struct {
	StaffCount   int        `json:"staff_count" validate:"gte=0"`
	StudentCount int        `json:"student_count" validate:"gte=0"`
	RecordedBy   *uuid.UUID `json:"recorded_by"`
}

type CreateCredentialInput struct {
	StaffID        uuid.UUID  `json:"staff_id" validate:"required"`
	Name           string     `json:"name" validate:"required,max=200"`
	CredentialType string     `json:"credential_type" validate:"max=100"`
	IssuedOn       *time.Time `json:"issued_on"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

type CreateComplianceItemInput struct {
	Category    string `json:"category" validate:"required,max=100"`
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"max=5000"`
}

type AddEvidenceInput struct {
	Status         string     `json:"status" validate:"required,oneof=pending approved rejected"`
	DocumentURL    string     `json:"document_url" validate:"omitempty,url"`
	ExpirationDate *time.Time `json:"expiration_date"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by"`
}

type ClassroomRatio struct {
	Classroom    models.Classroom `json:"classroom"`
	HasHeadcount bool             `json:"has_headcount"`
	StaffCount   int              `json:"staff_count"`
	StudentCount int              `json:"student_count"`
	MaxStudents  *float64         `json:"max_students"`
	RecordedAt   *time.Time       `json:"recorded_at,omitempty"`
	Met          bool             `json:"met"`
}

type ComplianceItemView struct {
	Item           models.ComplianceItem      `json:"item"`
	Status         evaluator.ItemStatus       `json:"status"`
	LatestEvidence *models.ComplianceEvidence `json:"latest_evidence,omitempty"`
}

type DaycareDashboard struct {
	GeneratedAt     time.Time                                      `json:"generated_at"`
	Ratios          []ClassroomRatio                               `json:"ratios"`
	RatiosMet       int                                            `json:"ratios_met"`
	Credentials     evaluator.ExpirationBuckets[models.Credential] `json:"credentials"`
	Compliance      evaluator.ComplianceSummary                    `json:"compliance"`
	ComplianceItems []ComplianceItemView                           `json:"compliance_items"`
}

type DaycareService interface {
	CreateClassroom(ctx context.Context, orgID uuid.UUID, in CreateClassroomInput) (*models.Classroom, error)
	RecordHeadcount(ctx context.Context, orgID, classroomID uuid.UUID, in RecordHeadcountInput) (*models.Headcount, error)
	CreateCredential(ctx context.Context, orgID uuid.UUID, in CreateCredentialInput) (*models.Credential, error)
	CreateComplianceItem(ctx context.Context, orgID uuid.UUID, in CreateComplianceItemInput) (*models.ComplianceItem, error)
	AddEvidence(ctx context.Context, orgID, itemID uuid.UUID, in AddEvidenceInput) (*models.ComplianceEvidence, error)
	Dashboard(ctx context.Context, orgID uuid.UUID) (*DaycareDashboard, error)
}

// ////////////// alerts and reports

// Notifier delivers a plain-text alert to operators.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type AlertService interface {
	Digest(ctx context.Context, orgID uuid.UUID) (string, error)
	Send(ctx context.Context, orgID uuid.UUID) error
}

type ReportService interface {
	TherapyWorkbook(ctx context.Context, orgID uuid.UUID, period Period) ([]byte, error)
	DaycareWorkbook(ctx context.Context, orgID uuid.UUID) ([]byte, error)
}

// ////////////// roster

type CreateOrganizationInput struct {
	Name string `json:"name" validate:"required,max=200"`
	Kind string `json:"kind" validate:"required,oneof=therapy daycare"`
}

type CreateStaffInput struct {
	FullName   string `json:"full_name" validate:"required,max=200"`
	Role       string `json:"role" validate:"required,oneof=therapist teacher director"`
	Discipline string `json:"discipline" validate:"omitempty,max=50"`
}

type CreateStudentInput struct {
	FirstName   string     `json:"first_name" validate:"required,max=100"`
	LastName    string     `json:"last_name" validate:"required,max=100"`
	Discipline  string     `json:"discipline" validate:"omitempty,max=50"`
	TherapistID *uuid.UUID `json:"therapist_id"`
	ClassroomID *uuid.UUID `json:"classroom_id"`
}

type RosterService interface {
	CreateOrganization(ctx context.Context, in CreateOrganizationInput) (*models.Organization, error)
	GetOrganization(ctx context.Context, orgID uuid.UUID) (*models.Organization, error)
	CreateStaff(ctx context.Context, orgID uuid.UUID, in CreateStaffInput) (*models.Staff, error)
	ListStaff(ctx context.Context, orgID uuid.UUID) ([]models.Staff, error)
	CreateStudent(ctx context.Context, orgID uuid.UUID, in CreateStudentInput) (*models.Student, error)
	ListStudents(ctx context.Context, orgID uuid.UUID) ([]models.Student, error)
}
