// Package memory provides in-memory repositories for service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"care-compliance/internal/models"
	"care-compliance/internal/repository"

	"github.com/google/uuid"
)

// Store backs every repository. Fail, when set, is returned by all writes.
type Store struct {
	mu sync.Mutex

	Orgs       map[uuid.UUID]models.Organization
	Staff      map[uuid.UUID]models.Staff
	Students   map[uuid.UUID]models.Student
	Sessions   map[uuid.UUID]models.Session
	Notes      map[uuid.UUID]models.SoapNote
	Goals      map[uuid.UUID]models.Goal
	Progress   []models.GoalProgress
	Classrooms map[uuid.UUID]models.Classroom
	Headcounts []models.Headcount
	Creds      map[uuid.UUID]models.Credential
	Items      map[uuid.UUID]models.ComplianceItem
	Evidence   []models.ComplianceEvidence

	Fail error
	// Now stamps created_at values.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		Orgs:       make(map[uuid.UUID]models.Organization),
		Staff:      make(map[uuid.UUID]models.Staff),
		Students:   make(map[uuid.UUID]models.Student),
		Sessions:   make(map[uuid.UUID]models.Session),
		Notes:      make(map[uuid.UUID]models.SoapNote),
		Goals:      make(map[uuid.UUID]models.Goal),
		Classrooms: make(map[uuid.UUID]models.Classroom),
		Creds:      make(map[uuid.UUID]models.Credential),
		Items:      make(map[uuid.UUID]models.ComplianceItem),
		Now:        time.Now,
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ---- organizations

type OrganizationRepo struct{ S *Store }

func (r OrganizationRepo) Create(_ context.Context, org *models.Organization) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&org.ID)
	org.CreatedAt = r.S.Now()
	r.S.Orgs[org.ID] = *org
	return nil
}

func (r OrganizationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	org, ok := r.S.Orgs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &org, nil
}

// ---- staff

type StaffRepo struct{ S *Store }

func (r StaffRepo) Create(_ context.Context, staff *models.Staff) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&staff.ID)
	staff.CreatedAt = r.S.Now()
	r.S.Staff[staff.ID] = *staff
	return nil
}

func (r StaffRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Staff, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	staff, ok := r.S.Staff[id]
	if !ok || staff.OrganizationID != orgID {
		return nil, repository.ErrNotFound
	}
	return &staff, nil
}

func (r StaffRepo) GetAll(_ context.Context, orgID uuid.UUID) ([]models.Staff, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := []models.Staff{}
	for _, s := range r.S.Staff {
		if s.OrganizationID == orgID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

// ---- students

type StudentRepo struct{ S *Store }

func (r StudentRepo) Create(_ context.Context, student *models.Student) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&student.ID)
	student.CreatedAt = r.S.Now()
	r.S.Students[student.ID] = *student
	return nil
}

func (r StudentRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Student, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	student, ok := r.S.Students[id]
	if !ok || student.OrganizationID != orgID {
		return nil, repository.ErrNotFound
	}
	return &student, nil
}

func (r StudentRepo) GetAll(_ context.Context, orgID uuid.UUID) ([]models.Student, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := []models.Student{}
	for _, s := range r.S.Students {
		if s.OrganizationID == orgID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

// ---- sessions

type SessionRepo struct{ S *Store }

func (r SessionRepo) Create(_ context.Context, session *models.Session) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&session.ID)
	session.CreatedAt = r.S.Now()
	session.UpdatedAt = session.CreatedAt
	r.S.Sessions[session.ID] = *session
	return nil
}

// joined fills the fields the sql implementation reads from joins.
func (r SessionRepo) joined(s models.Session) models.Session {
	if st, ok := r.S.Students[s.StudentID]; ok {
		s.StudentName = st.FullName()
		s.Discipline = st.Discipline
	}
	if t, ok := r.S.Staff[s.TherapistID]; ok {
		s.TherapistName = t.FullName
		if t.Discipline != "" {
			s.Discipline = t.Discipline
		}
	}
	return s
}

func (r SessionRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Session, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	session, ok := r.S.Sessions[id]
	if !ok || session.OrganizationID != orgID {
		return nil, repository.ErrNotFound
	}
	session = r.joined(session)
	return &session, nil
}

func (r SessionRepo) GetByDateRange(_ context.Context, orgID uuid.UUID, start, end time.Time) ([]models.Session, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := []models.Session{}
	for _, s := range r.S.Sessions {
		if s.OrganizationID != orgID || s.SessionDate.Before(start) || !s.SessionDate.Before(end) {
			continue
		}
		out = append(out, r.joined(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionDate.After(out[j].SessionDate) })
	return out, nil
}

func (r SessionRepo) UpdateAttendance(_ context.Context, orgID, id uuid.UUID, status string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	session, ok := r.S.Sessions[id]
	if !ok || session.OrganizationID != orgID {
		return repository.ErrNotFound
	}
	session.AttendanceStatus = status
	r.S.Sessions[id] = session
	return nil
}

// ---- notes

type NoteRepo struct{ S *Store }

func (r NoteRepo) Create(_ context.Context, note *models.SoapNote) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&note.ID)
	note.CreatedAt = r.S.Now()
	note.UpdatedAt = note.CreatedAt
	r.S.Notes[note.ID] = *note
	return nil
}

func (r NoteRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.SoapNote, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	note, ok := r.S.Notes[id]
	if !ok || note.OrganizationID != orgID {
		return nil, repository.ErrNotFound
	}
	return &note, nil
}

func (r NoteRepo) GetBySession(_ context.Context, orgID, sessionID uuid.UUID) (*models.SoapNote, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, note := range r.S.Notes {
		if note.OrganizationID == orgID && note.SessionID == sessionID {
			return &note, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r NoteRepo) UpdateContent(_ context.Context, note *models.SoapNote) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	stored, ok := r.S.Notes[note.ID]
	if !ok || stored.OrganizationID != note.OrganizationID {
		return repository.ErrNotFound
	}
	stored.Subjective, stored.Objective = note.Subjective, note.Objective
	stored.Assessment, stored.Plan = note.Assessment, note.Plan
	stored.UpdatedAt = r.S.Now()
	note.UpdatedAt = stored.UpdatedAt
	r.S.Notes[note.ID] = stored
	return nil
}

func (r NoteRepo) UpdateStatus(_ context.Context, note *models.SoapNote) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	stored, ok := r.S.Notes[note.ID]
	if !ok || stored.OrganizationID != note.OrganizationID {
		return repository.ErrNotFound
	}
	session, ok := r.S.Sessions[note.SessionID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status, stored.SignedBy, stored.SignedAt = note.Status, note.SignedBy, note.SignedAt
	stored.UpdatedAt = r.S.Now()
	note.UpdatedAt = stored.UpdatedAt
	session.DocumentationStatus = note.Status
	r.S.Notes[note.ID] = stored
	r.S.Sessions[session.ID] = session
	return nil
}

// ---- goals

type GoalRepo struct{ S *Store }

func (r GoalRepo) Create(_ context.Context, goal *models.Goal) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&goal.ID)
	goal.CreatedAt = r.S.Now()
	r.S.Goals[goal.ID] = *goal
	return nil
}

func (r GoalRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Goal, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	goal, ok := r.S.Goals[id]
	if !ok || goal.OrganizationID != orgID {
		return nil, repository.ErrNotFound
	}
	return &goal, nil
}

func (r GoalRepo) GetAll(_ context.Context, orgID uuid.UUID) ([]models.Goal, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := []models.Goal{}
	for _, g := range r.S.Goals {
		if g.OrganizationID == orgID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, nil
}

func (r GoalRepo) AddProgress(_ context.Context, progress *models.GoalProgress) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&progress.ID)
	progress.CreatedAt = r.S.Now()
	r.S.Progress = append(r.S.Progress, *progress)
	return nil
}

func (r GoalRepo) GetProgress(_ context.Context, goalIDs []uuid.UUID) ([]models.GoalProgress, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(goalIDs))
	for _, id := range goalIDs {
		want[id] = true
	}
	out := []models.GoalProgress{}
	for _, p := range r.S.Progress {
		if want[p.GoalID] {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedOn.Before(out[j].RecordedOn) })
	return out, nil
}

// ---- classrooms

type ClassroomRepo struct{ S *Store }

func (r ClassroomRepo) Create(_ context.Context, classroom *models.Classroom) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&classroom.ID)
	classroom.CreatedAt = r.S.Now()
	r.S.Classrooms[classroom.ID] = *classroom
	return nil
}

func (r ClassroomRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Classroom, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	c, ok := r.S.Classrooms[id]
	if !ok || c.OrganizationID != orgID {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r ClassroomRepo) GetAll(_ context.Context, orgID uuid.UUID) ([]models.Classroom, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := []models.Classroom{}
	for _, c := range r.S.Classrooms {
		if c.OrganizationID == orgID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r ClassroomRepo) RecordHeadcount(_ context.Context, headcount *models.Headcount) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&headcount.ID)
	r.S.Headcounts = append(r.S.Headcounts, *headcount)
	return nil
}

func (r ClassroomRepo) LatestHeadcounts(_ context.Context, orgID uuid.UUID) ([]models.Headcount, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	latest := make(map[uuid.UUID]models.Headcount)
	for _, h := range r.S.Headcounts {
		c, ok := r.S.Classrooms[h.ClassroomID]
		if !ok || c.OrganizationID != orgID {
			continue
		}
		if prev, ok := latest[h.ClassroomID]; !ok || h.RecordedAt.After(prev.RecordedAt) {
			latest[h.ClassroomID] = h
		}
	}
	out := []models.Headcount{}
	for _, h := range latest {
		out = append(out, h)
	}
	return out, nil
}

// ---- credentials

type CredentialRepo struct{ S *Store }

func (r CredentialRepo) Create(_ context.Context, credential *models.Credential) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&credential.ID)
	credential.CreatedAt = r.S.Now()
	r.S.Creds[credential.ID] = *credential
	return nil
}

func (r CredentialRepo) GetAll(_ context.Context, orgID uuid.UUID) ([]models.Credential, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := []models.Credential{}
	for _, c := range r.S.Creds {
		if c.OrganizationID != orgID {
			continue
		}
		if s, ok := r.S.Staff[c.StaffID]; ok {
			c.StaffName = s.FullName
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ---- compliance

type ComplianceRepo struct{ S *Store }

func (r ComplianceRepo) CreateItem(_ context.Context, item *models.ComplianceItem) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&item.ID)
	item.CreatedAt = r.S.Now()
	r.S.Items[item.ID] = *item
	return nil
}

func (r ComplianceRepo) GetItem(_ context.Context, orgID, id uuid.UUID) (*models.ComplianceItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	item, ok := r.S.Items[id]
	if !ok || item.OrganizationID != orgID {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r ComplianceRepo) GetItems(_ context.Context, orgID uuid.UUID) ([]models.ComplianceItem, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := []models.ComplianceItem{}
	for _, item := range r.S.Items {
		if item.OrganizationID == orgID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r ComplianceRepo) AddEvidence(_ context.Context, evidence *models.ComplianceEvidence) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Fail != nil {
		return r.S.Fail
	}
	ensureID(&evidence.ID)
	if evidence.CreatedAt.IsZero() {
		evidence.CreatedAt = r.S.Now()
	}
	r.S.Evidence = append(r.S.Evidence, *evidence)
	return nil
}

func (r ComplianceRepo) GetEvidence(_ context.Context, itemIDs []uuid.UUID) ([]models.ComplianceEvidence, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	out := []models.ComplianceEvidence{}
	for _, e := range r.S.Evidence {
		if want[e.ItemID] {
			out = append(out, e)
		}
	}
	return out, nil
}

var (
	_ repository.OrganizationRepository = OrganizationRepo{}
	_ repository.StaffRepository        = StaffRepo{}
	_ repository.StudentRepository      = StudentRepo{}
	_ repository.SessionRepository      = SessionRepo{}
	_ repository.NoteRepository         = NoteRepo{}
	_ repository.GoalRepository         = GoalRepo{}
	_ repository.ClassroomRepository    = ClassroomRepo{}
	_ repository.CredentialRepository   = CredentialRepo{}
	_ repository.ComplianceRepository   = ComplianceRepo{}
)
