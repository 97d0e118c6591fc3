package therapy_service

import (
	"context"
	"fmt"
	"sort"

	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"
	"care-compliance/internal/repository"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type therapyService struct {
	sessionRepo repository.SessionRepository
	studentRepo repository.StudentRepository
	staffRepo   repository.StaffRepository
	goalRepo    repository.GoalRepository
	clock       service.Clock
	log         *zap.Logger
}

func NewTherapyService(
	sessionRepo repository.SessionRepository,
	studentRepo repository.StudentRepository,
	staffRepo repository.StaffRepository,
	goalRepo repository.GoalRepository,
	clock service.Clock,
	log *zap.Logger,
) service.TherapyService {
	return &therapyService{
		sessionRepo: sessionRepo,
		studentRepo: studentRepo,
		staffRepo:   staffRepo,
		goalRepo:    goalRepo,
		clock:       clock,
		log:         log.Named("therapy"),
	}
}

func (s *therapyService) CreateSession(ctx context.Context, orgID uuid.UUID, in service.CreateSessionInput) (*models.Session, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}

	// Both must belong to the caller's organization.
	if _, err := s.studentRepo.GetByID(ctx, orgID, in.StudentID); err != nil {
		return nil, fmt.Errorf("student: %w", err)
	}
	if _, err := s.staffRepo.GetByID(ctx, orgID, in.TherapistID); err != nil {
		return nil, fmt.Errorf("therapist: %w", err)
	}

	session := &models.Session{
		OrganizationID:      orgID,
		StudentID:           in.StudentID,
		TherapistID:         in.TherapistID,
		SessionDate:         in.SessionDate,
		AttendanceStatus:    in.AttendanceStatus,
		DocumentationStatus: string(evaluator.DocumentationDraft),
		DurationMinutes:     in.DurationMinutes,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("session created",
		zap.Stringer("organization_id", orgID),
		zap.Stringer("session_id", session.ID),
		zap.String("attendance", session.AttendanceStatus),
	)
	return session, nil
}

func (s *therapyService) ListSessions(ctx context.Context, orgID uuid.UUID, period service.Period) ([]models.Session, error) {
	return s.sessionRepo.GetByDateRange(ctx, orgID, period.From, period.To)
}

func (s *therapyService) UpdateAttendance(ctx context.Context, orgID, sessionID uuid.UUID, status string) error {
	in := struct {
		Status string `json:"attendance_status" validate:"required,oneof=present absent makeup cancelled"`
	}{Status: status}
	if err := service.Validate(in); err != nil {
		return err
	}
	return s.sessionRepo.UpdateAttendance(ctx, orgID, sessionID, status)
}

func (s *therapyService) CreateGoal(ctx context.Context, orgID uuid.UUID, in service.CreateGoalInput) (*models.Goal, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, orgID, in.StudentID)
	if err != nil {
		return nil, fmt.Errorf("student: %w", err)
	}

	discipline := in.Discipline
	if discipline == "" {
		discipline = student.Discipline
	}

	goal := &models.Goal{
		OrganizationID: orgID,
		StudentID:      in.StudentID,
		Description:    in.Description,
		Discipline:     discipline,
		StudentName:    student.FullName(),
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *therapyService) RecordProgress(ctx context.Context, orgID, goalID uuid.UUID, in service.RecordProgressInput) (*models.GoalProgress, error) {
	if err := service.Validate(in); err != nil {
		return nil, err
	}
	goal, err := s.goalRepo.GetByID(ctx, orgID, goalID)
	if err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	if in.SessionID != nil {
		session, err := s.sessionRepo.GetByID(ctx, orgID, *in.SessionID)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		if session.StudentID != goal.StudentID {
			return nil, &service.ValidationError{Fields: map[string]string{"session_id": "belongs to another student"}}
		}
	}

	progress := &models.GoalProgress{
		GoalID:     goalID,
		SessionID:  in.SessionID,
		RecordedOn: in.RecordedOn,
		Value:      in.Value,
	}
	if err := s.goalRepo.AddProgress(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *therapyService) Dashboard(ctx context.Context, orgID uuid.UUID, period service.Period) (*service.TherapyDashboard, error) {
	var (
		sessions []models.Session
		students []models.Student
		staff    []models.Staff
		goals    []models.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sessions, err = s.sessionRepo.GetByDateRange(gctx, orgID, period.From, period.To)
		return err
	})
	g.Go(func() (err error) {
		students, err = s.studentRepo.GetAll(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		staff, err = s.staffRepo.GetAll(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.goalRepo.GetAll(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	goalIDs := make([]uuid.UUID, len(goals))
	for i, goal := range goals {
		goalIDs[i] = goal.ID
	}
	progress, err := s.goalRepo.GetProgress(ctx, goalIDs)
	if err != nil {
		return nil, err
	}

	return &service.TherapyDashboard{
		Period:           period,
		GeneratedAt:      s.clock(),
		Score:            evaluator.ScoreSessions(SessionInputs(sessions)),
		Caseload:         BuildCaseload(staff, students, sessions),
		Disciplines:      CountByDiscipline(students),
		Goals:            SummarizeGoals(goals, progress),
		UnsignedSessions: UnsignedSessions(sessions),
	}, nil
}

// SessionInputs maps session rows onto the scorer's input records.
func SessionInputs(sessions []models.Session) []evaluator.SessionInput {
	inputs := make([]evaluator.SessionInput, len(sessions))
	for i, session := range sessions {
		inputs[i] = evaluator.SessionInput{
			Attendance:      evaluator.AttendanceStatus(session.AttendanceStatus),
			Documentation:   evaluator.DocumentationStatus(session.DocumentationStatus),
			DurationMinutes: session.DurationMinutes,
		}
	}
	return inputs
}

// BuildCaseload groups students and sessions by therapist. Therapists with
// neither are omitted.
func BuildCaseload(staff []models.Staff, students []models.Student, sessions []models.Session) []service.CaseloadEntry {
	studentCount := make(map[uuid.UUID]int)
	for _, st := range students {
		if st.TherapistID != nil {
			studentCount[*st.TherapistID]++
		}
	}
	byTherapist := make(map[uuid.UUID][]models.Session)
	for _, session := range sessions {
		byTherapist[session.TherapistID] = append(byTherapist[session.TherapistID], session)
	}

	caseload := []service.CaseloadEntry{}
	for _, member := range staff {
		if studentCount[member.ID] == 0 && len(byTherapist[member.ID]) == 0 {
			continue
		}
		caseload = append(caseload, service.CaseloadEntry{
			TherapistID:   member.ID,
			TherapistName: member.FullName,
			Discipline:    member.Discipline,
			Students:      studentCount[member.ID],
			Score:         evaluator.ScoreSessions(SessionInputs(byTherapist[member.ID])),
		})
	}

	sort.SliceStable(caseload, func(i, j int) bool {
		if caseload[i].Discipline != caseload[j].Discipline {
			return caseload[i].Discipline < caseload[j].Discipline
		}
		return caseload[i].TherapistName < caseload[j].TherapistName
	})
	return caseload
}

// CountByDiscipline counts students per discipline, sorted by discipline.
func CountByDiscipline(students []models.Student) []service.DisciplineCaseload {
	index := make(map[string]int)
	counts := []service.DisciplineCaseload{}
	for _, st := range students {
		i, ok := index[st.Discipline]
		if !ok {
			i = len(counts)
			index[st.Discipline] = i
			counts = append(counts, service.DisciplineCaseload{Discipline: st.Discipline})
		}
		counts[i].Students++
		if st.TherapistID == nil {
			counts[i].Unassigned++
		}
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Discipline < counts[j].Discipline })
	return counts
}

// SummarizeGoals classifies each goal's progress. progress must already be in
// chronological order.
func SummarizeGoals(goals []models.Goal, progress []models.GoalProgress) []service.GoalSummary {
	values := make(map[uuid.UUID][]float64, len(goals))
	for _, p := range progress {
		values[p.GoalID] = append(values[p.GoalID], p.Value)
	}

	summaries := make([]service.GoalSummary, len(goals))
	for i, goal := range goals {
		summaries[i] = service.GoalSummary{
			Goal:  goal,
			Trend: evaluator.ClassifyTrend(values[goal.ID]),
		}
	}
	return summaries
}

// UnsignedSessions returns attended sessions whose note is neither signed nor locked.
func UnsignedSessions(sessions []models.Session) []models.Session {
	unsigned := []models.Session{}
	for _, session := range sessions {
		attended := session.AttendanceStatus == string(evaluator.AttendancePresent) ||
			session.AttendanceStatus == string(evaluator.AttendanceMakeup)
		if attended && !evaluator.DocumentationStatus(session.DocumentationStatus).Signed() {
			unsigned = append(unsigned, session)
		}
	}
	return unsigned
}
