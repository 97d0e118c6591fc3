package notes_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"care-compliance/internal/ai"
	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"
	"care-compliance/internal/repository"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	statusDraft   = string(evaluator.DocumentationDraft)
	statusSigned  = string(evaluator.DocumentationSigned)
	statusLocked  = string(evaluator.DocumentationLocked)
	statusAmended = string(evaluator.DocumentationAmended)
)

// transitions lists the statuses a note may move to from each status.
var transitions = map[string][]string{
	statusDraft:   {statusSigned},
	statusAmended: {statusSigned},
	statusSigned:  {statusLocked, statusAmended},
	statusLocked:  {statusAmended},
}

// CanTransition reports whether a note in from may move to to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Editable reports whether content may change in status.
func Editable(status string) bool {
	return status == statusDraft || status == statusAmended
}

type noteService struct {
	noteRepo    repository.NoteRepository
	sessionRepo repository.SessionRepository
	goalRepo    repository.GoalRepository
	staffRepo   repository.StaffRepository
	suggester   service.NoteSuggester
	clock       service.Clock
	log         *zap.Logger
}

func NewNoteService(
	noteRepo repository.NoteRepository,
	sessionRepo repository.SessionRepository,
	goalRepo repository.GoalRepository,
	staffRepo repository.StaffRepository,
	suggester service.NoteSuggester,
	clock service.Clock,
	log *zap.Logger,
) service.NoteService {
	return &noteService{
		noteRepo:    noteRepo,
		sessionRepo: sessionRepo,
		goalRepo:    goalRepo,
		staffRepo:   staffRepo,
		suggester:   suggester,
		clock:       clock,
		log:         log.Named("notes"),
	}
}

func (s *noteService) CreateDraft(ctx context.Context, orgID, sessionID uuid.UUID, content service.NoteContent) (*models.SoapNote, error) {
	if err := service.Validate(content); err != nil {
		return nil, err
	}
	if _, err := s.sessionRepo.GetByID(ctx, orgID, sessionID); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	existing, err := s.noteRepo.GetBySession(ctx, orgID, sessionID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, service.ErrNoteExists
	}

	note := &models.SoapNote{
		OrganizationID: orgID,
		SessionID:      sessionID,
		Status:         statusDraft,
	}
	applyContent(note, content)
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, orgID, noteID uuid.UUID, content service.NoteContent) (*models.SoapNote, error) {
	if err := service.Validate(content); err != nil {
		return nil, err
	}
	note, err := s.noteRepo.GetByID(ctx, orgID, noteID)
	if err != nil {
		return nil, err
	}
	if !Editable(note.Status) {
		return nil, fmt.Errorf("%w: status %s", service.ErrNoteNotEditable, note.Status)
	}

	applyContent(note, content)
	if err := s.noteRepo.UpdateContent(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Sign(ctx context.Context, orgID, noteID, signerID uuid.UUID) (*models.SoapNote, error) {
	note, err := s.noteRepo.GetByID(ctx, orgID, noteID)
	if err != nil {
		return nil, err
	}
	if missing := MissingSections(note); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", service.ErrNoteIncomplete, strings.Join(missing, ", "))
	}
	if _, err := s.staffRepo.GetByID(ctx, orgID, signerID); err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}

	now := s.clock()
	return s.transition(ctx, note, statusSigned, func(n *models.SoapNote) {
		n.SignedBy = &signerID
		n.SignedAt = &now
	})
}

func (s *noteService) Lock(ctx context.Context, orgID, noteID uuid.UUID) (*models.SoapNote, error) {
	note, err := s.noteRepo.GetByID(ctx, orgID, noteID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, note, statusLocked, nil)
}

func (s *noteService) Amend(ctx context.Context, orgID, noteID uuid.UUID) (*models.SoapNote, error) {
	note, err := s.noteRepo.GetByID(ctx, orgID, noteID)
	if err != nil {
		return nil, err
	}
	// Amending reopens the note; the previous signature no longer applies.
	return s.transition(ctx, note, statusAmended, func(n *models.SoapNote) {
		n.SignedBy = nil
		n.SignedAt = nil
	})
}

// transition persists a status change. It works on a copy, so a storage
// failure leaves note untouched.
func (s *noteService) transition(ctx context.Context, note *models.SoapNote, to string, mutate func(*models.SoapNote)) (*models.SoapNote, error) {
	if !CanTransition(note.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", service.ErrInvalidTransition, note.Status, to)
	}

	updated := *note
	updated.Status = to
	if mutate != nil {
		mutate(&updated)
	}

	if err := s.noteRepo.UpdateStatus(ctx, &updated); err != nil {
		s.log.Error("note status change failed",
			zap.Stringer("note_id", note.ID),
			zap.String("from", note.Status),
			zap.String("to", to),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("note status changed",
		zap.Stringer("note_id", note.ID),
		zap.String("from", note.Status),
		zap.String("to", to),
	)
	return &updated, nil
}

func (s *noteService) Suggest(ctx context.Context, orgID, sessionID uuid.UUID, in service.SuggestInput) (ai.Suggestion, error) {
	if err := service.Validate(in); err != nil {
		return ai.Suggestion{}, err
	}
	session, err := s.sessionRepo.GetByID(ctx, orgID, sessionID)
	if err != nil {
		return ai.Suggestion{}, err
	}

	sc := ai.SessionContext{
		StudentName:      session.StudentName,
		Discipline:       session.Discipline,
		SessionDate:      session.SessionDate,
		AttendanceStatus: session.AttendanceStatus,
		DurationMinutes:  session.DurationMinutes,
		TherapistNotes:   in.TherapistNotes,
	}

	// Goals only enrich the prompt; a failed lookup still yields a suggestion.
	goals, err := s.goalRepo.GetAll(ctx, orgID)
	if err != nil {
		s.log.Warn("goals unavailable for suggestion", zap.Error(err))
	}
	for _, goal := range goals {
		if goal.StudentID == session.StudentID {
			sc.Goals = append(sc.Goals, goal.Description)
		}
	}

	return s.suggester.Suggest(ctx, sc), nil
}

// MissingSections names the SOAP sections that are blank.
func MissingSections(note *models.SoapNote) []string {
	var missing []string
	sections := []struct {
		name, text string
	}{
		{"subjective", note.Subjective},
		{"objective", note.Objective},
		{"assessment", note.Assessment},
		{"plan", note.Plan},
	}
	for _, sec := range sections {
		if strings.TrimSpace(sec.text) == "" {
			missing = append(missing, sec.name)
		}
	}
	return missing
}

func applyContent(note *models.SoapNote, content service.NoteContent) {
	note.Subjective = content.Subjective
	note.Objective = content.Objective
	note.Assessment = content.Assessment
	note.Plan = content.Plan
}
