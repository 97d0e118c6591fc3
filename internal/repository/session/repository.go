package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"care-compliance/internal/models"
	"care-compliance/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

const selectSessions = `
	SELECT
		s.id, s.organization_id, s.student_id, s.therapist_id, s.session_date,
		s.attendance_status, s.documentation_status, s.duration_minutes,
		s.created_at, s.updated_at,
		st.first_name || ' ' || st.last_name AS student_name,
		COALESCE(t.full_name, '') AS therapist_name,
		COALESCE(NULLIF(t.discipline, ''), st.discipline) AS discipline
	FROM care.sessions s
	JOIN care.students st ON s.student_id = st.id
	LEFT JOIN care.staff t ON s.therapist_id = t.id
`

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	query := `
		INSERT INTO care.sessions
		(id, organization_id, student_id, therapist_id, session_date,
		 attendance_status, documentation_status, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		session.ID,
		session.OrganizationID,
		session.StudentID,
		session.TherapistID,
		session.SessionDate.Format("2006-01-02"),
		session.AttendanceStatus,
		session.DocumentationStatus,
		session.DurationMinutes,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	query := selectSessions + ` WHERE s.organization_id = $1 AND s.id = $2`
	if err := r.db.GetContext(ctx, &session, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) GetByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]models.Session, error) {
	sessions := []models.Session{}
	query := selectSessions + `
		WHERE s.organization_id = $1
		  AND s.session_date >= $2 AND s.session_date < $3
		ORDER BY s.session_date DESC, student_name
	`
	err := r.db.SelectContext(ctx, &sessions, query, orgID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) UpdateAttendance(ctx context.Context, orgID, id uuid.UUID, status string) error {
	query := `
		UPDATE care.sessions
		SET attendance_status = $1, updated_at = now()
		WHERE organization_id = $2 AND id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, orgID, id)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
