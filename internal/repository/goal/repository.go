package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"care-compliance/internal/models"
	"care-compliance/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

const selectGoals = `
	SELECT
		g.id, g.organization_id, g.student_id, g.description, g.discipline, g.created_at,
		st.first_name || ' ' || st.last_name AS student_name
	FROM care.goals g
	JOIN care.students st ON g.student_id = st.id
`

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	query := `
		INSERT INTO care.goals (id, organization_id, student_id, description, discipline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		goal.ID, goal.OrganizationID, goal.StudentID, goal.Description, goal.Discipline,
	).Scan(&goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *goalRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	query := selectGoals + ` WHERE g.organization_id = $1 AND g.id = $2`
	if err := r.db.GetContext(ctx, &goal, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &goal, nil
}

func (r *goalRepository) GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Goal, error) {
	goals := []models.Goal{}
	query := selectGoals + ` WHERE g.organization_id = $1 ORDER BY student_name, g.created_at`
	if err := r.db.SelectContext(ctx, &goals, query, orgID); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) AddProgress(ctx context.Context, progress *models.GoalProgress) error {
	if progress.ID == uuid.Nil {
		progress.ID = uuid.New()
	}
	query := `
		INSERT INTO care.goal_progress (id, goal_id, session_id, recorded_on, value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		progress.ID,
		progress.GoalID,
		progress.SessionID,
		progress.RecordedOn.Format("2006-01-02"),
		progress.Value,
	).Scan(&progress.CreatedAt)
	if err != nil {
		return fmt.Errorf("add goal progress: %w", err)
	}
	return nil
}

func (r *goalRepository) GetProgress(ctx context.Context, goalIDs []uuid.UUID) ([]models.GoalProgress, error) {
	progress := []models.GoalProgress{}
	if len(goalIDs) == 0 {
		return progress, nil
	}
	query := `
		SELECT id, goal_id, session_id, recorded_on, value, created_at
		FROM care.goal_progress
		WHERE goal_id = ANY($1::uuid[])
		ORDER BY recorded_on, created_at
	`
	if err := r.db.SelectContext(ctx, &progress, query, pq.Array(repository.IDStrings(goalIDs))); err != nil {
		return nil, fmt.Errorf("list goal progress: %w", err)
	}
	return progress, nil
}
