package classroom

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"care-compliance/internal/models"
	"care-compliance/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type classroomRepository struct {
	db *sqlx.DB
}

func NewClassroomRepository(db *sqlx.DB) repository.ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	if classroom.ID == uuid.Nil {
		classroom.ID = uuid.New()
	}
	query := `
		INSERT INTO care.classrooms (id, organization_id, name, age_group, ratio_requirement, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		classroom.ID,
		classroom.OrganizationID,
		classroom.Name,
		classroom.AgeGroup,
		classroom.RatioRequirement,
		classroom.Capacity,
	).Scan(&classroom.CreatedAt)
	if err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

func (r *classroomRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Classroom, error) {
	var classroom models.Classroom
	query := `SELECT * FROM care.classrooms WHERE organization_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &classroom, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get classroom: %w", err)
	}
	return &classroom, nil
}

func (r *classroomRepository) GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Classroom, error) {
	classrooms := []models.Classroom{}
	query := `SELECT * FROM care.classrooms WHERE organization_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &classrooms, query, orgID); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return classrooms, nil
}

func (r *classroomRepository) RecordHeadcount(ctx context.Context, headcount *models.Headcount) error {
	if headcount.ID == uuid.Nil {
		headcount.ID = uuid.New()
	}
	query := `
		INSERT INTO care.headcounts (id, classroom_id, staff_count, student_count, recorded_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		headcount.ID,
		headcount.ClassroomID,
		headcount.StaffCount,
		headcount.StudentCount,
		headcount.RecordedAt,
		headcount.RecordedBy,
	)
	if err != nil {
		return fmt.Errorf("record headcount: %w", err)
	}
	return nil
}

func (r *classroomRepository) LatestHeadcounts(ctx context.Context, orgID uuid.UUID) ([]models.Headcount, error) {
	headcounts := []models.Headcount{}
	query := `
		SELECT DISTINCT ON (h.classroom_id)
			h.id, h.classroom_id, h.staff_count, h.student_count, h.recorded_at, h.recorded_by
		FROM care.headcounts h
		JOIN care.classrooms c ON h.classroom_id = c.id
		WHERE c.organization_id = $1
		ORDER BY h.classroom_id, h.recorded_at DESC
	`
	if err := r.db.SelectContext(ctx, &headcounts, query, orgID); err != nil {
		return nil, fmt.Errorf("latest headcounts: %w", err)
	}
	return headcounts, nil
}
