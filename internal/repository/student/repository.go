package student

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

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	query := `
		INSERT INTO care.students
		(id, organization_id, first_name, last_name, discipline, therapist_id, classroom_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		student.ID,
		student.OrganizationID,
		student.FirstName,
		student.LastName,
		student.Discipline,
		student.TherapistID,
		student.ClassroomID,
	).Scan(&student.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	query := `SELECT * FROM care.students WHERE organization_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &student, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &student, nil
}

func (r *studentRepository) GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Student, error) {
	students := []models.Student{}
	query := `
		SELECT * FROM care.students
		WHERE organization_id = $1
		ORDER BY last_name, first_name
	`
	if err := r.db.SelectContext(ctx, &students, query, orgID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}
