package staff

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

type staffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	query := `
		INSERT INTO care.staff (id, organization_id, full_name, role, discipline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		staff.ID, staff.OrganizationID, staff.FullName, staff.Role, staff.Discipline,
	).Scan(&staff.CreatedAt)
	if err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Staff, error) {
	var staff models.Staff
	query := `SELECT * FROM care.staff WHERE organization_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &staff, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Staff, error) {
	staff := []models.Staff{}
	query := `SELECT * FROM care.staff WHERE organization_id = $1 ORDER BY full_name`
	if err := r.db.SelectContext(ctx, &staff, query, orgID); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}
