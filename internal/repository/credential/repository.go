package credential

import (
	"context"
	"fmt"

	"care-compliance/internal/models"
	"care-compliance/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type credentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(ctx context.Context, credential *models.Credential) error {
	if credential.ID == uuid.Nil {
		credential.ID = uuid.New()
	}
	query := `
		INSERT INTO care.credentials
		(id, organization_id, staff_id, name, credential_type, issued_on, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		credential.ID,
		credential.OrganizationID,
		credential.StaffID,
		credential.Name,
		credential.CredentialType,
		credential.IssuedOn,
		credential.ExpirationDate,
	).Scan(&credential.CreatedAt)
	if err != nil {
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

func (r *credentialRepository) GetAll(ctx context.Context, orgID uuid.UUID) ([]models.Credential, error) {
	credentials := []models.Credential{}
	query := `
		SELECT
			c.id, c.organization_id, c.staff_id, c.name, c.credential_type,
			c.issued_on, c.expiration_date, c.created_at,
			s.full_name AS staff_name
		FROM care.credentials c
		JOIN care.staff s ON c.staff_id = s.id
		WHERE c.organization_id = $1
		ORDER BY c.expiration_date NULLS LAST, s.full_name
	`
	if err := r.db.SelectContext(ctx, &credentials, query, orgID); err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	return credentials, nil
}
