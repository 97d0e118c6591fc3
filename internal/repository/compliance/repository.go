package compliance

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

type complianceRepository struct {
	db *sqlx.DB
}

func NewComplianceRepository(db *sqlx.DB) repository.ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) CreateItem(ctx context.Context, item *models.ComplianceItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	query := `
		INSERT INTO care.compliance_items (id, organization_id, category, title, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.OrganizationID, item.Category, item.Title, item.Description,
	).Scan(&item.CreatedAt)
	if err != nil {
		return fmt.Errorf("create compliance item: %w", err)
	}
	return nil
}

func (r *complianceRepository) GetItem(ctx context.Context, orgID, id uuid.UUID) (*models.ComplianceItem, error) {
	var item models.ComplianceItem
	query := `SELECT * FROM care.compliance_items WHERE organization_id = $1 AND id = $2`
	if err := r.db.GetContext(ctx, &item, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get compliance item: %w", err)
	}
	return &item, nil
}

func (r *complianceRepository) GetItems(ctx context.Context, orgID uuid.UUID) ([]models.ComplianceItem, error) {
	items := []models.ComplianceItem{}
	query := `
		SELECT * FROM care.compliance_items
		WHERE organization_id = $1
		ORDER BY category, title
	`
	if err := r.db.SelectContext(ctx, &items, query, orgID); err != nil {
		return nil, fmt.Errorf("list compliance items: %w", err)
	}
	return items, nil
}

func (r *complianceRepository) AddEvidence(ctx context.Context, evidence *models.ComplianceEvidence) error {
	if evidence.ID == uuid.Nil {
		evidence.ID = uuid.New()
	}
	query := `
		INSERT INTO care.compliance_evidence
		(id, item_id, status, document_url, expiration_date, reviewed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		evidence.ID,
		evidence.ItemID,
		evidence.Status,
		evidence.DocumentURL,
		evidence.ExpirationDate,
		evidence.ReviewedBy,
	).Scan(&evidence.CreatedAt)
	if err != nil {
		return fmt.Errorf("add compliance evidence: %w", err)
	}
	return nil
}

func (r *complianceRepository) GetEvidence(ctx context.Context, itemIDs []uuid.UUID) ([]models.ComplianceEvidence, error) {
	evidence := []models.ComplianceEvidence{}
	if len(itemIDs) == 0 {
		return evidence, nil
	}
	query := `
		SELECT * FROM care.compliance_evidence
		WHERE item_id = ANY($1::uuid[])
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &evidence, query, pq.Array(repository.IDStrings(itemIDs))); err != nil {
		return nil, fmt.Errorf("list compliance evidence: %w", err)
	}
	return evidence, nil
}
