package note

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

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.SoapNote) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	query := `
		INSERT INTO care.soap_notes
		(id, organization_id, session_id, subjective, objective, assessment, plan, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.ID,
		note.OrganizationID,
		note.SessionID,
		note.Subjective,
		note.Objective,
		note.Assessment,
		note.Plan,
		note.Status,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *noteRepository) get(ctx context.Context, query string, args ...any) (*models.SoapNote, error) {
	var note models.SoapNote
	if err := r.db.GetContext(ctx, &note, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.SoapNote, error) {
	return r.get(ctx, `SELECT * FROM care.soap_notes WHERE organization_id = $1 AND id = $2`, orgID, id)
}

func (r *noteRepository) GetBySession(ctx context.Context, orgID, sessionID uuid.UUID) (*models.SoapNote, error) {
	return r.get(ctx, `SELECT * FROM care.soap_notes WHERE organization_id = $1 AND session_id = $2`, orgID, sessionID)
}

func (r *noteRepository) UpdateContent(ctx context.Context, note *models.SoapNote) error {
	query := `
		UPDATE care.soap_notes
		SET subjective = $1, objective = $2, assessment = $3, plan = $4, updated_at = now()
		WHERE organization_id = $5 AND id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.Subjective,
		note.Objective,
		note.Assessment,
		note.Plan,
		note.OrganizationID,
		note.ID,
	).Scan(&note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (r *noteRepository) UpdateStatus(ctx context.Context, note *models.SoapNote) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin note status: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		UPDATE care.soap_notes
		SET status = $1, signed_by = $2, signed_at = $3, updated_at = now()
		WHERE organization_id = $4 AND id = $5
		RETURNING updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		note.Status, note.SignedBy, note.SignedAt, note.OrganizationID, note.ID,
	).Scan(&note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update note status: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE care.sessions
		SET documentation_status = $1, updated_at = now()
		WHERE organization_id = $2 AND id = $3
	`, note.Status, note.OrganizationID, note.SessionID)
	if err != nil {
		return fmt.Errorf("update session documentation: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session documentation: %w", err)
	}
	if rows == 0 {
		err = repository.ErrNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit note status: %w", err)
	}
	return nil
}
