package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

// PasteRepository provides database access for paste records.
type PasteRepository struct {
	db *sqlx.DB
}

// NewPasteRepository creates a new instance of PasteRepository.
func NewPasteRepository(db *sqlx.DB) *PasteRepository {
	return &PasteRepository{db: db}
}

const pasteColumns = `id, title, content, user_id, created_at, expires_at, language, burn, visibility`

// Insert stores a new paste. The id and created_at are assigned here if
// the caller left them unset, always before the statement runs.
func (r *PasteRepository) Insert(ctx context.Context, paste *models.Paste) error {
	if paste.ID == "" {
		paste.ID = uuid.NewString()
	}
	if paste.CreatedAt.IsZero() {
		paste.CreatedAt = time.Now().UTC()
	}
	paste.Visibility = paste.DeriveVisibility()

	const query = `INSERT INTO pastes (id, title, content, user_id, created_at, expires_at, language, burn, visibility) VALUES (:id, :title, :content, :user_id, :created_at, :expires_at, :language, :burn, :visibility)`
	if _, err := r.db.NamedExecContext(ctx, query, paste); err != nil {
		return fmt.Errorf("insert paste: %w", err)
	}
	return nil
}

// FindByID returns a single paste by identifier. sql.ErrNoRows passes
// through untouched so callers can map it to not-found.
func (r *PasteRepository) FindByID(ctx context.Context, id string) (*models.Paste, error) {
	const query = `SELECT ` + pasteColumns + ` FROM pastes WHERE id = $1 LIMIT 1`
	var paste models.Paste
	if err := r.db.GetContext(ctx, &paste, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find paste by id: %w", err)
	}
	return &paste, nil
}

// ListByUser returns all pastes owned by the given user, newest first.
func (r *PasteRepository) ListByUser(ctx context.Context, userID string) ([]models.Paste, error) {
	const query = `SELECT ` + pasteColumns + ` FROM pastes WHERE user_id = $1 ORDER BY created_at DESC`
	pastes := []models.Paste{}
	if err := r.db.SelectContext(ctx, &pastes, query, userID); err != nil {
		return nil, fmt.Errorf("list pastes by user: %w", err)
	}
	return pastes, nil
}

// ListByIDs returns the pastes whose ids are in the given set, newest
// first. Ids with no matching row are silently absent from the result;
// a stale anonymous set is a normal condition, not an error.
func (r *PasteRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Paste, error) {
	if len(ids) == 0 {
		return []models.Paste{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+pasteColumns+` FROM pastes WHERE id IN (?) ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, fmt.Errorf("build id set query: %w", err)
	}
	query = r.db.Rebind(query)

	pastes := []models.Paste{}
	if err := r.db.SelectContext(ctx, &pastes, query, args...); err != nil {
		return nil, fmt.Errorf("list pastes by ids: %w", err)
	}
	return pastes, nil
}

// DeleteByID removes a paste. Deleting an id with no row is a success:
// the operation is idempotent at this layer.
func (r *PasteRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM pastes WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete paste: %w", err)
	}
	return nil
}

// DeleteByIDs removes a set of pastes in one batched statement.
func (r *PasteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM pastes WHERE id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("build id set delete: %w", err)
	}
	query = r.db.Rebind(query)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete pastes by ids: %w", err)
	}
	return nil
}
