package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"scanvault/internal/domain"
	"scanvault/internal/port"
)

type assetRepo struct {
	db *sqlx.DB
}

// NewAssetRepo creates a new PostgreSQL-backed AssetRepository.
func NewAssetRepo(db *sqlx.DB) port.AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	asset.ID = uuid.New()
	now := time.Now().UTC()
	asset.CreatedAt = now
	asset.UpdatedAt = now
	if asset.Status == "" {
		asset.Status = domain.AssetStatusQueued
	}

	query := `INSERT INTO assets (id, owner_id, file_name, mime_type, file_size_bytes, page_paths,
		status, extraction_mode, provider, summary, fields, entities, category_id,
		asset_name, raw_text, error_message, attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID, asset.OwnerID, asset.FileName, asset.MimeType, asset.FileSizeBytes,
		asset.PagePaths, asset.Status, asset.Mode, asset.Provider, asset.Summary,
		asset.Fields, asset.Entities, asset.CategoryID, asset.AssetName, asset.RawText,
		asset.ErrorMessage, asset.Attempts, asset.CreatedAt, asset.UpdatedAt)
	if err != nil {
		return fmt.Errorf("assetRepo.Create: %w", err)
	}
	return nil
}

func (r *assetRepo) GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error) {
	var asset domain.Asset
	err := r.db.GetContext(ctx, &asset,
		"SELECT * FROM assets WHERE id = $1 AND owner_id = $2", assetID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("assetRepo.GetByID: %w", err)
	}
	return &asset, nil
}

func (r *assetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, offset, limit int) ([]domain.Asset, int, error) {
	where := "WHERE owner_id = $1"
	args := []interface{}{ownerID}
	if categoryID != nil {
		where += " AND category_id = $2"
		args = append(args, *categoryID)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM assets "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("assetRepo.ListByOwner count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM assets %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var assets []domain.Asset
	err = r.db.SelectContext(ctx, &assets, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("assetRepo.ListByOwner: %w", err)
	}
	return assets, total, nil
}

func (r *assetRepo) UpdateExtraction(ctx context.Context, asset *domain.Asset) error {
	asset.UpdatedAt = time.Now().UTC()
	query := `UPDATE assets SET status = $1, summary = $2, fields = $3, entities = $4,
		category_id = $5, asset_name = $6, raw_text = $7, error_message = $8,
		extraction_mode = $9, provider = $10, updated_at = $11
		WHERE id = $12 AND owner_id = $13`
	result, err := r.db.ExecContext(ctx, query,
		asset.Status, asset.Summary, asset.Fields, asset.Entities, asset.CategoryID,
		asset.AssetName, asset.RawText, asset.ErrorMessage, asset.Mode, asset.Provider,
		asset.UpdatedAt, asset.ID, asset.OwnerID)
	if err != nil {
		return fmt.Errorf("assetRepo.UpdateExtraction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepo) MarkQueued(ctx context.Context, ownerID, assetID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE assets SET status = $1, error_message = '', updated_at = NOW()
		 WHERE id = $2 AND owner_id = $3`,
		domain.AssetStatusQueued, assetID, ownerID)
	if err != nil {
		return fmt.Errorf("assetRepo.MarkQueued: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepo) MarkFailed(ctx context.Context, assetID uuid.UUID, errorMessage string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE assets SET status = $1, error_message = $2, updated_at = NOW() WHERE id = $3`,
		domain.AssetStatusFailed, errorMessage, assetID)
	if err != nil {
		return fmt.Errorf("assetRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, ownerID, assetID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM assets WHERE id = $1 AND owner_id = $2", assetID, ownerID)
	if err != nil {
		return fmt.Errorf("assetRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Asset, error) {
	// Single atomic claim: flips queued rows to processing and returns them.
	// SKIP LOCKED keeps concurrent workers from claiming the same rows.
	var assets []domain.Asset
	err := r.db.SelectContext(ctx, &assets, `
		UPDATE assets SET status = $1, attempts = attempts + 1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM assets
			WHERE status = $2
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		domain.AssetStatusProcessing, domain.AssetStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("assetRepo.ClaimQueued: %w", err)
	}
	return assets, nil
}
