package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"scanvault/internal/domain"
	"scanvault/internal/port"
)

type ownerRepo struct {
	db *sqlx.DB
}

// NewOwnerRepo creates a new PostgreSQL-backed OwnerRepository.
func NewOwnerRepo(db *sqlx.DB) port.OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) Create(ctx context.Context, owner *domain.Owner) error {
	owner.ID = uuid.New()
	now := time.Now().UTC()
	owner.CreatedAt = now
	owner.UpdatedAt = now
	if owner.Mode == "" {
		owner.Mode = domain.ModeHeuristic
	}

	query := `INSERT INTO owners (id, email, display_name, extraction_mode, provider, credential_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		owner.ID, owner.Email, owner.DisplayName, owner.Mode,
		owner.Provider, owner.CredentialRef, owner.CreatedAt, owner.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateOwnerEmail
		}
		return fmt.Errorf("ownerRepo.Create: %w", err)
	}
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	var owner domain.Owner
	err := r.db.GetContext(ctx, &owner, "SELECT * FROM owners WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ownerRepo.GetByID: %w", err)
	}
	return &owner, nil
}

func (r *ownerRepo) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	var owner domain.Owner
	err := r.db.GetContext(ctx, &owner, "SELECT * FROM owners WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ownerRepo.GetByEmail: %w", err)
	}
	return &owner, nil
}

func (r *ownerRepo) UpdateSettings(ctx context.Context, owner *domain.Owner) error {
	owner.UpdatedAt = time.Now().UTC()
	query := `UPDATE owners SET display_name = $1, extraction_mode = $2, provider = $3,
		credential_ref = $4, updated_at = $5 WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		owner.DisplayName, owner.Mode, owner.Provider, owner.CredentialRef,
		owner.UpdatedAt, owner.ID)
	if err != nil {
		return fmt.Errorf("ownerRepo.UpdateSettings: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
