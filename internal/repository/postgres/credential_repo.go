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

type credentialRepo struct {
	db *sqlx.DB
}

// NewCredentialRepo creates a new PostgreSQL-backed CredentialStore.
func NewCredentialRepo(db *sqlx.DB) port.CredentialStore {
	return &credentialRepo{db: db}
}

// Resolve maps a named credential reference to its API key. Keys are stored
// out of band; job payloads and asset records only ever carry the ref.
func (r *credentialRepo) Resolve(ctx context.Context, ownerID uuid.UUID, ref string) (string, error) {
	if ref == "" {
		return "", domain.ErrMissingCredential
	}
	var apiKey string
	err := r.db.GetContext(ctx, &apiKey,
		"SELECT api_key FROM api_credentials WHERE owner_id = $1 AND ref = $2", ownerID, ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrCredentialNotFound
		}
		return "", fmt.Errorf("credentialRepo.Resolve: %w", err)
	}
	return apiKey, nil
}

// Store saves or replaces a named credential for an owner.
func (r *credentialRepo) Store(ctx context.Context, ownerID uuid.UUID, ref, apiKey string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_credentials (id, owner_id, ref, api_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (owner_id, ref) DO UPDATE SET api_key = EXCLUDED.api_key, updated_at = EXCLUDED.updated_at`,
		uuid.New(), ownerID, ref, apiKey, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("credentialRepo.Store: %w", err)
	}
	return nil
}
