package port

import (
	"context"

	"github.com/google/uuid"

	"scanvault/internal/domain"
)

// OwnerRepository defines the contract for owner persistence.
type OwnerRepository interface {
	Create(ctx context.Context, owner *domain.Owner) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error)
	GetByEmail(ctx context.Context, email string) (*domain.Owner, error)
	UpdateSettings(ctx context.Context, owner *domain.Owner) error
}

// CategoryRepository defines the contract for category persistence.
// Create must surface domain.ErrDuplicateCategorySlug on an (owner_id, slug)
// conflict so callers can converge concurrent lazy creates onto one row.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Category, error)
	GetBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*domain.Category, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)
	UpdateFieldPriorities(ctx context.Context, ownerID, id uuid.UUID, priorities []string) error
}

// AssetRepository defines the contract for asset persistence.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, offset, limit int) ([]domain.Asset, int, error)
	UpdateExtraction(ctx context.Context, asset *domain.Asset) error
	MarkQueued(ctx context.Context, ownerID, assetID uuid.UUID) error
	MarkFailed(ctx context.Context, assetID uuid.UUID, errorMessage string) error
	ClaimQueued(ctx context.Context, limit int) ([]domain.Asset, error)
	Delete(ctx context.Context, ownerID, assetID uuid.UUID) error
}

// CredentialStore resolves a stored credential reference to an API key.
// References never carry key material themselves.
type CredentialStore interface {
	Resolve(ctx context.Context, ownerID uuid.UUID, ref string) (string, error)
	Store(ctx context.Context, ownerID uuid.UUID, ref, apiKey string) error
}
