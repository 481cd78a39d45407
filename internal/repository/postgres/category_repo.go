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

type categoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepo creates a new PostgreSQL-backed CategoryRepository.
func NewCategoryRepo(db *sqlx.DB) port.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *domain.Category) error {
	category.ID = uuid.New()
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := `INSERT INTO categories (id, owner_id, name, slug, is_default, field_priorities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.OwnerID, category.Name, category.Slug,
		category.IsDefault, category.FieldPriorities, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		// The unique index on (owner_id, slug) is the arbiter for concurrent
		// lazy creates; callers retry with GetBySlug.
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCategorySlug
		}
		return fmt.Errorf("categoryRepo.Create: %w", err)
	}
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	err := r.db.GetContext(ctx, &category,
		"SELECT * FROM categories WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", err)
	}
	return &category, nil
}

func (r *categoryRepo) GetBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.GetContext(ctx, &category,
		"SELECT * FROM categories WHERE owner_id = $1 AND slug = $2", ownerID, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("categoryRepo.GetBySlug: %w", err)
	}
	return &category, nil
}

func (r *categoryRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE owner_id = $1 ORDER BY name ASC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.ListByOwner: %w", err)
	}
	return categories, nil
}

func (r *categoryRepo) UpdateFieldPriorities(ctx context.Context, ownerID, id uuid.UUID, priorities []string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET field_priorities = $1, updated_at = $2 WHERE id = $3 AND owner_id = $4`,
		domain.StringList(priorities), time.Now().UTC(), id, ownerID)
	if err != nil {
		return fmt.Errorf("categoryRepo.UpdateFieldPriorities: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
