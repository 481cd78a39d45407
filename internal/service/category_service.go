package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"scanvault/internal/classify"
	"scanvault/internal/domain"
	"scanvault/internal/port"
)

// CategoryService defines the category management contract.
type CategoryService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Category, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Category, error)
	UpdateFieldPriorities(ctx context.Context, ownerID, id uuid.UUID, priorities []string) error
	Resolve(ctx context.Context, ownerID uuid.UUID, slug string) (*domain.Category, error)
	Choices(ctx context.Context, ownerID uuid.UUID) ([]classify.CategoryChoice, error)
}

type categoryService struct {
	categoryRepo port.CategoryRepository
}

// NewCategoryService creates a new CategoryService implementation.
func NewCategoryService(categoryRepo port.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	slug := classify.NormalizeSlug(name)
	if name == "" || slug == "" {
		return nil, domain.ErrInvalidJob
	}

	category := &domain.Category{
		OwnerID: ownerID,
		Name:    name,
		Slug:    slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	return s.categoryRepo.ListByOwner(ctx, ownerID)
}

func (s *categoryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, ownerID, id)
}

func (s *categoryService) UpdateFieldPriorities(ctx context.Context, ownerID, id uuid.UUID, priorities []string) error {
	return s.categoryRepo.UpdateFieldPriorities(ctx, ownerID, id, priorities)
}

// Resolve returns the owner's category for a slug, creating it lazily on
// first reference. A lost create race falls back to the winner's row, so
// concurrent extractions converge on one category.
func (s *categoryService) Resolve(ctx context.Context, ownerID uuid.UUID, slug string) (*domain.Category, error) {
	slug = classify.NormalizeSlug(slug)
	if slug == "" {
		slug = domain.DefaultCategorySlug
	}

	category, err := s.categoryRepo.GetBySlug(ctx, ownerID, slug)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category = &domain.Category{
		OwnerID:   ownerID,
		Name:      classify.HumanizeSlug(slug),
		Slug:      slug,
		IsDefault: slug == domain.DefaultCategorySlug,
	}
	err = s.categoryRepo.Create(ctx, category)
	if errors.Is(err, domain.ErrDuplicateCategorySlug) {
		return s.categoryRepo.GetBySlug(ctx, ownerID, slug)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Choices(ctx context.Context, ownerID uuid.UUID) ([]classify.CategoryChoice, error) {
	categories, err := s.categoryRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	choices := make([]classify.CategoryChoice, 0, len(categories))
	for _, c := range categories {
		choices = append(choices, classify.CategoryChoice{Name: c.Name, Slug: c.Slug})
	}
	return choices, nil
}
