package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"scanvault/internal/domain"
	"scanvault/internal/port"
)

// UpdateOwnerSettingsInput is the DTO for changing extraction preferences.
type UpdateOwnerSettingsInput struct {
	OwnerID       uuid.UUID
	DisplayName   string
	Mode          domain.ExtractionMode
	Provider      string
	CredentialRef string
}

// OwnerService defines the owner settings contract.
type OwnerService interface {
	Register(ctx context.Context, email, displayName string) (*domain.Owner, error)
	GetByID(ctx context.Context, ownerID uuid.UUID) (*domain.Owner, error)
	UpdateSettings(ctx context.Context, input *UpdateOwnerSettingsInput) (*domain.Owner, error)
	StoreCredential(ctx context.Context, ownerID uuid.UUID, ref, apiKey string) error
}

type ownerService struct {
	ownerRepo   port.OwnerRepository
	credentials port.CredentialStore
	providers   []string
}

// NewOwnerService creates a new OwnerService implementation. providers is
// the set of registered extraction backends; settings naming anything else
// are rejected.
func NewOwnerService(ownerRepo port.OwnerRepository, credentials port.CredentialStore, providers []string) OwnerService {
	return &ownerService{
		ownerRepo:   ownerRepo,
		credentials: credentials,
		providers:   providers,
	}
}

func (s *ownerService) Register(ctx context.Context, email, displayName string) (*domain.Owner, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, domain.ErrInvalidJob
	}
	owner := &domain.Owner{
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
		Mode:        domain.ModeHeuristic,
	}
	if err := s.ownerRepo.Create(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *ownerService) GetByID(ctx context.Context, ownerID uuid.UUID) (*domain.Owner, error) {
	return s.ownerRepo.GetByID(ctx, ownerID)
}

// UpdateSettings applies new extraction preferences. Model-assisted mode
// requires a registered provider and a credential reference.
func (s *ownerService) UpdateSettings(ctx context.Context, input *UpdateOwnerSettingsInput) (*domain.Owner, error) {
	owner, err := s.ownerRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	switch input.Mode {
	case domain.ModeHeuristic:
	case domain.ModeModel:
		if input.Provider == "" {
			return nil, domain.ErrMissingProvider
		}
		if !s.knownProvider(input.Provider) {
			return nil, domain.ErrUnknownProvider
		}
		if input.CredentialRef == "" {
			return nil, domain.ErrMissingCredential
		}
		if _, err := s.credentials.Resolve(ctx, input.OwnerID, input.CredentialRef); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidJob
	}

	if input.DisplayName != "" {
		owner.DisplayName = strings.TrimSpace(input.DisplayName)
	}
	owner.Mode = input.Mode
	owner.Provider = input.Provider
	owner.CredentialRef = input.CredentialRef
	if input.Mode == domain.ModeHeuristic {
		owner.Provider = ""
		owner.CredentialRef = ""
	}

	if err := s.ownerRepo.UpdateSettings(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *ownerService) StoreCredential(ctx context.Context, ownerID uuid.UUID, ref, apiKey string) error {
	if ref == "" || apiKey == "" {
		return domain.ErrMissingCredential
	}
	return s.credentials.Store(ctx, ownerID, ref, apiKey)
}

func (s *ownerService) knownProvider(provider string) bool {
	for _, p := range s.providers {
		if p == provider {
			return true
		}
	}
	return false
}
