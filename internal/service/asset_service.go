package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"scanvault/internal/domain"
	"scanvault/internal/export"
	"scanvault/internal/port"
)

const exportBatchLimit = 1000

// UploadAssetInput is the DTO for ingesting a new document.
type UploadAssetInput struct {
	OwnerID  uuid.UUID
	FileName string
	MimeType string
	Pages    [][]byte
}

// AssetService defines the asset surface contract.
type AssetService interface {
	Upload(ctx context.Context, input *UploadAssetInput) (*domain.Asset, error)
	GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error)
	List(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, offset, limit int) ([]domain.Asset, int, error)
	Retry(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error)
	Delete(ctx context.Context, ownerID, assetID uuid.UUID) error
	PageURLs(ctx context.Context, ownerID, assetID uuid.UUID) ([]string, error)
	ExportXLSX(ctx context.Context, ownerID uuid.UUID) ([]byte, error)
}

type assetService struct {
	assetRepo       port.AssetRepository
	ownerRepo       port.OwnerRepository
	categoryService CategoryService
	storage         port.ObjectStorage
	bucket          string
	presignExpiry   time.Duration
}

// NewAssetService creates a new AssetService implementation.
func NewAssetService(
	assetRepo port.AssetRepository,
	ownerRepo port.OwnerRepository,
	categoryService CategoryService,
	storage port.ObjectStorage,
	bucket string,
	presignExpiry time.Duration,
) AssetService {
	return &assetService{
		assetRepo:       assetRepo,
		ownerRepo:       ownerRepo,
		categoryService: categoryService,
		storage:         storage,
		bucket:          bucket,
		presignExpiry:   presignExpiry,
	}
}

// Upload stores the page bytes and creates a queued asset carrying the
// owner's current extraction settings. The queue worker picks it up from
// there.
func (s *assetService) Upload(ctx context.Context, input *UploadAssetInput) (*domain.Asset, error) {
	if input.FileName == "" || len(input.Pages) == 0 {
		return nil, domain.ErrInvalidJob
	}
	if !domain.AllowedPageTypes[input.MimeType] {
		return nil, domain.ErrUnsupportedPageType
	}

	owner, err := s.ownerRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	uploadID := uuid.New()
	var totalBytes int64
	pagePaths := make(domain.StringList, 0, len(input.Pages))
	for i, page := range input.Pages {
		key := fmt.Sprintf("owners/%s/uploads/%s/page-%d", input.OwnerID, uploadID, i)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         key,
			Body:        bytes.NewReader(page),
			ContentType: input.MimeType,
			Size:        int64(len(page)),
		})
		if err != nil {
			return nil, fmt.Errorf("uploading page %d: %w", i, err)
		}
		pagePaths = append(pagePaths, key)
		totalBytes += int64(len(page))
	}

	asset := &domain.Asset{
		OwnerID:       input.OwnerID,
		FileName:      input.FileName,
		MimeType:      input.MimeType,
		FileSizeBytes: totalBytes,
		PagePaths:     pagePaths,
		Status:        domain.AssetStatusQueued,
		Mode:          owner.Mode,
		Provider:      owner.Provider,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *assetService) GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error) {
	return s.assetRepo.GetByID(ctx, ownerID, assetID)
}

func (s *assetService) List(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, offset, limit int) ([]domain.Asset, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.assetRepo.ListByOwner(ctx, ownerID, categoryID, offset, limit)
}

// Retry re-queues a terminal asset. In-flight assets are not retryable.
func (s *assetService) Retry(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, ownerID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status == domain.AssetStatusQueued || asset.Status == domain.AssetStatusProcessing {
		return nil, domain.ErrAssetNotRetryable
	}
	if err := s.assetRepo.MarkQueued(ctx, ownerID, assetID); err != nil {
		return nil, err
	}
	asset.Status = domain.AssetStatusQueued
	asset.ErrorMessage = ""
	return asset, nil
}

// Delete removes the asset row and its stored page objects. The row
// delete is authoritative; page-object deletes are best effort and a
// failure only leaves an orphaned object behind.
func (s *assetService) Delete(ctx context.Context, ownerID, assetID uuid.UUID) error {
	asset, err := s.assetRepo.GetByID(ctx, ownerID, assetID)
	if err != nil {
		return err
	}
	if err := s.assetRepo.Delete(ctx, ownerID, assetID); err != nil {
		return err
	}
	for _, path := range asset.PagePaths {
		if err := s.storage.Delete(ctx, s.bucket, path); err != nil {
			log.Printf("assetService.Delete: removing page object %s: %v", path, err)
		}
	}
	return nil
}

func (s *assetService) PageURLs(ctx context.Context, ownerID, assetID uuid.UUID) ([]string, error) {
	asset, err := s.assetRepo.GetByID(ctx, ownerID, assetID)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(asset.PagePaths))
	for _, path := range asset.PagePaths {
		url, err := s.storage.PresignDownload(ctx, s.bucket, path, s.presignExpiry)
		if err != nil {
			return nil, fmt.Errorf("presigning %s: %w", path, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *assetService) ExportXLSX(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	assets, _, err := s.assetRepo.ListByOwner(ctx, ownerID, nil, 0, exportBatchLimit)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryService.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID.String()] = c.Name
	}

	return export.AssetsXLSX(assets, categoryNames)
}
