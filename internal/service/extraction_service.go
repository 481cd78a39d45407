package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"scanvault/internal/classify"
	"scanvault/internal/domain"
	"scanvault/internal/extractor"
	"scanvault/internal/heuristic"
	"scanvault/internal/port"
	"scanvault/internal/reconcile"
)

const maxRawTextLen = 20000

// ExtractionService defines the extraction pipeline contract.
type ExtractionService interface {
	ProcessJob(ctx context.Context, job *domain.ExtractionJob) (*domain.Asset, error)
}

type extractionService struct {
	assetRepo       port.AssetRepository
	credentials     port.CredentialStore
	categoryService CategoryService
	storage         port.ObjectStorage
	recognizer      port.TextRecognizer
	indexer         port.SearchIndexer
	registry        extractor.Registry
	bucket          string
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	assetRepo port.AssetRepository,
	credentials port.CredentialStore,
	categoryService CategoryService,
	storage port.ObjectStorage,
	recognizer port.TextRecognizer,
	indexer port.SearchIndexer,
	registry extractor.Registry,
	bucket string,
) ExtractionService {
	return &extractionService{
		assetRepo:       assetRepo,
		credentials:     credentials,
		categoryService: categoryService,
		storage:         storage,
		recognizer:      recognizer,
		indexer:         indexer,
		registry:        registry,
		bucket:          bucket,
	}
}

// ProcessJob runs one document through the full pipeline: page load, OCR,
// primary extraction, augmentation, merge, classification, persistence and
// best-effort indexing. Errors propagate to the caller, which owns the
// asset's ready/failed state transitions.
func (s *extractionService) ProcessJob(ctx context.Context, job *domain.ExtractionJob) (*domain.Asset, error) {
	if err := validateJob(job); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.GetByID(ctx, job.OwnerID, job.DocumentID)
	if err != nil {
		return nil, err
	}
	if !domain.AllowedPageTypes[asset.MimeType] {
		return nil, domain.ErrUnsupportedPageType
	}

	pages, err := s.loadPages(ctx, job.PagePaths)
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}

	// OCR is advisory input: a broken recognizer should never sink a
	// model-assisted job, and heuristic extraction degrades to filename
	// signals only.
	rawText, err := s.recognizer.RecognizeAll(ctx, pages)
	if err != nil {
		log.Printf("extractionService.ProcessJob: OCR failed for %s, continuing without text: %v", asset.ID, err)
		rawText = ""
	}

	primary, err := s.extractPrimary(ctx, job, asset, pages, rawText)
	if err != nil {
		return nil, err
	}

	// Heuristic jobs already are a heuristic pass; only thin model output
	// earns a second look.
	result := primary
	if job.Mode == domain.ModeModel && reconcile.ShouldAugment(primary, rawText) {
		aug := heuristic.Extract(rawText)
		result = reconcile.Merge(primary, aug)
	}

	slug := result.CategorySlug
	choices, err := s.categoryService.Choices(ctx, job.OwnerID)
	if err != nil {
		return nil, err
	}
	// A missing or default category from extraction is an invitation to
	// classify against the owner's own categories.
	if slug == "" || slug == domain.DefaultCategorySlug {
		slug = classify.Classify(asset.FileName+"\n"+rawText, choices)
	}
	category, err := s.categoryService.Resolve(ctx, job.OwnerID, slug)
	if err != nil {
		return nil, err
	}

	assetName := result.AssetName
	if assetName == "" {
		assetName = reconcile.DeriveAssetName(result, category.Name, asset.FileName)
	}

	asset.Status = domain.AssetStatusReady
	asset.Mode = job.Mode
	asset.Provider = job.ProviderID
	asset.Summary = result.Summary
	asset.Fields = result.Fields
	asset.Entities = result.Entities
	asset.CategoryID = &category.ID
	asset.AssetName = assetName
	asset.RawText = truncateText(rawText, maxRawTextLen)
	asset.ErrorMessage = ""

	if err := s.assetRepo.UpdateExtraction(ctx, asset); err != nil {
		return nil, err
	}

	s.indexAsset(ctx, asset)

	log.Printf("extractionService.ProcessJob: asset %s extracted (%d fields, category=%s)",
		asset.ID, len(asset.Fields), category.Slug)
	return asset, nil
}

func validateJob(job *domain.ExtractionJob) error {
	if job == nil || job.DocumentID == uuid.Nil || job.OwnerID == uuid.Nil || len(job.PagePaths) == 0 {
		return domain.ErrInvalidJob
	}
	switch job.Mode {
	case domain.ModeHeuristic:
		return nil
	case domain.ModeModel:
		if job.ProviderID == "" {
			return domain.ErrMissingProvider
		}
		if job.CredentialRef == "" {
			return domain.ErrMissingCredential
		}
		return nil
	default:
		return domain.ErrInvalidJob
	}
}

// loadPages downloads all page objects concurrently, preserving page order.
func (s *extractionService) loadPages(ctx context.Context, paths []string) ([][]byte, error) {
	pages := make([][]byte, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			data, err := s.storage.Download(ctx, s.bucket, path)
			if err != nil {
				errs[i] = fmt.Errorf("page %d (%s): %w", i, path, err)
				return
			}
			pages[i] = data
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return pages, nil
}

func (s *extractionService) extractPrimary(ctx context.Context, job *domain.ExtractionJob, asset *domain.Asset, pages [][]byte, rawText string) (*domain.ExtractionResult, error) {
	if job.Mode == domain.ModeHeuristic {
		return heuristic.Extract(rawText), nil
	}

	apiKey, err := s.credentials.Resolve(ctx, job.OwnerID, job.CredentialRef)
	if err != nil {
		return nil, err
	}
	ext, err := s.registry.Get(job.ProviderID)
	if err != nil {
		return nil, err
	}

	return ext.Extract(ctx, port.ExtractInput{
		Pages:    pages,
		MimeType: asset.MimeType,
		APIKey:   apiKey,
	})
}

// indexAsset pushes the asset into the search index. Indexing is best
// effort; failures are logged and never fail the extraction.
func (s *extractionService) indexAsset(ctx context.Context, asset *domain.Asset) {
	fieldKeys := make([]string, 0, len(asset.Fields))
	fieldValues := make([]string, 0, len(asset.Fields))
	for _, f := range asset.Fields {
		fieldKeys = append(fieldKeys, f.Key)
		fieldValues = append(fieldValues, f.ValueString())
	}

	categoryID := ""
	if asset.CategoryID != nil {
		categoryID = asset.CategoryID.String()
	}

	err := s.indexer.IndexAsset(ctx, port.IndexDocument{
		ID:          asset.ID,
		OwnerID:     asset.OwnerID,
		Summary:     asset.Summary,
		CategoryID:  categoryID,
		RawText:     asset.RawText,
		Entities:    asset.Entities,
		FieldKeys:   fieldKeys,
		FieldValues: fieldValues,
	})
	if err != nil {
		log.Printf("extractionService.indexAsset: indexing failed for %s: %v", asset.ID, err)
	}
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
