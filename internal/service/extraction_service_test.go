package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scanvault/internal/classify"
	"scanvault/internal/domain"
	"scanvault/internal/extractor"
	"scanvault/internal/heuristic"
	"scanvault/internal/port"
	"scanvault/internal/service"
	"scanvault/mocks"
)

const testBucket = "scanvault-pages"

type extractionFixture struct {
	assetRepo   *mocks.MockAssetRepo
	credentials *mocks.MockCredentialStore
	categories  *mocks.MockCategoryService
	storage     *mocks.MockObjectStorage
	recognizer  *mocks.MockTextRecognizer
	indexer     *mocks.MockSearchIndexer
	extractor   *mocks.MockExtractor
	svc         service.ExtractionService
}

func newExtractionFixture() *extractionFixture {
	f := &extractionFixture{
		assetRepo:   new(mocks.MockAssetRepo),
		credentials: new(mocks.MockCredentialStore),
		categories:  new(mocks.MockCategoryService),
		storage:     new(mocks.MockObjectStorage),
		recognizer:  new(mocks.MockTextRecognizer),
		indexer:     new(mocks.MockSearchIndexer),
		extractor:   new(mocks.MockExtractor),
	}
	registry := extractor.Registry{domain.ProviderOpenAI: f.extractor}
	f.svc = service.NewExtractionService(
		f.assetRepo, f.credentials, f.categories, f.storage,
		f.recognizer, f.indexer, registry, testBucket,
	)
	return f
}

func queuedAsset(ownerID uuid.UUID) *domain.Asset {
	return &domain.Asset{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		FileName:  "scan_001.png",
		MimeType:  "image/png",
		PagePaths: []string{"owners/x/uploads/y/page-0"},
		Status:    domain.AssetStatusProcessing,
	}
}

func heuristicJob(asset *domain.Asset) *domain.ExtractionJob {
	return &domain.ExtractionJob{
		DocumentID: asset.ID,
		OwnerID:    asset.OwnerID,
		PagePaths:  asset.PagePaths,
		Mode:       domain.ModeHeuristic,
	}
}

func modelJob(asset *domain.Asset) *domain.ExtractionJob {
	return &domain.ExtractionJob{
		DocumentID:    asset.ID,
		OwnerID:       asset.OwnerID,
		PagePaths:     asset.PagePaths,
		Mode:          domain.ModeModel,
		ProviderID:    domain.ProviderOpenAI,
		CredentialRef: "primary",
	}
}

func TestProcessJob_HeuristicSuccess(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := heuristicJob(asset)
	category := &domain.Category{ID: uuid.New(), OwnerID: ownerID, Name: "Finance", Slug: "finance"}

	rawText := "Acme Market\nReceipt #10423\nTotal $12.75"

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return(rawText, nil)
	f.categories.On("Choices", mock.Anything, ownerID).Return([]classify.CategoryChoice{{Name: "Finance", Slug: "finance"}}, nil)
	f.categories.On("Resolve", mock.Anything, ownerID, "finance").Return(category, nil)
	f.assetRepo.On("UpdateExtraction", mock.Anything, mock.MatchedBy(func(a *domain.Asset) bool {
		return a.Status == domain.AssetStatusReady && a.CategoryID != nil && *a.CategoryID == category.ID
	})).Return(nil)
	f.indexer.On("IndexAsset", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.ProcessJob(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, domain.AssetStatusReady, result.Status)
	assert.Equal(t, domain.ModeHeuristic, result.Mode)
	assert.NotEmpty(t, result.Fields)
	assert.NotEmpty(t, result.AssetName)
	assert.Equal(t, rawText, result.RawText)
	assert.Empty(t, result.ErrorMessage)

	f.assetRepo.AssertExpectations(t)
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessJob_HeuristicModeRunsSinglePass(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := heuristicJob(asset)
	category := &domain.Category{ID: uuid.New(), OwnerID: ownerID, Name: "Finance", Slug: "finance"}

	// Two fields only: thin enough that a model job would get augmented.
	rawText := "Receipt #10423\nTotal $12.75"

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return(rawText, nil)
	f.categories.On("Choices", mock.Anything, ownerID).Return([]classify.CategoryChoice{{Name: "Finance", Slug: "finance"}}, nil)
	f.categories.On("Resolve", mock.Anything, ownerID, "finance").Return(category, nil)

	var saved *domain.Asset
	f.assetRepo.On("UpdateExtraction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Asset)
	}).Return(nil)
	f.indexer.On("IndexAsset", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.ProcessJob(context.Background(), job)
	require.NoError(t, err)

	// The persisted fields are exactly one heuristic pass over the text,
	// with no merge pass layered on top.
	require.NotNil(t, saved)
	assert.Equal(t, domain.FieldList(heuristic.Extract(rawText).Fields), saved.Fields)
}

func TestProcessJob_ModelAssistedSuccess(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := modelJob(asset)
	category := &domain.Category{ID: uuid.New(), OwnerID: ownerID, Name: "Travel", Slug: "travel"}

	modelResult := &domain.ExtractionResult{
		Summary:      "A boarding pass for a morning departure.",
		CategorySlug: "travel",
		Fields: []domain.ExtractedField{
			{Key: "flight_number", Value: "UA-100", Confidence: 0.9, Source: domain.SourceModel},
			{Key: "passenger", Value: "Pat Doe", Confidence: 0.85, Source: domain.SourceModel},
			{Key: "gate", Value: "B12", Confidence: 0.8, Source: domain.SourceModel},
		},
		Entities: []string{"United"},
	}

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return("gate closes ten minutes before departure", nil)
	f.credentials.On("Resolve", mock.Anything, ownerID, "primary").Return("sk-owner-key", nil)
	f.extractor.On("Extract", mock.Anything, mock.MatchedBy(func(input port.ExtractInput) bool {
		return input.APIKey == "sk-owner-key" && input.MimeType == "image/png" && len(input.Pages) == 1
	})).Return(modelResult, nil)
	f.categories.On("Choices", mock.Anything, ownerID).Return([]classify.CategoryChoice{}, nil)
	f.categories.On("Resolve", mock.Anything, ownerID, "travel").Return(category, nil)
	f.assetRepo.On("UpdateExtraction", mock.Anything, mock.Anything).Return(nil)
	f.indexer.On("IndexAsset", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.ProcessJob(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, domain.AssetStatusReady, result.Status)
	assert.Equal(t, domain.ProviderOpenAI, result.Provider)
	assert.Equal(t, "A boarding pass for a morning departure.", result.Summary)
	assert.Len(t, result.Fields, 3)

	f.extractor.AssertExpectations(t)
	f.credentials.AssertExpectations(t)
}

func TestProcessJob_OCRFailureDoesNotSinkModelJob(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := modelJob(asset)
	category := &domain.Category{ID: uuid.New(), OwnerID: ownerID, Name: "Travel", Slug: "travel"}

	modelResult := &domain.ExtractionResult{
		Summary:      "A boarding pass.",
		CategorySlug: "travel",
		Fields: []domain.ExtractedField{
			{Key: "flight_number", Value: "UA-100", Source: domain.SourceModel},
			{Key: "passenger", Value: "Pat Doe", Source: domain.SourceModel},
			{Key: "gate", Value: "B12", Source: domain.SourceModel},
		},
	}

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return("", errors.New("tesseract not installed"))
	f.credentials.On("Resolve", mock.Anything, ownerID, "primary").Return("sk-owner-key", nil)
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(modelResult, nil)
	f.categories.On("Choices", mock.Anything, ownerID).Return([]classify.CategoryChoice{}, nil)
	f.categories.On("Resolve", mock.Anything, ownerID, "travel").Return(category, nil)
	f.assetRepo.On("UpdateExtraction", mock.Anything, mock.Anything).Return(nil)
	f.indexer.On("IndexAsset", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.ProcessJob(context.Background(), job)
	require.NoError(t, err)
	assert.Empty(t, result.RawText)
}

func TestProcessJob_IndexFailureIsSwallowed(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := heuristicJob(asset)
	category := &domain.Category{ID: uuid.New(), OwnerID: ownerID, Name: "Finance", Slug: "finance"}

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return("Receipt Total $5.00", nil)
	f.categories.On("Choices", mock.Anything, ownerID).Return([]classify.CategoryChoice{}, nil)
	f.categories.On("Resolve", mock.Anything, ownerID, "finance").Return(category, nil)
	f.assetRepo.On("UpdateExtraction", mock.Anything, mock.Anything).Return(nil)
	f.indexer.On("IndexAsset", mock.Anything, mock.Anything).Return(errors.New("search endpoint unreachable"))

	_, err := f.svc.ProcessJob(context.Background(), job)
	require.NoError(t, err)

	f.indexer.AssertExpectations(t)
}

func TestProcessJob_ClassifiesWhenModelOmitsCategory(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	asset.FileName = "boarding-pass.png"
	job := modelJob(asset)
	category := &domain.Category{ID: uuid.New(), OwnerID: ownerID, Name: "Travel", Slug: "travel"}

	modelResult := &domain.ExtractionResult{
		Summary: "A scanned page.",
		Fields: []domain.ExtractedField{
			{Key: "a", Value: "1", Source: domain.SourceModel},
			{Key: "b", Value: "2", Source: domain.SourceModel},
			{Key: "c", Value: "3", Source: domain.SourceModel},
		},
	}

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return("flight departs from the hotel shuttle stop", nil)
	f.credentials.On("Resolve", mock.Anything, ownerID, "primary").Return("sk-owner-key", nil)
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(modelResult, nil)
	f.categories.On("Choices", mock.Anything, ownerID).Return([]classify.CategoryChoice{
		{Name: "Travel", Slug: "travel"},
		{Name: "General", Slug: "general"},
	}, nil)
	f.categories.On("Resolve", mock.Anything, ownerID, "travel").Return(category, nil)
	f.assetRepo.On("UpdateExtraction", mock.Anything, mock.Anything).Return(nil)
	f.indexer.On("IndexAsset", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.ProcessJob(context.Background(), job)
	require.NoError(t, err)

	f.categories.AssertCalled(t, "Resolve", mock.Anything, ownerID, "travel")
}

func TestProcessJob_Validation(t *testing.T) {
	f := newExtractionFixture()
	ctx := context.Background()
	base := &domain.ExtractionJob{
		DocumentID: uuid.New(),
		OwnerID:    uuid.New(),
		PagePaths:  []string{"p"},
	}

	_, err := f.svc.ProcessJob(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidJob)

	noPages := *base
	noPages.Mode = domain.ModeHeuristic
	noPages.PagePaths = nil
	_, err = f.svc.ProcessJob(ctx, &noPages)
	assert.ErrorIs(t, err, domain.ErrInvalidJob)

	badMode := *base
	badMode.Mode = "psychic"
	_, err = f.svc.ProcessJob(ctx, &badMode)
	assert.ErrorIs(t, err, domain.ErrInvalidJob)

	noProvider := *base
	noProvider.Mode = domain.ModeModel
	_, err = f.svc.ProcessJob(ctx, &noProvider)
	assert.ErrorIs(t, err, domain.ErrMissingProvider)

	noCred := *base
	noCred.Mode = domain.ModeModel
	noCred.ProviderID = domain.ProviderOpenAI
	_, err = f.svc.ProcessJob(ctx, &noCred)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestProcessJob_UnsupportedMimeType(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	asset.MimeType = "text/plain"
	job := heuristicJob(asset)

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)

	_, err := f.svc.ProcessJob(context.Background(), job)
	assert.ErrorIs(t, err, domain.ErrUnsupportedPageType)
}

func TestProcessJob_PageDownloadFailure(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := heuristicJob(asset)

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return(nil, errors.New("no such key"))

	_, err := f.svc.ProcessJob(context.Background(), job)
	require.Error(t, err)

	f.assetRepo.AssertNotCalled(t, "UpdateExtraction", mock.Anything, mock.Anything)
}

func TestProcessJob_UnknownProvider(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := modelJob(asset)
	job.ProviderID = "mistral"

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return("", nil)
	f.credentials.On("Resolve", mock.Anything, ownerID, "primary").Return("sk-owner-key", nil)

	_, err := f.svc.ProcessJob(context.Background(), job)
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestProcessJob_CredentialResolveFailure(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := modelJob(asset)

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return("", nil)
	f.credentials.On("Resolve", mock.Anything, ownerID, "primary").Return("", domain.ErrCredentialNotFound)

	_, err := f.svc.ProcessJob(context.Background(), job)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)

	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessJob_ThinModelResultGetsAugmented(t *testing.T) {
	ownerID := uuid.New()
	asset := queuedAsset(ownerID)
	job := modelJob(asset)
	category := &domain.Category{ID: uuid.New(), OwnerID: ownerID, Name: "Finance", Slug: "finance"}

	// Two fields and no line items: thin enough to trigger augmentation.
	modelResult := &domain.ExtractionResult{
		Summary:      "A grocery receipt.",
		CategorySlug: "finance",
		Fields: []domain.ExtractedField{
			{Key: "total_amount", Value: 5.99, Unit: "USD", Confidence: 0.9, Source: domain.SourceModel},
			{Key: "store_name", Value: "Acme Market", Confidence: 0.85, Source: domain.SourceModel},
		},
	}
	rawText := "ACME MARKET\nWhole Milk 3.49\nGranola Bars 2.50\nTotal $5.99"

	f := newExtractionFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, asset.ID).Return(asset, nil)
	f.storage.On("Download", mock.Anything, testBucket, asset.PagePaths[0]).Return([]byte("page-bytes"), nil)
	f.recognizer.On("RecognizeAll", mock.Anything, mock.Anything).Return(rawText, nil)
	f.credentials.On("Resolve", mock.Anything, ownerID, "primary").Return("sk-owner-key", nil)
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(modelResult, nil)
	f.categories.On("Choices", mock.Anything, ownerID).Return([]classify.CategoryChoice{}, nil)
	f.categories.On("Resolve", mock.Anything, ownerID, "finance").Return(category, nil)
	f.assetRepo.On("UpdateExtraction", mock.Anything, mock.Anything).Return(nil)
	f.indexer.On("IndexAsset", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.ProcessJob(context.Background(), job)
	require.NoError(t, err)

	// Model fields survive, heuristic line items are added alongside.
	keys := map[string]bool{}
	for _, field := range result.Fields {
		keys[field.Key] = true
	}
	assert.True(t, keys["store_name"])
	assert.True(t, keys["line_item_1_name"])
	assert.Greater(t, len(result.Fields), 2)
}
