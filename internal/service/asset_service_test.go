package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scanvault/internal/domain"
	"scanvault/internal/port"
	"scanvault/internal/service"
	"scanvault/mocks"
)

type assetFixture struct {
	assetRepo  *mocks.MockAssetRepo
	ownerRepo  *mocks.MockOwnerRepo
	categories *mocks.MockCategoryService
	storage    *mocks.MockObjectStorage
	svc        service.AssetService
}

func newAssetFixture() *assetFixture {
	f := &assetFixture{
		assetRepo:  new(mocks.MockAssetRepo),
		ownerRepo:  new(mocks.MockOwnerRepo),
		categories: new(mocks.MockCategoryService),
		storage:    new(mocks.MockObjectStorage),
	}
	f.svc = service.NewAssetService(f.assetRepo, f.ownerRepo, f.categories, f.storage, testBucket, time.Hour)
	return f
}

func TestAssetUpload_Success(t *testing.T) {
	ownerID := uuid.New()
	owner := &domain.Owner{
		ID:            ownerID,
		Mode:          domain.ModeModel,
		Provider:      domain.ProviderOpenAI,
		CredentialRef: "primary",
	}

	f := newAssetFixture()
	f.ownerRepo.On("GetByID", mock.Anything, ownerID).Return(owner, nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(input port.UploadInput) bool {
		return input.Bucket == testBucket && input.ContentType == "image/png"
	})).Return(&port.UploadOutput{Location: "s3://somewhere"}, nil).Twice()
	f.assetRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Asset) bool {
		return a.Status == domain.AssetStatusQueued &&
			a.Mode == domain.ModeModel &&
			a.Provider == domain.ProviderOpenAI &&
			len(a.PagePaths) == 2 &&
			a.FileSizeBytes == 16
	})).Return(nil)

	asset, err := f.svc.Upload(context.Background(), &service.UploadAssetInput{
		OwnerID:  ownerID,
		FileName: "scan.png",
		MimeType: "image/png",
		Pages:    [][]byte{[]byte("page-one"), []byte("page-two")},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AssetStatusQueued, asset.Status)
	assert.Contains(t, asset.PagePaths[0], fmt.Sprintf("owners/%s/uploads/", ownerID))
	assert.Contains(t, asset.PagePaths[0], "/page-0")
	assert.Contains(t, asset.PagePaths[1], "/page-1")

	f.storage.AssertExpectations(t)
	f.assetRepo.AssertExpectations(t)
}

func TestAssetUpload_Validation(t *testing.T) {
	f := newAssetFixture()
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, &service.UploadAssetInput{
		OwnerID: uuid.New(), MimeType: "image/png", Pages: [][]byte{[]byte("p")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidJob)

	_, err = f.svc.Upload(ctx, &service.UploadAssetInput{
		OwnerID: uuid.New(), FileName: "scan.png", MimeType: "image/png",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidJob)

	_, err = f.svc.Upload(ctx, &service.UploadAssetInput{
		OwnerID: uuid.New(), FileName: "scan.gif", MimeType: "image/gif", Pages: [][]byte{[]byte("p")},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedPageType)
}

func TestAssetUpload_UnknownOwner(t *testing.T) {
	ownerID := uuid.New()

	f := newAssetFixture()
	f.ownerRepo.On("GetByID", mock.Anything, ownerID).Return(nil, domain.ErrNotFound)

	_, err := f.svc.Upload(context.Background(), &service.UploadAssetInput{
		OwnerID:  ownerID,
		FileName: "scan.png",
		MimeType: "image/png",
		Pages:    [][]byte{[]byte("p")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestAssetList_ClampsPaging(t *testing.T) {
	ownerID := uuid.New()

	f := newAssetFixture()
	f.assetRepo.On("ListByOwner", mock.Anything, ownerID, (*uuid.UUID)(nil), 0, 20).
		Return([]domain.Asset{}, 0, nil)

	_, _, err := f.svc.List(context.Background(), ownerID, nil, -5, 500)
	require.NoError(t, err)

	f.assetRepo.AssertExpectations(t)
}

func TestAssetRetry_FailedAsset(t *testing.T) {
	ownerID := uuid.New()
	assetID := uuid.New()
	failed := &domain.Asset{
		ID:           assetID,
		OwnerID:      ownerID,
		Status:       domain.AssetStatusFailed,
		ErrorMessage: "provider timed out",
	}

	f := newAssetFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, assetID).Return(failed, nil)
	f.assetRepo.On("MarkQueued", mock.Anything, ownerID, assetID).Return(nil)

	asset, err := f.svc.Retry(context.Background(), ownerID, assetID)
	require.NoError(t, err)

	assert.Equal(t, domain.AssetStatusQueued, asset.Status)
	assert.Empty(t, asset.ErrorMessage)
}

func TestAssetRetry_InFlightNotRetryable(t *testing.T) {
	ownerID := uuid.New()
	assetID := uuid.New()

	for _, status := range []domain.AssetStatus{domain.AssetStatusQueued, domain.AssetStatusProcessing} {
		f := newAssetFixture()
		f.assetRepo.On("GetByID", mock.Anything, ownerID, assetID).
			Return(&domain.Asset{ID: assetID, OwnerID: ownerID, Status: status}, nil)

		_, err := f.svc.Retry(context.Background(), ownerID, assetID)
		assert.ErrorIs(t, err, domain.ErrAssetNotRetryable)
		f.assetRepo.AssertNotCalled(t, "MarkQueued", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestAssetDelete_RemovesRowAndPageObjects(t *testing.T) {
	ownerID := uuid.New()
	assetID := uuid.New()
	asset := &domain.Asset{
		ID:        assetID,
		OwnerID:   ownerID,
		PagePaths: domain.StringList{"k/page-0", "k/page-1"},
	}

	f := newAssetFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, assetID).Return(asset, nil)
	f.assetRepo.On("Delete", mock.Anything, ownerID, assetID).Return(nil)
	f.storage.On("Delete", mock.Anything, testBucket, "k/page-0").Return(nil)
	f.storage.On("Delete", mock.Anything, testBucket, "k/page-1").Return(nil)

	err := f.svc.Delete(context.Background(), ownerID, assetID)
	require.NoError(t, err)

	f.assetRepo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestAssetDelete_ObjectDeleteFailureIsSwallowed(t *testing.T) {
	ownerID := uuid.New()
	assetID := uuid.New()
	asset := &domain.Asset{
		ID:        assetID,
		OwnerID:   ownerID,
		PagePaths: domain.StringList{"k/page-0"},
	}

	f := newAssetFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, assetID).Return(asset, nil)
	f.assetRepo.On("Delete", mock.Anything, ownerID, assetID).Return(nil)
	f.storage.On("Delete", mock.Anything, testBucket, "k/page-0").Return(fmt.Errorf("transient s3 outage"))

	err := f.svc.Delete(context.Background(), ownerID, assetID)
	require.NoError(t, err)
}

func TestAssetDelete_UnknownAsset(t *testing.T) {
	ownerID := uuid.New()
	assetID := uuid.New()

	f := newAssetFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, assetID).Return(nil, domain.ErrAssetNotFound)

	err := f.svc.Delete(context.Background(), ownerID, assetID)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)

	f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetPageURLs(t *testing.T) {
	ownerID := uuid.New()
	assetID := uuid.New()
	asset := &domain.Asset{
		ID:        assetID,
		OwnerID:   ownerID,
		PagePaths: domain.StringList{"k/page-0", "k/page-1"},
	}

	f := newAssetFixture()
	f.assetRepo.On("GetByID", mock.Anything, ownerID, assetID).Return(asset, nil)
	f.storage.On("PresignDownload", mock.Anything, testBucket, "k/page-0", time.Hour).Return("https://signed/0", nil)
	f.storage.On("PresignDownload", mock.Anything, testBucket, "k/page-1", time.Hour).Return("https://signed/1", nil)

	urls, err := f.svc.PageURLs(context.Background(), ownerID, assetID)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://signed/0", "https://signed/1"}, urls)
}

func TestAssetExportXLSX(t *testing.T) {
	ownerID := uuid.New()
	categoryID := uuid.New()

	f := newAssetFixture()
	f.assetRepo.On("ListByOwner", mock.Anything, ownerID, (*uuid.UUID)(nil), 0, 1000).
		Return([]domain.Asset{
			{ID: uuid.New(), FileName: "scan.pdf", Status: domain.AssetStatusReady, CategoryID: &categoryID},
		}, 1, nil)
	f.categories.On("List", mock.Anything, ownerID).Return([]domain.Category{
		{ID: categoryID, Name: "Finance", Slug: "finance"},
	}, nil)

	data, err := f.svc.ExportXLSX(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
