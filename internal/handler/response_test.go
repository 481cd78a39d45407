package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"scanvault/internal/domain"
	"scanvault/internal/extractor"
	"scanvault/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrAssetNotFound, http.StatusNotFound, "ASSET_NOT_FOUND"},
		{domain.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
		{domain.ErrCredentialNotFound, http.StatusNotFound, "CREDENTIAL_NOT_FOUND"},
		{domain.ErrInvalidJob, http.StatusBadRequest, "INVALID_REQUEST"},
		{domain.ErrMissingProvider, http.StatusBadRequest, "MISSING_PROVIDER"},
		{domain.ErrMissingCredential, http.StatusBadRequest, "MISSING_CREDENTIAL"},
		{domain.ErrUnknownProvider, http.StatusBadRequest, "UNKNOWN_PROVIDER"},
		{domain.ErrUnsupportedPageType, http.StatusBadRequest, "UNSUPPORTED_PAGE_TYPE"},
		{domain.ErrAssetNotRetryable, http.StatusConflict, "ASSET_NOT_RETRYABLE"},
		{domain.ErrDuplicateCategorySlug, http.StatusConflict, "DUPLICATE_CATEGORY"},
		{domain.ErrDuplicateOwnerEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{errors.New("anything else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code, msg := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.wantStatus, status, tc.err.Error())
		assert.Equal(t, tc.wantCode, code, tc.err.Error())
		assert.NotEmpty(t, msg)
	}
}

func TestMapDomainError_ProviderError(t *testing.T) {
	provErr := extractor.NewProviderError("openai", 429, errors.New("rate limited"))

	status, code, _ := handler.MapDomainError(provErr)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "PROVIDER_ERROR", code)

	// Wrapped provider errors map the same way.
	wrapped := fmt.Errorf("processing job: %w", provErr)
	status, code, _ = handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "PROVIDER_ERROR", code)
}

func TestMapDomainError_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("loading pages: %w", domain.ErrAssetNotFound)

	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ASSET_NOT_FOUND", code)
}
