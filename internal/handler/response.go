package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scanvault/internal/domain"
	"scanvault/internal/extractor"
	"scanvault/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var provErr *extractor.ProviderError
	if errors.As(err, &provErr) {
		return http.StatusBadGateway, "PROVIDER_ERROR", "extraction backend failed"
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, "ASSET_NOT_FOUND", "asset not found"
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "CATEGORY_NOT_FOUND", "category not found"
	case errors.Is(err, domain.ErrCredentialNotFound):
		return http.StatusNotFound, "CREDENTIAL_NOT_FOUND", "credential reference does not resolve"
	case errors.Is(err, domain.ErrInvalidJob):
		return http.StatusBadRequest, "INVALID_REQUEST", "request is missing required data"
	case errors.Is(err, domain.ErrMissingProvider):
		return http.StatusBadRequest, "MISSING_PROVIDER", "model-assisted mode requires a provider"
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusBadRequest, "MISSING_CREDENTIAL", "model-assisted mode requires a credential reference"
	case errors.Is(err, domain.ErrUnknownProvider):
		return http.StatusBadRequest, "UNKNOWN_PROVIDER", "provider is not registered"
	case errors.Is(err, domain.ErrUnsupportedPageType):
		return http.StatusBadRequest, "UNSUPPORTED_PAGE_TYPE", "unsupported page type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrAssetNotRetryable):
		return http.StatusConflict, "ASSET_NOT_RETRYABLE", "asset is queued or processing and cannot be retried"
	case errors.Is(err, domain.ErrDuplicateCategorySlug):
		return http.StatusConflict, "DUPLICATE_CATEGORY", "category slug already exists for this owner"
	case errors.Is(err, domain.ErrDuplicateOwnerEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "owner email already registered"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// ownerFromContext extracts the owner id or writes a 401.
func ownerFromContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, err := middleware.GetOwnerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner context")
		return uuid.Nil, false
	}
	return ownerID, true
}
