package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrAssetNotFound         = errors.New("asset not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrInvalidJob            = errors.New("extraction job is malformed")
	ErrMissingCredential     = errors.New("credential reference is required for model-assisted extraction")
	ErrMissingProvider       = errors.New("provider is required for model-assisted extraction")
	ErrUnknownProvider       = errors.New("unknown extraction provider")
	ErrCredentialNotFound    = errors.New("credential reference could not be resolved")
	ErrDuplicateCategorySlug = errors.New("category slug already exists for this owner")
	ErrDuplicateOwnerEmail   = errors.New("email already registered")
	ErrUnsupportedPageType   = errors.New("unsupported page content type")
	ErrAssetNotRetryable     = errors.New("asset is not in a retryable state")
)
