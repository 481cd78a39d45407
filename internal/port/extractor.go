package port

import (
	"context"

	"scanvault/internal/domain"
)

// ExtractInput carries the page content handed to an LLM provider.
// Pages are ordered; MimeType applies to every page.
type ExtractInput struct {
	Pages    [][]byte
	MimeType string
	APIKey   string
}

// Extractor abstracts one LLM extraction backend. Implementations issue a
// single blocking call and return a fully normalized result; any transport
// or response-shape failure surfaces as *extractor.ProviderError.
type Extractor interface {
	Extract(ctx context.Context, input ExtractInput) (*domain.ExtractionResult, error)
}

// TextRecognizer abstracts the external OCR collaborator that turns page
// images into raw text. Implementations must preserve page order.
type TextRecognizer interface {
	RecognizeAll(ctx context.Context, pages [][]byte) (string, error)
}
