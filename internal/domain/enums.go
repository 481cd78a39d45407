package domain

// ExtractionMode selects the extraction strategy for a document.
type ExtractionMode string

const (
	// ModeHeuristic runs the deterministic pattern extractor over OCR text.
	ModeHeuristic ExtractionMode = "heuristic"
	// ModeModel sends page images to a configured LLM provider.
	ModeModel ExtractionMode = "model-assisted"
)

// FieldSource records which strategy produced an extracted field.
type FieldSource string

const (
	SourceHeuristic FieldSource = "heuristic"
	SourceModel     FieldSource = "model"
)

// Provider identifiers for the LLM extraction backends.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// AssetStatus represents the lifecycle of an ingested document.
type AssetStatus string

const (
	AssetStatusQueued     AssetStatus = "queued"
	AssetStatusProcessing AssetStatus = "processing"
	AssetStatusReady      AssetStatus = "ready"
	AssetStatusFailed     AssetStatus = "failed"
)

// AllowedPageTypes lists the MIME types accepted as page content.
var AllowedPageTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// DefaultCategorySlug is the category used when no signal matches.
const DefaultCategorySlug = "general"
