package port

import (
	"context"

	"github.com/google/uuid"
)

// IndexDocument is the flattened projection of an asset sent to the search
// collaborator.
type IndexDocument struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Summary     string    `json:"summary"`
	CategoryID  string    `json:"category_id"`
	RawText     string    `json:"raw_text,omitempty"`
	Entities    []string  `json:"entities"`
	FieldKeys   []string  `json:"field_keys"`
	FieldValues []string  `json:"field_values"`
}

// SearchIndexer abstracts the search index collaborator. Indexing is
// best-effort from the pipeline's point of view; callers swallow errors.
type SearchIndexer interface {
	IndexAsset(ctx context.Context, doc IndexDocument) error
}
