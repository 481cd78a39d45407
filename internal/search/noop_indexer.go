package search

import (
	"context"

	"scanvault/internal/port"
)

type noopIndexer struct{}

// NewNoopIndexer creates an indexer that does nothing. Used when no search
// endpoint is configured.
func NewNoopIndexer() port.SearchIndexer {
	return &noopIndexer{}
}

func (noopIndexer) IndexAsset(_ context.Context, _ port.IndexDocument) error {
	return nil
}
