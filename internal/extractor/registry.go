package extractor

import (
	"scanvault/internal/domain"
	"scanvault/internal/port"
)

// Registry maps provider identifiers to their extractors. It is built once
// at startup and injected into services; lookups by job provider happen at
// dispatch time.
type Registry map[string]port.Extractor

// Get returns the extractor for the given provider id.
func (r Registry) Get(provider string) (port.Extractor, error) {
	ext, ok := r[provider]
	if !ok {
		return nil, domain.ErrUnknownProvider
	}
	return ext, nil
}

// Providers lists the registered provider ids.
func (r Registry) Providers() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	return ids
}
