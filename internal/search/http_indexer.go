package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scanvault/internal/config"
	"scanvault/internal/port"
)

// httpIndexer implements port.SearchIndexer against a search service's
// documents endpoint using the mergeOrUpload action, so re-indexing an
// asset after a retry overwrites the previous document.
type httpIndexer struct {
	endpoint string
	index    string
	apiKey   string
	client   *http.Client
}

// NewHTTPIndexer creates a search indexer from config.
func NewHTTPIndexer(cfg *config.SearchConfig) port.SearchIndexer {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &httpIndexer{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		index:    cfg.Index,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type indexAction struct {
	Action      string   `json:"@search.action"`
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Summary     string   `json:"summary"`
	CategoryID  string   `json:"categoryId"`
	RawText     string   `json:"rawText,omitempty"`
	Entities    []string `json:"entities"`
	FieldKeys   []string `json:"fieldKeys"`
	FieldValues []string `json:"fieldValues"`
}

func (i *httpIndexer) IndexAsset(ctx context.Context, doc port.IndexDocument) error {
	payload := map[string]interface{}{
		"value": []indexAction{
			{
				Action:      "mergeOrUpload",
				ID:          doc.ID.String(),
				OwnerID:     doc.OwnerID.String(),
				Summary:     doc.Summary,
				CategoryID:  doc.CategoryID,
				RawText:     doc.RawText,
				Entities:    doc.Entities,
				FieldKeys:   doc.FieldKeys,
				FieldValues: doc.FieldValues,
			},
		},
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling index payload: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/index?api-version=2023-11-01", i.endpoint, i.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("creating index request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", i.apiKey)

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling search service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("search service error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}
