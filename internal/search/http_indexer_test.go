package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanvault/internal/config"
	"scanvault/internal/port"
	"scanvault/internal/search"
)

func TestIndexAsset(t *testing.T) {
	doc := port.IndexDocument{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Summary:     "A grocery receipt.",
		CategoryID:  uuid.NewString(),
		RawText:     "ACME MARKET",
		Entities:    []string{"Acme Market"},
		FieldKeys:   []string{"total_amount"},
		FieldValues: []string{"12.75"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes/assets/docs/index", r.URL.Path)
		assert.Equal(t, "2023-11-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "search-admin-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Value []map[string]interface{} `json:"value"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Value, 1)

		action := payload.Value[0]
		assert.Equal(t, "mergeOrUpload", action["@search.action"])
		assert.Equal(t, doc.ID.String(), action["id"])
		assert.Equal(t, doc.OwnerID.String(), action["ownerId"])
		assert.Equal(t, "A grocery receipt.", action["summary"])
		assert.Equal(t, "ACME MARKET", action["rawText"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"value":[{"key":"` + doc.ID.String() + `","status":true}]}`))
	}))
	defer server.Close()

	indexer := search.NewHTTPIndexer(&config.SearchConfig{
		Endpoint:    server.URL,
		Index:       "assets",
		APIKey:      "search-admin-key",
		TimeoutSecs: 5,
	})

	require.NoError(t, indexer.IndexAsset(context.Background(), doc))
}

func TestIndexAsset_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"Forbidden"}}`))
	}))
	defer server.Close()

	indexer := search.NewHTTPIndexer(&config.SearchConfig{
		Endpoint: server.URL,
		Index:    "assets",
		APIKey:   "wrong-key",
	})

	err := indexer.IndexAsset(context.Background(), port.IndexDocument{ID: uuid.New(), OwnerID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
