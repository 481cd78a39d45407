package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"scanvault/internal/config"
	"scanvault/internal/domain"
	"scanvault/internal/extractor"
	"scanvault/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Extractor implements port.Extractor using Google's Gemini API.
type Extractor struct {
	model    string
	endpoint string
	client   *http.Client
}

// New creates a Gemini-based extractor from a provider config.
func New(cfg *config.ExtractorProviderConfig) *Extractor {
	return newExtractor(cfg, "")
}

// NewWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewWithEndpoint(cfg *config.ExtractorProviderConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ExtractorProviderConfig, endpoint string) *Extractor {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Extractor{
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*domain.ExtractionResult, error) {
	if !domain.AllowedPageTypes[input.MimeType] {
		return nil, domain.ErrUnsupportedPageType
	}

	parts := make([]map[string]interface{}, 0, len(input.Pages)+1)
	for _, page := range input.Pages {
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": input.MimeType,
				"data":      base64.StdEncoding.EncodeToString(page),
			},
		})
	}
	parts = append(parts, map[string]interface{}{
		"text": extractor.SystemPrompt,
	})

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"maxOutputTokens":  16384,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	reqURL := e.endpoint + "?key=" + url.QueryEscape(input.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, extractor.WrapTransportError(domain.ProviderGoogle, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, extractor.NewProviderError(domain.ProviderGoogle, resp.StatusCode,
			fmt.Errorf("gemini API error: %s", string(respBody)))
	}

	return parseResponse(respBody)
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte) (*domain.ExtractionResult, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, extractor.NewProviderError(domain.ProviderGoogle, 0,
			fmt.Errorf("empty response from API: no candidates"))
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, extractor.NewProviderError(domain.ProviderGoogle, 0,
			fmt.Errorf("empty response from API: no parts"))
	}

	return extractor.ParseResponse(domain.ProviderGoogle, resp.Candidates[0].Content.Parts[0].Text)
}
