package anthropic

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"scanvault/internal/config"
	"scanvault/internal/domain"
	"scanvault/internal/extractor"
	"scanvault/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Extractor implements port.Extractor using the Anthropic Messages API.
type Extractor struct {
	model    string
	endpoint string
	client   *http.Client
}

// New creates an Anthropic-based extractor from a provider config.
func New(cfg *config.ExtractorProviderConfig) *Extractor {
	return newExtractor(cfg, apiURL)
}

// NewWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewWithEndpoint(cfg *config.ExtractorProviderConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ExtractorProviderConfig, endpoint string) *Extractor {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Extractor{
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*domain.ExtractionResult, error) {
	contentBlocks, err := buildContentBlocks(input)
	if err != nil {
		return nil, err
	}

	reqBody := map[string]interface{}{
		"model":      e.model,
		"max_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", input.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, extractor.WrapTransportError(domain.ProviderAnthropic, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, extractor.NewProviderError(domain.ProviderAnthropic, resp.StatusCode,
			fmt.Errorf("anthropic API error: %s", string(respBody)))
	}

	return parseResponse(respBody)
}

func buildContentBlocks(input port.ExtractInput) ([]map[string]interface{}, error) {
	if !domain.AllowedPageTypes[input.MimeType] {
		return nil, domain.ErrUnsupportedPageType
	}

	var blocks []map[string]interface{}
	for _, page := range input.Pages {
		blocks = append(blocks, map[string]interface{}{
			"type": "image",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": input.MimeType,
				"data":       base64.StdEncoding.EncodeToString(page),
			},
		})
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": extractor.SystemPrompt,
	})

	return blocks, nil
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (*domain.ExtractionResult, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, extractor.NewProviderError(domain.ProviderAnthropic, 0,
			fmt.Errorf("empty response from API"))
	}

	if resp.StopReason == "max_tokens" {
		return nil, extractor.NewProviderError(domain.ProviderAnthropic, 0,
			fmt.Errorf("output truncated (stop_reason: max_tokens)"))
	}

	return extractor.ParseResponse(domain.ProviderAnthropic, resp.Content[0].Text)
}
