package openai

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
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Extractor implements port.Extractor using the OpenAI Chat Completions API.
type Extractor struct {
	model    string
	endpoint string
	client   *http.Client
}

// New creates an OpenAI-based extractor from a provider config.
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
		model = "gpt-4o"
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
		"model":                 e.model,
		"max_completion_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
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
	req.Header.Set("Authorization", "Bearer "+input.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, extractor.WrapTransportError(domain.ProviderOpenAI, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, extractor.NewProviderError(domain.ProviderOpenAI, resp.StatusCode,
			fmt.Errorf("openai API error: %s", string(respBody)))
	}

	return parseResponse(respBody)
}

func buildContentBlocks(input port.ExtractInput) ([]map[string]interface{}, error) {
	if !domain.AllowedPageTypes[input.MimeType] {
		return nil, domain.ErrUnsupportedPageType
	}

	var blocks []map[string]interface{}
	for _, page := range input.Pages {
		encoded := base64.StdEncoding.EncodeToString(page)
		dataURI := fmt.Sprintf("data:%s;base64,%s", input.MimeType, encoded)
		blocks = append(blocks, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url": dataURI,
			},
		})
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": extractor.SystemPrompt,
	})

	return blocks, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte) (*domain.ExtractionResult, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, extractor.NewProviderError(domain.ProviderOpenAI, 0,
			fmt.Errorf("empty response from API: no choices"))
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, extractor.NewProviderError(domain.ProviderOpenAI, 0,
			fmt.Errorf("output truncated (finish_reason: length)"))
	}

	return extractor.ParseResponse(domain.ProviderOpenAI, resp.Choices[0].Message.Content)
}
