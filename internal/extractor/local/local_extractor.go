package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"scanvault/internal/config"
	"scanvault/internal/domain"
	"scanvault/internal/extractor"
)

const providerID = "local"

// Request is the single JSON line written to the child process on stdin.
type Request struct {
	FilePath      string           `json:"filePath"`
	FileName      string           `json:"fileName"`
	MimeType      string           `json:"mimeType"`
	FileSizeBytes int64            `json:"fileSizeBytes"`
	Categories    []CategoryChoice `json:"categories"`
}

// CategoryChoice is one known category offered to the child process.
type CategoryChoice struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// assetNameEnvelope picks out the one field of the child's response that
// the shared normalizer does not handle.
type assetNameEnvelope struct {
	AssetName string `json:"asset_name"`
}

// Client runs an external extractor command per document. The command gets
// one JSON line on stdin and must print one JSON object on stdout before
// the timeout. Non-zero exit, empty output and unparsable output are all
// hard failures that include captured stderr.
type Client struct {
	command []string
	timeout time.Duration
}

// NewClient creates a local extractor client from config. The command is
// split on whitespace; the first token is the binary.
func NewClient(cfg *config.LocalExtractorConfig) (*Client, error) {
	command := strings.Fields(cfg.Command)
	if len(command) == 0 {
		return nil, fmt.Errorf("local extractor command is empty")
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{command: command, timeout: timeout}, nil
}

// Extract runs the child process for one document.
func (c *Client) Extract(ctx context.Context, req Request) (*domain.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	input, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	input = append(input, '\n')

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &extractor.ProviderError{
				Provider: providerID,
				Timeout:  true,
				Err:      fmt.Errorf("extractor process exceeded %s: %s", c.timeout, stderrTail(&stderr)),
			}
		}
		return nil, extractor.NewProviderError(providerID, 0,
			fmt.Errorf("extractor process failed: %w: %s", err, stderrTail(&stderr)))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return nil, extractor.NewProviderError(providerID, 0,
			fmt.Errorf("extractor process produced no output: %s", stderrTail(&stderr)))
	}

	result, err := extractor.ParseResponse(providerID, out)
	if err != nil {
		return nil, err
	}

	// Asset name is a local-protocol extra; the HTTP providers never send one.
	var envelope assetNameEnvelope
	if start := strings.Index(out, "{"); start >= 0 {
		if end := strings.LastIndex(out, "}"); end > start {
			_ = json.Unmarshal([]byte(out[start:end+1]), &envelope)
		}
	}
	result.AssetName = strings.TrimSpace(envelope.AssetName)

	return result, nil
}

func stderrTail(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return "(no stderr)"
	}
	if len(s) > 500 {
		s = s[len(s)-500:]
	}
	return s
}
