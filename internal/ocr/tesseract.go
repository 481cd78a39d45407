package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"scanvault/internal/config"
)

// TesseractRecognizer implements port.TextRecognizer by shelling out to a
// tesseract binary per page. Pages are written to a temp directory that is
// removed when recognition finishes.
type TesseractRecognizer struct {
	command   string
	languages string
	timeout   time.Duration
}

// NewTesseractRecognizer creates an OCR adapter from config.
func NewTesseractRecognizer(cfg *config.OCRConfig) *TesseractRecognizer {
	command := cfg.Command
	if command == "" {
		command = "tesseract"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &TesseractRecognizer{
		command:   command,
		languages: cfg.Languages,
		timeout:   timeout,
	}
}

// RecognizeAll runs OCR over every page and joins the results in page
// order with blank lines between pages.
func (r *TesseractRecognizer) RecognizeAll(ctx context.Context, pages [][]byte) (string, error) {
	dir, err := os.MkdirTemp("", "scanvault-ocr-")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		path := filepath.Join(dir, fmt.Sprintf("page-%d", i))
		if err := os.WriteFile(path, page, 0o600); err != nil {
			return "", fmt.Errorf("writing page %d: %w", i, err)
		}
		text, err := r.recognizePage(ctx, path)
		if err != nil {
			return "", fmt.Errorf("recognizing page %d: %w", i, err)
		}
		texts = append(texts, strings.TrimSpace(text))
	}

	return strings.Join(texts, "\n\n"), nil
}

func (r *TesseractRecognizer) recognizePage(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// "stdout" as the output base makes tesseract print the text instead
	// of writing a file.
	args := []string{path, "stdout"}
	if r.languages != "" {
		args = append(args, "-l", r.languages)
	}

	cmd := exec.CommandContext(ctx, r.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", r.command, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
