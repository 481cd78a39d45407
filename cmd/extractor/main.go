// Command extractor is a reference implementation of the stdin/stdout
// extraction protocol: one JSON request line in, one JSON result object
// out. It runs the heuristic engine over the document text, so it is
// useful for exercising the protocol without any model backend.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"scanvault/internal/classify"
	"scanvault/internal/domain"
	"scanvault/internal/extractor/local"
	"scanvault/internal/heuristic"
	"scanvault/internal/reconcile"
)

type response struct {
	Summary           string                  `json:"summary"`
	Fields            []domain.ExtractedField `json:"fields"`
	SuggestedCategory string                  `json:"suggested_category"`
	Entities          []string                `json:"entities"`
	AssetName         string                  `json:"asset_name,omitempty"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("extractor: %v", err)
	}
}

func run() error {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("reading request: %w", err)
	}

	var req local.Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}

	text := documentText(req)
	result := heuristic.Extract(text)

	slug := result.CategorySlug
	if len(req.Categories) > 0 {
		choices := make([]classify.CategoryChoice, 0, len(req.Categories))
		for _, c := range req.Categories {
			choices = append(choices, classify.CategoryChoice{Name: c.Name, Slug: c.Slug})
		}
		slug = classify.Classify(req.FileName+"\n"+text, choices)
	}

	name := reconcile.DeriveAssetName(result, classify.HumanizeSlug(slug), req.FileName)

	out := response{
		Summary:           result.Summary,
		Fields:            result.Fields,
		SuggestedCategory: slug,
		Entities:          result.Entities,
		AssetName:         name,
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

// documentText pulls whatever text signal is available: file contents for
// text-like files, otherwise just the file name.
func documentText(req local.Request) string {
	if req.FilePath != "" && strings.HasPrefix(req.MimeType, "text/") {
		if data, err := os.ReadFile(req.FilePath); err == nil {
			return string(data)
		}
	}
	return req.FileName
}
