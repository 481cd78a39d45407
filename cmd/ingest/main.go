// Command ingest runs a single file through a configured local extractor
// and prints the normalized result. It is the command-line counterpart to
// the server pipeline, useful for trying out extractor commands before
// pointing the service at them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"scanvault/internal/config"
	"scanvault/internal/extractor/local"
)

func main() {
	filePath := flag.String("file", "", "path of the document to extract")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ingest -file <path>")
		os.Exit(1)
	}

	if err := run(*filePath); err != nil {
		log.Fatalf("ingest: %v", err)
	}
}

func run(filePath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := local.NewClient(&cfg.LocalExt)
	if err != nil {
		return fmt.Errorf("creating local extractor: %w", err)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filePath, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(filePath))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	result, err := client.Extract(context.Background(), local.Request{
		FilePath:      filePath,
		FileName:      filepath.Base(filePath),
		MimeType:      mimeType,
		FileSizeBytes: info.Size(),
	})
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
