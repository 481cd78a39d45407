package noop

import (
	"context"
	"log"

	"scanvault/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendExtractionFailed(_ context.Context, toEmail, toName, fileName, reason string) error {
	log.Printf("[NOOP EMAIL] Extraction failed notice for %s (%s): file=%s reason=%s", toName, toEmail, fileName, reason)
	return nil
}
