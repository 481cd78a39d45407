package port

import "context"

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	SendExtractionFailed(ctx context.Context, toEmail, toName, fileName, reason string) error
}
