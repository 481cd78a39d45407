package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"scanvault/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendExtractionFailed(ctx context.Context, toEmail, toName, fileName, reason string) error {
	subject := fmt.Sprintf("Extraction failed for %s", fileName)
	htmlBody := buildExtractionFailedHTML(toName, fileName, reason)
	textBody := fmt.Sprintf("Hi %s,\n\nWe could not finish extracting data from %s.\n\nReason: %s\n\nYou can retry the document from your library at any time.\n\nScanVault Team",
		toName, fileName, reason)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildExtractionFailedHTML(name, fileName, reason string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Document extraction failed</h2>
  <p>Hi %s,</p>
  <p>We could not finish extracting data from <strong>%s</strong>.</p>
  <p style="color: #666; background: #f7f7f7; padding: 12px; border-radius: 6px;">%s</p>
  <p>You can retry the document from your library at any time.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">ScanVault - Document Extraction Platform</p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(fileName), html.EscapeString(reason))
}
