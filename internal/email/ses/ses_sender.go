package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"menulens/internal/port"
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

func (s *sesSender) SendModerationAlert(ctx context.Context, toEmail string, alert port.ModerationAlert) error {
	subject := fmt.Sprintf("Scan %s blocked by content filter", alert.ScanID)
	htmlBody := buildModerationHTML(alert)
	textBody := fmt.Sprintf(
		"Scan %s was blocked by the content filter and needs manual review.\n\nRestaurant: %s\nMatched terms: %s\n\nMenuLens",
		alert.ScanID, alert.RestaurantID, strings.Join(alert.MatchedTerms, ", "))

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

func buildModerationHTML(alert port.ModerationAlert) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Scan blocked by content filter</h2>
  <p>Scan <strong>%s</strong> was rejected and needs manual review.</p>
  <p>Restaurant: %s</p>
  <p>Matched terms:</p>
  <p style="word-break: break-all; color: #b91c1c;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">MenuLens - Menu Digitization Platform</p>
</body>
</html>`,
		html.EscapeString(alert.ScanID),
		html.EscapeString(alert.RestaurantID),
		html.EscapeString(strings.Join(alert.MatchedTerms, ", ")))
}
