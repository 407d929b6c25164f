package port

import "context"

// ModerationAlert describes a scan the content filter hard-blocked.
type ModerationAlert struct {
	ScanID       string
	RestaurantID string
	MatchedTerms []string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendModerationAlert(ctx context.Context, toEmail string, alert ModerationAlert) error
}
