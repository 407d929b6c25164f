package noop

import (
	"context"
	"log"
	"strings"

	"menulens/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs moderation alerts to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendModerationAlert(_ context.Context, toEmail string, alert port.ModerationAlert) error {
	log.Printf("[NOOP EMAIL] Moderation alert for %s: scan %s blocked (terms: %s)",
		toEmail, alert.ScanID, strings.Join(alert.MatchedTerms, ", "))
	return nil
}
