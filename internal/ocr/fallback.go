package ocr

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"menulens/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackClient tries providers in order, skipping those with open circuits.
// It implements port.MenuOCR.
type FallbackClient struct {
	clients  []port.MenuOCR
	circuits []*circuitState
	names    []string
}

// NewFallbackClient creates a FallbackClient from an ordered list of clients and their names.
func NewFallbackClient(clients []port.MenuOCR, names []string) *FallbackClient {
	circuits := make([]*circuitState, len(clients))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackClient{
		clients:  clients,
		circuits: circuits,
		names:    names,
	}
}

func (f *FallbackClient) ExtractMenu(ctx context.Context, input port.OCRInput) (*port.OCROutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, c := range f.clients {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("ocr.FallbackClient: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := c.ExtractMenu(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("ocr.FallbackClient: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All providers were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all ocr providers rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all ocr providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all ocr providers failed: %w", lastErr)
}
