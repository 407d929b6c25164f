package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"menulens/internal/config"
	"menulens/internal/ocr"
	"menulens/internal/port"
)

const apiURL = "https://api.mistral.ai/v1/ocr"

// Client implements port.MenuOCR using the Mistral OCR API. It returns raw
// text only; structure analysis is left to the text parser or a secondary
// vision provider.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates a Mistral-based OCR client from a provider config.
func NewClient(cfg *config.OCRProviderConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.OCRProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.OCRProviderConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "mistral-ocr-latest"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) ExtractMenu(ctx context.Context, input port.OCRInput) (*port.OCROutput, error) {
	if input.ContentType != "image/jpeg" && input.ContentType != "image/png" {
		return nil, fmt.Errorf("unsupported content type for ocr: %s", input.ContentType)
	}

	encoded := base64.StdEncoding.EncodeToString(input.ImageBytes)
	reqBody := map[string]interface{}{
		"model": c.model,
		"document": map[string]interface{}{
			"type":      "image_url",
			"image_url": fmt.Sprintf("data:%s;base64,%s", input.ContentType, encoded),
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling mistral API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("mistral API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := ocr.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, ocr.NewRateLimitError("mistral", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, c.model)
}

// apiResponse models the Mistral OCR API response.
type apiResponse struct {
	Pages []struct {
		Index    int    `json:"index"`
		Markdown string `json:"markdown"`
	} `json:"pages"`
}

func parseResponse(body []byte, model string) (*port.OCROutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Pages) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	var b strings.Builder
	for i, page := range resp.Pages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(page.Markdown)
	}

	return &port.OCROutput{
		RawText:   b.String(),
		ModelUsed: model,
	}, nil
}
