package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"menulens/internal/config"
	"menulens/internal/ocr"
	"menulens/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements port.MenuOCR using the OpenAI Chat Completions API with
// vision input. It returns the section tree as Structure alongside a raw-text
// rendering of the items.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClient creates an OpenAI-based menu analysis client from a provider config.
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
		model = "gpt-4o-mini"
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
		return nil, fmt.Errorf("unsupported content type for menu analysis: %s", input.ContentType)
	}

	prompt := ocr.BuildMenuStructurePrompt()
	encoded := base64.StdEncoding.EncodeToString(input.ImageBytes)

	reqBody := map[string]interface{}{
		"model":                 c.model,
		"max_completion_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "image_url",
						"image_url": map[string]interface{}{
							"url": fmt.Sprintf("data:%s;base64,%s", input.ContentType, encoded),
						},
					},
					{
						"type": "text",
						"text": prompt,
					},
				},
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
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
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := ocr.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, ocr.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, c.model)
}

// apiResponse models the OpenAI Chat Completions response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, model string) (*port.OCROutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}

	text := resp.Choices[0].Message.Content

	// Keep the structure opaque here; the normalizer owns its schema and
	// falls back to the text parser if it cannot decode it.
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("model output is not valid JSON (raw: %s)", truncate(text, 500))
	}

	return &port.OCROutput{
		RawText:   "",
		Structure: json.RawMessage(text),
		ModelUsed: model,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
