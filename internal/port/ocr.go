package port

import (
	"context"
	"encoding/json"
)

// OCRInput carries the data needed for menu extraction.
type OCRInput struct {
	ImageBytes  []byte
	ContentType string
}

// OCROutput contains a provider's raw extraction. Structure is the optional
// section tree some providers return alongside the text; nil when the
// provider only does plain OCR.
type OCROutput struct {
	RawText   string
	Structure json.RawMessage
	ModelUsed string
}

// MenuOCR abstracts OCR/LLM-based menu extraction.
type MenuOCR interface {
	ExtractMenu(ctx context.Context, input OCRInput) (*OCROutput, error)
}
