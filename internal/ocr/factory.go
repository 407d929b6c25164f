package ocr

import (
	"fmt"

	"menulens/internal/config"
	"menulens/internal/port"
)

// ProviderFactory is a function that creates a MenuOCR client from a provider config.
type ProviderFactory func(cfg *config.OCRProviderConfig) (port.MenuOCR, error)

// registry of OCR provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an OCR provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewClient creates a MenuOCR client from a provider config using the registered factory.
func NewClient(cfg *config.OCRProviderConfig) (port.MenuOCR, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown ocr provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
