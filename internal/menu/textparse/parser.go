package textparse

import (
	"regexp"
	"strings"

	"menulens/internal/domain"
)

var (
	// priceRe accepts $12.99, 12.99, 12,99, 12.99€ and bare integers.
	// The last match in a line wins so stray numbers earlier in the line
	// (spice levels, item numbers) do not get taken for the price.
	priceRe   = regexp.MustCompile(`\$?\d+(?:[.,]\d{1,2})?€?`)
	numericRe = regexp.MustCompile(`^[\d\s.,$€]+$`)
)

// Config holds the heuristic tables and thresholds for the text parser.
// Kept as data so the vocabulary can be extended without touching the logic.
type Config struct {
	// SectionHeaders is the known section-header vocabulary, matched
	// case-insensitively against the full line (trailing colon stripped).
	SectionHeaders []string
	// MinLines and MinTextChars gate obviously unparseable input.
	MinLines     int
	MinTextChars int
	// FallbackLines is the line count above which an entirely price-free
	// text is emitted as plain content instead of guessed menu items.
	FallbackLines int
	// FallbackCategory tags items emitted by the price-free fallback.
	FallbackCategory string
}

// DefaultConfig returns the parser configuration used in production.
func DefaultConfig() Config {
	return Config{
		SectionHeaders: []string{
			"appetizers", "starters", "entrees", "mains", "main courses",
			"desserts", "beverages", "drinks", "sides", "salads", "soups",
			"breakfast", "lunch", "dinner", "brunch", "specials",
		},
		MinLines:         3,
		MinTextChars:     20,
		FallbackLines:    10,
		FallbackCategory: "Text Content",
	}
}

// Parser converts raw OCR text into a flat sequence of menu items with
// category markers interleaved.
type Parser struct {
	cfg      Config
	sections map[string]bool
}

// NewParser creates a Parser from a config.
func NewParser(cfg Config) *Parser {
	sections := make(map[string]bool, len(cfg.SectionHeaders))
	for _, s := range cfg.SectionHeaders {
		sections[strings.ToLower(s)] = true
	}
	return &Parser{cfg: cfg, sections: sections}
}

// Parse splits raw OCR text into tentative menu items. An empty result means
// the text could not be parsed as a menu; that is an outcome, not an error.
func (p *Parser) Parse(text string) []domain.MenuItem {
	lines := splitLines(text)
	if len(lines) < p.cfg.MinLines || len(strings.TrimSpace(text)) < p.cfg.MinTextChars {
		return nil
	}

	var items []domain.MenuItem
	currentCategory := ""
	pricesFound := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if p.isCategoryLine(line) {
			currentCategory = strings.TrimSpace(strings.TrimSuffix(line, ":"))
			items = append(items, domain.MenuItem{
				Name:     currentCategory,
				Category: currentCategory,
			})
			continue
		}

		if loc := lastPriceMatch(line); loc != nil {
			pricesFound++
			item := domain.MenuItem{
				Name:        strings.TrimSpace(line[:loc[0]]),
				Price:       line[loc[0]:loc[1]],
				Description: strings.TrimSpace(line[loc[1]:]),
				Category:    currentCategory,
			}
			// A price-free follow-up line that is not a heading continues
			// this item's description.
			if i+1 < len(lines) {
				next := lines[i+1]
				if lastPriceMatch(next) == nil && !p.isCategoryLine(next) {
					if item.Description != "" {
						item.Description += " " + strings.TrimSpace(next)
					} else {
						item.Description = strings.TrimSpace(next)
					}
					i++
				}
			}
			items = append(items, item)
			continue
		}

		name := strings.TrimSpace(line)
		if len(name) <= 3 || numericRe.MatchString(name) {
			continue
		}
		// Name on one line, price on the next: merge the pair.
		if i+1 < len(lines) {
			if loc := lastPriceMatch(lines[i+1]); loc != nil {
				pricesFound++
				items = append(items, domain.MenuItem{
					Name:     name,
					Price:    lines[i+1][loc[0]:loc[1]],
					Category: currentCategory,
				})
				i++
				continue
			}
		}
		items = append(items, domain.MenuItem{Name: name, Category: currentCategory})
	}

	// A long text without a single price is almost certainly not a menu.
	// Drop the guessed structure and hand each line downstream as plain
	// content; the validator will reject it.
	if pricesFound == 0 && len(lines) > p.cfg.FallbackLines {
		out := make([]domain.MenuItem, 0, len(lines))
		for _, line := range lines {
			out = append(out, domain.MenuItem{
				Name:     strings.TrimSpace(line),
				Category: p.cfg.FallbackCategory,
			})
		}
		return out
	}

	return items
}

// isCategoryLine reports whether a line reads as a section heading: a known
// section name, an all-caps line longer than 3 chars, or a line ending in ':'.
func (p *Parser) isCategoryLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, ":") {
		return true
	}
	if p.sections[strings.ToLower(strings.TrimSuffix(trimmed, ":"))] {
		return true
	}
	return len(trimmed) > 3 && isAllUpper(trimmed)
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter
}

func lastPriceMatch(line string) []int {
	matches := priceRe.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches[len(matches)-1]
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
