package filter

import (
	"fmt"
	"regexp"
	"strings"

	"menulens/internal/domain"
)

// Result is the outcome of filtering one text field. Produced fresh per
// field, never persisted.
type Result struct {
	IsClean       bool            `json:"is_clean"`
	SanitizedText string          `json:"sanitized_text"`
	Profanity     []string        `json:"profanity,omitempty"`
	PII           []string        `json:"pii,omitempty"`
	Suspicious    []string        `json:"suspicious,omitempty"`
	Severity      domain.Severity `json:"severity"`
}

// BatchResult aggregates filtering across a whole item set.
type BatchResult struct {
	Items       []domain.MenuItem `json:"items"`
	HasErrors   bool              `json:"has_errors"`
	HasWarnings bool              `json:"has_warnings"`
	Profanity   []string          `json:"profanity,omitempty"`
	PII         []string          `json:"pii,omitempty"`
	Suspicious  []string          `json:"suspicious,omitempty"`
}

// PIIPattern pairs a redaction label with the pattern it matches.
type PIIPattern struct {
	Name    string
	Pattern string
}

// Config holds the filter's pattern tables as data so the lists stay
// independently testable and extendable.
type Config struct {
	ProfanityPatterns  []string
	HateSpeechPatterns []string
	// PIIPatterns run in order; earlier redactions are not re-scanned by
	// later patterns, so put the more specific formats first.
	PIIPatterns []PIIPattern
	// SuspiciousPatterns label odd text without mutating it.
	SuspiciousPatterns []PIIPattern
	// RepeatRunLength is the repeated-character run treated as suspicious.
	RepeatRunLength int
}

// DefaultConfig returns the production filter configuration.
func DefaultConfig() Config {
	return Config{
		ProfanityPatterns: []string{
			`\b(fuck|shit|damn|hell|ass|bitch|bastard|crap)\b`,
			`\b(wtf|stfu|fck|sht)\b`,
		},
		HateSpeechPatterns: []string{
			`\b(nazi|kkk|racist|bigot|supremac)\b`,
		},
		PIIPatterns: []PIIPattern{
			{Name: "Social Security Number", Pattern: `\b\d{3}-\d{2}-\d{4}\b`},
			{Name: "Credit Card Number", Pattern: `\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`},
			{Name: "Email Address", Pattern: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`},
			{Name: "Phone Number", Pattern: `\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`},
			{Name: "URL", Pattern: `https?://[^\s]+`},
		},
		SuspiciousPatterns: []PIIPattern{
			{Name: "excessive capitalization", Pattern: `\b[A-Z]{10,}\b`},
			{Name: "emoji spam", Pattern: `[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}]{5}`},
		},
		RepeatRunLength: 6,
	}
}

// Filter scans text fields for profanity, PII and suspicious patterns.
// Stateless and safe for concurrent use.
type Filter struct {
	cfg        Config
	profanity  []*regexp.Regexp
	hateSpeech []*regexp.Regexp
	pii        []piiMatcher
	suspicious []piiMatcher
}

type piiMatcher struct {
	name string
	re   *regexp.Regexp
}

// NewFilter compiles the configured pattern tables. Pattern tables are
// code-owned, so a bad pattern is a programming error.
func NewFilter(cfg Config) *Filter {
	f := &Filter{cfg: cfg}
	for _, p := range cfg.ProfanityPatterns {
		f.profanity = append(f.profanity, regexp.MustCompile(`(?i)`+p))
	}
	for _, p := range cfg.HateSpeechPatterns {
		f.hateSpeech = append(f.hateSpeech, regexp.MustCompile(`(?i)`+p))
	}
	for _, p := range cfg.PIIPatterns {
		f.pii = append(f.pii, piiMatcher{name: p.Name, re: regexp.MustCompile(p.Pattern)})
	}
	for _, p := range cfg.SuspiciousPatterns {
		f.suspicious = append(f.suspicious, piiMatcher{name: p.Name, re: regexp.MustCompile(p.Pattern)})
	}
	return f
}

// ContainsProfanity reports whether text trips the profanity or hate-speech
// lists.
func (f *Filter) ContainsProfanity(text string) bool {
	for _, re := range f.profanity {
		if re.MatchString(text) {
			return true
		}
	}
	for _, re := range f.hateSpeech {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// SanitizeText filters one text field. Profanity and hate speech hard-block:
// the text comes back untouched with severity error, since abusive content is
// surfaced for manual handling rather than cleaned. PII is redacted in place.
func (f *Filter) SanitizeText(text string) Result {
	res := Result{IsClean: true, SanitizedText: text, Severity: domain.SeverityNone}

	for _, re := range f.profanity {
		for _, m := range re.FindAllString(text, -1) {
			res.Profanity = append(res.Profanity, strings.ToLower(m))
		}
	}
	for _, re := range f.hateSpeech {
		for _, m := range re.FindAllString(text, -1) {
			res.Profanity = append(res.Profanity, "hate speech: "+strings.ToLower(m))
		}
	}
	if len(res.Profanity) > 0 {
		res.IsClean = false
		res.Severity = domain.SeverityError
		return res
	}

	sanitized := text
	for _, m := range f.pii {
		if !m.re.MatchString(sanitized) {
			continue
		}
		count := len(m.re.FindAllString(sanitized, -1))
		sanitized = m.re.ReplaceAllString(sanitized, "["+m.name+"]")
		res.PII = append(res.PII, fmt.Sprintf("%s (%d)", m.name, count))
		res.Severity = res.Severity.Max(domain.SeverityWarning)
	}
	res.SanitizedText = sanitized

	for _, m := range f.suspicious {
		if m.re.MatchString(sanitized) {
			res.Suspicious = append(res.Suspicious, m.name)
			res.Severity = res.Severity.Max(domain.SeverityWarning)
		}
	}
	if hasRepeatRun(sanitized, f.cfg.RepeatRunLength) {
		res.Suspicious = append(res.Suspicious, "repeated characters")
		res.Severity = res.Severity.Max(domain.SeverityWarning)
	}

	return res
}

// FilterItems filters every item's name, description and category
// independently and rebuilds each item with whichever sanitized text
// resulted. Blocked fields keep their original text.
func (f *Filter) FilterItems(items []domain.MenuItem) BatchResult {
	batch := BatchResult{Items: make([]domain.MenuItem, 0, len(items))}

	for _, it := range items {
		name := f.collect(it.Name, &batch)
		desc := f.collect(it.Description, &batch)
		category := f.collect(it.Category, &batch)
		batch.Items = append(batch.Items, domain.MenuItem{
			Name:        name,
			Price:       it.Price,
			Description: desc,
			Category:    category,
		})
	}
	return batch
}

func (f *Filter) collect(text string, batch *BatchResult) string {
	if text == "" {
		return text
	}
	res := f.SanitizeText(text)
	batch.Profanity = append(batch.Profanity, res.Profanity...)
	batch.PII = append(batch.PII, res.PII...)
	batch.Suspicious = append(batch.Suspicious, res.Suspicious...)
	switch res.Severity {
	case domain.SeverityError:
		batch.HasErrors = true
	case domain.SeverityWarning:
		batch.HasWarnings = true
	}
	return res.SanitizedText
}

// hasRepeatRun reports a run of the same character at least n long.
func hasRepeatRun(s string, n int) bool {
	if n <= 1 {
		return len(s) > 0
	}
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
