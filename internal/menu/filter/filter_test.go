package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menulens/internal/domain"
)

func TestSanitizeText_CleanText(t *testing.T) {
	f := NewFilter(DefaultConfig())

	res := f.SanitizeText("Grilled chicken with roasted vegetables")

	assert.True(t, res.IsClean)
	assert.Equal(t, domain.SeverityNone, res.Severity)
	assert.Equal(t, "Grilled chicken with roasted vegetables", res.SanitizedText)
	assert.Empty(t, res.Profanity)
	assert.Empty(t, res.PII)
}

func TestSanitizeText_ProfanityHardBlocks(t *testing.T) {
	f := NewFilter(DefaultConfig())

	res := f.SanitizeText("this shit is amazing, call 555-123-4567")

	assert.False(t, res.IsClean)
	assert.Equal(t, domain.SeverityError, res.Severity)
	assert.Contains(t, res.Profanity, "shit")
	// Sanitization is skipped entirely on a hard block.
	assert.Equal(t, "this shit is amazing, call 555-123-4567", res.SanitizedText)
	assert.Empty(t, res.PII)
}

func TestSanitizeText_HateSpeechLabeled(t *testing.T) {
	f := NewFilter(DefaultConfig())

	res := f.SanitizeText("owned by a racist")

	assert.False(t, res.IsClean)
	assert.Equal(t, domain.SeverityError, res.Severity)
	assert.Contains(t, res.Profanity, "hate speech: racist")
}

func TestContainsProfanityImpliesNotClean(t *testing.T) {
	f := NewFilter(DefaultConfig())

	inputs := []string{
		"what the hell",
		"WTF is this",
		"nazi memorabilia",
		"perfectly fine sentence",
		"Chicken breast with rice",
	}
	for _, in := range inputs {
		if f.ContainsProfanity(in) {
			assert.False(t, f.SanitizeText(in).IsClean, "input %q", in)
		} else {
			assert.True(t, f.SanitizeText(in).IsClean, "input %q", in)
		}
	}
}

func TestSanitizeText_PIIRedaction(t *testing.T) {
	f := NewFilter(DefaultConfig())

	tests := []struct {
		name  string
		text  string
		label string
		want  string
	}{
		{
			"email",
			"Email me at test@example.com",
			"Email Address",
			"Email me at [Email Address]",
		},
		{
			"ssn",
			"SSN 123-45-6789 on file",
			"Social Security Number",
			"SSN [Social Security Number] on file",
		},
		{
			"credit card",
			"pay with 4111 1111 1111 1111",
			"Credit Card Number",
			"pay with [Credit Card Number]",
		},
		{
			"phone",
			"reservations at (555) 123-4567",
			"Phone Number",
			"reservations at [Phone Number]",
		},
		{
			"url",
			"order at https://example.com/menu today",
			"URL",
			"order at [URL] today",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.SanitizeText(tt.text)
			assert.True(t, res.IsClean)
			assert.Equal(t, domain.SeverityWarning, res.Severity)
			assert.Equal(t, tt.want, res.SanitizedText)
			require.Len(t, res.PII, 1)
			assert.Contains(t, res.PII[0], tt.label)
		})
	}
}

func TestSanitizeText_PIIRedactionIdempotent(t *testing.T) {
	f := NewFilter(DefaultConfig())

	once := f.SanitizeText("Email me at test@example.com or call 555-123-4567")
	twice := f.SanitizeText(once.SanitizedText)

	assert.Equal(t, once.SanitizedText, twice.SanitizedText)
	assert.Empty(t, twice.PII)
}

func TestSanitizeText_SuspiciousPatterns(t *testing.T) {
	f := NewFilter(DefaultConfig())

	tests := []struct {
		name  string
		text  string
		label string
	}{
		{"shouting", "BESTBURGERS in town", "excessive capitalization"},
		{"repeated characters", "sooooooo good", "repeated characters"},
		{"emoji spam", "great \U0001F355\U0001F355\U0001F355\U0001F355\U0001F355", "emoji spam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.SanitizeText(tt.text)
			assert.True(t, res.IsClean)
			assert.Equal(t, domain.SeverityWarning, res.Severity)
			assert.Contains(t, res.Suspicious, tt.label)
			assert.Equal(t, tt.text, res.SanitizedText, "labels only, no mutation")
		})
	}
}

func TestFilterItems(t *testing.T) {
	f := NewFilter(DefaultConfig())

	items := []domain.MenuItem{
		{Name: "Margherita", Price: "$12.00", Description: "order at test@example.com", Category: "Pizza"},
		{Name: "damn good wings", Price: "$9.00", Category: "Appetizers"},
		{Name: "Caesar Salad", Price: "$11.00", Category: "Salads"},
	}
	batch := f.FilterItems(items)

	require.Len(t, batch.Items, 3)
	assert.True(t, batch.HasErrors)
	assert.True(t, batch.HasWarnings)

	assert.Equal(t, "order at [Email Address]", batch.Items[0].Description)
	// Blocked fields keep their original text.
	assert.Equal(t, "damn good wings", batch.Items[1].Name)
	assert.Equal(t, "Caesar Salad", batch.Items[2].Name)
	assert.Contains(t, batch.Profanity, "damn")
	require.Len(t, batch.PII, 1)
	assert.Contains(t, batch.PII[0], "Email Address")
}
