package textparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CategoryAndItems(t *testing.T) {
	p := NewParser(DefaultConfig())

	items := p.Parse("APPETIZERS\nCalamari $12.99 Lightly fried\nShrimp Cocktail $14.99")

	require.Len(t, items, 3)

	assert.True(t, items[0].IsCategoryMarker())
	assert.Equal(t, "APPETIZERS", items[0].Name)
	assert.Equal(t, "APPETIZERS", items[0].Category)

	assert.Equal(t, "Calamari", items[1].Name)
	assert.Equal(t, "$12.99", items[1].Price)
	assert.Equal(t, "Lightly fried", items[1].Description)
	assert.Equal(t, "APPETIZERS", items[1].Category)

	assert.Equal(t, "Shrimp Cocktail", items[2].Name)
	assert.Equal(t, "$14.99", items[2].Price)
	assert.Empty(t, items[2].Description)
}

func TestParse_RejectsUnparseableInput(t *testing.T) {
	p := NewParser(DefaultConfig())

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"too short", "menu"},
		{"two lines only", "Pasta $10.99\nPizza $11.99"},
		{"whitespace only", "   \n\n   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, p.Parse(tt.text))
		})
	}
}

func TestParse_CategoryHeuristics(t *testing.T) {
	p := NewParser(DefaultConfig())

	tests := []struct {
		name     string
		line     string
		category bool
	}{
		{"known section", "Desserts", true},
		{"known section with colon", "Salads:", true},
		{"all caps", "HOUSE FAVORITES", true},
		{"colon suffix", "From the grill:", true},
		{"short caps", "BBQ", false},
		{"plain line", "Garlic bread", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, p.isCategoryLine(tt.line))
		})
	}
}

func TestParse_LastPriceInLineWins(t *testing.T) {
	p := NewParser(DefaultConfig())

	items := p.Parse("Mains:\n2 Tacos with salsa $8.50\nBurrito $9.75\nQuesadilla $7.25")

	require.Len(t, items, 4)
	assert.Equal(t, "$8.50", items[1].Price)
	assert.Equal(t, "2 Tacos with salsa", items[1].Name)
}

func TestParse_ContinuationLineJoinsDescription(t *testing.T) {
	p := NewParser(DefaultConfig())

	items := p.Parse("ENTREES\nRibeye Steak $32.00 dry aged\nwith roasted potatoes\nHouse Salad $9.00")

	require.Len(t, items, 3)
	assert.Equal(t, "dry aged with roasted potatoes", items[1].Description)
	assert.Equal(t, "House Salad", items[2].Name)
}

func TestParse_NameThenPriceLinesMerge(t *testing.T) {
	p := NewParser(DefaultConfig())

	items := p.Parse("DESSERTS\nChocolate Lava Cake\n$8.95\nTiramisu\n$7.95")

	require.Len(t, items, 3)
	assert.Equal(t, "Chocolate Lava Cake", items[1].Name)
	assert.Equal(t, "$8.95", items[1].Price)
	assert.Equal(t, "Tiramisu", items[2].Name)
	assert.Equal(t, "$7.95", items[2].Price)
}

func TestParse_CarriesCategoryForward(t *testing.T) {
	p := NewParser(DefaultConfig())

	items := p.Parse("SOUPS\nMiso $4.50\nTom Yum $6.50\nSALADS\nCaesar $11.00")

	require.Len(t, items, 5)
	assert.Equal(t, "SOUPS", items[1].Category)
	assert.Equal(t, "SOUPS", items[2].Category)
	assert.Equal(t, "SALADS", items[4].Category)
}

func TestParse_PriceFreeTextFallsBackToPlainContent(t *testing.T) {
	p := NewParser(DefaultConfig())

	lines := []string{
		"Dear valued customer,",
		"thank you for visiting our establishment",
		"we hope you enjoyed your stay",
		"our opening hours have changed",
		"we now open earlier on weekdays",
		"and close later on weekends",
		"please follow us online",
		"for news and announcements",
		"we appreciate your continued support",
		"see you again soon",
		"with kind regards from the whole team",
	}
	items := p.Parse(strings.Join(lines, "\n"))

	require.Len(t, items, len(lines))
	for _, it := range items {
		assert.Equal(t, "Text Content", it.Category)
		assert.Empty(t, it.Price)
	}
}

func TestParse_EuroSuffixPrice(t *testing.T) {
	p := NewParser(DefaultConfig())

	items := p.Parse("Mains:\nSchnitzel 14.50€ with potato salad\nBratwurst 9.90€")

	require.Len(t, items, 3)
	assert.Equal(t, "14.50€", items[1].Price)
	assert.Equal(t, "with potato salad", items[1].Description)
}
