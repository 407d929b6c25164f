package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menulens/internal/domain"
)

func sampleMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{Name: "Appetizers", Category: "Appetizers"},
		{Name: "Calamari", Price: "$12.99", Description: "Lightly fried with lemon aioli", Category: "Appetizers"},
		{Name: "Bruschetta", Price: "$9.50", Description: "Grilled bread with tomato and basil", Category: "Appetizers"},
		{Name: "Mains", Category: "Mains"},
		{Name: "Grilled Chicken", Price: "$18.99", Description: "Roasted vegetables and rice", Category: "Mains"},
		{Name: "Salmon", Price: "$24.00", Description: "Pan seared with seasonal greens", Category: "Mains"},
	}
}

func TestValidate_GenuineMenuPasses(t *testing.T) {
	v := NewValidator(DefaultConfig())

	res := v.Validate(sampleMenu())

	assert.True(t, res.IsValid)
	assert.GreaterOrEqual(t, res.Score, 5)
	assert.Empty(t, res.Errors)
	assert.GreaterOrEqual(t, res.KeywordMatches, 2)
}

func TestValidate_RandomProseIsRejected(t *testing.T) {
	v := NewValidator(DefaultConfig())

	res := v.Validate([]domain.MenuItem{
		{Name: "quarterly report", Category: "Text Content"},
		{Name: "revenue grew by twelve percent", Category: "Text Content"},
		{Name: "board meeting minutes", Category: "Text Content"},
	})

	assert.False(t, res.IsValid)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "No food-related content")
	assert.Contains(t, res.Errors[len(res.Errors)-1], "Insufficient food-related content")
}

func TestValidate_SingleKeywordStillRejected(t *testing.T) {
	v := NewValidator(DefaultConfig())

	res := v.Validate([]domain.MenuItem{
		{Name: "chicken something", Price: "$12.00", Category: "stuff"},
		{Name: "mystery plate", Price: "$10.00", Category: "stuff"},
	})

	assert.False(t, res.IsValid)
	assert.Equal(t, 1, res.KeywordMatches)
	assert.Contains(t, res.Errors[0], "Insufficient food-related content")
}

func TestValidate_ScoreMonotonicUnderGoodItems(t *testing.T) {
	v := NewValidator(DefaultConfig())

	base := v.Validate(sampleMenu())

	extended := append(sampleMenu(), domain.MenuItem{
		Name:        "Grilled Salmon",
		Price:       "$21.99",
		Description: "Fresh salmon with seasonal vegetables",
		Category:    "Mains",
	})
	res := v.Validate(extended)

	assert.GreaterOrEqual(t, res.Score, base.Score)
	assert.True(t, res.IsValid)
}

func TestValidate_NoPricesIsAnError(t *testing.T) {
	v := NewValidator(DefaultConfig())

	res := v.Validate([]domain.MenuItem{
		{Name: "Grilled Chicken", Category: "Mains"},
		{Name: "Fried Rice", Category: "Mains"},
	})

	assert.Contains(t, res.Errors, "No prices found in the content")
}

func TestValidate_PriceSanity(t *testing.T) {
	v := NewValidator(DefaultConfig())

	t.Run("very high price flagged suspicious", func(t *testing.T) {
		items := append(sampleMenu(), domain.MenuItem{
			Name: "Tasting Menu", Price: "$950.00", Category: "Mains",
		})
		res := v.Validate(items)
		require.Len(t, res.SuspiciousPrices, 1)
		assert.Equal(t, "$950.00", res.SuspiciousPrices[0])
	})

	t.Run("sub-dollar price warns outside sides", func(t *testing.T) {
		items := append(sampleMenu(), domain.MenuItem{
			Name: "Steak", Price: "$0.50", Category: "Mains",
		})
		res := v.Validate(items)
		assert.NotEmpty(t, res.Warnings)
	})

	t.Run("sub-dollar side is fine", func(t *testing.T) {
		items := append(sampleMenu(), domain.MenuItem{
			Name: "Extra Sauce", Price: "$0.50", Category: "Sides",
		})
		res := v.Validate(items)
		assert.Empty(t, res.Warnings)
	})
}

func TestValidate_MarkersDoNotCount(t *testing.T) {
	v := NewValidator(DefaultConfig())

	// Markers have no price; if they counted as items the ratio would
	// drop below the warning threshold.
	items := []domain.MenuItem{
		{Name: "Mains", Category: "Mains"},
		{Name: "Desserts", Category: "Desserts"},
		{Name: "Grilled Chicken", Price: "$18.00", Description: "Roasted vegetables and rice", Category: "Mains"},
	}
	res := v.Validate(items)

	assert.NotContains(t, res.Warnings, "Few items have prices")
}

func TestValidate_EmptyInput(t *testing.T) {
	v := NewValidator(DefaultConfig())

	res := v.Validate(nil)

	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Errors)
}
