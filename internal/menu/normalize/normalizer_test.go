package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFlatten_SectionsBecomeMarkersAndItems(t *testing.T) {
	s := MenuStructure{
		IsMenu:         true,
		RestaurantName: "Trattoria Roma",
		MenuSections: []MenuSection{
			{
				SectionName: "Antipasti",
				Items: []SectionItem{
					{Name: "Bruschetta", Price: strPtr("$8.00"), Description: "grilled bread, tomato"},
					{Name: "Olives", Price: nil, Description: ""},
				},
			},
			{
				SectionName: "Primi",
				Items: []SectionItem{
					{Name: "Cacio e Pepe", Price: strPtr("$16.00"), Description: ""},
				},
			},
		},
	}

	items := Flatten(s)
	require.Len(t, items, 5)

	assert.True(t, items[0].IsCategoryMarker())
	assert.Equal(t, "Antipasti", items[0].Name)

	assert.Equal(t, "Bruschetta", items[1].Name)
	assert.Equal(t, "$8.00", items[1].Price)
	assert.Equal(t, "Antipasti", items[1].Category)

	assert.Equal(t, "Olives", items[2].Name)
	assert.Empty(t, items[2].Price, "null price flattens to empty")

	assert.True(t, items[3].IsCategoryMarker())
	assert.Equal(t, "Primi", items[3].Category)
	assert.Equal(t, "Cacio e Pepe", items[4].Name)
}

func TestFlatten_NotAMenuYieldsEmptyList(t *testing.T) {
	s := MenuStructure{
		IsMenu: false,
		MenuSections: []MenuSection{
			{SectionName: "Whatever", Items: []SectionItem{{Name: "X"}}},
		},
	}
	assert.Empty(t, Flatten(s))
}

func TestParse(t *testing.T) {
	t.Run("valid structure", func(t *testing.T) {
		raw := []byte(`{
			"isMenu": true,
			"restaurantName": "Sushi Bar",
			"menuSections": [
				{"sectionName": "Nigiri", "items": [{"name": "Salmon", "price": "$4.50", "description": ""}]}
			]
		}`)
		s, err := Parse(raw)
		require.NoError(t, err)
		assert.True(t, s.IsMenu)
		assert.Equal(t, "Sushi Bar", s.RestaurantName)
		require.Len(t, s.MenuSections, 1)
	})

	t.Run("null price decodes", func(t *testing.T) {
		raw := []byte(`{"isMenu": true, "menuSections": [{"sectionName": "Sides", "items": [{"name": "Rice", "price": null, "description": ""}]}]}`)
		s, err := Parse(raw)
		require.NoError(t, err)
		assert.Nil(t, s.MenuSections[0].Items[0].Price)
	})

	t.Run("garbage payload errors", func(t *testing.T) {
		_, err := Parse([]byte(`<html>rate limited</html>`))
		assert.Error(t, err)
	})
}
