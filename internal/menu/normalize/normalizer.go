package normalize

import (
	"encoding/json"
	"fmt"

	"menulens/internal/domain"
)

// MenuStructure is the section tree returned by the structure-analysis model.
type MenuStructure struct {
	IsMenu         bool          `json:"isMenu"`
	RestaurantName string        `json:"restaurantName,omitempty"`
	MenuSections   []MenuSection `json:"menuSections"`
}

// MenuSection is one heading with its items.
type MenuSection struct {
	SectionName string        `json:"sectionName"`
	Items       []SectionItem `json:"items"`
}

// SectionItem is one entry inside a section. Price is a pointer because the
// model emits null for unpriced items.
type SectionItem struct {
	Name        string  `json:"name"`
	Price       *string `json:"price"`
	Description string  `json:"description"`
}

// Parse decodes a raw structure payload. On error the caller must fall back
// to the text parser on the same raw text; the normalizer never invents
// structure itself.
func Parse(raw []byte) (*MenuStructure, error) {
	var s MenuStructure
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding menu structure: %w", err)
	}
	return &s, nil
}

// Flatten converts the section tree into the flat item representation used by
// the rest of the pipeline: one category marker per section followed by its
// items. A structure marked not-a-menu flattens to an empty list.
func Flatten(s MenuStructure) []domain.MenuItem {
	if !s.IsMenu {
		return nil
	}

	var items []domain.MenuItem
	for _, section := range s.MenuSections {
		items = append(items, domain.MenuItem{
			Name:     section.SectionName,
			Category: section.SectionName,
		})
		for _, it := range section.Items {
			price := ""
			if it.Price != nil {
				price = *it.Price
			}
			items = append(items, domain.MenuItem{
				Name:        it.Name,
				Price:       price,
				Description: it.Description,
				Category:    section.SectionName,
			})
		}
	}
	return items
}
