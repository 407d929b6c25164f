package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"menulens/internal/domain"
)

var leadingNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Result is the validator's verdict on one parsed item set.
type Result struct {
	IsValid          bool     `json:"is_valid"`
	Score            int      `json:"score"`
	Errors           []string `json:"errors,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	KeywordMatches   int      `json:"keyword_matches"`
	SuspiciousPrices []string `json:"suspicious_prices,omitempty"`
}

// Config holds the vocabularies and thresholds for menu plausibility scoring.
type Config struct {
	// FoodKeywords is the vocabulary scanned across all item text fields.
	FoodKeywords []string
	// MenuSections is the known section vocabulary used for the category
	// diversity bonus.
	MenuSections []string
	// MinPriceRatio is the priced-item share below which coverage only
	// warns instead of scoring.
	MinPriceRatio float64
	// MaxSanePrice and MinSanePrice bound the plausible single-item price.
	MaxSanePrice float64
	MinSanePrice float64
	// MinDescLen and MinDescRatio define the description coverage bonus.
	MinDescLen   int
	MinDescRatio float64
	// MinKeywordMatches gates validity regardless of score.
	MinKeywordMatches int
	// PassScore is the minimum total score of a valid menu.
	PassScore int
}

// DefaultConfig returns the production validation configuration.
func DefaultConfig() Config {
	return Config{
		FoodKeywords: []string{
			"appetizer", "appetizers", "starter", "starters", "entree",
			"entrees", "main", "mains", "dessert", "desserts", "beverage",
			"beverages", "drink", "drinks", "side", "sides", "salad",
			"salads", "soup", "soups", "pasta", "sandwich", "sandwiches",
			"burger", "burgers", "pizza", "pizzas", "taco", "tacos",
			"chicken", "beef", "pork", "fish", "salmon", "tuna", "shrimp",
			"seafood", "steak", "lamb", "turkey", "duck",
			"grilled", "fried", "baked", "roasted", "steamed", "sauteed",
			"vegetarian", "vegan", "gluten-free", "dairy-free", "organic",
			"fries", "rice", "noodles", "bread", "cheese", "sauce",
			"breakfast", "lunch", "dinner", "brunch",
			"italian", "chinese", "japanese", "mexican", "thai", "indian",
			"american", "french", "mediterranean", "asian",
		},
		MenuSections: []string{
			"appetizers", "starters", "entrees", "mains", "main courses",
			"desserts", "beverages", "drinks", "sides", "salads", "soups",
			"breakfast", "lunch", "dinner", "brunch", "specials",
		},
		MinPriceRatio:     0.3,
		MaxSanePrice:      500,
		MinSanePrice:      1,
		MinDescLen:        10,
		MinDescRatio:      0.5,
		MinKeywordMatches: 2,
		PassScore:         5,
	}
}

// Validator scores how plausible it is that a parsed item set came from a
// genuine restaurant menu.
type Validator struct {
	cfg Config
}

// NewValidator creates a Validator from a config.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate scores the item set. Category markers are skipped for every count
// so a heading never inflates price or description coverage.
func (v *Validator) Validate(items []domain.MenuItem) Result {
	res := Result{}

	var real []domain.MenuItem
	for _, it := range items {
		if !it.IsCategoryMarker() {
			real = append(real, it)
		}
	}

	res.KeywordMatches = v.countKeywords(real)
	switch {
	case res.KeywordMatches == 0:
		res.Errors = append(res.Errors, "No food-related content detected")
	case res.KeywordMatches == 1:
		res.Warnings = append(res.Warnings, "Very little food-related content detected")
		res.Score++
	default:
		res.Score += 3
	}

	v.scorePrices(real, &res)
	v.scoreCategories(real, &res)
	v.scoreDescriptions(real, &res)

	if v.hasCategories(real) && v.hasPrices(real) && res.KeywordMatches >= v.cfg.MinKeywordMatches {
		res.Score += 2
	}

	if res.KeywordMatches < v.cfg.MinKeywordMatches {
		res.IsValid = false
		res.Errors = append(res.Errors, "Insufficient food-related content to confirm this is a menu")
	} else {
		res.IsValid = res.Score >= v.cfg.PassScore
	}
	return res
}

// countKeywords returns how many distinct vocabulary entries appear across
// the item text fields.
func (v *Validator) countKeywords(items []domain.MenuItem) int {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.Name)
		b.WriteString(" ")
		b.WriteString(it.Description)
		b.WriteString(" ")
		b.WriteString(it.Category)
		b.WriteString(" ")
	}
	text := strings.ToLower(b.String())

	count := 0
	for _, kw := range v.cfg.FoodKeywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

func (v *Validator) scorePrices(items []domain.MenuItem, res *Result) {
	if len(items) == 0 {
		res.Errors = append(res.Errors, "No prices found in the content")
		return
	}

	priced := 0
	for _, it := range items {
		if !it.HasPrice() {
			continue
		}
		priced++

		m := leadingNumberRe.FindString(it.Price)
		if m == "" {
			continue
		}
		value, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		if value > v.cfg.MaxSanePrice {
			res.SuspiciousPrices = append(res.SuspiciousPrices, it.Price)
		}
		if value < v.cfg.MinSanePrice && !strings.Contains(strings.ToLower(it.Category), "side") {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Unusually low price %q for %q", it.Price, it.Name))
		}
	}

	if len(res.SuspiciousPrices) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d unusually high prices detected", len(res.SuspiciousPrices)))
	}

	ratio := float64(priced) / float64(len(items))
	switch {
	case priced == 0:
		res.Errors = append(res.Errors, "No prices found in the content")
	case ratio < v.cfg.MinPriceRatio:
		res.Warnings = append(res.Warnings, "Few items have prices")
		res.Score++
	default:
		res.Score += 2
	}
}

func (v *Validator) scoreCategories(items []domain.MenuItem, res *Result) {
	categories := make(map[string]bool)
	for _, it := range items {
		if it.Category != "" {
			categories[strings.ToLower(it.Category)] = true
		}
	}

	switch {
	case len(categories) == 0:
		res.Warnings = append(res.Warnings, "No menu categories detected")
	case len(categories) >= 2:
		res.Score += 2
		if v.matchesSection(categories) {
			res.Score++
		}
	default:
		res.Score++
	}
}

// matchesSection checks category names against the known section vocabulary;
// substring containment runs both ways so "main courses" matches "mains".
func (v *Validator) matchesSection(categories map[string]bool) bool {
	for cat := range categories {
		for _, section := range v.cfg.MenuSections {
			if strings.Contains(cat, section) || strings.Contains(section, cat) {
				return true
			}
		}
	}
	return false
}

func (v *Validator) scoreDescriptions(items []domain.MenuItem, res *Result) {
	if len(items) == 0 {
		return
	}
	described := 0
	for _, it := range items {
		if len(it.Description) > v.cfg.MinDescLen {
			described++
		}
	}
	if float64(described)/float64(len(items)) >= v.cfg.MinDescRatio {
		res.Score++
	}
}

func (v *Validator) hasCategories(items []domain.MenuItem) bool {
	for _, it := range items {
		if it.Category != "" {
			return true
		}
	}
	return false
}

func (v *Validator) hasPrices(items []domain.MenuItem) bool {
	for _, it := range items {
		if it.HasPrice() {
			return true
		}
	}
	return false
}
