package correction

import (
	"regexp"
	"strconv"
	"strings"

	"menulens/internal/domain"
)

var (
	bareDigitsRe = regexp.MustCompile(`^\$?\d{3,}$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	currencyRe   = regexp.MustCompile(`[$€£¥]`)
	numberRe     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Config holds the tunables for shared-description distribution.
type Config struct {
	// SharedPhrases mark a description as applying to a whole group
	// ("all served with", "choice of", ...). Matched lowercase.
	SharedPhrases []string
	// MinSharedLen is the minimum description length considered shareable.
	MinSharedLen int
	// MinCommas is the comma count above which a description reads as a
	// list of accompaniments rather than a single dish note.
	MinCommas int
	// MinUniformGroup is the group size at which a single shared price
	// makes the first description shareable on its own.
	MinUniformGroup int
	// MinPriceGroup is the minimum size of a same-price cluster for the
	// price-level distribution pass.
	MinPriceGroup int
	// DefaultCategory buckets items that carry no category.
	DefaultCategory string
}

// DefaultConfig returns the production correction configuration.
func DefaultConfig() Config {
	return Config{
		SharedPhrases: []string{
			"all served with", "all come with", "all include",
			"served with", "comes with", "choice of",
			"all dishes", "all items", "all options",
		},
		MinSharedLen:    15,
		MinCommas:       2,
		MinUniformGroup: 3,
		MinPriceGroup:   2,
		DefaultCategory: "Uncategorized",
	}
}

// Engine applies deterministic fixes to parsed menu items: price
// normalization and shared-description distribution.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine from a config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Correct runs both passes and returns a new item slice. Input is never
// mutated.
func (e *Engine) Correct(items []domain.MenuItem) []domain.MenuItem {
	out := make([]domain.MenuItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].HasPrice() {
			out[i].Price = e.CorrectPrice(out[i].Price)
		}
	}
	return e.distributeDescriptions(out)
}

// CorrectPrice normalizes a single price string. The rules run in a fixed
// order and later rules may re-correct the output of earlier ones; the whole
// chain is idempotent.
func (e *Engine) CorrectPrice(price string) string {
	p := strings.TrimSpace(price)
	if p == "" {
		return price
	}

	// "1299" and "$1299" are prices that lost their decimal point.
	if bareDigitsRe.MatchString(p) {
		hadSymbol := strings.HasPrefix(p, "$")
		digits := nonDigitRe.ReplaceAllString(p, "")
		p = digits[:len(digits)-2] + "." + digits[len(digits)-2:]
		if hadSymbol {
			p = "$" + p
		}
	}

	// European decimal comma.
	if strings.Contains(p, ",") && !strings.Contains(p, ".") {
		p = strings.ReplaceAll(p, ",", ".")
	}

	if !currencyRe.MatchString(p) {
		p = "$" + p
	}

	// Catch remaining dropped decimals: a menu price between 100 and
	// 10000 after the fixes above is still off by a factor of 100.
	if m := numberRe.FindString(p); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil && v > 100 && v < 10000 {
			p = strings.Replace(p, m, strconv.FormatFloat(v/100, 'f', 2, 64), 1)
		}
	}

	return p
}

// distributeDescriptions runs the category-level pass then the price-level
// pass over each category group. When both passes would fill the same item
// the price-level result wins since it runs last and may overwrite a
// description the category pass propagated (never one an item arrived with).
func (e *Engine) distributeDescriptions(items []domain.MenuItem) []domain.MenuItem {
	groups := make(map[string][]*domain.MenuItem)
	var order []string
	for i := range items {
		if items[i].IsCategoryMarker() {
			continue
		}
		cat := items[i].Category
		if cat == "" {
			cat = e.cfg.DefaultCategory
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], &items[i])
	}

	for _, cat := range order {
		group := groups[cat]
		propagated := e.shareByCategory(group)
		e.shareByPrice(group, propagated)
	}
	return items
}

// shareByCategory copies the first described item's description to the
// description-less items of the group when it passes the is-shared test.
// Returns the set of items it filled.
func (e *Engine) shareByCategory(group []*domain.MenuItem) map[*domain.MenuItem]bool {
	var described, bare []*domain.MenuItem
	for _, it := range group {
		if it.HasDescription() {
			described = append(described, it)
		} else {
			bare = append(bare, it)
		}
	}
	if len(described) == 0 || len(bare) == 0 {
		return nil
	}

	desc := described[0].Description
	if !e.isLikelyShared(desc, group) {
		return nil
	}

	filled := make(map[*domain.MenuItem]bool, len(bare))
	for _, it := range bare {
		it.Description = desc
		filled[it] = true
	}
	return filled
}

// isLikelyShared reports whether a description plausibly applies to a whole
// group rather than a single dish.
func (e *Engine) isLikelyShared(desc string, group []*domain.MenuItem) bool {
	if len(desc) < e.cfg.MinSharedLen {
		return false
	}
	if strings.Count(desc, ",") >= e.cfg.MinCommas {
		return true
	}
	lower := strings.ToLower(desc)
	for _, phrase := range e.cfg.SharedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	if len(group) >= e.cfg.MinUniformGroup {
		prices := make(map[string]bool)
		for _, it := range group {
			prices[it.Price] = true
		}
		if len(prices) == 1 {
			return true
		}
	}
	return false
}

// shareByPrice assigns the most frequent description within a same-price
// cluster to the cluster's undescribed items. Items the category pass filled
// count as undescribed here, so a price-cluster description overrides a
// category-wide one.
func (e *Engine) shareByPrice(group []*domain.MenuItem, propagated map[*domain.MenuItem]bool) {
	byPrice := make(map[string][]*domain.MenuItem)
	var order []string
	for _, it := range group {
		if !it.HasPrice() {
			continue
		}
		if _, ok := byPrice[it.Price]; !ok {
			order = append(order, it.Price)
		}
		byPrice[it.Price] = append(byPrice[it.Price], it)
	}

	for _, price := range order {
		cluster := byPrice[price]
		if len(cluster) < e.cfg.MinPriceGroup {
			continue
		}

		counts := make(map[string]int)
		var descOrder []string
		var bare []*domain.MenuItem
		for _, it := range cluster {
			if it.HasDescription() && !propagated[it] {
				if counts[it.Description] == 0 {
					descOrder = append(descOrder, it.Description)
				}
				counts[it.Description]++
			} else {
				bare = append(bare, it)
			}
		}
		if len(descOrder) == 0 || len(bare) == 0 {
			continue
		}

		// Most frequent wins, first-encountered breaks ties.
		best := descOrder[0]
		for _, d := range descOrder[1:] {
			if counts[d] > counts[best] {
				best = d
			}
		}
		for _, it := range bare {
			it.Description = best
		}
	}
}
