package learning

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"menulens/internal/domain"
)

// PatternType identifies which item field a correction pattern rewrites.
type PatternType string

const (
	PatternPrice       PatternType = "price"
	PatternName        PatternType = "name"
	PatternDescription PatternType = "description"
)

// CorrectionPattern is a learned (wrong-text, right-text) rewrite rule,
// uniquely keyed by (Type, Original, Corrected).
type CorrectionPattern struct {
	Type       PatternType `json:"type"`
	Original   string      `json:"original"`
	Corrected  string      `json:"corrected"`
	Frequency  int         `json:"frequency"`
	Confidence float64     `json:"confidence"`
}

// Config holds the learning thresholds.
type Config struct {
	// InitialConfidence per field type of a newly observed pattern.
	InitialConfidence map[PatternType]float64
	// ConfidenceStep is added per repeated observation, up to MaxConfidence.
	ConfidenceStep float64
	MaxConfidence  float64
	// PruneBelow drops patterns whose confidence never rose above it.
	PruneBelow float64
	// MinSharedItems is how many corrected items must carry an identical
	// description before it counts as a shared-description pattern.
	MinSharedItems int
}

// DefaultConfig returns the production learning configuration.
func DefaultConfig() Config {
	return Config{
		InitialConfidence: map[PatternType]float64{
			PatternPrice:       0.8,
			PatternName:        0.7,
			PatternDescription: 0.6,
		},
		ConfidenceStep: 0.05,
		MaxConfidence:  0.95,
		PruneBelow:     0.5,
		MinSharedItems: 2,
	}
}

// Store accumulates correction patterns from user feedback and applies them
// to future parses. It is read-mostly: Initialize builds a fresh snapshot and
// publishes it atomically, so concurrent Apply calls never observe a
// partially built pattern set. Before the first Initialize, Apply is a no-op.
type Store struct {
	cfg Config

	mu          sync.RWMutex
	initialized bool
	patterns    []CorrectionPattern
	// lookup resolves (type, original) to the best-ranked corrected value.
	lookup map[PatternType]map[string]string
	// sharedDescriptions maps a description to the corrected-item ids
	// observed carrying it.
	sharedDescriptions map[string][]string
}

// NewStore creates an empty, uninitialized Store.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

type patternKey struct {
	typ       PatternType
	original  string
	corrected string
}

// Initialize rebuilds the pattern set from a feedback corpus. Safe to call
// again later; readers switch to the new snapshot in one step.
func (s *Store) Initialize(records []domain.FeedbackRecord) {
	byKey := make(map[patternKey]*CorrectionPattern)
	var keyOrder []patternKey
	descOwners := make(map[string][]string)

	for _, rec := range records {
		if len(rec.OriginalItems) == 0 || len(rec.CorrectedItems) == 0 {
			continue
		}
		originals := make(map[string]domain.CorrectedItem, len(rec.OriginalItems))
		for _, orig := range rec.OriginalItems {
			if orig.ID != "" {
				originals[orig.ID] = orig
			}
		}
		for _, corr := range rec.CorrectedItems {
			orig, ok := originals[corr.ID]
			if !ok {
				continue
			}
			s.observe(byKey, &keyOrder, PatternPrice, orig.Price, corr.Price)
			s.observe(byKey, &keyOrder, PatternName, orig.Name, corr.Name)
			s.observe(byKey, &keyOrder, PatternDescription, orig.Description, corr.Description)

			if corr.Description != "" {
				descOwners[corr.Description] = append(descOwners[corr.Description], corr.ID)
			}
		}
	}

	patterns := make([]CorrectionPattern, 0, len(keyOrder))
	for _, k := range keyOrder {
		p := byKey[k]
		if p.Confidence <= s.cfg.PruneBelow {
			continue
		}
		patterns = append(patterns, *p)
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Frequency != patterns[j].Frequency {
			return patterns[i].Frequency > patterns[j].Frequency
		}
		return patterns[i].Confidence > patterns[j].Confidence
	})

	lookup := make(map[PatternType]map[string]string)
	for _, p := range patterns {
		if lookup[p.Type] == nil {
			lookup[p.Type] = make(map[string]string)
		}
		// Patterns are sorted best-first; keep the first mapping.
		if _, exists := lookup[p.Type][p.Original]; !exists {
			lookup[p.Type][p.Original] = p.Corrected
		}
	}

	shared := make(map[string][]string)
	for desc, ids := range descOwners {
		if len(ids) >= s.cfg.MinSharedItems {
			shared[desc] = ids
		}
	}

	s.mu.Lock()
	s.patterns = patterns
	s.lookup = lookup
	s.sharedDescriptions = shared
	s.initialized = true
	s.mu.Unlock()

	log.Printf("learning.Store: initialized with %d patterns, %d shared descriptions from %d records",
		len(patterns), len(shared), len(records))
}

// InitializeFromJSON unmarshals raw feedback records, skipping any it cannot
// parse, and initializes from the rest. One bad record never aborts the load.
func (s *Store) InitializeFromJSON(raws [][]byte) {
	records := make([]domain.FeedbackRecord, 0, len(raws))
	for i, raw := range raws {
		var rec domain.FeedbackRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Printf("learning.Store: skipping malformed feedback record %d: %v", i, err)
			continue
		}
		records = append(records, rec)
	}
	s.Initialize(records)
}

func (s *Store) observe(byKey map[patternKey]*CorrectionPattern, keyOrder *[]patternKey, typ PatternType, original, corrected string) {
	if original == corrected || original == "" || corrected == "" {
		return
	}
	k := patternKey{typ, original, corrected}
	if p, ok := byKey[k]; ok {
		p.Frequency++
		p.Confidence = capConfidence(p.Confidence+s.cfg.ConfidenceStep, s.cfg.MaxConfidence)
		return
	}
	byKey[k] = &CorrectionPattern{
		Type:       typ,
		Original:   original,
		Corrected:  corrected,
		Frequency:  1,
		Confidence: s.cfg.InitialConfidence[typ],
	}
	*keyOrder = append(*keyOrder, k)
}

func capConfidence(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

// Apply rewrites item fields that exactly match a learned pattern's original
// text, then propagates known shared descriptions within each category.
// Returns the input unchanged if the store was never initialized.
func (s *Store) Apply(result domain.MenuOCRResult) domain.MenuOCRResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return result
	}

	items := make([]domain.MenuItem, len(result.MenuItems))
	copy(items, result.MenuItems)

	for i := range items {
		if c, ok := s.lookup[PatternPrice][items[i].Price]; ok && items[i].Price != "" {
			items[i].Price = c
		}
		if c, ok := s.lookup[PatternName][items[i].Name]; ok && items[i].Name != "" {
			items[i].Name = c
		}
		if c, ok := s.lookup[PatternDescription][items[i].Description]; ok && items[i].Description != "" {
			items[i].Description = c
		}
	}

	s.propagateShared(items)

	result.MenuItems = items
	return result
}

// propagateShared copies a description known to be shared onto sibling items
// of the same category that lack one.
func (s *Store) propagateShared(items []domain.MenuItem) {
	byCategory := make(map[string][]int)
	for i := range items {
		if items[i].IsCategoryMarker() {
			continue
		}
		byCategory[items[i].Category] = append(byCategory[items[i].Category], i)
	}

	for _, idxs := range byCategory {
		shared := ""
		for _, i := range idxs {
			d := items[i].Description
			if d == "" {
				continue
			}
			if _, ok := s.sharedDescriptions[d]; ok {
				shared = d
				break
			}
		}
		if shared == "" {
			continue
		}
		for _, i := range idxs {
			if !items[i].HasDescription() {
				items[i].Description = shared
			}
		}
	}
}

// Patterns returns a copy of the current pattern list, best-ranked first.
func (s *Store) Patterns() []CorrectionPattern {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CorrectionPattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Initialized reports whether a feedback corpus has been loaded.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}
