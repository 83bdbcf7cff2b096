package services

import (
	"sort"
	"strings"
)

// DefaultOptionLimit caps how many supplier options a tender line keeps.
const DefaultOptionLimit = 6

// Scores assigned by the non-fuzzy strategies. Exact code hits are
// effectively always trusted; the token fallback ranks behind any
// reasonable fuzzy hit.
const (
	codeMatchScore     = 0.0
	tokenFallbackScore = 0.5
)

// SupplierOption is a candidate supplier offer for a tender line.
// SourceID points back at the supplier catalog row it came from; Score
// is match confidence, lower is better.
type SupplierOption struct {
	SourceID     string  `json:"sourceId"`
	SupplierName string  `json:"supplierName"`
	SKU          string  `json:"sku,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Price        float64 `json:"price"`
	Score        float64 `json:"score"`
}

// FindOptionsFor matches a free-text tender line description against the
// catalog. Three strategies run in priority order: exact article-code
// extraction, fuzzy text search, and (only when both come up empty) a
// token-containment fallback. Results are deduplicated by source
// identity with the first occurrence winning, then always sorted
// ascending by price so the cheapest offer leads regardless of which
// strategy found it.
func FindOptionsFor(idx *MatchIndex, description string, limit int) []SupplierOption {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultOptionLimit
	}

	var merged []SupplierOption
	seen := make(map[string]struct{})
	add := func(opt SupplierOption) {
		if _, ok := seen[opt.SourceID]; ok {
			return
		}
		seen[opt.SourceID] = struct{}{}
		merged = append(merged, opt)
	}

	for _, entry := range matchByCode(idx, description) {
		add(optionFromEntry(entry, codeMatchScore))
	}

	for _, hit := range idx.Search(description, limit) {
		add(optionFromEntry(hit.Entry, hit.Score))
	}

	if len(merged) == 0 {
		for _, entry := range matchByTokens(idx, description) {
			add(optionFromEntry(entry, tokenFallbackScore))
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Price < merged[b].Price
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// matchByCode returns catalog entries whose SKU contains one of the 4+
// digit runs found in the description.
func matchByCode(idx *MatchIndex, description string) []CatalogEntry {
	codes := ExtractCodes(description)
	if len(codes) == 0 {
		return nil
	}
	var out []CatalogEntry
	for _, entry := range idx.Entries() {
		if entry.SKU == "" {
			continue
		}
		for _, code := range codes {
			if strings.Contains(entry.SKU, code) {
				out = append(out, entry)
				break
			}
		}
	}
	return out
}

// matchByTokens is the last-resort strategy: take the first 3 tokens of
// the canonicalized description and return entries whose canonicalized
// name contains all of them.
func matchByTokens(idx *MatchIndex, description string) []CatalogEntry {
	tokens := strings.Fields(Canon(description))
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}

	var out []CatalogEntry
	for i, entry := range idx.Entries() {
		name := idx.canonNames[i]
		all := true
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				all = false
				break
			}
		}
		if all {
			out = append(out, entry)
		}
	}
	return out
}

func optionFromEntry(entry CatalogEntry, score float64) SupplierOption {
	return SupplierOption{
		SourceID:     entry.SourceID,
		SupplierName: entry.SupplierName,
		SKU:          entry.SKU,
		Unit:         entry.Unit,
		Price:        entry.Price,
		Score:        score,
	}
}

// ResolveChosenSource decides a line's selected supplier after
// (re-)matching: a prior choice still present among the new options is
// preserved, otherwise the cheapest option wins, otherwise unset.
func ResolveChosenSource(options []SupplierOption, prior string) string {
	if prior != "" {
		for _, opt := range options {
			if opt.SourceID == prior {
				return prior
			}
		}
	}
	if len(options) > 0 {
		return options[0].SourceID
	}
	return ""
}
