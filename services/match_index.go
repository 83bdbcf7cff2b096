package services

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Matching constants. The similarity threshold is deliberately moderate:
// too strict loses valid matches across supplier wording differences,
// too loose floods lines with noise.
// Jaro-Winkler alone over-scores long strings, so a candidate must
// also share a minimum fraction of trigrams with the query before its
// similarity is trusted.
const (
	matchSimilarityThreshold = 0.55
	minTrigramOverlap        = 0.3
	skuFieldWeight           = 0.6
)

// CatalogEntry is one supplier catalog row as seen by the matching
// index, with its persistent record id as source identity.
type CatalogEntry struct {
	SourceID     string
	SupplierName string
	SKU          string
	ProductName  string
	Unit         string
	Price        float64
}

// MatchIndex is an approximate string-matching index over the supplier
// catalog. A trigram inverted index narrows candidates, Jaro-Winkler
// similarity ranks them. The product name is the primary field; the SKU
// contributes at reduced weight. Indexes are cheap to build and are
// rebuilt whenever the catalog changes; a stale index must never
// outlive a catalog mutation.
type MatchIndex struct {
	entries    []CatalogEntry
	canonNames []string
	canonSKUs  []string
	triCounts  []int
	inv        map[string][]int
}

// IndexHit is a ranked candidate; lower score means closer match.
type IndexHit struct {
	Entry CatalogEntry
	Score float64
}

// BuildMatchIndex indexes the given catalog snapshot.
func BuildMatchIndex(entries []CatalogEntry) *MatchIndex {
	idx := &MatchIndex{
		entries:    entries,
		canonNames: make([]string, len(entries)),
		canonSKUs:  make([]string, len(entries)),
		triCounts:  make([]int, len(entries)),
		inv:        make(map[string][]int),
	}
	for i, e := range entries {
		idx.canonNames[i] = Canon(e.ProductName)
		idx.canonSKUs[i] = Canon(e.SKU)
		seen := make(map[string]struct{})
		for g := range trigramSet(idx.canonNames[i]) {
			seen[g] = struct{}{}
		}
		for g := range trigramSet(idx.canonSKUs[i]) {
			seen[g] = struct{}{}
		}
		idx.triCounts[i] = len(seen)
		for g := range seen {
			idx.inv[g] = append(idx.inv[g], i)
		}
	}
	return idx
}

// Entries returns the indexed catalog snapshot.
func (idx *MatchIndex) Entries() []CatalogEntry {
	return idx.entries
}

// Search returns up to limit candidates for a canonicalized query,
// best first. A candidate must share at least minTrigramOverlap of its
// trigrams (or of the query's, whichever set is smaller) before its
// similarity score is considered.
func (idx *MatchIndex) Search(query string, limit int) []IndexHit {
	query = Canon(query)
	if query == "" {
		return nil
	}

	queryTrigrams := trigramSet(query)
	shared := make(map[int]int)
	for g := range queryTrigrams {
		for _, i := range idx.inv[g] {
			shared[i]++
		}
	}

	var hits []IndexHit
	for i, overlap := range shared {
		smaller := len(queryTrigrams)
		if idx.triCounts[i] < smaller {
			smaller = idx.triCounts[i]
		}
		if smaller == 0 || float64(overlap)/float64(smaller) < minTrigramOverlap {
			continue
		}
		score := idx.score(query, i)
		if score > 1-matchSimilarityThreshold {
			continue
		}
		hits = append(hits, IndexHit{Entry: idx.entries[i], Score: score})
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score < hits[b].Score
		}
		return hits[a].Entry.SourceID < hits[b].Entry.SourceID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// score combines the name and SKU similarities into a single distance.
// Word reordering is tolerated by also scoring token-sorted forms.
func (idx *MatchIndex) score(query string, i int) float64 {
	sim := bestSimilarity(query, idx.canonNames[i])
	if sku := idx.canonSKUs[i]; sku != "" {
		if s := bestSimilarity(query, sku) * skuFieldWeight; s > sim {
			sim = s
		}
	}
	return 1 - sim
}

// bestSimilarity is Jaro-Winkler over both the raw strings and their
// token-sorted forms, whichever is higher.
func bestSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	sim := matchr.JaroWinkler(a, b, true)
	if ts := matchr.JaroWinkler(tokenSort(a), tokenSort(b), true); ts > sim {
		sim = ts
	}
	return sim
}

func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

// trigramSet returns the padded character trigrams of s. Short strings
// fall back to a single padded token so they still index.
func trigramSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	r := []rune(" " + s + " ")
	if len(r) < 3 {
		m[string(r)] = struct{}{}
		return m
	}
	for i := 0; i <= len(r)-3; i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}
