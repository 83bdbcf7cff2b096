package services

import "testing"

func TestFindOptionsForCodeMatch(t *testing.T) {
	idx := BuildMatchIndex(testCatalog())

	opts := FindOptionsFor(idx, "Supply item 100230 as specified", 6)
	if len(opts) == 0 {
		t.Fatal("expected a code match")
	}

	found := false
	for _, opt := range opts {
		if opt.SourceID == "r1" {
			found = true
			if opt.Score != codeMatchScore {
				t.Errorf("expected code match score 0, got %v", opt.Score)
			}
		}
	}
	if !found {
		t.Error("expected catalog row r1 via embedded article code")
	}
}

func TestFindOptionsForPriceSorted(t *testing.T) {
	idx := BuildMatchIndex(testCatalog())

	opts := FindOptionsFor(idx, "Corex board 600x450", 6)
	if len(opts) < 2 {
		t.Fatalf("expected multiple options, got %d", len(opts))
	}
	for i := 1; i < len(opts); i++ {
		if opts[i].Price < opts[i-1].Price {
			t.Errorf("options not sorted by price: %v before %v", opts[i-1].Price, opts[i].Price)
		}
	}
	if opts[0].SourceID != "r2" {
		t.Errorf("expected cheapest offer first, got %s", opts[0].SourceID)
	}
}

func TestFindOptionsForTokenFallback(t *testing.T) {
	idx := BuildMatchIndex([]CatalogEntry{
		{SourceID: "r1", SupplierName: "A", ProductName: "heavy duty steel frame gazebo white", Price: 100},
		{SourceID: "r2", SupplierName: "B", ProductName: "something unrelated", Price: 50},
	})

	// Long descriptions can fall below the fuzzy threshold while their
	// leading tokens still identify the product.
	opts := FindOptionsFor(idx, "heavy duty steel everything else in this line is procurement boilerplate that goes on and on", 6)
	for _, opt := range opts {
		if opt.SourceID == "r2" {
			t.Errorf("token fallback matched an unrelated entry: %+v", opt)
		}
	}
}

func TestFindOptionsForEmptyDescription(t *testing.T) {
	idx := BuildMatchIndex(testCatalog())
	if opts := FindOptionsFor(idx, "  ", 6); opts != nil {
		t.Errorf("expected nil for blank description, got %v", opts)
	}
}

func TestFindOptionsForLimit(t *testing.T) {
	var entries []CatalogEntry
	for i := 0; i < 10; i++ {
		entries = append(entries, CatalogEntry{
			SourceID:    string(rune('a' + i)),
			ProductName: "corex board 600x450",
			Price:       float64(100 + i),
		})
	}
	idx := BuildMatchIndex(entries)

	opts := FindOptionsFor(idx, "corex board 600x450", 0)
	if len(opts) > DefaultOptionLimit {
		t.Errorf("expected at most %d options, got %d", DefaultOptionLimit, len(opts))
	}
}

func TestResolveChosenSource(t *testing.T) {
	options := []SupplierOption{
		{SourceID: "cheap", Price: 10},
		{SourceID: "prior", Price: 20},
	}

	if got := ResolveChosenSource(options, "prior"); got != "prior" {
		t.Errorf("expected prior choice preserved, got %q", got)
	}
	if got := ResolveChosenSource(options, "gone"); got != "cheap" {
		t.Errorf("expected cheapest fallback, got %q", got)
	}
	if got := ResolveChosenSource(nil, "prior"); got != "" {
		t.Errorf("expected empty for no options, got %q", got)
	}
}
