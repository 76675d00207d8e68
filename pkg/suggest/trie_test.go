package suggest

import (
	"fmt"
	"reflect"
	"testing"
)

// Checks the behaviors the host leans on: case-insensitive matching with
// case-preserved output, prefix matches before substring matches, stable
// dedup, the limit cut, and deterministic ordering for a fixed insert
// history.

func buildIndex(names ...string) *NameIndex {
	ix := NewNameIndex()
	for _, name := range names {
		ix.Insert(name)
	}
	return ix
}

// every inserted name must come back when queried by itself
func TestRoundTripIdentity(t *testing.T) {
	names := []string{"Walmart", "Home Depot", "Costco", "Shell (Gas)", "Target"}
	ix := buildIndex(names...)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			got := ix.Suggestions(name, len(names))
			found := false
			for _, s := range got {
				if s == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Suggestions(%q) = %v, missing the inserted name", name, got)
			}
		})
	}
}

func TestCaseInsensitiveMatchCasePreservedOutput(t *testing.T) {
	ix := buildIndex("Walmart")

	testCases := []struct {
		prefix      string
		description string
	}{
		{"wal", "lowercase prefix"},
		{"WAL", "uppercase prefix"},
		{"WaL", "mixed case prefix"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := ix.Suggestions(tc.prefix, 7)
			want := []string{"Walmart"}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Suggestions(%q) = %v, want %v", tc.prefix, got, want)
			}
		})
	}
}

// a dead-end prefix walk must not fail; substring matches can still land
func TestPrefixMissShortCircuit(t *testing.T) {
	ix := buildIndex("Walmart", "Costco")

	got := ix.Suggestions("zzz", 7)
	if len(got) != 0 {
		t.Errorf("Suggestions(\"zzz\") = %v, want none", got)
	}

	if res := ix.PrefixSearch("zzz"); len(res) != 0 {
		t.Errorf("PrefixSearch(\"zzz\") = %v, want none", res)
	}
}

func TestSubstringMatchWithoutPrefixMatch(t *testing.T) {
	ix := buildIndex("Home Depot")

	got := ix.Suggestions("depot", 7)
	want := []string{"Home Depot"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(\"depot\") = %v, want %v", got, want)
	}
}

// same casing inserted twice collapses to one suggestion
func TestExactDuplicateDedup(t *testing.T) {
	ix := buildIndex("Costco", "Costco")

	got := ix.Suggestions("cost", 7)
	want := []string{"Costco"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(\"cost\") = %v, want %v", got, want)
	}
	if ix.Size() != 2 {
		t.Errorf("Size() = %d, want 2 (flat list keeps duplicates)", ix.Size())
	}
}

func TestTruncation(t *testing.T) {
	ix := NewNameIndex()
	for i := 1; i <= 20; i++ {
		ix.Insert(fmt.Sprintf("Acme %02d", i))
	}

	got := ix.Suggestions("a", 7)
	if len(got) != 7 {
		t.Fatalf("Suggestions(\"a\", 7) returned %d results, want exactly 7", len(got))
	}
	want := []string{"Acme 01", "Acme 02", "Acme 03", "Acme 04", "Acme 05", "Acme 06", "Acme 07"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(\"a\", 7) = %v, want first seven prefix matches %v", got, want)
	}
}

// prefix matches keep their slot ahead of substring-only matches
func TestPrefixMatchesBeforeSubstringMatches(t *testing.T) {
	ix := buildIndex("Home Depot", "Depot Center")

	got := ix.Suggestions("depot", 7)
	want := []string{"Depot Center", "Home Depot"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(\"depot\") = %v, want %v", got, want)
	}
}

func TestEmptyPrefix(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		ix := NewNameIndex()
		if got := ix.Suggestions("", 7); len(got) != 0 {
			t.Errorf("Suggestions(\"\") on empty corpus = %v, want none", got)
		}
	})

	t.Run("populated corpus", func(t *testing.T) {
		ix := buildIndex("Walmart", "Home Depot", "Costco", "Walgreens", "Shell (Gas)", "Target")
		got := ix.Suggestions("", 7)
		// zero-length walk reaches everything, in traversal order
		want := []string{"Walmart", "Walgreens", "Home Depot", "Costco", "Shell (Gas)", "Target"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Suggestions(\"\") = %v, want %v", got, want)
		}
	})

	t.Run("populated corpus small limit", func(t *testing.T) {
		ix := buildIndex("Walmart", "Home Depot", "Costco", "Walgreens", "Shell (Gas)", "Target")
		got := ix.Suggestions("", 3)
		want := []string{"Walmart", "Walgreens", "Home Depot"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Suggestions(\"\", 3) = %v, want %v", got, want)
		}
	})
}

// children are visited in first-creation order, a terminal before its subtree
func TestTraversalOrder(t *testing.T) {
	ix := buildIndex("Car", "Card", "Carpet", "Ca")

	got := ix.PrefixSearch("ca")
	want := []string{"Ca", "Car", "Card", "Carpet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PrefixSearch(\"ca\") = %v, want %v", got, want)
	}
}

func TestOrderingStability(t *testing.T) {
	ix := buildIndex("Walmart", "Walgreens", "Waffle House", "Home Depot")

	first := ix.Suggestions("wa", 7)
	for i := 0; i < 10; i++ {
		again := ix.Suggestions("wa", 7)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("repeated query diverged: first %v, run %d gave %v", first, i, again)
		}
	}

	want := []string{"Walmart", "Walgreens", "Waffle House"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("Suggestions(\"wa\") = %v, want %v", first, want)
	}
}

// the latest casing wins the terminal; the flat list keeps both spellings
func TestCasingOverwriteAsymmetry(t *testing.T) {
	ix := buildIndex("Walmart", "WALMART")

	if got, want := ix.PrefixSearch("wal"), []string{"WALMART"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PrefixSearch(\"wal\") = %v, want %v (last insert owns the terminal)", got, want)
	}

	got := ix.Suggestions("wal", 7)
	want := []string{"WALMART", "Walmart"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(\"wal\") = %v, want both casings %v", got, want)
	}
}

// inserting "" marks the root terminal and joins empty-prefix queries
func TestEmptyStringInsert(t *testing.T) {
	ix := NewNameIndex()
	ix.Insert("")
	ix.Insert("Target")

	got := ix.Suggestions("", 7)
	want := []string{"", "Target"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(\"\") = %v, want %v", got, want)
	}
}

func TestDefaultLimit(t *testing.T) {
	ix := NewNameIndex()
	for i := 0; i < 12; i++ {
		ix.Insert(fmt.Sprintf("Bodega %d", i))
	}

	got := ix.Suggestions("b", 0)
	if len(got) != DefaultLimit {
		t.Errorf("Suggestions(\"b\", 0) returned %d results, want DefaultLimit %d", len(got), DefaultLimit)
	}
}

func TestSuggestionsMatchUncappedPipeline(t *testing.T) {
	// the early exit in the trie pass must not change observable output
	names := []string{
		"Aldi", "Albertsons", "Alamo Drafthouse", "Amazon", "AMC Theatres",
		"Applebees", "Arbys", "AutoZone", "Ace Hardware", "Advance Auto Parts",
	}
	ix := buildIndex(names...)

	for limit := 1; limit <= len(names)+1; limit++ {
		capped := ix.Suggestions("a", limit)

		full := ix.PrefixSearch("a")
		for _, name := range names {
			full = append(full, name)
		}
		seen := make(map[string]struct{})
		var want []string
		for _, name := range full {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			want = append(want, name)
			if len(want) == limit {
				break
			}
		}

		if !reflect.DeepEqual(capped, want) {
			t.Errorf("limit %d: Suggestions = %v, uncapped pipeline = %v", limit, capped, want)
		}
	}
}

func TestBuildIndex(t *testing.T) {
	names := []string{"Walmart", "Home Depot", "Costco"}

	ix := BuildIndex(names, 0)
	if ix.Size() != 3 {
		t.Errorf("expected 3 inserts, got %d", ix.Size())
	}
	if got := ix.Suggestions("", DefaultLimit); !reflect.DeepEqual(got, names) {
		t.Errorf("expected insertion order %v, got %v", names, got)
	}

	if _, ok := BuildIndex(names, 8).(*CachedSuggester); !ok {
		t.Error("expected a cached suggester for a positive cache size")
	}
}

func BenchmarkInsert(b *testing.B) {
	names := make([]string, 1000)
	for i := range names {
		names[i] = fmt.Sprintf("Vendor %d Market", i)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ix := NewNameIndex()
		for _, name := range names {
			ix.Insert(name)
		}
	}
}

func BenchmarkSuggestions(b *testing.B) {
	ix := NewNameIndex()
	for i := 0; i < 5000; i++ {
		ix.Insert(fmt.Sprintf("Vendor %d Market", i))
	}
	prefixes := []string{"v", "ve", "ven", "vendor 4", "market", "zzz", ""}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ix.Suggestions(prefixes[i%len(prefixes)], DefaultLimit)
	}
}
