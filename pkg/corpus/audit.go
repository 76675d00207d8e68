package corpus

import (
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Collision is one normalized spelling recorded under several exact casings.
type Collision struct {
	Normalized string
	// Casings holds the distinct exact spellings in first-seen order.
	Casings []string
}

// Collisions indexes names by their lowercase form and reports every
// normalized spelling that appears with two or more distinct casings.
// The result is sorted by normalized form so repeated audits of the same
// corpus print identically.
func Collisions(names []string) []Collision {
	trie := patricia.NewTrie()

	for _, name := range names {
		if name == "" {
			continue
		}
		key := patricia.Prefix(strings.ToLower(name))
		if item := trie.Get(key); item != nil {
			casings := item.([]string)
			if !containsExact(casings, name) {
				trie.Set(key, append(casings, name))
			}
			continue
		}
		trie.Set(key, []string{name})
	}

	var collisions []Collision
	trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		casings := item.([]string)
		if len(casings) > 1 {
			collisions = append(collisions, Collision{
				Normalized: string(prefix),
				Casings:    casings,
			})
		}
		return nil
	})

	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Normalized < collisions[j].Normalized
	})
	return collisions
}

func containsExact(casings []string, name string) bool {
	for _, c := range casings {
		if c == name {
			return true
		}
	}
	return false
}
