package suggest

import "strings"

// node is one trie position, keyed by normalized rune. order records each
// child key in first-creation sequence; traversal follows it so repeated
// queries over the same insertion history come out identical.
type node struct {
	children map[rune]*node
	order    []rune
	terminal bool
	name     string
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// NameIndex indexes previously used bill names for live completion.
// The trie answers case-insensitive prefix walks; names keeps every inserted
// original in order, duplicates included, for the substring scan.
// All methods are synchronous and lock-free: a caller sharing one index
// across goroutines must wrap it (the server layer does).
type NameIndex struct {
	root  *node
	names []string
}

// NewNameIndex returns an empty index. Callers own the instance outright;
// the package holds no shared state.
func NewNameIndex() *NameIndex {
	return &NameIndex{root: newNode()}
}

// Insert records name. The walk uses the lowercase form, one node per rune;
// the terminal stores the original casing and a later insert of the same
// normalized spelling overwrites it. The flat list always grows, so both
// casings of a renamed spelling stay visible to the substring scan.
// Inserting the empty string marks the root itself terminal.
func (ix *NameIndex) Insert(name string) {
	n := ix.root
	for _, r := range strings.ToLower(name) {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
			n.order = append(n.order, r)
		}
		n = child
	}
	n.terminal = true
	n.name = name
	ix.names = append(ix.names, name)
}

// walk descends along the lowercase form of prefix, returning the node
// reached or nil when some rune has no child.
func (ix *NameIndex) walk(prefix string) *node {
	n := ix.root
	for _, r := range strings.ToLower(prefix) {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// collect appends terminal originals under n in preorder: the node's own
// name first, then each child subtree in first-creation order. max <= 0
// means unbounded.
func (n *node) collect(out *[]string, max int) {
	if max > 0 && len(*out) >= max {
		return
	}
	if n.terminal {
		*out = append(*out, n.name)
	}
	for _, r := range n.order {
		if max > 0 && len(*out) >= max {
			return
		}
		n.children[r].collect(out, max)
	}
}

// PrefixSearch returns every stored original whose normalized form starts
// with prefix, in traversal order. A miss at any rune returns an empty
// result immediately; there is no fuzzy fallback. Matching is
// case-insensitive but the returned strings keep their original casing.
func (ix *NameIndex) PrefixSearch(prefix string) []string {
	n := ix.walk(prefix)
	if n == nil {
		return nil
	}
	var out []string
	n.collect(&out, 0)
	return out
}

// Suggestions answers one keystroke: prefix matches first, then substring
// matches from the flat list, deduplicated by exact string with the first
// occurrence winning, cut to limit. limit <= 0 falls back to DefaultLimit.
//
// Trie collection stops at limit early: a terminal's original normalizes to
// its own path, so no two terminals hold the same string and the first
// limit merged entries cannot change. The substring pass stays a plain
// linear scan over everything ever inserted.
func (ix *NameIndex) Suggestions(prefix string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var merged []string
	if n := ix.walk(prefix); n != nil {
		n.collect(&merged, limit)
	}

	needle := strings.ToLower(prefix)
	for _, name := range ix.names {
		if strings.Contains(strings.ToLower(name), needle) {
			merged = append(merged, name)
		}
	}

	seen := make(map[string]struct{}, len(merged))
	out := make([]string, 0, limit)
	for _, name := range merged {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Size reports how many inserts the index has seen, duplicates included.
func (ix *NameIndex) Size() int {
	return len(ix.names)
}

// BuildIndex constructs an index over names in order, wrapped by a query
// cache when cacheSize is positive. Rebuild-and-swap callers use this to
// turn a corpus snapshot into a fresh suggester.
func BuildIndex(names []string, cacheSize int) ISuggester {
	ix := NewNameIndex()
	for _, name := range names {
		ix.Insert(name)
	}
	if cacheSize > 0 {
		return NewCachedSuggester(ix, cacheSize)
	}
	return ix
}
