// Package suggest is the core, providing the trie walks and the merged
// prefix-plus-substring retrieval behind live bill name completion.
package suggest

// DefaultLimit bounds a suggestion reply when the caller does not pick a limit.
const DefaultLimit = 7

// ISuggester defines the completion surface consumed by the server, the CLI
// and the demo UI.
type ISuggester interface {
	// Insert adds a name to the index; repeated inserts are recorded, not collapsed
	Insert(name string)

	// PrefixSearch returns stored originals whose normalized form starts with prefix
	PrefixSearch(prefix string) []string

	// Suggestions returns at most limit display-ready originals for a typed prefix
	Suggestions(prefix string, limit int) []string

	// Size reports the number of inserts seen so far, duplicates included
	Size() int
}
