// Package corpus owns the on-disk name corpus: a JSON array of previously
// used bill names, read once at startup and grown as new names are committed.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sap-has/bill/internal/utils"
	"github.com/charmbracelet/log"
)

// DefaultFileName is the name the expense tracker has always stored its
// corpus under; resolvers look for it when no explicit path is configured.
const DefaultFileName = "unique_names.json"

// Store holds the corpus file contents in memory and persists changes.
// It is not safe for concurrent use; the owner serializes access.
type Store struct {
	path  string
	names []string
}

// Load reads the corpus file at path and returns its names in file order.
// A missing file is an empty corpus, not an error.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return names, nil
}

// Open loads the corpus at path. When the file is missing an empty corpus
// is created on disk so the next session finds one.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	if !utils.FileExists(path) {
		if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
		if err := s.Save(); err != nil {
			return nil, err
		}
		log.Debugf("Created empty corpus at %s", path)
		return s, nil
	}

	names, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.names = names
	return s, nil
}

// Path returns the corpus file location.
func (s *Store) Path() string {
	return s.path
}

// Names returns the stored names in file order.
// The slice is shared; callers must not mutate it.
func (s *Store) Names() []string {
	return s.names
}

// Len reports the number of stored names, duplicates included.
func (s *Store) Len() int {
	return len(s.names)
}

// Distinct reports the number of distinct exact spellings.
func (s *Store) Distinct() int {
	seen := make(map[string]struct{}, len(s.names))
	for _, name := range s.names {
		seen[name] = struct{}{}
	}
	return len(seen)
}

// Add appends name and persists the file. The caller decides what counts as
// new; the store records duplicates like any other entry.
func (s *Store) Add(name string) error {
	s.names = append(s.names, name)
	return s.Save()
}

// Replace swaps the whole name list and persists it. Used by bulk
// importers that assemble the list themselves.
func (s *Store) Replace(names []string) error {
	s.names = names
	return s.Save()
}

// Reload rereads the corpus file, replacing the in-memory names with
// whatever is on disk now. Used when the file changed under us.
func (s *Store) Reload() error {
	names, err := Load(s.path)
	if err != nil {
		return err
	}
	s.names = names
	return nil
}

// Save writes the whole array back atomically, so a reader mid-write never
// sees a truncated corpus.
func (s *Store) Save() error {
	names := s.names
	if names == nil {
		names = []string{}
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return err
	}
	return utils.AtomicWriteFile(s.path, append(data, '\n'))
}
