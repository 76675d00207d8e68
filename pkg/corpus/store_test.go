package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOpenMissingFileCreatesEmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty corpus, got %d names", s.Len())
	}

	// the file must exist afterwards so the next session finds it
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("corpus file was not created: %v", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		t.Fatalf("created file is not a JSON array: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty array on disk, got %v", names)
	}
}

func TestOpenLoadsNamesInFileOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	stored := []string{"Walmart", "Home Depot", "Walmart", "Shell (Gas)"}
	writeCorpus(t, path, stored)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !reflect.DeepEqual(s.Names(), stored) {
		t.Errorf("expected %v, got %v", stored, s.Names())
	}
	if s.Len() != 4 {
		t.Errorf("expected Len 4, got %d", s.Len())
	}
	if s.Distinct() != 3 {
		t.Errorf("expected 3 distinct names, got %d", s.Distinct())
	}
}

func TestAddPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Add("Costco"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Add("Target"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	want := []string{"Costco", "Target"}
	if !reflect.DeepEqual(reopened.Names(), want) {
		t.Errorf("expected %v after reopen, got %v", want, reopened.Names())
	}
}

func TestAddKeepsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Add("Costco"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if s.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", s.Len())
	}
	if s.Distinct() != 1 {
		t.Errorf("expected 1 distinct name, got %d", s.Distinct())
	}
}

func TestReplaceOverwritesCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Add("Walmart"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	want := []string{"Costco", "Target", "Costco"}
	if err := s.Replace(want); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if !reflect.DeepEqual(s.Names(), want) {
		t.Errorf("expected %v after replace, got %v", want, s.Names())
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reflect.DeepEqual(reopened.Names(), want) {
		t.Errorf("expected %v on disk, got %v", want, reopened.Names())
	}
}

func TestReloadPicksUpOutsideEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Add("Walmart"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// another writer replaces the file behind our back
	writeCorpus(t, path, []string{"Costco", "Target"})

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	want := []string{"Costco", "Target"}
	if !reflect.DeepEqual(s.Names(), want) {
		t.Errorf("expected %v after reload, got %v", want, s.Names())
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	names, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte("{not an array"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed corpus")
	}
}

func TestSaveEmptyStoreWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	s := &Store{path: path}

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	// never "null": hosts parse the corpus as an array unconditionally
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		t.Fatalf("saved corpus is not a JSON array: %v", err)
	}
	if names == nil {
		t.Errorf("expected [] on disk, got %q", string(data))
	}
}

func writeCorpus(t *testing.T, path string, names []string) {
	t.Helper()
	data, err := json.Marshal(names)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}
