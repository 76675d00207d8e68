package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitForCallback blocks until the watcher fires or the timeout passes.
// Timeouts are generous; CI filesystems deliver events slowly.
func waitForCallback(t *testing.T, fired <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for watcher callback")
	}
}

func newTestWatcher(t *testing.T, debounce time.Duration) (*Watcher, string, chan struct{}) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w, err := NewWatcher(path, debounce)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	t.Cleanup(func() { w.Stop() })

	fired := make(chan struct{}, 16)
	if err := w.Watch(func() { fired <- struct{}{} }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	return w, path, fired
}

func TestWatcherFiresOnCorpusWrite(t *testing.T) {
	_, path, fired := newTestWatcher(t, 20*time.Millisecond)

	if err := os.WriteFile(path, []byte(`["Walmart"]`), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	waitForCallback(t, fired, 3*time.Second)
}

func TestWatcherFiresOnAtomicReplace(t *testing.T) {
	_, path, fired := newTestWatcher(t, 20*time.Millisecond)

	// temp file plus rename, the way the store persists
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(`["Costco"]`), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	waitForCallback(t, fired, 3*time.Second)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	_, path, fired := newTestWatcher(t, 20*time.Millisecond)

	sibling := filepath.Join(filepath.Dir(path), "other.json")
	if err := os.WriteFile(sibling, []byte("{}"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-fired:
		t.Fatal("callback fired for a sibling file")
	case <-time.After(300 * time.Millisecond):
	}

	// the watcher itself must still be alive
	if err := os.WriteFile(path, []byte(`["Target"]`), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	waitForCallback(t, fired, 3*time.Second)
}

func TestWatcherCoalescesBursts(t *testing.T) {
	_, path, fired := newTestWatcher(t, 100*time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`["Walmart"]`), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	waitForCallback(t, fired, 3*time.Second)

	// drain stragglers; a burst must not fan out to one callback per write
	callbacks := 1
	deadline := time.After(500 * time.Millisecond)
	for {
		select {
		case <-fired:
			callbacks++
		case <-deadline:
			if callbacks >= 5 {
				t.Errorf("expected coalesced callbacks, got %d for 5 writes", callbacks)
			}
			return
		}
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, path, fired := newTestWatcher(t, 20*time.Millisecond)

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`["Walmart"]`), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	select {
	case <-fired:
		t.Fatal("callback fired after Stop")
	case <-time.After(300 * time.Millisecond):
	}
}
