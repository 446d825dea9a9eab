package palette

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitEvents drains w until want events arrived or the deadline passed.
func waitEvents(t *testing.T, ctx context.Context, w *Watcher, want int) []Event {
	t.Helper()

	var got []Event
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		got = append(got, w.Drain(ctx)...)
		if len(got) >= want {
			return got
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("timed out: got %d events want %d: %+v", len(got), want, got)
	return nil
}

func TestWatcherEditAndRemove(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	src := NewDirSource(dir)
	if err := src.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	w, err := NewWatcher(ctx, src)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	raw, err := EncodeDefinition(redBlue("Neon"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// rename in so the watcher never sees a half written file
	tmp := filepath.Join(t.TempDir(), "neon.yaml")
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	path := filepath.Join(dir, "neon.yaml")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := waitEvents(t, ctx, w, 1)
	if got[0].ID != "Neon" || got[0].Kind != Edited {
		t.Fatalf("first event=%+v", got[0])
	}
	if _, ok := src.Definition("Neon"); !ok {
		t.Fatalf("definition not reloaded")
	}

	time.Sleep(100 * time.Millisecond)
	w.Drain(ctx)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got = waitEvents(t, ctx, w, 1)
	last := got[len(got)-1]
	if last.ID != "Neon" || last.Kind != Removed {
		t.Fatalf("last event=%+v", last)
	}
	if _, ok := src.Definition("Neon"); ok {
		t.Fatalf("removed definition still present")
	}
}
