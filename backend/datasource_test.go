package backend

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~gioverse/skel/stream"
)

func newTestDatasource(ctx context.Context) *Datasource {
	return NewDatasource(stream.NewMutator(ctx, time.Second))
}

// awaitStatus reads statuses until one satisfies done or the deadline passes.
func awaitStatus(t *testing.T, statuses <-chan Status, done func(Status) bool) Status {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-statuses:
			if done(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status")
			return Status{}
		}
	}
}

func loaded(s Status) bool { return !s.Loading && (s.Data.Initialized() || s.Err != nil) }

func TestDatasourceLoadFromPath(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := newTestDatasource(ctx)
	path := filepath.Join(t.TempDir(), "overview.json")
	if err := os.WriteFile(path, []byte(singleChart), 0o644); err != nil {
		t.Fatal(err)
	}
	statuses := ds.Status(ctx)
	ds.LoadFromPath(path)
	s := awaitStatus(t, statuses, loaded)
	if s.Err != nil {
		t.Fatalf("unexpected error: %v", s.Err)
	}
	if s.Data.Name != "overview" || len(s.Data.Charts) != 1 {
		t.Errorf("unexpected dataset %q with %d charts", s.Data.Name, len(s.Data.Charts))
	}

	// Rewriting the file reloads it.
	two := "[" + singleChart + "," + singleChart + "]"
	if err := os.WriteFile(path, []byte(two), 0o644); err != nil {
		t.Fatal(err)
	}
	reloaded := awaitStatus(t, statuses, func(s Status) bool {
		return !s.Loading && len(s.Data.Charts) == 2
	})
	if reloaded.ID != s.ID || reloaded.Generation <= s.Generation {
		t.Errorf("expected a later status of the same load, got %s/%d after %s/%d",
			reloaded.ID, reloaded.Generation, s.ID, s.Generation)
	}
}

func TestDatasourceNewerLoadReplacesOlder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := newTestDatasource(ctx)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := os.WriteFile(first, []byte(singleChart), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("["+singleChart+","+singleChart+"]"), 0o644); err != nil {
		t.Fatal(err)
	}
	statuses := ds.Status(ctx)
	ds.LoadFromPath(first)
	old := awaitStatus(t, statuses, loaded)
	if old.Data.Name != "first" {
		t.Fatalf("expected first dataset, got %q", old.Data.Name)
	}
	ds.LoadFromPath(second)
	s := awaitStatus(t, statuses, func(s Status) bool { return loaded(s) && s.Path == second })
	if s.ID == old.ID || len(s.Data.Charts) != 2 {
		t.Errorf("expected the second load, got %+v", s)
	}

	// Writes to the replaced file are no longer reloaded.
	if err := os.WriteFile(first, []byte("["+singleChart+","+singleChart+","+singleChart+"]"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(200 * time.Millisecond)
	for {
		select {
		case s := <-statuses:
			if s.Path == first {
				t.Fatalf("unexpected status from a replaced load: %+v", s)
			}
		case <-deadline:
			return
		}
	}
}

func TestDatasourceMissingFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := newTestDatasource(ctx)
	statuses := ds.Status(ctx)
	ds.LoadFromPath(filepath.Join(t.TempDir(), "missing.json"))
	s := awaitStatus(t, statuses, loaded)
	if !errors.Is(s.Err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", s.Err)
	}
}

func TestDatasourceLoadFromStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := newTestDatasource(ctx)
	statuses := ds.Status(ctx)
	ds.LoadFromStream("stdin", io.NopCloser(strings.NewReader(singleChart)))
	s := awaitStatus(t, statuses, loaded)
	if s.Err != nil || s.Path != "stdin" || len(s.Data.Charts) != 1 {
		t.Errorf("unexpected status %+v", s)
	}
}
