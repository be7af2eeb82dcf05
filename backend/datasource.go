package backend

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/fsnotify/fsnotify"
)

// currentKey is the only key of the datasource's mutation pool. Starting a
// new load under it replaces the load in progress.
const currentKey = "current"

// Status is the state of the most recently requested dataset.
type Status struct {
	// ID identifies the load request that produced this status.
	ID string
	// Generation increases every time the request publishes a new status.
	Generation int
	Path       string
	Loading    bool
	Data       Dataset
	Err        error
}

// Datasource loads chart files off the UI goroutine, reloads them when they
// change on disk and publishes the result through a skel mutation pool.
type Datasource struct {
	pool *stream.MutationPool[string, Status]
}

func NewDatasource(mutator *stream.Mutator) *Datasource {
	return &Datasource{
		pool: stream.NewMutationPool[string, Status](mutator),
	}
}

// Status streams the status of the latest load request.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	return stream.Multiplex(d.pool.Stream(ctx), func(ctx context.Context, current *stream.Mutation[Status], mutations map[string]*stream.Mutation[Status]) (<-chan Status, *stream.Mutation[Status]) {
		m, ok := mutations[currentKey]
		if !ok || m == current {
			return nil, current
		}
		return m.Stream(ctx), m
	})
}

func generateLoadID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// LoadFromPath loads the chart file at path and reloads it whenever it
// changes, until another load replaces it.
func (d *Datasource) LoadFromPath(path string) {
	d.load(path, func() (io.ReadCloser, error) { return os.Open(path) }, true)
}

// LoadFromFile asks the user to choose a chart file and loads it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile("json")
	if err != nil {
		return fmt.Errorf("failed choosing chart file: %w", err)
	}
	if f, ok := file.(interface{ Name() string }); ok {
		// Reopen by name so later reloads read the same file.
		file.Close()
		d.LoadFromPath(f.Name())
		return nil
	}
	d.LoadFromStream("chart", file)
	return nil
}

// LoadFromStream loads a chart file from r once. r is closed when done.
func (d *Datasource) LoadFromStream(name string, r io.ReadCloser) {
	d.load(name, func() (io.ReadCloser, error) { return r, nil }, false)
}

func (d *Datasource) load(path string, open func() (io.ReadCloser, error), watch bool) {
	stream.Mutate(d.pool, currentKey, func(ctx context.Context) <-chan Status {
		out := make(chan Status, 1)
		go func() {
			defer close(out)
			status := Status{
				ID:      generateLoadID(),
				Path:    path,
				Loading: true,
			}
			emit := func() bool {
				status.Generation++
				select {
				case out <- status:
					return true
				case <-ctx.Done():
					return false
				}
			}
			if !emit() {
				return
			}
			var events <-chan fsnotify.Event
			var errs <-chan error
			if watch {
				// Watch before reading so that a write during the first
				// read is not missed.
				watcher, err := fsnotify.NewWatcher()
				if err != nil {
					log.Printf("failed creating file watcher: %v", err)
				} else {
					defer watcher.Close()
					if err := watcher.Add(path); err != nil {
						log.Printf("failed watching %q: %v", path, err)
					}
					events, errs = watcher.Events, watcher.Errors
				}
			}
			readInto(&status, open, false)
			if !emit() {
				return
			}
			// Stay alive until replaced so the result is not retired from
			// the pool.
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-events:
					if !ok {
						events = nil
						continue
					}
					if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
						continue
					}
					if filepath.Clean(ev.Name) != filepath.Clean(path) {
						continue
					}
					readInto(&status, open, true)
					if !emit() {
						return
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					log.Printf("file watcher: %v", err)
				}
			}
		}()
		return out
	})
}

// readInto reads the dataset into status. A reload that yields no usable
// chart keeps the previous data, e.g. because the file is still being
// written.
func readInto(status *Status, open func() (io.ReadCloser, error), reload bool) {
	status.Loading = false
	f, err := open()
	if err != nil {
		status.Err = fmt.Errorf("failed opening %q: %w", status.Path, err)
		if !reload {
			status.Data = Dataset{}
		}
		return
	}
	defer f.Close()
	start := time.Now()
	ds, err := ReadDataset(displayName(status.Path), f)
	if err != nil {
		log.Printf("loading %q: %v", status.Path, err)
	} else {
		log.Printf("loaded %d charts from %q in %v", len(ds.Charts), status.Path, time.Since(start))
	}
	status.Err = err
	if ds.Initialized() || !reload {
		status.Data = ds
	}
}

func displayName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
