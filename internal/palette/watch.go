package palette

import (
	"context"
	"errors"
	"os"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/yenyang/Recolor-sub000/internal/logger"
)

// EventKind tells what happened to a palette definition.
type EventKind int

const (
	// Edited means the definition changed and its instance must be re-snapshot.
	Edited EventKind = iota + 1
	// Removed means the definition is gone.
	Removed
)

// Event is a palette definition change applied on the controlling goroutine.
type Event struct {
	ID   ID
	Kind EventKind
}

// Watcher forwards file changes in a DirSource directory.
//
// The fsnotify goroutine only queues paths; Drain applies them to the source
// so definition writes never race with batch jobs.
type Watcher struct {
	source *DirSource
	fs     *fsnotify.Watcher
	paths  chan string
}

// NewWatcher starts watching the source directory until ctx is done.
func NewWatcher(ctx context.Context, source *DirSource) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(source.Dir()); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		source: source,
		fs:     fw,
		paths:  make(chan string, 64),
	}
	go w.loop(ctx)

	return w, nil
}

// loop forwards relevant fsnotify events until ctx is done.
func (w *Watcher) loop(ctx context.Context) {
	log := logger.FromContext(ctx)
	defer func() {
		_ = w.fs.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !IsDefinitionFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}

			select {
			case w.paths <- ev.Name:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("palette watch", zap.String("dir", w.source.Dir()), zap.Error(err))
		}
	}
}

// Drain applies queued file changes to the source without blocking and
// returns the resulting events in arrival order.
func (w *Watcher) Drain(ctx context.Context) []Event {
	log := logger.FromContext(ctx)

	var out []Event
	for {
		select {
		case path := <-w.paths:
			id, err := w.source.Reload(path)
			switch {
			case err == nil:
				out = append(out, Event{ID: id, Kind: Edited})
			case errors.Is(err, os.ErrNotExist):
				if id != "" {
					out = append(out, Event{ID: id, Kind: Removed})
				}
			default:
				log.Warn("palette reload", zap.String("path", path), zap.Error(err))
			}

		default:
			return out
		}
	}
}
