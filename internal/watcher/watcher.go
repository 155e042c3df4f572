package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const defaultDebounce = 300 * time.Millisecond

// ErrDirectoryRequired is returned when no watch directory is configured.
var ErrDirectoryRequired = errors.New("watcher: directory is required")

// ChangeEvent describes a single Markdown file change after debouncing.
type ChangeEvent struct {
	Op      string
	Path    string
	ModTime time.Time
}

// Handler receives a debounced batch of change events. Returning an error is
// logged but does not stop the watcher.
type Handler func(ctx context.Context, events []ChangeEvent) error

// Config controls which directory is watched and how changes are coalesced.
type Config struct {
	// Directory is the root of the Markdown corpus to watch.
	Directory string
	// Recursive watches subdirectories, including ones created later.
	Recursive bool
	// Debounce groups rapid consecutive changes into a single batch.
	Debounce time.Duration
}

// Option customises the watcher.
type Option func(*Watcher)

// WithLogger attaches a logger for watch loop diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher wires fsnotify to a debounced rebuild handler so edits to Markdown
// sources trigger a single sync-and-build cycle instead of one per write.
type Watcher struct {
	cfg     Config
	handler Handler
	logger  interfaces.Logger

	fsw       *fsnotify.Watcher
	debouncer *debouncer

	mu      sync.Mutex
	started bool
}

// New creates a watcher over cfg.Directory. Start must be called to begin
// receiving events.
func New(cfg Config, handler Handler, opts ...Option) (*Watcher, error) {
	if strings.TrimSpace(cfg.Directory) == "" {
		return nil, ErrDirectoryRequired
	}
	if handler == nil {
		return nil, errors.New("watcher: handler is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		cfg:       cfg,
		handler:   handler,
		logger:    logging.NoOp(),
		fsw:       fsw,
		debouncer: newDebouncer(cfg.Debounce),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start registers the watch paths and launches the event loops. It returns
// immediately; the loops run until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return errors.New("watcher: already started")
	}

	if err := w.addPaths(); err != nil {
		return err
	}

	go w.debouncer.run(ctx)
	go w.dispatchLoop(ctx)
	go w.watchLoop(ctx)

	w.started = true
	w.logger.Info("watcher started",
		"directory", w.cfg.Directory,
		"recursive", w.cfg.Recursive,
		"debounce", w.cfg.Debounce.String(),
	)
	return nil
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	w.debouncer.stop()
	return w.fsw.Close()
}

func (w *Watcher) addPaths() error {
	if !w.cfg.Recursive {
		return w.fsw.Add(w.cfg.Directory)
	}
	return filepath.WalkDir(w.cfg.Directory, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Watch directories created after startup so nested posts are covered.
	if w.cfg.Recursive && event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fsw.Add(event.Name); err != nil {
				w.logger.Warn("watcher add directory failed", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !isMarkdown(event.Name) {
		return
	}

	change := ChangeEvent{
		Op:   opString(event.Op),
		Path: event.Name,
	}
	if info, err := os.Stat(event.Name); err == nil {
		change.ModTime = info.ModTime()
	}
	w.debouncer.add(change)
}

func (w *Watcher) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events, ok := <-w.debouncer.output:
			if !ok {
				return
			}
			w.logger.Debug("watcher dispatching changes", "count", len(events))
			if err := w.handler(ctx, events); err != nil {
				w.logger.Error("watcher handler failed", "error", err)
			}
		}
	}
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

func opString(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "created"
	case op.Has(fsnotify.Write):
		return "modified"
	case op.Has(fsnotify.Remove):
		return "deleted"
	case op.Has(fsnotify.Rename):
		return "renamed"
	default:
		return "modified"
	}
}
