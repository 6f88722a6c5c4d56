// Package watcher debounces filesystem change notifications so watch mode
// can rescan once per burst of edits instead of once per write.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/debtscope/debtscope/pkg/source"
)

var watchLog = log.New(os.Stderr, "[debtscope:watcher] ", log.Ltime)

// DefaultDebounceDelay batches rapid editor saves into one rescan.
const DefaultDebounceDelay = 2 * time.Second

// skipDirs are directories never worth watching: VCS metadata, dependency
// trees, and build output.
var skipDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true,
	".debtscope":    true,
	"node_modules":  true,
	"dist":          true,
	"build":         true,
	"out":           true,
	"coverage":      true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"vendor":        true,
	"target":        true,
	".gradle":       true,
	".bundle":       true,
	"bin":           true,
	"obj":           true,
	"_build":        true,
	".idea":         true,
	".vscode":       true,
}

// Config configures a watcher.
type Config struct {
	Root          string
	DebounceDelay time.Duration

	// FileFilter, when set, drops events for paths it rejects. Defaults
	// to the supported-language check.
	FileFilter func(path string) bool
}

// ChangeHandler receives one debounced batch of changed files.
type ChangeHandler interface {
	OnChanges(files map[string]fsnotify.Op)
}

// ChangeHandlerFunc adapts a function to ChangeHandler.
type ChangeHandlerFunc func(files map[string]fsnotify.Op)

func (f ChangeHandlerFunc) OnChanges(files map[string]fsnotify.Op) { f(files) }

// Watcher watches a directory tree and delivers debounced change batches.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	config   Config
	handlers []ChangeHandler
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu           sync.Mutex
	pending      map[string]fsnotify.Op
	debounceOnce sync.Once
	dirsWatched  int
}

// New creates a watcher for the given root.
func New(config Config, handlers ...ChangeHandler) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = DefaultDebounceDelay
	}
	if config.FileFilter == nil {
		config.FileFilter = source.Supported
	}
	return &Watcher{
		fsnotify: fsWatcher,
		config:   config,
		handlers: handlers,
		stop:     make(chan struct{}),
		pending:  make(map[string]fsnotify.Op),
	}, nil
}

// Start registers every non-skipped directory under the root and begins
// processing events.
func (w *Watcher) Start() error {
	root := w.config.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = cwd
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			name := info.Name()
			if skipDirs[name] || (len(name) > 1 && name[0] == '.') {
				return filepath.SkipDir
			}
			if err := w.fsnotify.Add(path); err == nil {
				w.dirsWatched++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.processEvents()

	watchLog.Printf("watching %d directories under %s (debounce %v)", w.dirsWatched, root, w.config.DebounceDelay)
	return nil
}

// Stop halts event processing and closes the underlying watcher.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
	return w.fsnotify.Close()
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}

			// Newly created directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					name := filepath.Base(event.Name)
					if !skipDirs[name] && !(len(name) > 1 && name[0] == '.') {
						if err := w.fsnotify.Add(event.Name); err == nil {
							w.dirsWatched++
						}
					}
					continue
				}
			}

			name := filepath.Base(event.Name)
			if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") ||
				strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, ".tmp") {
				continue
			}
			if !w.config.FileFilter(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.queueChange(event.Name, event.Op)
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			watchLog.Printf("error: %v", err)
		}
	}
}

func (w *Watcher) queueChange(path string, op fsnotify.Op) {
	w.mu.Lock()
	w.pending[path] = op
	w.debounceOnce.Do(func() {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			select {
			case <-time.After(w.config.DebounceDelay):
				w.flushPending()
			case <-w.stop:
			}
		}()
	})
	w.mu.Unlock()
}

func (w *Watcher) flushPending() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.debounceOnce = sync.Once{}
	w.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	watchLog.Printf("processing %d file changes", len(pending))
	for _, h := range w.handlers {
		h.OnChanges(pending)
	}
}
