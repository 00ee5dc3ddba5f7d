// Package watcher implements spec §4.7's debounced filesystem watch: a
// quiescent period of at least Debounce with no relevant fsnotify events
// triggers an incremental reindex, and — when RAG is enabled — a second,
// independent RagDelay timer triggers an embedding pass once it elapses
// without an intervening index cycle. Generalized from the single-timer
// shape of cagent's VectorStore.watchLoop (debounce timer reset on every
// matching event, pendingChanges accumulated under a mutex) into two
// independent timers instead of one.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentic-research/codegraph/internal/indexer"
	"github.com/agentic-research/codegraph/internal/parser"
)

// Defaults for the two timers, used when the caller leaves them zero.
const (
	DefaultDebounce = 2 * time.Second
	DefaultRagDelay = 30 * time.Second
)

// EmbedFunc runs one embedding pass; supplied by the caller so Watcher
// doesn't need to know which model/index/reranker combination is active.
type EmbedFunc func(ctx context.Context) (int, error)

// Watcher drives Indexer.IndexFile from fsnotify events, debounced, and
// optionally schedules embedding passes on a second independent timer.
type Watcher struct {
	Indexer  *indexer.Indexer
	Debounce time.Duration
	RAG      bool
	RagDelay time.Duration
	Embed    EmbedFunc

	mu      sync.Mutex
	pending map[string]bool
}

// New constructs a Watcher over ix's root. Embed may be nil when RAG is
// disabled.
func New(ix *indexer.Indexer, debounce, ragDelay time.Duration, rag bool, embed EmbedFunc) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if ragDelay <= 0 {
		ragDelay = DefaultRagDelay
	}
	return &Watcher{
		Indexer:  ix,
		Debounce: debounce,
		RAG:      rag,
		RagDelay: ragDelay,
		Embed:    embed,
		pending:  map[string]bool{},
	}
}

// Run performs the required initial incremental index, then watches Root
// until ctx is canceled. Shutdown is cooperative: on cancellation, any
// pending embedding batch is flushed before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.Indexer.Index(); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := addTreeToWatcher(fsw, w.Indexer.Root); err != nil {
		return err
	}

	var debounceTimer, ragTimer *time.Timer
	debounceFires := make(chan struct{}, 1)
	ragFires := make(chan struct{}, 1)

	resetDebounce := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.AfterFunc(w.Debounce, func() { notify(debounceFires) })
	}
	resetRag := func() {
		if !w.RAG || w.Embed == nil {
			return
		}
		if ragTimer != nil {
			ragTimer.Stop()
		}
		ragTimer = time.AfterFunc(w.RagDelay, func() { notify(ragFires) })
	}
	resetRag()

	stopTimers := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		if ragTimer != nil {
			ragTimer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimers()
			w.flushIndex()
			if w.RAG && w.Embed != nil {
				w.runEmbed(context.Background())
			}
			return nil

		case <-debounceFires:
			w.flushIndex()
			resetRag() // an index cycle ran: an active editing session defers embedding

		case <-ragFires:
			w.runEmbed(ctx)

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if base := filepath.Base(ev.Name); !isHidden(base) && !ignoredDirs[base] {
					if err := addTreeToWatcher(fsw, ev.Name); err != nil {
						log.Printf("watcher: failed to watch new path %s: %v", ev.Name, err)
					}
				}
			}
			if !w.relevant(ev) {
				continue
			}
			w.markPending(ev.Name)
			resetDebounce()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher: fsnotify error: %v", err)
		}
	}
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// relevant discards events spec §4.7 says must never reach the debounce
// timer: events in ignored directories and files with no language adapter.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if isHidden(base) || ignoredDirs[base] {
		return false
	}
	if _, ok := parser.DetectLanguage(filepath.Ext(ev.Name)); !ok {
		return false
	}
	return true
}

func (w *Watcher) markPending(absPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rel, err := filepath.Rel(w.Indexer.Root, absPath)
	if err != nil {
		return
	}
	w.pending[filepath.ToSlash(rel)] = true
}

func (w *Watcher) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	w.pending = map[string]bool{}
	return out
}

// flushIndex reindexes every file accumulated since the last debounce fire.
func (w *Watcher) flushIndex() {
	for _, rel := range w.takePending() {
		if _, err := w.Indexer.IndexFile(rel); err != nil {
			log.Printf("watcher: incremental index of %s failed: %v", rel, err)
		}
	}
}

func (w *Watcher) runEmbed(ctx context.Context) {
	n, err := w.Embed(ctx)
	if err != nil {
		log.Printf("watcher: embedding pass failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("watcher: embedded %d symbols", n)
	}
}

func addTreeToWatcher(fsw *fsnotify.Watcher, root string) error {
	return indexer.WalkDirs(root, func(dir string) error {
		return fsw.Add(dir)
	})
}

var ignoredDirs = indexer.IgnoredDirNames()

func isHidden(base string) bool { return len(base) > 0 && base[0] == '.' }
