// Package index owns the content index: the record store, the published
// navigation tree, and the synchronizer keeping both aligned with the
// content directory. All mutation flows through one serialized event
// queue; queries read published state and never wait on synchronization.
package index

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/journal"
	"github.com/MonaAghili/public-notes/internal/metrics"
	"github.com/MonaAghili/public-notes/internal/nav"
	"github.com/MonaAghili/public-notes/internal/note"
	"github.com/MonaAghili/public-notes/internal/notify"
	"github.com/MonaAghili/public-notes/internal/search"
	"github.com/MonaAghili/public-notes/internal/slug"
	"github.com/MonaAghili/public-notes/internal/store"
)

const eventQueueSize = 256

// noteLoader is the loading side of note.Loader.
type noteLoader interface {
	Load(path, rel string) (*note.Record, error)
}

// Index is the owned content index. Construct with New, fill with Reload
// (batch) or Start (watch mode), stop with Close.
type Index struct {
	root    string
	loader  noteLoader
	store   *store.Store
	builder *nav.Builder

	tree     atomic.Pointer[[]*nav.Node]
	revision atomic.Uint64
	lastSync atomic.Pointer[time.Time]

	recorder metrics.Recorder
	journal  *journal.Journal
	notifier notify.Notifier
	onChange func(revision uint64)

	events  chan event
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
}

// Option configures optional collaborators.
type Option func(*Index)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(ix *Index) {
		if r != nil {
			ix.recorder = r
		}
	}
}

// WithJournal injects the sync journal.
func WithJournal(j *journal.Journal) Option {
	return func(ix *Index) {
		ix.journal = j
	}
}

// WithNotifier injects the change notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(ix *Index) {
		if n != nil {
			ix.notifier = n
		}
	}
}

// WithChangeHook registers a callback invoked after every completed
// synchronization with the new revision. Used for the SSE change feed.
func WithChangeHook(hook func(revision uint64)) Option {
	return func(ix *Index) {
		ix.onChange = hook
	}
}

// New creates an Index over the content root. No I/O happens until Reload
// or Start.
func New(root string, options ...Option) *Index {
	ix := &Index{
		root:     root,
		loader:   note.NewLoader(),
		store:    store.New(),
		recorder: metrics.NoopRecorder{},
		notifier: notify.Noop{},
		events:   make(chan event, eventQueueSize),
	}
	ix.builder = nav.NewBuilder(func(s string) (string, bool) {
		if rec := ix.store.Get(s); rec != nil {
			return rec.Title, true
		}
		return "", false
	})

	for _, opt := range options {
		opt(ix)
	}
	return ix
}

// Tree returns the last published navigation tree. Never nil after a
// successful Reload; callers before that get an empty tree.
func (ix *Index) Tree() []*nav.Node {
	ix.recorder.IncQuery("tree")
	if tree := ix.tree.Load(); tree != nil {
		return *tree
	}
	return []*nav.Node{}
}

// Page returns the record for an externally supplied slug. The slug is
// validated before any lookup; a miss is a typed not-found error.
func (ix *Index) Page(s string) (*note.Record, error) {
	ix.recorder.IncQuery("page")
	if err := slug.Validate(s); err != nil {
		return nil, err
	}
	rec := ix.store.Get(s)
	if rec == nil {
		return nil, errors.NoteNotFound(s)
	}
	return rec, nil
}

// Search evaluates a substring query over the current snapshot.
func (ix *Index) Search(query string) ([]search.Result, error) {
	ix.recorder.IncQuery("search")
	return search.Evaluate(ix.store.Snapshot(), query)
}

// Snapshot returns the current records in insertion order.
func (ix *Index) Snapshot() []*note.Record {
	return ix.store.Snapshot()
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return ix.store.Len()
}

// Revision returns the count of completed synchronizations.
func (ix *Index) Revision() uint64 {
	return ix.revision.Load()
}

// LastSync returns the completion time of the most recent synchronization,
// zero before the first one.
func (ix *Index) LastSync() time.Time {
	if t := ix.lastSync.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

// Reload rebuilds the whole index from disk. In watch mode the reload
// travels through the event queue like any other mutation, so it cannot
// interleave with in-flight events; in batch mode it runs inline.
func (ix *Index) Reload(ctx context.Context) error {
	ev := newEvent(kindReload, "")
	if !ix.running.Load() {
		return ix.handle(ctx, ev)
	}

	ev.done = make(chan error, 1)
	select {
	case ix.events <- ev:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-ev.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start loads the index and begins watching the content root. The initial
// load failing aborts startup; after that, per-event failures only log.
func (ix *Index) Start(ctx context.Context) error {
	if !ix.running.CompareAndSwap(false, true) {
		return errors.New(errors.CategoryInternal, errors.SeverityError, "index already started")
	}

	if err := ix.handle(ctx, newEvent(kindReload, "")); err != nil {
		ix.running.Store(false)
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	ix.cancel = cancel

	if err := ix.startWatcher(runCtx); err != nil {
		cancel()
		ix.running.Store(false)
		return err
	}

	ix.wg.Add(1)
	go ix.drainLoop(runCtx)
	return nil
}

// Close stops the watcher and the drain loop. Safe to call once after a
// successful Start; a no-op otherwise.
func (ix *Index) Close() error {
	if !ix.running.CompareAndSwap(true, false) {
		return nil
	}
	ix.cancel()
	if ix.watcher != nil {
		_ = ix.watcher.Close()
	}
	ix.wg.Wait()
	return nil
}
