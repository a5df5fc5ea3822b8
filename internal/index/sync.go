package index

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/journal"
	"github.com/MonaAghili/public-notes/internal/logfields"
	"github.com/MonaAghili/public-notes/internal/metrics"
	"github.com/MonaAghili/public-notes/internal/note"
	"github.com/MonaAghili/public-notes/internal/notify"
	"github.com/MonaAghili/public-notes/internal/slug"
)

// eventKind labels a synchronization event. Add and modify share a handler;
// the distinct labels keep journal and metrics readable.
type eventKind string

const (
	kindAdd    eventKind = "add"
	kindModify eventKind = "modify"
	kindRemove eventKind = "remove"
	kindReload eventKind = "reload"
)

// event is one queued mutation. rel is the root-relative slash path, empty
// for reloads. done, when non-nil, receives the handling result exactly once.
type event struct {
	id   string
	kind eventKind
	rel  string
	done chan error
}

func newEvent(kind eventKind, rel string) event {
	return event{id: uuid.NewString(), kind: kind, rel: rel}
}

// drainLoop is the single goroutine owning all index mutations. Each event
// is handled to completion, tree publish included, before the next starts.
func (ix *Index) drainLoop(ctx context.Context) {
	defer ix.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ix.events:
			err := ix.handle(ctx, ev)
			if ev.done != nil {
				ev.done <- err
			}
		}
	}
}

// handle runs one event: mutate, rebuild, publish, then record the outcome
// in metrics, journal, notifier and the change hook. A failed event leaves
// the previous published state current and never stops the loop.
func (ix *Index) handle(ctx context.Context, ev event) error {
	start := time.Now()

	var err error
	switch ev.kind {
	case kindReload:
		err = ix.reload(ctx)
	case kindAdd, kindModify:
		err = ix.applyChange(ev.rel)
	case kindRemove:
		err = ix.applyRemove(ev.rel)
	}

	elapsed := time.Since(start)
	ix.recorder.ObserveSyncDuration(string(ev.kind), elapsed)

	result := metrics.ResultSuccess
	status := journal.StatusOK
	errMsg := ""
	if err != nil {
		result = metrics.ResultFailed
		status = journal.StatusFailed
		errMsg = err.Error()
	}
	ix.recorder.IncSyncResult(string(ev.kind), result)

	eventSlug := ""
	if ev.rel != "" {
		eventSlug = slug.FromPath(ev.rel)
	}
	if jerr := ix.journal.Append(ctx, journal.Entry{
		EventID:    ev.id,
		Kind:       string(ev.kind),
		Slug:       eventSlug,
		Status:     status,
		Error:      errMsg,
		DurationMS: elapsed.Milliseconds(),
	}); jerr != nil {
		slog.Warn("journal append failed", logfields.Event(string(ev.kind)), logfields.Error(jerr))
	}

	if err != nil {
		slog.Warn("synchronization event failed",
			logfields.Event(string(ev.kind)),
			logfields.Path(ev.rel),
			logfields.Error(err))
		return err
	}

	revision := ix.revision.Add(1)
	now := time.Now()
	ix.lastSync.Store(&now)
	ix.recorder.SetDocumentsIndexed(ix.store.Len())

	if ix.onChange != nil {
		ix.onChange(revision)
	}
	if perr := ix.notifier.PublishChange(ctx, notify.ChangeEvent{
		EventID:  ev.id,
		Kind:     string(ev.kind),
		Slug:     eventSlug,
		Revision: revision,
		At:       now,
	}); perr != nil {
		slog.Warn("change publish failed", logfields.Revision(revision), logfields.Error(perr))
	}

	slog.Debug("synchronized",
		logfields.Event(string(ev.kind)),
		logfields.Slug(eventSlug),
		logfields.Revision(revision),
		logfields.Duration(elapsed))
	return nil
}

// applyChange loads one note and replaces its record. A load failure keeps
// the prior record (and the prior tree) untouched.
func (ix *Index) applyChange(rel string) error {
	abs := filepath.Join(ix.root, filepath.FromSlash(rel))
	rec, err := ix.loader.Load(abs, rel)
	if err != nil {
		return err
	}
	ix.store.Upsert(rec)
	return ix.publishTree()
}

// applyRemove drops the slug and republishes. Removing an unknown slug
// still rebuilds, covering removes that race an earlier failed load.
func (ix *Index) applyRemove(rel string) error {
	ix.store.Delete(slug.FromPath(rel))
	return ix.publishTree()
}

// reload scans the whole content root and swaps the store contents, then
// publishes one rebuilt tree. The scan happens before the swap so a walk
// failure leaves the previous index intact.
func (ix *Index) reload(ctx context.Context) error {
	start := time.Now()

	records, err := ix.scan(ctx)
	if err != nil {
		return err
	}

	ix.store.Clear()
	for _, rec := range records {
		ix.store.Upsert(rec)
	}
	if err := ix.publishTree(); err != nil {
		return err
	}

	ix.recorder.ObserveReloadDuration(time.Since(start))
	slog.Info("content index loaded",
		logfields.Count(len(records)),
		logfields.Duration(time.Since(start)))
	return nil
}

// scan walks the content root and loads every recognized note. Unparseable
// notes are logged and skipped; unreadable files and walk failures abort the
// scan. Walk order is lexical, which fixes the store's insertion order.
func (ix *Index) scan(ctx context.Context) ([]*note.Record, error) {
	var records []*note.Record
	walkErr := filepath.WalkDir(ix.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if path == ix.root {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() || !slug.IsNotePath(name) {
			return nil
		}

		rel, rerr := filepath.Rel(ix.root, path)
		if rerr != nil {
			return rerr
		}

		rec, lerr := ix.loader.Load(path, rel)
		if lerr != nil {
			if errors.IsCategory(lerr, errors.CategoryFileSystem) {
				return lerr
			}
			slog.Warn("skipping note",
				logfields.Path(filepath.ToSlash(rel)),
				logfields.Error(lerr))
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if walkErr != nil {
		if errors.IsCategory(walkErr, errors.CategoryFileSystem) {
			return nil, walkErr
		}
		return nil, errors.WalkFailed(ix.root, walkErr)
	}
	return records, nil
}

// publishTree rebuilds the navigation tree and publishes it atomically.
// On failure the previously published tree stays current.
func (ix *Index) publishTree() error {
	tree, err := ix.builder.Build(ix.root)
	if err != nil {
		return err
	}
	ix.tree.Store(&tree)
	return nil
}
