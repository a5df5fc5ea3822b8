package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/logfields"
	"github.com/MonaAghili/public-notes/internal/slug"
)

// startWatcher registers the content tree with fsnotify and starts the
// goroutine translating filesystem events into queue events.
func (ix *Index) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "creating filesystem watcher failed")
	}
	if err := addDirsRecursive(watcher, ix.root); err != nil {
		_ = watcher.Close()
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "registering watch directories failed")
	}

	ix.watcher = watcher
	ix.wg.Add(1)
	go ix.watchLoop(ctx)
	return nil
}

// watchLoop forwards relevant filesystem events to the queue. Watch errors
// are logged and never stop the loop; only shutdown does.
func (ix *Index) watchLoop(ctx context.Context) {
	defer ix.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ix.watcher.Events:
			if !ok {
				return
			}
			ix.handleFsEvent(ctx, ev)
		case err, ok := <-ix.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// handleFsEvent classifies one fsnotify event. Note files map to targeted
// add/modify/remove events. Directory-level changes cannot be resolved to
// single slugs, so they degrade to a full reload through the same queue.
func (ix *Index) handleFsEvent(ctx context.Context, ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}

	rel, err := filepath.Rel(ix.root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	rel = filepath.ToSlash(rel)

	switch {
	case ev.Op&fsnotify.Create != 0:
		if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
			// A moved-in directory may already hold notes no event covers.
			if werr := addDirsRecursive(ix.watcher, ev.Name); werr != nil {
				slog.Warn("watch add failed", logfields.Path(ev.Name), logfields.Error(werr))
			}
			ix.enqueue(ctx, newEvent(kindReload, ""))
			return
		}
		if slug.IsNotePath(rel) {
			ix.enqueue(ctx, newEvent(kindAdd, rel))
		}
	case ev.Op&fsnotify.Write != 0:
		if slug.IsNotePath(rel) {
			ix.enqueue(ctx, newEvent(kindModify, rel))
		}
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if slug.IsNotePath(rel) {
			ix.enqueue(ctx, newEvent(kindRemove, rel))
			return
		}
		// The path is gone so it cannot be stat'ed; if indexed slugs live
		// under it, a directory vanished and a rescan is due.
		if ix.store.HasPrefix(slug.FromPath(rel)) {
			ix.enqueue(ctx, newEvent(kindReload, ""))
		}
	}
}

// enqueue submits an event, blocking until accepted or shutdown. Blocking
// preserves ordering: the queue absorbs bursts, and a full queue slows the
// watcher instead of dropping changes.
func (ix *Index) enqueue(ctx context.Context, ev event) {
	select {
	case ix.events <- ev:
	case <-ctx.Done():
	}
}

// addDirsRecursive registers root and every visible subdirectory with the
// watcher. An unreadable root fails; a subdirectory vanishing mid-walk or
// refusing a watch only logs, since the rescan that follows re-registers.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("watch walk skipping path", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not reach the queue.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Ignore hidden files
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Ignore editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	// Ignore common lock files
	if base == ".DS_Store" || base == "Thumbs.db" {
		return true
	}

	return false
}
