package document

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period Watch waits for before rebuilding.
const DefaultDebounce = 200 * time.Millisecond

// tempPrefix matches the temporary files left by atomic writes.
const tempPrefix = ".quill-tmp-"

// Watch rebuilds the master document whenever partition files appear,
// disappear or are renamed under the catalog root, until ctx is cancelled.
// Bursts of events are collapsed into one rebuild after debounce. onRebuild,
// if non-nil, receives the outcome of every rebuild.
//
// New year directories are added to the watch list as they are created.
func (a *Assembler) Watch(ctx context.Context, debounce time.Duration, onRebuild func(error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := a.catalog.Root()
	if err := addDirsRecursive(w, root); err != nil {
		return err
	}
	a.logger.Info("watching diary root", zap.String("root", root))

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
			return
		}
		timer.Reset(debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			a.logger.Info("watcher stopped")
			return nil

		case <-fire:
			timer, fire = nil, nil
			rebuildErr := a.Rebuild()
			if rebuildErr != nil {
				a.logger.Warn("rebuild failed", zap.Error(rebuildErr))
			} else {
				a.logger.Debug("rebuilt master document")
			}
			if onRebuild != nil {
				onRebuild(rebuildErr)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						a.logger.Warn("watching new directory failed",
							zap.String("path", ev.Name), zap.Error(addErr))
					}
					schedule()
					continue
				}
			}
			if !a.relevant(ev) {
				continue
			}
			a.logger.Debug("partition changed",
				zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watcher error", zap.Error(watchErr))
		}
	}
}

// relevant reports whether ev can change the set of partitions.
func (a *Assembler) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if filepath.Clean(ev.Name) == filepath.Clean(a.mainFile) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, tempPrefix) || strings.HasSuffix(base, ".lock") {
		return false
	}
	// Removed directories are gone, so anything without the extension may
	// still be a year directory.
	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && filepath.Ext(base) == "" {
		return true
	}
	return strings.EqualFold(filepath.Ext(base), a.catalog.Ext())
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
