package snapshot

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/verlow/clientele/internal/checksum"
	"github.com/verlow/clientele/internal/models"
)

// ReloadCallback is called after the watcher reloads an externally
// edited snapshot. groups lists the record groups whose files changed.
type ReloadCallback func(groups []models.Group, snap *Snapshot)

// Watch starts an fsnotify watcher on the FS provider's data directory
// and processes change events until ctx is cancelled. An edited group
// file is debounced, checksum-compared against the provider's last
// known write, and (when genuinely changed) the snapshot is reloaded
// and handed to cb.
//
// The checksum comparison keeps the provider's own Save calls from
// bouncing back as reload events.
func Watch(ctx context.Context, fsp *FS, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(fsp.Dir()); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", fsp.Dir()))

	// Pending group files are collected until the debounce timer fires,
	// then reloaded in one pass.
	pending := make(map[string]models.Group)
	var debounce *time.Timer
	var debounceCh <-chan time.Time

	schedule := func() {
		if debounce == nil {
			debounce = time.NewTimer(200 * time.Millisecond)
			debounceCh = debounce.C
		} else {
			debounce.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-debounceCh:
			flushPending(fsp, logger, pending, cb)
			pending = make(map[string]models.Group)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			group, tracked := groupFiles[name]
			if !tracked {
				continue
			}
			pending[name] = group
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// flushPending drops self-writes by checksum, then reloads the snapshot
// once for whatever remains.
func flushPending(fsp *FS, logger *slog.Logger, pending map[string]models.Group, cb ReloadCallback) {
	var groups []models.Group
	for name, group := range pending {
		sum := checksum.SumFile(filepath.Join(fsp.Dir(), name))
		if sum == "" {
			logger.Warn("watcher: unreadable file", slog.String("file", name))
			continue
		}
		if sum == fsp.knownSum(name) {
			logger.Debug("watcher: self-write ignored", slog.String("file", name))
			continue
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return
	}

	snap, err := fsp.Load()
	if err != nil {
		logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("watcher: reloaded", slog.Int("changed_groups", len(groups)))
	if cb != nil {
		cb(groups, snap)
	}
}
