package sync

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// replayDebounce coalesces the burst of writes the game client makes
// while flushing a replay file.
const replayDebounce = 2 * time.Second

// Watcher monitors a replay directory and triggers a sync callback when
// new replay files appear.
type Watcher struct {
	dir      string
	onReplay func(ctx context.Context)
}

// NewWatcher creates a watcher for dir. onReplay fires once per settled
// batch of replay file events.
func NewWatcher(dir string, onReplay func(ctx context.Context)) *Watcher {
	return &Watcher{dir: dir, onReplay: onReplay}
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch replay directory: %w", err)
	}

	log.Printf("[Sync] watching %s for new replays", w.dir)

	// The timer stays stopped until a replay event arms it.
	debounce := time.NewTimer(replayDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isReplayFile(event.Name) {
				continue
			}
			debounce.Reset(replayDebounce)
		case err := <-watcher.Errors:
			log.Printf("[Sync] file watcher error: %v", err)
		case <-debounce.C:
			w.onReplay(ctx)
		}
	}
}

func isReplayFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".stormreplay")
}
