package nexusweb

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDebounce is how long the watcher waits after the last event before
// firing.
const watchDebounce = 250 * time.Millisecond

// Watcher calls a function once a burst of changes in a directory settles.
type Watcher struct {
	w        *fsnotify.Watcher
	onChange func()
	log      zerolog.Logger
	done     chan struct{}
	wg       sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches dir and calls onChange after writes, creates, removes
// or renames inside it.
func NewWatcher(dir string, onChange func(), log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("nexusweb: create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("nexusweb: watch %s: %w", dir, err)
	}
	w := &Watcher{
		w:        fw,
		onChange: onChange,
		log:      log,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("content changed")
				w.schedule()
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.onChange)
}

// Close stops watching. Pending callbacks are cancelled.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.w.Close()
	w.wg.Wait()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}
