package sync

import (
	"sync"
	"time"

	"github.com/existflow/daymark/internal/logger"
	"github.com/existflow/daymark/internal/model"
)

// Saver persists a full document remotely. *Client implements it.
type Saver interface {
	SaveState(data model.AppData) error
}

// AutoSaver schedules best-effort remote saves after local mutations.
// Saves are debounced and coalesced: each trigger resets the window, so
// only the latest pending document is sent. Failures are logged and
// exposed as a passive status, never surfaced as blocking errors and
// never retried here.
type AutoSaver struct {
	saver    Saver
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	pending   *model.AppData
	lastErr   error
	lastSaved time.Time
	stopped   bool
}

// NewAutoSaver creates an auto-saver with the default 1.5s debounce window
func NewAutoSaver(saver Saver) *AutoSaver {
	return &AutoSaver{
		saver:    saver,
		debounce: 1500 * time.Millisecond,
	}
}

// TriggerSave schedules a save of the given document. A later trigger
// before the window elapses replaces the pending document and restarts
// the window, implicitly cancelling the earlier save.
func (a *AutoSaver) TriggerSave(data model.AppData) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}

	snapshot := data.Clone()
	a.pending = &snapshot

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.fire)
}

func (a *AutoSaver) fire() {
	a.mu.Lock()
	data := a.pending
	a.pending = nil
	a.mu.Unlock()

	if data == nil {
		return
	}
	a.save(*data)
}

func (a *AutoSaver) save(data model.AppData) {
	err := a.saver.SaveState(data)

	a.mu.Lock()
	a.lastErr = err
	if err == nil {
		a.lastSaved = time.Now()
	}
	a.mu.Unlock()

	if err != nil {
		logger.Warn("Remote save failed, local state remains authoritative",
			logger.F("error", err))
		return
	}
	logger.Debug("Remote save completed")
}

// Flush sends any pending document immediately. Used on teardown so a
// mutation made just before quitting is not lost to the debounce window.
func (a *AutoSaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	data := a.pending
	a.pending = nil
	a.mu.Unlock()

	if data != nil {
		a.save(*data)
	}
}

// Stop cancels any pending save. Safe to call more than once.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

// Status returns a short passive indicator for display
func (a *AutoSaver) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case a.lastErr != nil:
		return "sync failed"
	case a.pending != nil:
		return "sync pending"
	case !a.lastSaved.IsZero():
		return "synced " + a.lastSaved.Format("15:04")
	default:
		return ""
	}
}
