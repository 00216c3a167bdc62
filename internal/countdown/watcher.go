package countdown

import (
	"sync"
	"time"
)

// Watcher re-evaluates the clock's effective today on a periodic tick plus
// a one-shot timer aligned to the next cutoff crossing, and invokes the
// callback whenever the day advances. Stop cancels both timers.
type Watcher struct {
	clock    *Clock
	interval time.Duration
	onChange func(time.Time)

	mu      sync.Mutex
	current time.Time
	stopCh  chan struct{}
	stopped bool
}

// NewWatcher starts watching the clock. onChange receives the new effective
// today; it is never called concurrently with itself.
func NewWatcher(clock *Clock, onChange func(time.Time)) *Watcher {
	w := &Watcher{
		clock:    clock,
		interval: time.Minute,
		onChange: onChange,
		current:  clock.EffectiveToday(),
		stopCh:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Current returns the last observed effective today
func (w *Watcher) Current() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	cutoff := time.NewTimer(time.Until(w.clock.NextCutoff()))
	defer cutoff.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-cutoff.C:
			w.check()
			cutoff.Reset(time.Until(w.clock.NextCutoff()))
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) check() {
	today := w.clock.EffectiveToday()

	w.mu.Lock()
	// Effective today only ever moves forward
	if !today.After(w.current) {
		w.mu.Unlock()
		return
	}
	w.current = today
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(today)
	}
}

// Stop cancels the watcher's timers. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stopped {
		w.stopped = true
		close(w.stopCh)
	}
}
