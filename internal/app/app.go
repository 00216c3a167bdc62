// Package app holds the in-memory application state and owns every
// mutation of it. Persistence is an injected provider and the remote
// saver is an optional collaborator; neither failure path blocks the
// user, state degrades to local-only or in-memory instead.
package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/existflow/daymark/internal/countdown"
	"github.com/existflow/daymark/internal/logger"
	"github.com/existflow/daymark/internal/model"
	"github.com/existflow/daymark/internal/store"
)

// Remote receives best-effort save notifications after local mutations.
// Implementations debounce and coalesce; failures never propagate here.
type Remote interface {
	TriggerSave(data model.AppData)
}

// App is the top-level application state holder
type App struct {
	mu     sync.Mutex
	store  store.Provider
	remote Remote
	clock  *countdown.Clock
	data   model.AppData
}

// New creates an App over the given provider and clock. remote may be nil.
func New(provider store.Provider, clock *countdown.Clock, remote Remote) *App {
	return &App{
		store:  provider,
		remote: remote,
		clock:  clock,
		data:   model.NewAppData(),
	}
}

// Load reads persisted state. On failure the last in-memory value stays
// authoritative and the error is logged, never fatal.
func (a *App) Load() {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, found, err := a.store.Load()
	if err != nil {
		logger.Error("Failed to load state, keeping in-memory value", logger.F("error", err))
		return
	}
	if !found {
		logger.Debug("No stored state, starting with defaults")
		return
	}
	a.data = data
	logger.Info("State loaded",
		logger.F("tasks", len(data.Tasks)),
		logger.F("excluded", len(data.ExcludedDates)))
}

// Replace swaps in a full document (e.g. pulled from the remote) and
// persists it locally.
func (a *App) Replace(data model.AppData) {
	a.mu.Lock()
	a.data = data.Clone()
	a.mu.Unlock()
	a.persist(false)
}

// Data returns a copy of the current state
func (a *App) Data() model.AppData {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data.Clone()
}

// Clock exposes the effective-today clock for watchers
func (a *App) Clock() *countdown.Clock {
	return a.clock
}

// SyncStatus returns the remote saver's passive indicator, or "local only"
// when no remote is configured
func (a *App) SyncStatus() string {
	if s, ok := a.remote.(interface{ Status() string }); ok {
		return s.Status()
	}
	return "local only"
}

// EffectiveToday returns the clock's current day boundary
func (a *App) EffectiveToday() time.Time {
	return a.clock.EffectiveToday()
}

// Countdown evaluates both countdown metrics against the current state
func (a *App) Countdown() countdown.Counts {
	a.mu.Lock()
	data := a.data
	a.mu.Unlock()
	return countdown.Remaining(data, a.clock.EffectiveToday())
}

// SetTarget sets the countdown target date
func (a *App) SetTarget(target time.Time) {
	day := model.DateOnly(target)
	a.mu.Lock()
	a.data.TargetDate = &day
	a.mu.Unlock()
	a.persist(true)
}

// ClearTarget removes the countdown target
func (a *App) ClearTarget() {
	a.mu.Lock()
	a.data.TargetDate = nil
	a.mu.Unlock()
	a.persist(true)
}

// AddTask appends a new task. Text must be non-empty.
func (a *App) AddTask(text string, due *time.Time) (model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, fmt.Errorf("task text cannot be empty")
	}

	task := model.NewTask(text)
	if due != nil {
		d := model.DateOnly(*due)
		task.DueDate = &d
	}

	a.mu.Lock()
	a.data.Tasks = append(a.data.Tasks, task)
	a.mu.Unlock()
	a.persist(true)
	return task, nil
}

// ToggleTask flips a task's completed flag
func (a *App) ToggleTask(id string) error {
	a.mu.Lock()
	task := a.data.FindTask(id)
	if task == nil {
		a.mu.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}
	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()
	a.mu.Unlock()
	a.persist(true)
	return nil
}

// DeleteTask removes a task
func (a *App) DeleteTask(id string) error {
	a.mu.Lock()
	if !a.data.RemoveTask(id) {
		a.mu.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}
	a.mu.Unlock()
	a.persist(true)
	return nil
}

// ToggleExcluded adds or removes an exclusion for the given date
func (a *App) ToggleExcluded(date time.Time, comment string) {
	a.mu.Lock()
	a.data.ToggleExcluded(date, comment)
	a.mu.Unlock()
	a.persist(true)
}

// SetExcludedComment updates the comment on an existing exclusion
func (a *App) SetExcludedComment(date time.Time, comment string) {
	a.mu.Lock()
	a.data.SetExcludedComment(date, comment)
	a.mu.Unlock()
	a.persist(true)
}

// Reset clears all state. Callers are responsible for confirming with
// the user first.
func (a *App) Reset() error {
	a.mu.Lock()
	a.data = model.NewAppData()
	a.mu.Unlock()

	if err := a.store.Reset(); err != nil {
		logger.Error("Failed to reset stored state", logger.F("error", err))
		return fmt.Errorf("failed to reset stored state: %w", err)
	}
	if a.remote != nil {
		a.remote.TriggerSave(model.NewAppData())
	}
	return nil
}

// persist writes the current state locally and, when notifyRemote is set,
// schedules a best-effort remote save. Local failures are logged only.
func (a *App) persist(notifyRemote bool) {
	a.mu.Lock()
	data := a.data.Clone()
	a.mu.Unlock()

	if err := a.store.Save(data); err != nil {
		logger.Error("Failed to save state locally", logger.F("error", err))
	}
	if notifyRemote && a.remote != nil {
		a.remote.TriggerSave(data)
	}
}
