package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/daymark/internal/app"
	"github.com/existflow/daymark/internal/countdown"
	"github.com/existflow/daymark/internal/logger"
	"github.com/existflow/daymark/internal/model"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneTasks Pane = iota
	PaneExcluded
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeSetTarget
	ModeExcludeDate
	ModeComment
	ModeConfirmReset
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	app  *app.App
	data model.AppData

	// Effective-today watcher; pushes day changes into todayCh
	watcher *countdown.Watcher
	todayCh chan time.Time

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	taskCursor int
	exclCursor int

	// Input
	input textinput.Model

	message string
}

// NewModel creates a new TUI model
func NewModel(application *app.App) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		app:     application,
		pane:    PaneTasks,
		mode:    ModeNormal,
		input:   ti,
		todayCh: make(chan time.Time, 1), // buffered to avoid blocking the watcher
	}

	m.watcher = countdown.NewWatcher(application.Clock(), func(today time.Time) {
		logger.Debug("Effective today advanced", logger.F("today", today.Format(time.DateOnly)))
		select {
		case m.todayCh <- today:
		default:
		}
	})

	m.data = application.Data()
	return m
}

func (m *Model) reload() {
	m.data = m.app.Data()
	if m.taskCursor >= len(m.data.Tasks) {
		m.taskCursor = max(0, len(m.data.Tasks)-1)
	}
	if m.exclCursor >= len(m.data.ExcludedDates) {
		m.exclCursor = max(0, len(m.data.ExcludedDates)-1)
	}
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.data.Tasks) {
		return &m.data.Tasks[m.taskCursor]
	}
	return nil
}

func (m *Model) currentExcluded() *model.ExcludedDate {
	if m.exclCursor < len(m.data.ExcludedDates) {
		return &m.data.ExcludedDates[m.exclCursor]
	}
	return nil
}
