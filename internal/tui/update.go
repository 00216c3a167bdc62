package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/daymark/internal/logger"
)

type tickMsg time.Time

type todayMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForToday() tea.Cmd {
	return func() tea.Msg {
		return todayMsg(<-m.todayCh)
	}
}

// Init starts the periodic refresh and the day-change listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForToday())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Re-render so the countdown and clock stay fresh
		return m, tickCmd()

	case todayMsg:
		m.message = "New day: " + time.Time(msg).Format("Mon Jan 2")
		return m, m.waitForToday()

	case tea.KeyMsg:
		if m.mode == ModeNormal {
			return m.updateNormal(msg)
		}
		return m.updateInput(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.watcher.Stop()
		logger.Info("TUI quitting")
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneTasks {
			m.pane = PaneExcluded
		} else {
			m.pane = PaneTasks
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		m.input.Placeholder = "New task..."
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Target):
		m.mode = ModeSetTarget
		m.input.Placeholder = "Target date (YYYY-MM-DD, empty clears)"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Exclude):
		m.mode = ModeExcludeDate
		m.input.Placeholder = "Date to toggle (YYYY-MM-DD)"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Comment):
		if m.pane == PaneExcluded {
			if e := m.currentExcluded(); e != nil {
				m.mode = ModeComment
				m.input.Placeholder = "Comment"
				m.input.SetValue(e.Comment)
				m.input.Focus()
			}
		}
		return m, nil

	case key.Matches(msg, keys.Done):
		if m.pane == PaneTasks {
			if t := m.currentTask(); t != nil {
				if err := m.app.ToggleTask(t.ID); err != nil {
					m.message = err.Error()
				}
				m.reload()
			}
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		switch m.pane {
		case PaneTasks:
			if t := m.currentTask(); t != nil {
				if err := m.app.DeleteTask(t.ID); err != nil {
					m.message = err.Error()
				}
				m.reload()
			}
		case PaneExcluded:
			if e := m.currentExcluded(); e != nil {
				m.app.ToggleExcluded(e.Date, "")
				m.reload()
			}
		}
		return m, nil

	case key.Matches(msg, keys.Reset):
		m.mode = ModeConfirmReset
		return m, nil
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeHelp {
		m.mode = ModeNormal
		return m, nil
	}

	if m.mode == ModeConfirmReset {
		switch msg.String() {
		case "y", "Y":
			if err := m.app.Reset(); err != nil {
				m.message = err.Error()
			} else {
				m.message = "All data cleared"
			}
			m.reload()
		}
		m.mode = ModeNormal
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.submitInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitInput() {
	value := m.input.Value()

	switch m.mode {
	case ModeAddTask:
		if _, err := m.app.AddTask(value, nil); err != nil {
			m.message = err.Error()
		}

	case ModeSetTarget:
		if value == "" {
			m.app.ClearTarget()
		} else if date, err := time.ParseInLocation(time.DateOnly, value, time.Local); err != nil {
			m.message = "Invalid date, want YYYY-MM-DD"
		} else {
			m.app.SetTarget(date)
		}

	case ModeExcludeDate:
		if date, err := time.ParseInLocation(time.DateOnly, value, time.Local); err != nil {
			m.message = "Invalid date, want YYYY-MM-DD"
		} else {
			m.app.ToggleExcluded(date, "")
		}

	case ModeComment:
		if e := m.currentExcluded(); e != nil {
			m.app.SetExcludedComment(e.Date, value)
		}
	}

	m.mode = ModeNormal
	m.input.Blur()
	m.reload()
}

func (m *Model) moveCursor(delta int) {
	switch m.pane {
	case PaneTasks:
		m.taskCursor += delta
		if m.taskCursor < 0 {
			m.taskCursor = 0
		}
		if m.taskCursor >= len(m.data.Tasks) {
			m.taskCursor = max(0, len(m.data.Tasks)-1)
		}
	case PaneExcluded:
		m.exclCursor += delta
		if m.exclCursor < 0 {
			m.exclCursor = 0
		}
		if m.exclCursor >= len(m.data.ExcludedDates) {
			m.exclCursor = max(0, len(m.data.ExcludedDates)-1)
		}
	}
}
