package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderCountdown()
	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTasks(), m.renderExcluded())
	statusBar := m.renderStatusBar()

	content := lipgloss.JoinVertical(lipgloss.Left, header, panes)

	switch m.mode {
	case ModeAddTask, ModeSetTarget, ModeExcludeDate, ModeComment:
		content = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeConfirmReset:
		content = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderConfirmReset(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		content = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) renderCountdown() string {
	counts := m.app.Countdown()
	today := m.app.EffectiveToday()

	var s string
	s += HeaderStyle.Render("DayMark") + "\n"

	if m.data.TargetDate == nil {
		s += HelpStyle.Render("No target date set — press t") + "\n"
	} else {
		s += fmt.Sprintf("%s %s   %s %s\n",
			CountStyle.Render(fmt.Sprintf("%d", counts.CalendarDays)),
			CountLabelStyle.Render("calendar days"),
			CountStyle.Render(fmt.Sprintf("%d", counts.WorkingDays)),
			CountLabelStyle.Render("working days"))
		s += HelpStyle.Render(fmt.Sprintf("to %s, counting from %s",
			m.data.TargetDate.Format("Mon Jan 2 2006"),
			today.Format(time.DateOnly))) + "\n"
	}

	return CountdownBoxStyle.Width(m.width - 4).Render(s)
}

func (m Model) renderTasks() string {
	width := m.width * 3 / 5
	var s string

	title := "Tasks"
	if m.pane == PaneTasks {
		title = "❯ " + title
	}
	s += PaneTitleStyle.Render(title) + "\n\n"

	if len(m.data.Tasks) == 0 {
		s += HelpStyle.Render("No tasks — press a") + "\n"
	}

	today := m.app.EffectiveToday()
	for i, t := range m.data.Tasks {
		icon := "[ ]"
		style := ItemStyle
		if t.Completed {
			icon = "[x]"
			style = ItemDoneStyle
		}
		if i == m.taskCursor && m.pane == PaneTasks {
			style = ItemSelectedStyle
		}

		line := fmt.Sprintf("%s %s", icon, truncate(t.Text, width-14))
		if t.DueDate != nil {
			due := t.DueDate.Format("Jan 2")
			if t.IsOverdue(today) {
				due = DangerStyle.Render(due)
			}
			line += " · " + due
		}
		s += style.Render(line) + "\n"
	}

	return PaneStyle.Width(width).Height(m.height - 8).Render(s)
}

func (m Model) renderExcluded() string {
	width := m.width - m.width*3/5 - 4
	var s string

	title := "Excluded dates"
	if m.pane == PaneExcluded {
		title = "❯ " + title
	}
	s += PaneTitleStyle.Render(title) + "\n\n"

	if len(m.data.ExcludedDates) == 0 {
		s += HelpStyle.Render("None — press e") + "\n"
	}

	for i, e := range m.data.ExcludedDates {
		style := ItemStyle
		if i == m.exclCursor && m.pane == PaneExcluded {
			style = ItemSelectedStyle
		}

		line := e.Date.Format("2006-01-02 Mon")
		if e.Comment != "" {
			line += " · " + truncate(e.Comment, width-20)
		}
		s += style.Render(line) + "\n"
	}

	return PaneStyle.Width(width).Height(m.height - 8).Render(s)
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = "a add · t target · e exclude · x done · d delete · R reset · ? help · q quit"
	}

	right := m.app.SyncStatus()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderModal() string {
	var title string
	switch m.mode {
	case ModeAddTask:
		title = "Add task"
	case ModeSetTarget:
		title = "Set target date"
	case ModeExcludeDate:
		title = "Toggle excluded date"
	case ModeComment:
		title = "Edit comment"
	}

	content := PaneTitleStyle.Render(title) + "\n\n" +
		m.input.View() + "\n\n" +
		HelpStyle.Render("enter confirm · esc cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderConfirmReset() string {
	content := DangerStyle.Render("Reset all data?") + "\n\n" +
		"This clears the target date, excluded dates,\nand all tasks.\n\n" +
		HelpStyle.Render("y confirm · any other key cancels")
	return ModalStyle.BorderForeground(Danger).Render(content)
}

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"↑/k ↓/j", "move cursor"},
		{"tab", "switch pane"},
		{"a", "add task"},
		{"t", "set or clear target date"},
		{"e", "toggle an excluded date"},
		{"m", "edit exclusion comment"},
		{"x / enter", "toggle task done"},
		{"d", "delete task / remove exclusion"},
		{"R", "reset all data"},
		{"q", "quit"},
	}

	var s string
	s += HeaderStyle.Render("Help") + "\n\n"
	for _, r := range rows {
		s += fmt.Sprintf("  %-12s %s\n", r.key, HelpStyle.Render(r.desc))
	}
	s += "\n" + HelpStyle.Render("press any key to close")
	return PaneStyle.Render(s)
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
