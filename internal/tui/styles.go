package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4ECDC4")
	Completed = lipgloss.Color("#95E1A3")
	Warning   = lipgloss.Color("#FFE66D")
	Danger    = lipgloss.Color("#FF6B6B")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	CountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	CountLabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	CountdownBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Border).
				Padding(0, 2)

	PaneStyle = lipgloss.NewStyle().
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	ItemDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	DangerStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)
)
