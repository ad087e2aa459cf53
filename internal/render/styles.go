// Package render draws rosters and match logs for the terminal and exports roster charts.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#ce1141")

	Black  = lipgloss.Color("#111111")
	Gray   = lipgloss.Color("#3e3e3e")
	White  = lipgloss.Color("#cccccc")
	Whiter = lipgloss.Color("#aaaaaa")
	Red    = lipgloss.Color("#B8383B")
	Blu    = lipgloss.Color("#5885A2")
	Green  = lipgloss.Color("#4d7455")

	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Blu).Padding(0, 1)
	EvenRow     = lipgloss.NewStyle().Foreground(White).Padding(0, 1)
	OddRow      = lipgloss.NewStyle().Foreground(Whiter).Padding(0, 1)
	WinStyle    = lipgloss.NewStyle().Foreground(Green).Padding(0, 1)
	LossStyle   = lipgloss.NewStyle().Foreground(Red).Padding(0, 1)
	MutedStyle  = lipgloss.NewStyle().Foreground(Gray)
)
