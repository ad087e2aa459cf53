package roster

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"
)

const cardTitleWidth = 25

var (
	cardTitle  = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(cardTitleWidth + 2)
	cardHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cardCell   = lipgloss.NewStyle().Padding(0, 1)
)

func renderCard(title string, leftHeader string, rightHeader string, rows [][]string) string {
	body := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cardHeader
			}

			return cardCell
		}).
		Headers(leftHeader, rightHeader).
		Rows(rows...)

	return lipgloss.JoinVertical(lipgloss.Left,
		cardTitle.Render(truncate.StringWithTail(title, cardTitleWidth, "…")),
		body.Render())
}
