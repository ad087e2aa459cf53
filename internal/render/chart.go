package render

import (
	"bytes"
	"errors"

	"github.com/leighmacdonald/team-tracker/internal/roster"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

// ErrNoChartData is returned when no entry has a non zero value for the requested metric.
var ErrNoChartData = errors.New("no statistics recorded yet")

// ChartMetric selects which average is plotted.
type ChartMetric int

const (
	PointsPerGame ChartMetric = iota
	WinPercentage
)

// Chart renders a PNG bar chart of the players' points per game or the coaches' win percentages
// in roster order.
func Chart(teamName string, entries []roster.Entry, metric ChartMetric) ([]byte, error) {
	var (
		bars     []chart.Value
		maxValue float64
	)
	for _, entry := range entries {
		var value float64
		switch current := entry.(type) {
		case *roster.Player:
			if metric != PointsPerGame {
				continue
			}
			value = current.Statistics()[0]
		case *roster.Coach:
			if metric != WinPercentage {
				continue
			}
			value = current.WinPercentage()
		default:
			continue
		}

		maxValue = max(maxValue, value)

		bars = append(bars, chart.Value{
			Label: entry.Name(),
			Value: value,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("5885A2"),
				StrokeColor: drawing.ColorFromHex("3e3e3e"),
				StrokeWidth: 1,
			},
		})
	}

	if len(bars) == 0 || maxValue == 0 {
		return nil, ErrNoChartData
	}

	title := teamName + " - points per game"
	if metric == WinPercentage {
		title = teamName + " - win percentage"
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 48},
		},
		// Anchored at zero so a single bar, or bars of equal height, still have a range to scale.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
