// Package chart renders aggregation results as terminal charts.
package chart

import (
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"moneta/internal/core"
	"moneta/internal/query"
)

type Kind string

const (
	KindDistribution Kind = "distribution"
	KindTrend        Kind = "trend"
)

// Chart is the handle returned to callers: the rendered view plus enough
// metadata for a display layer to place it.
type Chart struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	View  string `json:"view"`
}

const (
	defaultWidth  = 60
	defaultHeight = 14
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	barPalette = []lipgloss.Color{"9", "10", "12", "11", "13", "14", "208", "99"}
)

type Renderer struct {
	width  int
	height int
}

func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Distribution renders per-category totals as a bar chart. Categories are
// drawn in alphabetical order so the output is stable.
func (r *Renderer) Distribution(totals map[string]core.Money) *Chart {
	categories := make([]string, 0, len(totals))
	for cat := range totals {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	bc := barchart.New(r.width, r.height)
	data := make([]barchart.BarData, 0, len(categories))
	for i, cat := range categories {
		style := lipgloss.NewStyle().Foreground(barPalette[i%len(barPalette)])
		data = append(data, barchart.BarData{
			Label: cat,
			Values: []barchart.BarValue{
				{Name: cat, Value: totals[cat].Float(), Style: style},
			},
		})
	}
	bc.PushAll(data)
	bc.Draw()

	title := "Expense Distribution by Category"
	return &Chart{
		Kind:  KindDistribution,
		Title: title,
		View:  titleStyle.Render(title) + "\n" + bc.View(),
	}
}

// Trend renders daily totals as a time-series line chart. Points must be
// chronologically ordered, which is how the query engine returns them.
func (r *Renderer) Trend(points []query.DateTotal) *Chart {
	tslc := timeserieslinechart.New(r.width, r.height)
	for _, p := range points {
		tslc.Push(timeserieslinechart.TimePoint{Time: p.Date.Time, Value: p.Total.Float()})
	}
	tslc.DrawBraille()

	title := "Daily Spending Trend"
	return &Chart{
		Kind:  KindTrend,
		Title: title,
		View:  titleStyle.Render(title) + "\n" + tslc.View(),
	}
}
