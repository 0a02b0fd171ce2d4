package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"studymate/internal/study"
	"studymate/internal/timefmt"
)

type progressModel struct {
	repo    *study.Repository
	tracker *study.Tracker
	width   int
	height  int

	chart    barchart.Model
	chartGen uint64
	chartDay string
}

func newProgressModel(repo *study.Repository, tracker *study.Tracker) progressModel {
	return progressModel{
		repo:    repo,
		tracker: tracker,
		chart:   barchart.New(60, 10),
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.chartDay = "" // force rebuild at the new size
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		p.refreshChart()
	case tea.KeyMsg:
		p.refreshChart()
	}
	return p, nil
}

// refreshChart rebuilds the weekly bar chart when the underlying data or
// the day has changed since the last build.
func (p *progressModel) refreshChart() {
	today := time.Now().Format("2006-01-02")
	gen := p.repo.Generation()
	if p.chartDay == today && p.chartGen == gen {
		return
	}
	p.chartDay = today
	p.chartGen = gen
	p.buildChart()
}

func (p *progressModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if p.height > 30 {
		chartHeight = 14
	}

	p.chart = barchart.New(chartWidth, chartHeight)

	hex, _ := p.repo.ThemeAccent()
	barStyle := accent(hex)

	series := study.WeeklySeries(p.tracker, time.Now())
	var bars []barchart.BarData
	for _, day := range series.Days {
		style := barStyle
		if day.Minutes == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Label,
			Values: []barchart.BarValue{
				{Name: day.Label, Value: float64(day.Minutes), Style: style},
			},
		})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p progressModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Progress")
	weekTotal := 0
	series := study.WeeklySeries(p.tracker, time.Now())
	for _, day := range series.Days {
		weekTotal += day.Minutes
	}
	totalLabel := mutedStyle.Render("last 7 days: " + timefmt.Format(weekTotal))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", totalLabel)

	chartView := p.chart.View()
	sharesView := p.renderShares(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", sharesView,
		),
	)
}

func (p progressModel) renderShares(w int) string {
	shares := p.repo.SubjectShares()
	if len(shares) == 0 {
		return mutedStyle.Render("  No subjects yet")
	}

	barWidth := min(30, w-40)
	if barWidth < 10 {
		barWidth = 10
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Time by Subject"))
	for _, share := range shares {
		style := accent(study.AccentHex(share.Color))
		filled := share.Percent * barWidth / 100
		bar := style.Render(strings.Repeat("█", filled)) +
			mutedStyle.Render(strings.Repeat("░", barWidth-filled))
		rows = append(rows, fmt.Sprintf("  %s %-16s %s %3d%%  %s",
			style.Render("●"), share.Name, bar, share.Percent, mutedStyle.Render(share.TimeStudied()),
		))
	}
	return strings.Join(rows, "\n")
}
