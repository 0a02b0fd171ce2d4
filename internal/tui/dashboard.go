package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"studymate/internal/study"
	"studymate/internal/timefmt"
)

type dashboardModel struct {
	repo    *study.Repository
	tracker *study.Tracker
	width   int
	height  int
}

func newDashboardModel(repo *study.Repository, tracker *study.Tracker) dashboardModel {
	return dashboardModel{repo: repo, tracker: tracker}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	now := time.Now()
	hex, _ := d.repo.ThemeAccent()
	hello := accent(hex).Bold(true).Render(fmt.Sprintf("%s, %s!", greeting(now), d.repo.Username()))
	sub := mutedStyle.Render("Here is your study overview for today.")

	greetPanel := panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, hello, sub),
	)

	statsPanel := d.renderStatsPanel(w)
	tasksPanel := d.renderUpcomingPanel(w, now)

	return lipgloss.JoinVertical(lipgloss.Left, greetPanel, statsPanel, tasksPanel)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	today := successStyle.Bold(true).Render(timefmt.Format(d.tracker.TodayMinutes()))
	last := titleStyle.Render(d.repo.LastSession())
	pending := warningStyle.Render(fmt.Sprintf("%d", d.repo.PendingTaskCount()))
	done := fmt.Sprintf("%d%%", d.repo.TaskCompletionPercent())

	rows := []string{
		titleStyle.Render("Today"),
		"",
		fmt.Sprintf("  %-18s %s", "Studied today", today),
		fmt.Sprintf("  %-18s %s", "Last session", last),
		fmt.Sprintf("  %-18s %s", "Pending tasks", pending),
		fmt.Sprintf("  %-18s %s", "Tasks completed", done),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderUpcomingPanel(w int, now time.Time) string {
	title := titleStyle.Render("Upcoming Tasks")

	pending := d.repo.Tasks(study.TaskFilter{Status: study.TasksPending})
	if len(pending) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing pending. Press 2 to add a task."),
		))
	}

	var rows []string
	rows = append(rows, title)
	for _, ref := range pending[:min(3, len(pending))] {
		dot := accent(study.AccentHex(d.repo.ColorFor(ref.Subject))).Render("●")
		due := mutedStyle.Render("due " + ref.Date)
		rows = append(rows, fmt.Sprintf("  %s %-24s %s", dot, ref.Name, due))
	}
	if extra := len(pending) - 3; extra > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  …and %d more", extra)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
