package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"studymate/internal/study"
)

type timerViewModel struct {
	repo   *study.Repository
	timer  *study.Timer
	width  int
	height int

	// Subject picker state
	picking      bool
	pickerCursor int
}

func newTimerViewModel(repo *study.Repository, timer *study.Timer) timerViewModel {
	return timerViewModel{repo: repo, timer: timer}
}

func (t *timerViewModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerViewModel) running() bool {
	return t.timer.State() == study.TimerRunning
}

func (t timerViewModel) update(msg tea.Msg) (timerViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		completed, err := t.timer.Tick()
		if err != nil {
			return t, func() tea.Msg { return errStatus(err) }
		}
		if completed {
			mode := t.timer.Mode().String()
			return t, func() tea.Msg { return sessionDoneMsg{mode: mode} }
		}
		return t, nil

	case tea.KeyMsg:
		if t.picking {
			return t.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			return t.startTimer()
		case key.Matches(msg, keys.Pause):
			switch t.timer.State() {
			case study.TimerRunning:
				t.timer.Pause()
			case study.TimerPaused:
				if err := t.timer.Start(); err != nil {
					return t, func() tea.Msg { return errStatus(err) }
				}
			}
			return t, nil
		case key.Matches(msg, keys.Reset):
			if err := t.timer.Reset(); err != nil {
				return t, func() tea.Msg { return errStatus(err) }
			}
			return t, func() tea.Msg { return statusMsg{text: "Timer reset"} }
		case key.Matches(msg, keys.Mode):
			if t.timer.Mode() == study.ModeStudy {
				t.timer.SwitchMode(study.ModeBreak)
			} else {
				t.timer.SwitchMode(study.ModeStudy)
			}
			return t, nil
		}
	}
	return t, nil
}

func (t timerViewModel) startTimer() (timerViewModel, tea.Cmd) {
	if t.running() {
		return t, nil
	}

	// Study sessions need a subject; break sessions start directly.
	if t.timer.Mode() == study.ModeStudy && t.timer.State() == study.TimerIdle {
		subjects := t.repo.Subjects()
		if len(subjects) == 0 {
			return t, func() tea.Msg {
				return statusMsg{text: "No subjects yet. Press 3 to create one first.", isError: true}
			}
		}
		t.picking = true
		t.pickerCursor = 0
		return t, nil
	}

	if err := t.timer.Start(); err != nil {
		return t, func() tea.Msg { return errStatus(err) }
	}
	return t, func() tea.Msg { return statusMsg{text: "Timer started"} }
}

func (t timerViewModel) updatePicker(msg tea.KeyMsg) (timerViewModel, tea.Cmd) {
	subjects := t.repo.Subjects()
	switch {
	case key.Matches(msg, keys.Up):
		if t.pickerCursor > 0 {
			t.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if t.pickerCursor < len(subjects)-1 {
			t.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		t.picking = false
		if t.pickerCursor < len(subjects) {
			t.timer.SetSubject(subjects[t.pickerCursor].Name)
		}
		if err := t.timer.Start(); err != nil {
			return t, func() tea.Msg { return errStatus(err) }
		}
		return t, func() tea.Msg { return statusMsg{text: "Timer started"} }
	case key.Matches(msg, keys.Back):
		t.picking = false
	}
	return t, nil
}

func (t timerViewModel) view() string {
	w := t.width - 4

	if t.picking {
		return t.renderSubjectPicker(w)
	}

	modeLabel := successStyle.Bold(true).Render("STUDY")
	if t.timer.Mode() == study.ModeBreak {
		modeLabel = warningStyle.Bold(true).Render("BREAK")
	}

	clock := formatClock(t.timer.SecondsLeft())
	var display, indicator string
	switch t.timer.State() {
	case study.TimerRunning:
		display = countdownRunningStyle.Width(w - 6).Render(clock)
		indicator = successStyle.Render("●  RUNNING")
	case study.TimerPaused:
		display = countdownPausedStyle.Width(w - 6).Render(clock)
		indicator = warningStyle.Render("⏸  PAUSED")
	default:
		display = countdownStyle.Width(w - 6).Render(clock)
		indicator = mutedStyle.Render("■  READY")
	}

	subjectLine := ""
	if t.timer.Mode() == study.ModeStudy && t.timer.Subject() != "" {
		dot := accent(study.AccentHex(t.repo.ColorFor(t.timer.Subject()))).Render("●")
		subjectLine = fmt.Sprintf("%s %s", dot, t.timer.Subject())
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		modeLabel,
		"",
		display,
		indicator,
		subjectLine,
		"",
		t.renderProgress(w-10),
	)

	var controls string
	switch t.timer.State() {
	case study.TimerRunning:
		controls = mutedStyle.Render("space: pause  x: reset")
	case study.TimerPaused:
		controls = mutedStyle.Render("space: resume  x: reset")
	default:
		controls = mutedStyle.Render("s: start  m: switch mode")
	}

	style := panelStyle
	if t.running() {
		style = activePanelStyle
	}
	return style.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t timerViewModel) renderProgress(w int) string {
	if w < 10 {
		w = 10
	}
	total := t.timer.TotalSeconds()
	if total == 0 {
		return ""
	}
	filled := t.timer.Elapsed() * w / total
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", w-filled))
	return bar
}

func (t timerViewModel) renderSubjectPicker(w int) string {
	title := titleStyle.Render("Select Subject")

	var rows []string
	rows = append(rows, title)
	for i, s := range t.repo.Subjects() {
		dot := accent(study.AccentHex(s.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == t.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, s.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
