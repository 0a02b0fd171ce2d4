package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"studymate/internal/study"
	"studymate/internal/timefmt"
)

type settingsModel struct {
	repo    *study.Repository
	tracker *study.Tracker
	width   int
	height  int

	formActive bool
	form       *huh.Form
	formKind   string // "settings", "clear"

	// Form values as pointers (survive value copies)
	formUsername *string
	formTheme    *string
	formDark     *bool
	formConfirm  *bool
}

func newSettingsModel(repo *study.Repository, tracker *study.Tracker) settingsModel {
	username, theme := "", ""
	dark, confirm := false, false
	return settingsModel{
		repo:         repo,
		tracker:      tracker,
		formUsername: &username,
		formTheme:    &theme,
		formDark:     &dark,
		formConfirm:  &confirm,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.New):
		return s.showForm()
	case key.Matches(keyMsg, keys.Delete):
		return s.showClearForm()
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.formUsername = s.repo.Username()
	*s.formTheme = s.repo.ThemeName()
	*s.formDark = s.repo.DarkMode()
	s.formKind = "settings"

	themeOptions := make([]huh.Option[string], len(study.ColorNames))
	for i, c := range study.ColorNames {
		dot := accent(study.Palette[c]).Render("●")
		themeOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", dot, c), c)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your Name").Value(s.formUsername),
			huh.NewSelect[string]().Title("Theme Color").Options(themeOptions...).Value(s.formTheme),
			huh.NewConfirm().Title("Dark Mode").Value(s.formDark),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showClearForm() (settingsModel, tea.Cmd) {
	*s.formConfirm = false
	s.formKind = "clear"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete ALL data?").
				Description("Subjects, tasks, notes and study history will be erased.").
				Affirmative("Delete everything").
				Negative("Cancel").
				Value(s.formConfirm),
		),
	).WithShowHelp(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if s.formKind == "clear" {
			if !*s.formConfirm {
				return s, nil
			}
			if err := s.repo.ClearAll(); err != nil {
				return s, func() tea.Msg { return errStatus(err) }
			}
			s.tracker.Reset()
			return s, func() tea.Msg { return statusMsg{text: "All data cleared"} }
		}
		return s, s.saveSettings()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	if err := s.repo.SetUsername(*s.formUsername); err != nil {
		return func() tea.Msg { return errStatus(err) }
	}
	if err := s.repo.SetThemeName(*s.formTheme); err != nil {
		return func() tea.Msg { return errStatus(err) }
	}
	if err := s.repo.SetDarkMode(*s.formDark); err != nil {
		return func() tea.Msg { return errStatus(err) }
	}
	return func() tea.Msg { return statusMsg{text: "Settings saved"} }
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		if s.formKind == "clear" {
			title = errorStyle.Bold(true).Render("Clear All Data")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	hex, _ := s.repo.ThemeAccent()
	themeDot := accent(hex).Render("●")
	darkLabel := "off"
	if s.repo.DarkMode() {
		darkLabel = "on"
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  %-18s %s", "Name", s.repo.Username()),
		fmt.Sprintf("  %-18s %s %s", "Theme", themeDot, s.repo.ThemeName()),
		fmt.Sprintf("  %-18s %s", "Dark mode", darkLabel),
		fmt.Sprintf("  %-18s %s", "Total studied", timefmt.Format(s.repo.TotalMinutes())),
		"",
		mutedStyle.Render("  enter: edit settings  d: clear all data"),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
