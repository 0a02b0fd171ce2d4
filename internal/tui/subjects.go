package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"studymate/internal/study"
)

type subjectsModel struct {
	repo   *study.Repository
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	editing    int // index being edited, -1 for new

	formName  *string
	formColor *string
}

func newSubjectsModel(repo *study.Repository) subjectsModel {
	name, color := "", study.DefaultColor
	return subjectsModel{
		repo:      repo,
		editing:   -1,
		formName:  &name,
		formColor: &color,
	}
}

func (s *subjectsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s subjectsModel) update(msg tea.Msg) (subjectsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	subjects := s.repo.Subjects()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if s.cursor < len(subjects)-1 {
			s.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return s.showForm(-1)
	case key.Matches(keyMsg, keys.Enter):
		if s.cursor < len(subjects) {
			return s.showForm(s.cursor)
		}
	case key.Matches(keyMsg, keys.Delete):
		if s.cursor < len(subjects) {
			if err := s.repo.DeleteSubject(s.cursor); err != nil {
				return s, func() tea.Msg { return errStatus(err) }
			}
			if s.cursor > 0 {
				s.cursor--
			}
		}
	}
	return s, nil
}

func (s subjectsModel) showForm(editIndex int) (subjectsModel, tea.Cmd) {
	s.editing = editIndex
	if editIndex >= 0 {
		subj := s.repo.Subjects()[editIndex]
		*s.formName = subj.Name
		*s.formColor = subj.Color
	} else {
		*s.formName = ""
		*s.formColor = study.DefaultColor
	}

	options := make([]huh.Option[string], len(study.ColorNames))
	for i, c := range study.ColorNames {
		dot := accent(study.Palette[c]).Render("●")
		options[i] = huh.NewOption(fmt.Sprintf("%s %s", dot, c), c)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject Name").Value(s.formName),
			huh.NewSelect[string]().Title("Color").Options(options...).Value(s.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s subjectsModel) updateForm(msg tea.Msg) (subjectsModel, tea.Cmd) {
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
		var err error
		if s.editing >= 0 {
			err = s.repo.UpdateSubject(s.editing, *s.formName, *s.formColor)
		} else {
			err = s.repo.AddSubject(*s.formName, *s.formColor)
		}
		if err != nil {
			return s, func() tea.Msg { return errStatus(err) }
		}
		return s, func() tea.Msg { return statusMsg{text: "Subject saved"} }
	}

	return s, cmd
}

func (s subjectsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("New Subject")
		if s.editing >= 0 {
			title = titleStyle.Render("Edit Subject")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Subjects")
	subjects := s.repo.Subjects()
	if len(subjects) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No subjects yet. Press n to create one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %s", "", "Name", "Time Studied")))

	for i, subj := range subjects {
		dot := accent(study.AccentHex(subj.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s %s", cursor, dot, subj.Name, subj.TimeStudied())))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
