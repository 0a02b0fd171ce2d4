package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"studymate/internal/study"
)

type notesModel struct {
	repo   *study.Repository
	width  int
	height int

	cursor  int
	term    string
	reading bool // expanded view of the selected note

	formActive bool
	form       *huh.Form
	formKind   string // "note", "search"
	editing    int    // index being edited, -1 for new

	formTitle   *string
	formSubject *string
	formContent *string
	formTerm    *string
}

func newNotesModel(repo *study.Repository) notesModel {
	title, subject, content, term := "", "", "", ""
	return notesModel{
		repo:        repo,
		editing:     -1,
		formTitle:   &title,
		formSubject: &subject,
		formContent: &content,
		formTerm:    &term,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
}

func (n notesModel) visible() []study.NoteRef {
	return n.repo.SearchNotes(n.term)
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return n, nil
	}

	if n.reading {
		if key.Matches(keyMsg, keys.Back) {
			n.reading = false
		}
		if key.Matches(keyMsg, keys.Enter) {
			notes := n.visible()
			if n.cursor < len(notes) {
				n.reading = false
				return n.showNoteForm(n.cursor)
			}
		}
		return n, nil
	}

	notes := n.visible()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if n.cursor > 0 {
			n.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if n.cursor < len(notes)-1 {
			n.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return n.showNoteForm(-1)
	case key.Matches(keyMsg, keys.Enter):
		if n.cursor < len(notes) {
			n.reading = true
		}
	case key.Matches(keyMsg, keys.Search):
		return n.showSearchForm()
	case key.Matches(keyMsg, keys.Delete):
		if n.cursor < len(notes) {
			if err := n.repo.DeleteNote(notes[n.cursor].Index); err != nil {
				return n, func() tea.Msg { return errStatus(err) }
			}
			if n.cursor > 0 {
				n.cursor--
			}
		}
	case key.Matches(keyMsg, keys.Back):
		if n.term != "" {
			n.term = ""
			n.cursor = 0
		}
	}
	return n, nil
}

func (n notesModel) showNoteForm(editIndex int) (notesModel, tea.Cmd) {
	subjects := n.repo.Subjects()
	if len(subjects) == 0 {
		return n, func() tea.Msg {
			return statusMsg{text: "No subjects yet. Press 3 to create one first.", isError: true}
		}
	}

	n.editing = -1
	if editIndex >= 0 {
		note := n.visible()[editIndex]
		n.editing = note.Index
		*n.formTitle = note.Title
		*n.formSubject = note.Subject
		*n.formContent = note.Content
	} else {
		*n.formTitle = ""
		*n.formSubject = subjects[0].Name
		*n.formContent = ""
	}
	n.formKind = "note"

	options := make([]huh.Option[string], len(subjects))
	for i, s := range subjects {
		options[i] = huh.NewOption(s.Name, s.Name)
	}

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(n.formTitle),
			huh.NewSelect[string]().Title("Subject").Options(options...).Value(n.formSubject),
			huh.NewText().Title("Content").Value(n.formContent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) showSearchForm() (notesModel, tea.Cmd) {
	*n.formTerm = n.term
	n.formKind = "search"

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search notes").Value(n.formTerm),
		),
	).WithShowHelp(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		if n.formKind == "search" {
			n.term = strings.TrimSpace(*n.formTerm)
			n.cursor = 0
			return n, nil
		}
		if err := n.repo.SaveNote(n.editing, *n.formTitle, *n.formSubject, *n.formContent, time.Now()); err != nil {
			return n, func() tea.Msg { return errStatus(err) }
		}
		return n, func() tea.Msg { return statusMsg{text: "Note saved"} }
	}

	return n, cmd
}

func (n notesModel) view() string {
	w := n.width - 4

	if n.formActive && n.form != nil {
		title := titleStyle.Render("New Note")
		if n.formKind == "search" {
			title = titleStyle.Render("Search")
		} else if n.editing >= 0 {
			title = titleStyle.Render("Edit Note")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", n.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if n.reading {
		return n.renderReader(w)
	}

	title := titleStyle.Render("Notes")
	if n.term != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Bottom,
			title, "  ", mutedStyle.Render(fmt.Sprintf("matching %q", n.term)),
		)
	}

	notes := n.visible()
	if len(notes) == 0 {
		hint := "No notes yet. Press n to write one."
		if n.term != "" {
			hint = "No matches. Press esc to clear the search."
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render(hint),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, note := range notes {
		cursor := "  "
		style := normalItemStyle
		if i == n.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := accent(study.AccentHex(n.repo.ColorFor(note.Subject))).Render("●")
		rows = append(rows, fmt.Sprintf("%s%s %s %s",
			cursor, dot,
			style.Render(fmt.Sprintf("%-28s", note.Title)),
			mutedStyle.Render(note.Date),
		))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: read  /: search  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (n notesModel) renderReader(w int) string {
	notes := n.visible()
	if n.cursor >= len(notes) {
		return panelStyle.Width(w).Render(mutedStyle.Render("Note no longer exists"))
	}
	note := notes[n.cursor]

	dot := accent(study.AccentHex(n.repo.ColorFor(note.Subject))).Render("●")
	header := titleStyle.Render(fmt.Sprintf("%s %s", dot, note.Title))
	meta := mutedStyle.Render(fmt.Sprintf("%s · %s", note.Subject, note.Date))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		meta,
		"",
		normalItemStyle.Render(note.Content),
		"",
		mutedStyle.Render("enter: edit  esc: back"),
	))
}
