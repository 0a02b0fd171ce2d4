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

var taskFilterNames = map[study.TaskStatus]string{
	study.TasksAll:       "All",
	study.TasksPending:   "Pending",
	study.TasksCompleted: "Completed",
}

type tasksModel struct {
	repo   *study.Repository
	width  int
	height int

	filter study.TaskStatus
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName    *string
	formSubject *string
	formDate    *string
}

func newTasksModel(repo *study.Repository) tasksModel {
	name, subject, date := "", "", ""
	return tasksModel{
		repo:        repo,
		formName:    &name,
		formSubject: &subject,
		formDate:    &date,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t tasksModel) visible() []study.TaskRef {
	return t.repo.Tasks(study.TaskFilter{Status: t.filter})
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	tasks := t.visible()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if t.cursor < len(tasks)-1 {
			t.cursor++
		}
	case key.Matches(keyMsg, keys.Filter):
		t.filter = (t.filter + 1) % 3
		t.cursor = 0
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Enter):
		if t.cursor < len(tasks) {
			if err := t.repo.ToggleTask(tasks[t.cursor].Index); err != nil {
				return t, func() tea.Msg { return errStatus(err) }
			}
		}
	case key.Matches(keyMsg, keys.Delete):
		if t.cursor < len(tasks) {
			if err := t.repo.DeleteTask(tasks[t.cursor].Index); err != nil {
				return t, func() tea.Msg { return errStatus(err) }
			}
			if t.cursor > 0 {
				t.cursor--
			}
		}
	case key.Matches(keyMsg, keys.New):
		return t.showNewForm()
	}
	return t, nil
}

func (t tasksModel) showNewForm() (tasksModel, tea.Cmd) {
	subjects := t.repo.Subjects()
	if len(subjects) == 0 {
		return t, func() tea.Msg {
			return statusMsg{text: "No subjects yet. Press 3 to create one first.", isError: true}
		}
	}

	*t.formName = ""
	*t.formSubject = subjects[0].Name
	*t.formDate = time.Now().Format("2006-01-02")

	options := make([]huh.Option[string], len(subjects))
	for i, s := range subjects {
		options[i] = huh.NewOption(s.Name, s.Name)
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(t.formName),
			huh.NewSelect[string]().Title("Subject").Options(options...).Value(t.formSubject),
			huh.NewInput().Title("Due Date (YYYY-MM-DD)").Value(t.formDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		if err := t.repo.AddTaskAt(*t.formName, *t.formSubject, *t.formDate, time.Now()); err != nil {
			return t, func() tea.Msg { return errStatus(err) }
		}
		return t, func() tea.Msg { return statusMsg{text: "Task added"} }
	}

	return t, cmd
}

func (t tasksModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Task"), "", t.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")
	filterLabel := mutedStyle.Render(fmt.Sprintf("[%s]", taskFilterNames[t.filter]))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", filterLabel)

	tasks := t.visible()
	if len(tasks) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No tasks here. Press n to add one."),
		))
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, ref := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "☐"
		nameStyle := style
		if ref.Completed {
			check = "☑"
			nameStyle = strikeStyle
		}
		dot := accent(study.AccentHex(t.repo.ColorFor(ref.Subject))).Render("●")
		row := fmt.Sprintf("%s%s %s %s %s",
			cursor, check, dot,
			nameStyle.Render(fmt.Sprintf("%-24s", ref.Name)),
			mutedStyle.Render(ref.Date),
		)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: toggle  d: delete  f: filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
