package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"studymate/internal/export"
	"studymate/internal/study"
)

// App is the root Bubble Tea model.
type App struct {
	repo      *study.Repository
	tracker   *study.Tracker
	timer     *study.Timer
	exportDir string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// First-run welcome form asking for the user's name.
	welcomeActive bool
	welcomeForm   *huh.Form
	welcomeName   *string

	dashboard dashboardModel
	tasks     tasksModel
	subjects  subjectsModel
	notes     notesModel
	timerView timerViewModel
	progress  progressModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(repo *study.Repository, tracker *study.Tracker, timer *study.Timer, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	name := ""
	a := App{
		repo:        repo,
		tracker:     tracker,
		timer:       timer,
		exportDir:   exportDir,
		activeView:  viewForPage(repo.ActivePage()),
		welcomeName: &name,
		dashboard:   newDashboardModel(repo, tracker),
		tasks:       newTasksModel(repo),
		subjects:    newSubjectsModel(repo),
		notes:       newNotesModel(repo),
		timerView:   newTimerViewModel(repo, timer),
		progress:    newProgressModel(repo, tracker),
		settings:    newSettingsModel(repo, tracker),
		help:        h,
	}

	if !repo.HasUsername() {
		a.welcomeActive = true
		a.welcomeForm = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Welcome to studymate! What should we call you?").
					Value(a.welcomeName),
			),
		).WithShowHelp(true)
	}

	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if a.welcomeActive {
		cmds = append(cmds, a.welcomeForm.Init())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.subjects.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.timerView.setSize(a.width, contentHeight)
		a.progress.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.welcomeActive {
			return a.updateWelcome(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewSubjects)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewNotes)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewTimer)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewProgress)
		case key.Matches(msg, keys.Tab7):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % 7)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Ticks always drive the countdown, whichever view is showing.
		var cmd tea.Cmd
		a.timerView, cmd = a.timerView.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.progress, cmd = a.progress.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case sessionDoneMsg:
		if msg.mode == "Break" {
			a.status = "Break over. Back to work!"
		} else {
			a.status = "Study session complete! \a"
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	a.repo.SetActivePage(pageKeys[v])
	return a, nil
}

func (a App) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.welcomeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.welcomeForm = f
	}
	if a.welcomeForm.State == huh.StateCompleted {
		a.welcomeActive = false
		if err := a.repo.SetUsername(*a.welcomeName); err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			return a, nil
		}
		a.status = fmt.Sprintf("Welcome, %s!", a.repo.Username())
		return a, nil
	}
	return a, cmd
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewSubjects:
		a.subjects, cmd = a.subjects.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewTimer:
		a.timerView, cmd = a.timerView.update(msg)
	case viewProgress:
		a.progress, cmd = a.progress.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSubjects:
		return a.subjects.formActive
	case viewNotes:
		return a.notes.formActive
	case viewTimer:
		return a.timerView.picking
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.welcomeActive {
		return a.renderWelcome()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewSubjects:
		content = a.subjects.view()
	case viewNotes:
		content = a.notes.view()
	case viewTimer:
		content = a.timerView.view()
	case viewProgress:
		content = a.progress.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderWelcome() string {
	w := a.width - 4
	title := titleStyle.Render("studymate")
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", a.welcomeForm.View()),
	)
}

func (a App) renderHeader() string {
	hex, _ := a.repo.ThemeAccent()

	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := accent(hex).Bold(true).Render("studymate")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator in footer
	timerInfo := ""
	switch a.timer.State() {
	case study.TimerRunning:
		timerInfo = successStyle.Render(" ● " + formatClock(a.timer.SecondsLeft()))
	case study.TimerPaused:
		timerInfo = warningStyle.Render(" ⏸ " + formatClock(a.timer.SecondsLeft()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON", "HTML report"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		snap := a.repo.Snapshot()
		dateStr := now.Format("2006-01-02")

		var path string
		var err error
		switch format {
		case 0:
			path = filepath.Join(a.exportDir, fmt.Sprintf("studymate-report-%s.csv", dateStr))
			err = export.ToCSV(snap, path)
		case 1:
			path = filepath.Join(a.exportDir, fmt.Sprintf("studymate-report-%s.json", dateStr))
			err = export.ToJSON(snap, path, now)
		default:
			series := study.WeeklySeries(a.tracker, now)
			path = filepath.Join(a.exportDir, fmt.Sprintf("studymate-report-%s.html", dateStr))
			err = export.ToHTML(snap, series, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
