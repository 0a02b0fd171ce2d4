package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewSubjects
	viewNotes
	viewTimer
	viewProgress
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Subjects", "Notes", "Timer", "Progress", "Settings"}

// pageKeys are the persisted identifiers for each view, so the app can
// reopen where the user left off.
var pageKeys = []string{"dashboard", "tasks", "subjects", "notes", "timer", "progress", "settings"}

func viewForPage(page string) viewState {
	for i, k := range pageKeys {
		if k == page {
			return viewState(i)
		}
	}
	return viewDashboard
}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type sessionDoneMsg struct {
	mode string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders a countdown as MM:SS.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func errStatus(err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
