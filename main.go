package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"studymate/internal/config"
	"studymate/internal/store"
	"studymate/internal/study"
	"studymate/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	defaultPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(cfg.GetDBPath(defaultPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	repo, err := study.NewRepository(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading data: %v\n", err)
		os.Exit(1)
	}

	tracker, err := study.NewTracker(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading history: %v\n", err)
		os.Exit(1)
	}
	if err := tracker.OnActivate(time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	timer := study.NewTimer(repo, tracker, cfg.Timer.StudyMinutes, cfg.Timer.BreakMinutes)

	app := tui.NewApp(repo, tracker, timer, cfg.GetExportDir())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
