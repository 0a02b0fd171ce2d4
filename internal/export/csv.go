// Package export renders a repository snapshot into the downloadable report
// formats: CSV, JSON and a styled HTML report with the weekly trend chart.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"studymate/internal/study"
)

// ToCSV writes the subjects summary and the task list as one CSV document,
// mirroring the two sections of the HTML report.
func ToCSV(snap study.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Subject Name", "Total Time Studied"}); err != nil {
		return err
	}
	for _, s := range snap.Subjects {
		if err := w.Write([]string{s.Name, s.TimeStudied()}); err != nil {
			return err
		}
	}
	if err := w.Write([]string{"GRAND TOTAL", snap.GrandTotal}); err != nil {
		return err
	}

	if err := w.Write([]string{}); err != nil {
		return err
	}
	if err := w.Write([]string{"Task Name", "Task Subject", "Due Date", "Status"}); err != nil {
		return err
	}
	for _, t := range snap.Tasks {
		status := "Pending"
		if t.Completed {
			status = "Completed"
		}
		if err := w.Write([]string{t.Name, t.Subject, t.Date, status}); err != nil {
			return err
		}
	}

	return w.Error()
}
