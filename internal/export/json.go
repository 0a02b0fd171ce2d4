package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"studymate/internal/study"
)

type jsonExport struct {
	ExportedAt   string        `json:"exported_at"`
	TotalMinutes int           `json:"total_minutes"`
	GrandTotal   string        `json:"grand_total"`
	Subjects     []jsonSubject `json:"subjects"`
	Tasks        []jsonTask    `json:"tasks"`
}

type jsonSubject struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Minutes     int    `json:"minutes"`
	TimeStudied string `json:"time_studied"`
}

type jsonTask struct {
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	DueDate   string `json:"due_date"`
	Completed bool   `json:"completed"`
}

// ToJSON writes the snapshot as indented JSON.
func ToJSON(snap study.Snapshot, path string, now time.Time) error {
	out := jsonExport{
		ExportedAt:   now.UTC().Format(time.RFC3339),
		TotalMinutes: snap.TotalMinutes,
		GrandTotal:   snap.GrandTotal,
		Subjects:     make([]jsonSubject, 0, len(snap.Subjects)),
		Tasks:        make([]jsonTask, 0, len(snap.Tasks)),
	}
	for _, s := range snap.Subjects {
		out.Subjects = append(out.Subjects, jsonSubject{
			Name:        s.Name,
			Color:       s.Color,
			Minutes:     s.Minutes,
			TimeStudied: s.TimeStudied(),
		})
	}
	for _, t := range snap.Tasks {
		out.Tasks = append(out.Tasks, jsonTask{
			Name:      t.Name,
			Subject:   t.Subject,
			DueDate:   t.Date,
			Completed: t.Completed,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
