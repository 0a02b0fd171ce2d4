// Package study holds the application core: the domain entities, the
// repository that keeps them consistent with durable storage, the daily
// history tracker, the aggregation helpers and the countdown timer.
package study

import (
	"encoding/json"

	"studymate/internal/timefmt"
)

// Subject is a named category of study with an accent color and cumulative
// studied time. Minutes is the canonical in-memory value; the persisted form
// carries the formatted "2h 30m" string for compatibility.
type Subject struct {
	Name    string
	Color   string
	Minutes int
}

type subjectJSON struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	TimeStudied string `json:"timeStudied"`
}

func (s Subject) MarshalJSON() ([]byte, error) {
	return json.Marshal(subjectJSON{
		Name:        s.Name,
		Color:       s.Color,
		TimeStudied: timefmt.Format(s.Minutes),
	})
}

func (s *Subject) UnmarshalJSON(data []byte) error {
	var j subjectJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	s.Name = j.Name
	s.Color = j.Color
	s.Minutes = timefmt.Parse(j.TimeStudied)
	return nil
}

// TimeStudied returns the display form of the subject's cumulative minutes.
func (s Subject) TimeStudied() string {
	return timefmt.Format(s.Minutes)
}

// Task is a to-do item bound to a subject by name. The subject reference is
// weak: it may dangle after the subject is deleted and is only resolved at
// read time.
type Task struct {
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Date      string `json:"date"` // due date, YYYY-MM-DD
	Completed bool   `json:"completed"`
}

// Note is free-text content tagged with a subject and a short display date
// (day + abbreviated month, no year).
type Note struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Content string `json:"content"`
	Date    string `json:"date"`
}
