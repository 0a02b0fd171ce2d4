package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studymate/internal/study"
)

func sampleSnapshot() study.Snapshot {
	return study.Snapshot{
		Subjects: []study.Subject{
			{Name: "Math", Color: "blue", Minutes: 150},
			{Name: "Biology", Color: "green", Minutes: 45},
		},
		Tasks: []study.Task{
			{Name: "Essay", Subject: "Math", Date: "2025-01-10", Completed: false},
			{Name: "Lab report", Subject: "Biology", Date: "2025-01-12", Completed: true},
		},
		TotalMinutes: 195,
		GrandTotal:   "3h 15m",
	}
}

func sampleSeries() study.WeekSeries {
	days := []study.DayMinutes{
		{Label: "Thu", Date: "2025-01-02", Minutes: 0},
		{Label: "Fri", Date: "2025-01-03", Minutes: 20},
		{Label: "Sat", Date: "2025-01-04", Minutes: 0},
		{Label: "Sun", Date: "2025-01-05", Minutes: 35},
		{Label: "Mon", Date: "2025-01-06", Minutes: 10},
		{Label: "Tue", Date: "2025-01-07", Minutes: 0},
		{Label: "Wed", Date: "2025-01-08", Minutes: 15},
	}
	return study.WeekSeries{Days: days, Scale: 35}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := ToCSV(sampleSnapshot(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 subjects + grand total + blank + task header + 2 tasks
	if len(records) != 7 {
		t.Fatalf("got %d records: %v", len(records), records)
	}
	if records[1][0] != "Math" || records[1][1] != "2h 30m" {
		t.Fatalf("subject row: %v", records[1])
	}
	if records[3][0] != "GRAND TOTAL" || records[3][1] != "3h 15m" {
		t.Fatalf("total row: %v", records[3])
	}
	if records[6][3] != "Completed" {
		t.Fatalf("task status: %v", records[6])
	}
}

func TestToCSVEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(study.Snapshot{GrandTotal: "0m"}, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	if err := ToJSON(sampleSnapshot(), path, now); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		ExportedAt string `json:"exported_at"`
		GrandTotal string `json:"grand_total"`
		Subjects   []struct {
			Name        string `json:"name"`
			Minutes     int    `json:"minutes"`
			TimeStudied string `json:"time_studied"`
		} `json:"subjects"`
		Tasks []struct {
			Name      string `json:"name"`
			Completed bool   `json:"completed"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.ExportedAt != "2025-01-08T12:00:00Z" {
		t.Fatalf("exported_at = %q", out.ExportedAt)
	}
	if out.GrandTotal != "3h 15m" || len(out.Subjects) != 2 || len(out.Tasks) != 2 {
		t.Fatalf("unexpected export: %+v", out)
	}
	if out.Subjects[0].Minutes != 150 || out.Subjects[0].TimeStudied != "2h 30m" {
		t.Fatalf("subject: %+v", out.Subjects[0])
	}
	if !out.Tasks[1].Completed {
		t.Fatal("task completion lost")
	}
}

// ============================================================
// HTML
// ============================================================

func TestToHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := ToHTML(sampleSnapshot(), sampleSeries(), path); err != nil {
		t.Fatalf("ToHTML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	for _, want := range []string{
		"SUBJECTS SUMMARY",
		"TASKS LIST",
		"GRAND TOTAL",
		"3h 15m",
		"Lab report",
		"Completed",
		`<svg width="300"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// The trend line is a smoothed path: one cubic per day after the
	// first.
	if got := strings.Count(html, "C "); got < 6 {
		t.Fatalf("expected smoothed path segments, got %d", got)
	}
}
