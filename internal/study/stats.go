package study

import (
	"math"
	"sort"
	"time"

	"studymate/internal/timefmt"
)

// chartScaleFloor keeps a quiet week from rendering as a visually maxed-out
// chart: the normalization denominator never drops below 10 minutes.
const chartScaleFloor = 10

// PendingTaskCount counts tasks not yet completed.
func (r *Repository) PendingTaskCount() int {
	n := 0
	for _, t := range r.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// TaskCompletionPercent is the rounded share of completed tasks, zero when
// there are none.
func (r *Repository) TaskCompletionPercent() int {
	if len(r.tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range r.tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(r.tasks)) * 100))
}

// SubjectTotals maps each subject name to its cumulative study minutes.
func (r *Repository) SubjectTotals() map[string]int {
	totals := make(map[string]int, len(r.subjects))
	for _, s := range r.subjects {
		totals[s.Name] = s.Minutes
	}
	return totals
}

// TotalMinutes sums study time across all subjects.
func (r *Repository) TotalMinutes() int {
	total := 0
	for _, s := range r.subjects {
		total += s.Minutes
	}
	return total
}

// SubjectShare is one subject's slice of the overall study time.
type SubjectShare struct {
	Subject
	Percent int
}

// SubjectShares returns subjects ordered by descending minutes (stable, so
// ties keep insertion order), each with its rounded percentage of the
// total. All percentages are zero when nothing has been studied.
func (r *Repository) SubjectShares() []SubjectShare {
	total := r.TotalMinutes()
	shares := make([]SubjectShare, len(r.subjects))
	for i, s := range r.subjects {
		shares[i] = SubjectShare{Subject: s}
		if total > 0 {
			shares[i].Percent = int(math.Round(float64(s.Minutes) / float64(total) * 100))
		}
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Minutes > shares[j].Minutes
	})
	return shares
}

// WeekSeries is the 7-day window prepared for charting: Scale is the
// normalization denominator, floored at 10 minutes.
type WeekSeries struct {
	Days  []DayMinutes
	Scale int
}

// WeeklySeries builds the chart-ready rolling window ending today.
func WeeklySeries(t *Tracker, now time.Time) WeekSeries {
	days := t.Last7Days(now)
	maxVal := chartScaleFloor
	for _, d := range days {
		if d.Minutes > maxVal {
			maxVal = d.Minutes
		}
	}
	return WeekSeries{Days: days, Scale: maxVal}
}

// Snapshot is the flattened, serializable view handed to report
// formatters.
type Snapshot struct {
	Subjects     []Subject
	Tasks        []Task
	TotalMinutes int
	GrandTotal   string
}

// Snapshot flattens the current subjects and tasks plus the formatted
// grand-total study time.
func (r *Repository) Snapshot() Snapshot {
	total := r.TotalMinutes()
	return Snapshot{
		Subjects:     r.Subjects(),
		Tasks:        append([]Task(nil), r.tasks...),
		TotalMinutes: total,
		GrandTotal:   timefmt.Format(total),
	}
}
