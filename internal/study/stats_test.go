package study

import (
	"testing"
	"time"
)

func TestTaskCompletionPercent(t *testing.T) {
	r := newTestRepo(t)
	if got := r.TaskCompletionPercent(); got != 0 {
		t.Fatalf("empty completion = %d", got)
	}

	r.AddTaskAt("Essay", "Math", "2025-01-10", testNow)
	if got := r.PendingTaskCount(); got != 1 {
		t.Fatalf("pending = %d", got)
	}
	r.ToggleTask(0)
	if got := r.PendingTaskCount(); got != 0 {
		t.Fatalf("pending = %d", got)
	}
	if got := r.TaskCompletionPercent(); got != 100 {
		t.Fatalf("completion = %d", got)
	}

	r.AddTaskAt("Lab", "Bio", "2025-01-10", testNow)
	r.AddTaskAt("Read", "Bio", "2025-01-10", testNow)
	if got := r.TaskCompletionPercent(); got != 33 {
		t.Fatalf("completion = %d, want 33", got)
	}
}

func TestSubjectTotalsAndShares(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Math", "blue")
	r.AddSubject("Bio", "green")
	r.AddSubject("History", "red")
	r.AddStudyMinutes("Math", 30)
	r.AddStudyMinutes("Bio", 90)

	totals := r.SubjectTotals()
	if totals["Math"] != 30 || totals["Bio"] != 90 || totals["History"] != 0 {
		t.Fatalf("totals: %+v", totals)
	}

	shares := r.SubjectShares()
	if shares[0].Name != "Bio" || shares[0].Percent != 75 {
		t.Fatalf("top share: %+v", shares[0])
	}
	if shares[1].Name != "Math" || shares[1].Percent != 25 {
		t.Fatalf("second share: %+v", shares[1])
	}
	if shares[2].Name != "History" || shares[2].Percent != 0 {
		t.Fatalf("third share: %+v", shares[2])
	}

	sum := 0
	for _, s := range shares {
		sum += s.Percent
	}
	if sum < 100-len(shares) || sum > 100+len(shares) {
		t.Fatalf("share sum %d outside rounding tolerance", sum)
	}
}

func TestSharesAllZeroWhenNothingStudied(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Math", "blue")
	r.AddSubject("Bio", "green")

	for _, s := range r.SubjectShares() {
		if s.Percent != 0 {
			t.Fatalf("zero-total share: %+v", s)
		}
	}
}

func TestSharesStableTieOrder(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Alpha", "blue")
	r.AddSubject("Beta", "green")
	r.AddSubject("Gamma", "red")
	r.AddStudyMinutes("Alpha", 10)
	r.AddStudyMinutes("Beta", 10)
	r.AddStudyMinutes("Gamma", 10)

	shares := r.SubjectShares()
	if shares[0].Name != "Alpha" || shares[1].Name != "Beta" || shares[2].Name != "Gamma" {
		t.Fatalf("tie order not stable: %+v", shares)
	}
}

func TestWeeklySeriesScaleFloor(t *testing.T) {
	s := newTestStore(t)
	tr := newTestTracker(t, s)
	now := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)

	series := WeeklySeries(tr, now)
	if len(series.Days) != 7 {
		t.Fatalf("got %d days", len(series.Days))
	}
	for _, d := range series.Days {
		if d.Minutes != 0 {
			t.Fatalf("quiet week has minutes: %+v", d)
		}
	}
	if series.Scale != 10 {
		t.Fatalf("scale = %d, want floor 10", series.Scale)
	}

	// A busy day raises the scale above the floor.
	for i := 0; i < 42; i++ {
		tr.CommitMinute(now, ModeStudy)
	}
	series = WeeklySeries(tr, now)
	if series.Scale != 42 {
		t.Fatalf("scale = %d, want 42", series.Scale)
	}
}

func TestSnapshot(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Math", "blue")
	r.AddSubject("Bio", "green")
	r.AddStudyMinutes("Math", 90)
	r.AddStudyMinutes("Bio", 45)
	r.AddTaskAt("Essay", "Math", "2025-01-10", testNow)

	snap := r.Snapshot()
	if len(snap.Subjects) != 2 || len(snap.Tasks) != 1 {
		t.Fatalf("snapshot shape: %+v", snap)
	}
	if snap.TotalMinutes != 135 || snap.GrandTotal != "2h 15m" {
		t.Fatalf("grand total: %d %q", snap.TotalMinutes, snap.GrandTotal)
	}
}
