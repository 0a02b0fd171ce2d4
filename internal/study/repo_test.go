package study

import (
	"errors"
	"testing"
	"time"

	"studymate/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := NewRepository(newTestStore(t))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return r
}

var testNow = time.Date(2025, 1, 8, 10, 30, 0, 0, time.UTC)

// ============================================================
// Subjects
// ============================================================

func TestAddSubject(t *testing.T) {
	r := newTestRepo(t)
	if err := r.AddSubject("Math", "blue"); err != nil {
		t.Fatal(err)
	}
	subs := r.Subjects()
	if len(subs) != 1 || subs[0].Name != "Math" || subs[0].Color != "blue" {
		t.Fatalf("unexpected subjects: %+v", subs)
	}
	if got := subs[0].TimeStudied(); got != "0m" {
		t.Fatalf("new subject time = %q, want 0m", got)
	}
}

func TestAddSubjectValidation(t *testing.T) {
	r := newTestRepo(t)
	if err := r.AddSubject("  ", "blue"); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: got %v", err)
	}
	if err := r.AddSubject("Math", "magenta"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad color: got %v", err)
	}
}

func TestAddSubjectDuplicate(t *testing.T) {
	r := newTestRepo(t)
	if err := r.AddSubject("Math", "blue"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddSubject("Math", "red"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}
	// Case-sensitive: "math" is a different subject.
	if err := r.AddSubject("math", "red"); err != nil {
		t.Fatalf("lowercase variant rejected: %v", err)
	}
}

func TestUpdateSubject(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Math", "blue")
	r.AddSubject("Bio", "green")

	if err := r.UpdateSubject(0, "Maths", "purple"); err != nil {
		t.Fatal(err)
	}
	subs := r.Subjects()
	if subs[0].Name != "Maths" || subs[0].Color != "purple" {
		t.Fatalf("edit not applied: %+v", subs[0])
	}

	// Renaming onto an existing name is rejected.
	if err := r.UpdateSubject(0, "Bio", "purple"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}
	// Keeping your own name is fine.
	if err := r.UpdateSubject(0, "Maths", "red"); err != nil {
		t.Fatal(err)
	}
	// Editing a gone index is a no-op.
	if err := r.UpdateSubject(9, "X", "blue"); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteSubjectDoesNotCascade(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Math", "red")
	if err := r.AddTaskAt("Essay", "Math", "2025-01-10", testNow); err != nil {
		t.Fatal(err)
	}
	r.SaveNote(-1, "Formulas", "Math", "quadratic", testNow)

	if err := r.DeleteSubject(0); err != nil {
		t.Fatal(err)
	}

	tasks := r.Tasks(TaskFilter{})
	if len(tasks) != 1 {
		t.Fatalf("task was cascaded away: %+v", tasks)
	}
	notes := r.SearchNotes("")
	if len(notes) != 1 {
		t.Fatalf("note was cascaded away: %+v", notes)
	}
	// Dangling references degrade to the default color.
	if got := r.ColorFor("Math"); got != DefaultColor {
		t.Fatalf("ColorFor dangling = %q, want %q", got, DefaultColor)
	}
}

func TestAddStudyMinutes(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Math", "blue")

	if err := r.AddStudyMinutes("Math", 90); err != nil {
		t.Fatal(err)
	}
	if got := r.Subjects()[0].TimeStudied(); got != "1h 30m" {
		t.Fatalf("got %q", got)
	}
	// Dangling subject is a no-op, not an error.
	if err := r.AddStudyMinutes("Gone", 5); err != nil {
		t.Fatal(err)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddTaskValidation(t *testing.T) {
	r := newTestRepo(t)
	cases := []struct{ name, subject, date string }{
		{"", "Math", "2025-01-10"},
		{"Essay", "", "2025-01-10"},
		{"Essay", "Math", ""},
		{"Essay", "Math", "not-a-date"},
		{"Essay", "Math", "2025-01-07"}, // yesterday
	}
	for _, c := range cases {
		if err := r.AddTaskAt(c.name, c.subject, c.date, testNow); !errors.Is(err, ErrValidation) {
			t.Errorf("AddTaskAt(%q,%q,%q) = %v, want ErrValidation", c.name, c.subject, c.date, err)
		}
	}
	// Due today is allowed.
	if err := r.AddTaskAt("Essay", "Math", "2025-01-08", testNow); err != nil {
		t.Fatal(err)
	}
}

func TestToggleAndFilterTasks(t *testing.T) {
	r := newTestRepo(t)
	r.AddTaskAt("Essay", "Math", "2025-01-10", testNow)
	r.AddTaskAt("Lab", "Bio", "2025-01-11", testNow)

	if got := r.PendingTaskCount(); got != 2 {
		t.Fatalf("pending = %d", got)
	}
	if err := r.ToggleTask(0); err != nil {
		t.Fatal(err)
	}
	if got := r.PendingTaskCount(); got != 1 {
		t.Fatalf("pending after toggle = %d", got)
	}

	done := r.Tasks(TaskFilter{Status: TasksCompleted})
	if len(done) != 1 || done[0].Name != "Essay" || done[0].Index != 0 {
		t.Fatalf("completed filter: %+v", done)
	}
	bio := r.Tasks(TaskFilter{Subject: "Bio"})
	if len(bio) != 1 || bio[0].Name != "Lab" {
		t.Fatalf("subject filter: %+v", bio)
	}
	both := r.Tasks(TaskFilter{Status: TasksPending, Subject: "Math"})
	if len(both) != 0 {
		t.Fatalf("combined filter: %+v", both)
	}

	// Toggle back.
	r.ToggleTask(0)
	if got := r.PendingTaskCount(); got != 2 {
		t.Fatalf("pending after re-toggle = %d", got)
	}
	// Out of range is a no-op.
	if err := r.ToggleTask(99); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteTask(t *testing.T) {
	r := newTestRepo(t)
	r.AddTaskAt("Essay", "Math", "2025-01-10", testNow)
	r.AddTaskAt("Lab", "Bio", "2025-01-11", testNow)

	if err := r.DeleteTask(0); err != nil {
		t.Fatal(err)
	}
	left := r.Tasks(TaskFilter{})
	if len(left) != 1 || left[0].Name != "Lab" {
		t.Fatalf("got %+v", left)
	}
}

// ============================================================
// Notes
// ============================================================

func TestSaveNoteAddAndEdit(t *testing.T) {
	r := newTestRepo(t)
	if err := r.SaveNote(-1, "Biology Ch.1", "Biology", "cells", testNow); err != nil {
		t.Fatal(err)
	}
	notes := r.SearchNotes("")
	if len(notes) != 1 || notes[0].Date != "8 Jan" {
		t.Fatalf("got %+v", notes)
	}

	// Replace in place.
	if err := r.SaveNote(0, "Biology Ch.2", "Biology", "mitosis", testNow.AddDate(0, 1, 0)); err != nil {
		t.Fatal(err)
	}
	notes = r.SearchNotes("")
	if len(notes) != 1 || notes[0].Title != "Biology Ch.2" || notes[0].Date != "8 Feb" {
		t.Fatalf("edit not applied: %+v", notes)
	}

	// Editing a deleted index is a no-op.
	if err := r.SaveNote(5, "X", "Y", "Z", testNow); err != nil {
		t.Fatal(err)
	}
	if got := len(r.SearchNotes("")); got != 1 {
		t.Fatalf("note count = %d", got)
	}
}

func TestSaveNoteValidation(t *testing.T) {
	r := newTestRepo(t)
	for _, c := range [][3]string{
		{"", "Math", "content"},
		{"Title", "", "content"},
		{"Title", "Math", "  "},
	} {
		if err := r.SaveNote(-1, c[0], c[1], c[2], testNow); !errors.Is(err, ErrValidation) {
			t.Errorf("SaveNote(%v) = %v, want ErrValidation", c, err)
		}
	}
}

func TestSearchNotes(t *testing.T) {
	r := newTestRepo(t)
	r.SaveNote(-1, "Biology Ch.1", "Science", "cells divide", testNow)
	r.SaveNote(-1, "History essay", "Biology", "the war", testNow)
	r.SaveNote(-1, "Chemistry", "Science", "acids", testNow)

	hits := r.SearchNotes("bio")
	if len(hits) != 2 {
		t.Fatalf("search 'bio': %+v", hits)
	}
	if hits[0].Title != "Biology Ch.1" || hits[1].Subject != "Biology" {
		t.Fatalf("wrong matches: %+v", hits)
	}
	if got := len(r.SearchNotes("ACIDS")); got != 1 {
		t.Fatalf("case-insensitive content search failed: %d", got)
	}
}

// ============================================================
// Persistence round trips
// ============================================================

func TestRepositoryReload(t *testing.T) {
	s := newTestStore(t)
	r, err := NewRepository(s)
	if err != nil {
		t.Fatal(err)
	}
	r.AddSubject("Math", "blue")
	r.AddStudyMinutes("Math", 150)
	r.AddTaskAt("Essay", "Math", "2025-01-10", testNow)
	r.SaveNote(-1, "Formulas", "Math", "quadratic", testNow)

	r2, err := NewRepository(s)
	if err != nil {
		t.Fatal(err)
	}
	subs := r2.Subjects()
	if len(subs) != 1 || subs[0].Minutes != 150 || subs[0].TimeStudied() != "2h 30m" {
		t.Fatalf("subjects after reload: %+v", subs)
	}
	if len(r2.Tasks(TaskFilter{})) != 1 || len(r2.SearchNotes("")) != 1 {
		t.Fatal("collections lost on reload")
	}
}

func TestCorruptCollectionRecovers(t *testing.T) {
	s := newTestStore(t)
	s.Set(store.KeySubjects, "{not json")
	s.Set(store.KeyTasks, "42")

	r, err := NewRepository(s)
	if err != nil {
		t.Fatalf("startup failed on corrupt data: %v", err)
	}
	if len(r.Subjects()) != 0 || r.TaskCount() != 0 {
		t.Fatal("corrupt collections should load empty")
	}
}

func TestGenerationBumpsOnMutation(t *testing.T) {
	r := newTestRepo(t)
	g0 := r.Generation()
	r.AddSubject("Math", "blue")
	if r.Generation() == g0 {
		t.Fatal("generation did not change")
	}
}

func TestClearAll(t *testing.T) {
	r := newTestRepo(t)
	r.AddSubject("Math", "blue")
	r.AddTaskAt("Essay", "Math", "2025-01-10", testNow)
	r.SetUsername("Ada")

	if err := r.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if len(r.Subjects()) != 0 || r.TaskCount() != 0 {
		t.Fatal("collections not emptied")
	}
	if got := r.Username(); got != DefaultUsername {
		t.Fatalf("username after clear = %q", got)
	}
}

// ============================================================
// Scalars
// ============================================================

func TestUsernameDefault(t *testing.T) {
	r := newTestRepo(t)
	if r.HasUsername() {
		t.Fatal("fresh store should have no username")
	}
	if got := r.Username(); got != "Student" {
		t.Fatalf("default username = %q", got)
	}
	r.SetUsername("  Ada  ")
	if got := r.Username(); got != "Ada" {
		t.Fatalf("got %q", got)
	}
	// Blank falls back to the default rather than erroring.
	r.SetUsername("   ")
	if got := r.Username(); got != "Student" {
		t.Fatalf("got %q", got)
	}
}

func TestThemeScalars(t *testing.T) {
	r := newTestRepo(t)
	if got := r.ThemeName(); got != "blue" {
		t.Fatalf("default theme = %q", got)
	}
	if err := r.SetThemeName("chartreuse"); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v", err)
	}
	if err := r.SetThemeName("purple"); err != nil {
		t.Fatal(err)
	}
	hex, shadow := r.ThemeAccent()
	if hex != "#7C3AED" {
		t.Fatalf("accent = %q", hex)
	}
	if shadow != "rgba(124,58,237,0.4)" {
		t.Fatalf("shadow = %q", shadow)
	}
}

func TestDarkModeAndActivePage(t *testing.T) {
	r := newTestRepo(t)
	if r.DarkMode() {
		t.Fatal("dark mode should default off")
	}
	r.SetDarkMode(true)
	if !r.DarkMode() {
		t.Fatal("dark mode not stored")
	}
	r.SetActivePage("notes")
	if got := r.ActivePage(); got != "notes" {
		t.Fatalf("active page = %q", got)
	}
}
