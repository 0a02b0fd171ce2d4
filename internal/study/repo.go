package study

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studymate/internal/store"
)

// Repository owns the in-memory mirrors of the persisted collections. Every
// mutation updates memory first, then flushes the affected collection to the
// store, then bumps the generation counter so cached derived views know they
// are stale.
type Repository struct {
	store *store.Store

	subjects []Subject
	tasks    []Task
	notes    []Note

	gen uint64
}

// NewRepository loads all collections from the store. Corrupt or missing
// stored JSON is treated as an empty collection; it never fails startup.
func NewRepository(s *store.Store) (*Repository, error) {
	r := &Repository{store: s}
	if err := loadCollection(s, store.KeySubjects, &r.subjects); err != nil {
		return nil, err
	}
	if err := loadCollection(s, store.KeyTasks, &r.tasks); err != nil {
		return nil, err
	}
	if err := loadCollection(s, store.KeyNotes, &r.notes); err != nil {
		return nil, err
	}
	return r, nil
}

func loadCollection[T any](s *store.Store, key string, dst *[]T) error {
	raw, ok, err := s.Get(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Corrupt data is recovered locally: start from an empty
		// collection rather than failing startup.
		return nil
	}
	*dst = items
	return nil
}

// Generation increments on every mutation. Consumers compare it against the
// value they last rendered to decide whether derived data is stale.
func (r *Repository) Generation() uint64 { return r.gen }

func (r *Repository) flush(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.store.Set(key, string(data)); err != nil {
		return err
	}
	r.gen++
	return nil
}

func (r *Repository) flushSubjects() error { return r.flush(store.KeySubjects, r.subjects) }
func (r *Repository) flushTasks() error    { return r.flush(store.KeyTasks, r.tasks) }
func (r *Repository) flushNotes() error    { return r.flush(store.KeyNotes, r.notes) }

// ClearAll wipes every persisted key and empties the in-memory mirrors. It
// is the only destructive, irreversible operation; callers are expected to
// have confirmed it with the user.
func (r *Repository) ClearAll() error {
	if err := r.store.Clear(); err != nil {
		return err
	}
	r.subjects = nil
	r.tasks = nil
	r.notes = nil
	r.gen++
	return nil
}

// ============================================================
// Subjects
// ============================================================

// Subjects returns a copy of the subject list in insertion order.
func (r *Repository) Subjects() []Subject {
	out := make([]Subject, len(r.subjects))
	copy(out, r.subjects)
	return out
}

func (r *Repository) subjectIndex(name string) int {
	for i, s := range r.subjects {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// ColorFor resolves a subject name to its color. A dangling reference
// degrades to the default color; it is not an error.
func (r *Repository) ColorFor(subjectName string) string {
	if i := r.subjectIndex(subjectName); i >= 0 {
		return r.subjects[i].Color
	}
	return DefaultColor
}

func (r *Repository) AddSubject(name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: subject name is required", ErrValidation)
	}
	if !ValidColor(color) {
		return fmt.Errorf("%w: unknown color %q", ErrValidation, color)
	}
	if r.subjectIndex(name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.subjects = append(r.subjects, Subject{Name: name, Color: color})
	return r.flushSubjects()
}

// UpdateSubject edits the subject at index i. An out-of-range index is a
// no-op. Renaming does not migrate tasks or notes that reference the old
// name; their references dangle and resolve to the default color.
func (r *Repository) UpdateSubject(i int, name, color string) error {
	if i < 0 || i >= len(r.subjects) {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: subject name is required", ErrValidation)
	}
	if !ValidColor(color) {
		return fmt.Errorf("%w: unknown color %q", ErrValidation, color)
	}
	if j := r.subjectIndex(name); j >= 0 && j != i {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.subjects[i].Name = name
	r.subjects[i].Color = color
	return r.flushSubjects()
}

// DeleteSubject removes the subject at index i. Dependent tasks and notes
// are not cascaded; their subject references become dangling.
func (r *Repository) DeleteSubject(i int) error {
	if i < 0 || i >= len(r.subjects) {
		return nil
	}
	r.subjects = append(r.subjects[:i], r.subjects[i+1:]...)
	return r.flushSubjects()
}

// AddStudyMinutes credits minutes to the named subject's cumulative total.
// A dangling subject reference is a no-op.
func (r *Repository) AddStudyMinutes(subjectName string, minutes int) error {
	i := r.subjectIndex(subjectName)
	if i < 0 || minutes <= 0 {
		return nil
	}
	r.subjects[i].Minutes += minutes
	return r.flushSubjects()
}

// ============================================================
// Tasks
// ============================================================

// TaskStatus selects tasks by completion state.
type TaskStatus int

const (
	TasksAll TaskStatus = iota
	TasksPending
	TasksCompleted
)

// TaskFilter narrows task listings. A zero filter matches everything.
type TaskFilter struct {
	Status  TaskStatus
	Subject string // empty = all subjects
}

// TaskRef pairs a task with its index in the full collection, so filtered
// views can still address the underlying record.
type TaskRef struct {
	Index int
	Task
}

// Tasks lists tasks matching the filter, preserving collection order.
func (r *Repository) Tasks(f TaskFilter) []TaskRef {
	var out []TaskRef
	for i, t := range r.tasks {
		switch f.Status {
		case TasksPending:
			if t.Completed {
				continue
			}
		case TasksCompleted:
			if !t.Completed {
				continue
			}
		}
		if f.Subject != "" && t.Subject != f.Subject {
			continue
		}
		out = append(out, TaskRef{Index: i, Task: t})
	}
	return out
}

// TaskCount returns the size of the full task collection.
func (r *Repository) TaskCount() int { return len(r.tasks) }

// AddTaskAt validates and appends a task. The due date must be today or
// later relative to now.
func (r *Repository) AddTaskAt(name, subject, date string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" || subject == "" || date == "" {
		return fmt.Errorf("%w: task name, subject and due date are required", ErrValidation)
	}
	due, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("%w: bad due date %q", ErrValidation, date)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		return fmt.Errorf("%w: due date is in the past", ErrValidation)
	}
	r.tasks = append(r.tasks, Task{Name: name, Subject: subject, Date: date})
	return r.flushTasks()
}

// ToggleTask flips the completion state of the task at index i. An
// out-of-range index is a no-op.
func (r *Repository) ToggleTask(i int) error {
	if i < 0 || i >= len(r.tasks) {
		return nil
	}
	r.tasks[i].Completed = !r.tasks[i].Completed
	return r.flushTasks()
}

func (r *Repository) DeleteTask(i int) error {
	if i < 0 || i >= len(r.tasks) {
		return nil
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return r.flushTasks()
}

// ============================================================
// Notes
// ============================================================

// NoteRef pairs a note with its index in the full collection.
type NoteRef struct {
	Index int
	Note
}

// SearchNotes lists notes whose title, content or subject contain term,
// case-insensitively. An empty term matches everything.
func (r *Repository) SearchNotes(term string) []NoteRef {
	term = strings.ToLower(term)
	var out []NoteRef
	for i, n := range r.notes {
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) &&
			!strings.Contains(strings.ToLower(n.Subject), term) {
			continue
		}
		out = append(out, NoteRef{Index: i, Note: n})
	}
	return out
}

// SaveNote inserts (editIndex < 0) or replaces in place. All three text
// fields are required. The date stamp records creation or last edit as
// day + abbreviated month. Editing an index that no longer exists is a
// no-op.
func (r *Repository) SaveNote(editIndex int, title, subject, content string, now time.Time) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || subject == "" || content == "" {
		return fmt.Errorf("%w: note title, subject and content are required", ErrValidation)
	}
	note := Note{Title: title, Subject: subject, Content: content, Date: now.Format("2 Jan")}
	if editIndex >= 0 {
		if editIndex >= len(r.notes) {
			return nil
		}
		r.notes[editIndex] = note
	} else {
		r.notes = append(r.notes, note)
	}
	return r.flushNotes()
}

func (r *Repository) DeleteNote(i int) error {
	if i < 0 || i >= len(r.notes) {
		return nil
	}
	r.notes = append(r.notes[:i], r.notes[i+1:]...)
	return r.flushNotes()
}
