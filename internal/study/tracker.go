package study

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"studymate/internal/store"
)

const dateKeyLayout = "2006-01-02"

// DayMinutes is one point of the rolling 7-day window.
type DayMinutes struct {
	Label   string // weekday abbreviation, e.g. "Wed"
	Date    string // YYYY-MM-DD
	Minutes int
}

// Tracker accumulates per-day study minutes and owns the daily rollover.
// History is append-only: entries are only ever incremented, and missing
// days read as zero without being backfilled into storage.
type Tracker struct {
	store *store.Store

	todayMinutes int
	lastActive   string // YYYY-MM-DD
	history      map[string]int
}

// NewTracker loads the day counter, last-active date and history map.
// Corrupt history JSON is replaced with an empty map.
func NewTracker(s *store.Store) (*Tracker, error) {
	t := &Tracker{store: s, history: make(map[string]int)}

	if v, ok, err := s.Get(store.KeyTodayMinutes); err != nil {
		return nil, err
	} else if ok {
		t.todayMinutes, _ = strconv.Atoi(v)
	}
	if v, ok, err := s.Get(store.KeyLastActiveDate); err != nil {
		return nil, err
	} else if ok {
		t.lastActive = v
	}
	if raw, ok, err := s.Get(store.KeyHistory); err != nil {
		return nil, err
	} else if ok {
		var m map[string]int
		if json.Unmarshal([]byte(raw), &m) == nil && m != nil {
			t.history = m
		}
	}
	return t, nil
}

func dateKey(now time.Time) string {
	return now.Format(dateKeyLayout)
}

// OnActivate runs the daily rollover: when the calendar date has changed
// since the last activation, the day counter resets and the new date is
// stamped. Running it twice on the same day is a no-op.
func (t *Tracker) OnActivate(now time.Time) error {
	today := dateKey(now)
	if t.lastActive == today {
		return nil
	}
	t.todayMinutes = 0
	t.lastActive = today
	if err := t.store.Set(store.KeyTodayMinutes, "0"); err != nil {
		return err
	}
	return t.store.Set(store.KeyLastActiveDate, today)
}

// TodayMinutes returns the minutes studied since the last rollover.
func (t *Tracker) TodayMinutes() int { return t.todayMinutes }

// CommitMinute records one elapsed minute. Study minutes increment both the
// day counter and the history ledger; Break minutes are never tracked.
func (t *Tracker) CommitMinute(now time.Time, mode Mode) error {
	if mode != ModeStudy {
		return nil
	}
	t.todayMinutes++
	key := dateKey(now)
	t.history[key]++

	if err := t.store.Set(store.KeyTodayMinutes, strconv.Itoa(t.todayMinutes)); err != nil {
		return err
	}
	data, err := json.Marshal(t.history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return t.store.Set(store.KeyHistory, string(data))
}

// HistoryFor returns the recorded minutes for a calendar date, zero when
// absent.
func (t *Tracker) HistoryFor(date string) int {
	return t.history[date]
}

// Last7Days returns today and the preceding six days, oldest first, with
// missing days defaulting to zero.
func (t *Tracker) Last7Days(now time.Time) []DayMinutes {
	out := make([]DayMinutes, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := dateKey(d)
		out = append(out, DayMinutes{
			Label:   d.Format("Mon"),
			Date:    key,
			Minutes: t.history[key],
		})
	}
	return out
}

// Reset drops all in-memory tracker state. Callers pair it with a store
// Clear.
func (t *Tracker) Reset() {
	t.todayMinutes = 0
	t.lastActive = ""
	t.history = make(map[string]int)
}
