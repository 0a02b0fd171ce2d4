package study

import (
	"fmt"
	"time"

	"studymate/internal/timefmt"
)

// Mode selects what a timer session counts as. Break time is never
// committed to history or to any subject.
type Mode int

const (
	ModeStudy Mode = iota
	ModeBreak
)

func (m Mode) String() string {
	if m == ModeBreak {
		return "Break"
	}
	return "Study"
}

// TimerState is the run state of the countdown, orthogonal to Mode.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
)

// Default session lengths in minutes.
const (
	DefaultStudyMinutes = 25
	DefaultBreakMinutes = 5
)

// Timer is the countdown state machine. The caller drives it with one
// Tick per elapsed second; the timer commits a minute to the tracker every
// sixty ticks and finalizes a session on natural completion or manual
// reset. History accumulates incrementally per minute while the subject
// total is credited once, at finalization — the two ledgers are independent
// running totals.
type Timer struct {
	repo    *Repository
	tracker *Tracker
	now     func() time.Time

	state        TimerState
	mode         Mode
	totalSeconds int
	secondsLeft  int
	subject      string

	studySeconds int
	breakSeconds int
}

// NewTimer builds an idle Study-mode timer with the given session lengths
// in minutes; zero or negative values fall back to the defaults.
func NewTimer(repo *Repository, tracker *Tracker, studyMinutes, breakMinutes int) *Timer {
	if studyMinutes <= 0 {
		studyMinutes = DefaultStudyMinutes
	}
	if breakMinutes <= 0 {
		breakMinutes = DefaultBreakMinutes
	}
	t := &Timer{
		repo:         repo,
		tracker:      tracker,
		now:          time.Now,
		studySeconds: studyMinutes * 60,
		breakSeconds: breakMinutes * 60,
	}
	t.totalSeconds = t.studySeconds
	t.secondsLeft = t.totalSeconds
	return t
}

// SetNowFunc overrides the timer's clock. Passing nil resets it to
// time.Now.
func (t *Timer) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	t.now = now
}

func (t *Timer) State() TimerState { return t.state }
func (t *Timer) Mode() Mode        { return t.mode }
func (t *Timer) SecondsLeft() int  { return t.secondsLeft }
func (t *Timer) TotalSeconds() int { return t.totalSeconds }

// Elapsed returns the seconds consumed in the current session.
func (t *Timer) Elapsed() int { return t.totalSeconds - t.secondsLeft }

// Subject returns the subject selected for Study sessions.
func (t *Timer) Subject() string { return t.subject }

// SetSubject selects the subject credited by Study sessions.
func (t *Timer) SetSubject(name string) { t.subject = name }

// Start moves Idle or Paused to Running. Starting a Study session without
// a selected subject is a validation error.
func (t *Timer) Start() error {
	if t.state == TimerRunning {
		return nil
	}
	if t.mode == ModeStudy && t.subject == "" {
		return fmt.Errorf("%w: select a subject first", ErrValidation)
	}
	t.state = TimerRunning
	return nil
}

// Pause stops ticking, preserving the remaining time.
func (t *Timer) Pause() {
	if t.state == TimerRunning {
		t.state = TimerPaused
	}
}

// Tick consumes one second while Running. Every sixtieth remaining-second
// boundary commits a minute to the tracker; hitting zero finalizes the
// session and auto-resets. The return value reports natural completion so
// the view can notify the user.
func (t *Timer) Tick() (completed bool, err error) {
	if t.state != TimerRunning || t.secondsLeft <= 0 {
		return false, nil
	}
	t.secondsLeft--
	if t.secondsLeft%60 == 0 {
		if cerr := t.tracker.CommitMinute(t.now(), t.mode); cerr != nil {
			err = cerr
		}
	}
	if t.secondsLeft == 0 {
		if ferr := t.finishSession(t.totalSeconds); ferr != nil && err == nil {
			err = ferr
		}
		t.state = TimerIdle
		t.secondsLeft = t.totalSeconds
		return true, err
	}
	return false, err
}

// Reset returns to Idle with a fresh countdown. Any elapsed time is first
// finalized as a session, crediting the rounded elapsed minutes to the
// subject and recording them as the last-session display value.
func (t *Timer) Reset() error {
	elapsed := t.Elapsed()
	var err error
	if elapsed > 0 {
		err = t.finishSession(elapsed)
	}
	t.state = TimerIdle
	t.secondsLeft = t.totalSeconds
	return err
}

// SwitchMode drops to Idle in the new mode with its full duration,
// discarding any unsaved elapsed time without finalizing a session.
func (t *Timer) SwitchMode(mode Mode) {
	t.mode = mode
	t.state = TimerIdle
	if mode == ModeBreak {
		t.totalSeconds = t.breakSeconds
	} else {
		t.totalSeconds = t.studySeconds
	}
	t.secondsLeft = t.totalSeconds
}

// finishSession records the session: the rounded elapsed minutes become the
// last-session scalar and, in Study mode, are added to the selected
// subject's cumulative total.
func (t *Timer) finishSession(elapsedSeconds int) error {
	minutes := elapsedSeconds / 60
	display := timefmt.Format(minutes)
	if err := t.repo.setLastSession(display); err != nil {
		return err
	}
	if t.mode == ModeStudy {
		return t.repo.AddStudyMinutes(t.subject, minutes)
	}
	return nil
}
