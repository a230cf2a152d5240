// Package timer implements the task time-tracking state machine. A Tracker
// is Idle (no active task), Running (active task with an open run segment),
// or Paused (active task, no open segment, accumulated seconds retained).
//
// taskHistory accumulates completed run segments only; a segment ends on
// pause, task switch, or completion. The live counter is recomputed from a
// wall-clock read rather than an accumulating interval, so suspended
// processes do not drift.
package timer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/kv"
)

// StateKey is the fixed store key holding the serialized timer state.
const StateKey = "taskTimer"

// State is the timer's lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// persistedState is the JSON shape written to the store. startTime is epoch
// milliseconds to stay readable alongside the rest of the persisted state.
type persistedState struct {
	ActiveTask  *domain.Task   `json:"activeTask"`
	StartTime   *int64         `json:"startTime"`
	ElapsedTime int            `json:"elapsedTime"`
	TaskHistory map[string]int `json:"taskHistory"`
}

// Tracker owns the currently active task and accumulated time per task.
// State mutations are applied in memory first and then persisted; mutators
// return only the persistence error, which callers treat as a non-fatal
// notice (the session continues in memory for that write).
type Tracker struct {
	mu    sync.Mutex
	store kv.Store
	clock func() time.Time

	active    *domain.Task
	startTime *time.Time
	elapsed   int // seconds accumulated for active task across this activation
	history   map[string]int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the wall-clock source. Tests use this to control time.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// New creates an empty (Idle) Tracker persisting to store.
func New(store kv.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		clock:   time.Now,
		history: make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load rehydrates the tracker from the store. If a run segment was open when
// the state was saved, the gap between the saved start time and now counts
// as running time and a fresh segment starts at now. Unreadable state resets
// to Idle rather than failing.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, found, err := t.store.Get(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("loading timer state: %w", err)
	}
	if !found {
		return nil
	}

	var saved persistedState
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		// Corrupt state: start over instead of wedging the timer.
		t.reset()
		return nil
	}

	t.active = saved.ActiveTask
	t.elapsed = saved.ElapsedTime
	t.history = saved.TaskHistory
	if t.history == nil {
		t.history = make(map[string]int)
	}

	if saved.StartTime != nil {
		// The gap since the last save counts as continued running time. It
		// is folded in as a completed segment and a fresh segment opens at
		// now, so the gap seconds flush to history exactly once.
		now := t.clock()
		gap := int(now.UnixMilli()-*saved.StartTime) / 1000
		if gap > 0 {
			t.elapsed += gap
			if t.active != nil {
				t.history[t.active.ID] += gap
			}
		}
		t.startTime = &now
	} else {
		t.startTime = nil
	}
	return nil
}

// Start begins (or resumes) timing task. If a different task is active its
// open segment is flushed into history and the counter resets; restarting
// the active task keeps the accumulated counter.
func (t *Tracker) Start(ctx context.Context, task domain.Task) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	t.endSegment(now)

	if t.active == nil || t.active.ID != task.ID {
		t.elapsed = 0
	}
	t.active = &task
	t.startTime = &now

	return t.save(ctx)
}

// Stop ends the open run segment, flushing it into history. The active task
// and accumulated counter are retained (Paused). No-op when not running.
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startTime == nil {
		return nil
	}
	now := t.clock()
	t.endSegment(now)
	t.startTime = nil

	return t.save(ctx)
}

// Complete finishes the task with the given id. If it is the active task,
// any open segment is flushed and the timer clears to Idle; completing a
// task that is not active leaves the timer untouched.
func (t *Tracker) Complete(ctx context.Context, taskID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil || t.active.ID != taskID {
		return nil
	}
	now := t.clock()
	t.endSegment(now)
	t.reset()

	return t.save(ctx)
}

// endSegment closes the open run segment, if any, folding its duration into
// both the activation counter and the task history. Callers hold the lock.
func (t *Tracker) endSegment(now time.Time) {
	if t.startTime == nil || t.active == nil {
		return
	}
	delta := int(now.Sub(*t.startTime) / time.Second)
	if delta < 0 {
		delta = 0
	}
	t.history[t.active.ID] += delta
	t.elapsed += delta
	t.startTime = nil
}

func (t *Tracker) reset() {
	t.active = nil
	t.startTime = nil
	t.elapsed = 0
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.active == nil:
		return StateIdle
	case t.startTime != nil:
		return StateRunning
	default:
		return StatePaused
	}
}

// ActiveTask returns a copy of the active task, or nil when idle.
func (t *Tracker) ActiveTask() *domain.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	task := *t.active
	return &task
}

// Elapsed returns the seconds accumulated for the active task in the current
// activation, including the open run segment.
func (t *Tracker) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Tracker) elapsedLocked() int {
	total := t.elapsed
	if t.startTime != nil {
		delta := int(t.clock().Sub(*t.startTime) / time.Second)
		if delta > 0 {
			total += delta
		}
	}
	return total
}

// ElapsedFormatted renders the live counter as HH:MM:SS.
func (t *Tracker) ElapsedFormatted() string {
	return FormatSeconds(t.Elapsed())
}

// TimeSpent returns the completed-segment seconds recorded for a task.
func (t *Tracker) TimeSpent(taskID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history[taskID]
}

// History returns a copy of the per-task accumulated seconds.
func (t *Tracker) History() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.history))
	for id, secs := range t.history {
		out[id] = secs
	}
	return out
}

// save serializes the full state under StateKey. Callers hold the lock.
func (t *Tracker) save(ctx context.Context) error {
	state := persistedState{
		ActiveTask:  t.active,
		ElapsedTime: t.elapsed,
		TaskHistory: t.history,
	}
	if t.startTime != nil {
		ms := t.startTime.UnixMilli()
		state.StartTime = &ms
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding timer state: %w", err)
	}
	if err := t.store.Set(ctx, StateKey, string(data)); err != nil {
		return fmt.Errorf("persisting timer state: %w", err)
	}
	return nil
}

// FormatSeconds renders a second count as zero-padded HH:MM:SS with
// unbounded hours.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
