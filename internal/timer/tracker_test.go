package timer_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/kv"
	"github.com/okravets/freightdesk/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced wall clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time           { return c.now }
func (c *fakeClock) Advance(d time.Duration)  { c.now = c.now.Add(d) }

func newTestTracker(t *testing.T) (*timer.Tracker, *fakeClock, *kv.MemoryStore) {
	t.Helper()
	clock := newFakeClock()
	store := kv.NewMemoryStore()
	tr := timer.New(store, timer.WithClock(clock.Now))
	return tr, clock, store
}

func taskA() domain.Task {
	return domain.Task{ID: "A", Name: "Customs declaration", Status: domain.TaskInProgress}
}

func taskB() domain.Task {
	return domain.Task{ID: "B", Name: "Carrier quotes", Status: domain.TaskNotStarted}
}

func TestTracker_InitialStateIsIdle(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	assert.Equal(t, timer.StateIdle, tr.State())
	assert.Nil(t, tr.ActiveTask())
	assert.Equal(t, 0, tr.Elapsed())
}

func TestTracker_StartRunsAndTicks(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	assert.Equal(t, timer.StateRunning, tr.State())

	clock.Advance(7 * time.Second)
	assert.Equal(t, 7, tr.Elapsed())
}

func TestTracker_StopRetainsElapsedAndFlushesHistory(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(10 * time.Second)
	require.NoError(t, tr.Stop(ctx))

	assert.Equal(t, timer.StatePaused, tr.State())
	assert.Equal(t, 10, tr.Elapsed(), "counter retained for display while paused")
	assert.Equal(t, 10, tr.TimeSpent("A"))

	// Stop while paused is a no-op.
	require.NoError(t, tr.Stop(ctx))
	assert.Equal(t, 10, tr.TimeSpent("A"))
}

func TestTracker_PauseResumeNeverLosesOrDoubleCounts(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(10 * time.Second)
	require.NoError(t, tr.Stop(ctx))

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(5 * time.Second)
	require.NoError(t, tr.Stop(ctx))

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(3 * time.Second)
	require.NoError(t, tr.Stop(ctx))

	assert.Equal(t, 18, tr.TimeSpent("A"), "history equals the sum of run segments")
	assert.Equal(t, 18, tr.Elapsed(), "resume keeps the visible counter")
}

func TestTracker_SwitchFlushesAndResetsCounter(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(42 * time.Second)

	require.NoError(t, tr.Start(ctx, taskB()))
	assert.Equal(t, 42, tr.TimeSpent("A"))
	assert.Equal(t, 0, tr.Elapsed(), "counter resets for the new task")
	assert.Equal(t, "B", tr.ActiveTask().ID)
	assert.Equal(t, timer.StateRunning, tr.State())

	clock.Advance(8 * time.Second)
	assert.Equal(t, 8, tr.Elapsed())
}

func TestTracker_RestartSameTaskWhileRunning(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(10 * time.Second)
	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(5 * time.Second)

	assert.Equal(t, 15, tr.Elapsed())
	require.NoError(t, tr.Stop(ctx))
	assert.Equal(t, 15, tr.TimeSpent("A"))
}

func TestTracker_CompleteActiveTaskClearsToIdle(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(30 * time.Second)
	require.NoError(t, tr.Complete(ctx, "A"))

	assert.Equal(t, timer.StateIdle, tr.State())
	assert.Nil(t, tr.ActiveTask())
	assert.Equal(t, 0, tr.Elapsed())
	assert.Equal(t, 30, tr.TimeSpent("A"))
}

func TestTracker_CompleteNonActiveTaskLeavesTimerUntouched(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(12 * time.Second)

	require.NoError(t, tr.Complete(ctx, "B"))

	assert.Equal(t, timer.StateRunning, tr.State())
	assert.Equal(t, "A", tr.ActiveTask().ID)
	assert.Equal(t, 12, tr.Elapsed())
	assert.Equal(t, 0, tr.TimeSpent("B"))
}

func TestTracker_RehydrateCountsGapAsRunningTime(t *testing.T) {
	clock := newFakeClock()
	store := kv.NewMemoryStore()
	ctx := context.Background()

	// Persisted state: running, started 10s ago, 5s accumulated.
	startMs := clock.Now().Add(-10 * time.Second).UnixMilli()
	task := taskA()
	state := map[string]any{
		"activeTask":  task,
		"startTime":   startMs,
		"elapsedTime": 5,
		"taskHistory": map[string]int{"A": 5},
	}
	data, err := json.Marshal(state)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, timer.StateKey, string(data)))

	tr := timer.New(store, timer.WithClock(clock.Now))
	require.NoError(t, tr.Load(ctx))

	assert.Equal(t, 15, tr.Elapsed(), "10s gap plus 5s prior")
	assert.Equal(t, timer.StateRunning, tr.State())

	// The restarted segment accrues from now.
	clock.Advance(2 * time.Second)
	assert.Equal(t, 17, tr.Elapsed())
}

func TestTracker_RehydratePausedState(t *testing.T) {
	clock := newFakeClock()
	store := kv.NewMemoryStore()
	ctx := context.Background()

	task := taskA()
	state := map[string]any{
		"activeTask":  task,
		"startTime":   nil,
		"elapsedTime": 25,
		"taskHistory": map[string]int{"A": 25},
	}
	data, err := json.Marshal(state)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, timer.StateKey, string(data)))

	tr := timer.New(store, timer.WithClock(clock.Now))
	require.NoError(t, tr.Load(ctx))

	assert.Equal(t, timer.StatePaused, tr.State())
	assert.Equal(t, 25, tr.Elapsed())

	clock.Advance(time.Hour)
	assert.Equal(t, 25, tr.Elapsed(), "paused counter does not accrue")
}

func TestTracker_RehydrateCorruptStateResets(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, timer.StateKey, "{not json"))

	tr := timer.New(store)
	require.NoError(t, tr.Load(ctx))
	assert.Equal(t, timer.StateIdle, tr.State())
}

func TestTracker_PersistsFullStateOnMutation(t *testing.T) {
	tr, clock, store := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(ctx, taskA()))
	clock.Advance(4 * time.Second)
	require.NoError(t, tr.Stop(ctx))

	raw, found, err := store.Get(ctx, timer.StateKey)
	require.NoError(t, err)
	require.True(t, found)

	var saved struct {
		ActiveTask  *domain.Task   `json:"activeTask"`
		StartTime   *int64         `json:"startTime"`
		ElapsedTime int            `json:"elapsedTime"`
		TaskHistory map[string]int `json:"taskHistory"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &saved))
	require.NotNil(t, saved.ActiveTask)
	assert.Equal(t, "A", saved.ActiveTask.ID)
	assert.Nil(t, saved.StartTime)
	assert.Equal(t, 4, saved.ElapsedTime)
	assert.Equal(t, 4, saved.TaskHistory["A"])
}

func TestTracker_QuotaFailureIsSurfacedButStateApplies(t *testing.T) {
	clock := newFakeClock()
	store := kv.NewMemoryStore()
	store.FailWith = kv.ErrQuotaExceeded

	tr := timer.New(store, timer.WithClock(clock.Now))
	err := tr.Start(context.Background(), taskA())

	assert.ErrorIs(t, err, kv.ErrQuotaExceeded)
	assert.Equal(t, timer.StateRunning, tr.State(), "mutation applies in memory despite failed write")
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{36_0000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timer.FormatSeconds(tt.seconds))
	}
}
