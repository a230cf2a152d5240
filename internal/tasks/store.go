// Package tasks persists the task list. Tasks are stored as a single JSON
// array under one key, small enough that whole-list reads and writes stay
// cheap at the scale this tool serves.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/okravets/freightdesk/internal/domain"
	"github.com/okravets/freightdesk/internal/kv"
)

// ListKey is the fixed store key holding the serialized task list.
const ListKey = "tasks"

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = fmt.Errorf("task not found")

// Store keeps the task list in memory and mirrors every mutation to the
// backing key-value store.
type Store struct {
	mu    sync.Mutex
	store kv.Store
	tasks []domain.Task
	newID func() string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator overrides how task ids are minted. Tests use this for
// stable ids.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

func NewStore(store kv.Store, opts ...StoreOption) *Store {
	s := &Store{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the task list. A missing or unreadable list starts empty.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.store.Get(ctx, ListKey)
	if err != nil {
		return fmt.Errorf("loading task list: %w", err)
	}
	if !found {
		s.tasks = nil
		return nil
	}

	var tasks []domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.tasks = nil
		return nil
	}
	s.tasks = tasks
	return nil
}

// Add stores a new task and returns it with its minted id. A zero status
// defaults to Not Started.
func (s *Store) Add(ctx context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = s.newID()
	}
	if task.Status == "" {
		task.Status = domain.TaskNotStarted
	}
	s.tasks = append(s.tasks, task)
	return task, s.persist(ctx)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// List returns all tasks, incomplete first, each group in insertion order.
func (s *Store) List() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status != domain.TaskCompleted && out[j].Status == domain.TaskCompleted
	})
	return out
}

// UpdateStatus moves the task to the given status. Completing a task records
// timeSpent so the tracked total survives the task leaving the active timer.
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, timeSpent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Status = status
		if status == domain.TaskCompleted && timeSpent > 0 {
			s.tasks[i].TimeSpent = timeSpent
		}
		return s.persist(ctx)
	}
	return ErrNotFound
}

// Remove deletes the task with the given id.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return s.persist(ctx)
		}
	}
	return ErrNotFound
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encoding task list: %w", err)
	}
	if err := s.store.Set(ctx, ListKey, string(data)); err != nil {
		return fmt.Errorf("storing task list: %w", err)
	}
	return nil
}
