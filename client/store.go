package client

import (
	"context"
	"sync"
	"time"

	domain "github.com/fajshah/faj-todo-phase2/domain/task"
)

// RecurrenceType enumerates the supported repeat intervals.
type RecurrenceType string

// Recurrence intervals.
const (
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
)

// Recurrence describes how often a task repeats.
type Recurrence struct {
	Type    RecurrenceType
	Days    []time.Weekday
	EndDate *time.Time
}

// Reminder describes when the user wants to be reminded about a task.
type Reminder struct {
	Option string
	Time   *time.Time
}

// TaskExtras are per-task annotations kept only on this client: the server
// has no endpoints for them, so they live and die with the store.
type TaskExtras struct {
	DueAt      *time.Time
	Recurrence *Recurrence
	Reminder   *Reminder
}

// TaskStore keeps the client-side view of the task list in sync with the
// server. Every operation flags loading while in flight, records the error
// message on failure and reconciles the local slice on success. Loading is
// always reset in a deferred cleanup so a failed request cannot leave the
// store stuck in a loading state.
type TaskStore struct {
	client *Client

	mu      sync.RWMutex
	tasks   []domain.Task
	extras  map[string]TaskExtras
	loading bool
	err     string
}

// NewTaskStore creates a store backed by the given client.
func NewTaskStore(c *Client) *TaskStore {
	return &TaskStore{
		client: c,
		extras: make(map[string]TaskExtras),
	}
}

// Tasks returns a copy of the current task list.
func (s *TaskStore) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Loading reports whether a request is in flight.
func (s *TaskStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failed operation, or "".
func (s *TaskStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Fetch replaces the local task list with a page from the server.
func (s *TaskStore) Fetch(ctx context.Context, opts ListOptions) error {
	done := s.begin()
	defer done()

	page, err := s.client.ListTasks(ctx, opts)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.tasks = page.Todos
	s.mu.Unlock()
	return nil
}

// Create creates a task on the server and appends it locally.
func (s *TaskStore) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	done := s.begin()
	defer done()

	t, err := s.client.CreateTask(ctx, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, *t)
	s.mu.Unlock()
	return t, nil
}

// Update updates a task on the server and replaces it locally by ID.
func (s *TaskStore) Update(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error) {
	done := s.begin()
	defer done()

	t, err := s.client.UpdateTask(ctx, id, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.replace(*t)
	return t, nil
}

// Delete deletes a task on the server and removes it locally, along with
// any local annotations.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	done := s.begin()
	defer done()

	if err := s.client.DeleteTask(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	delete(s.extras, id)
	s.mu.Unlock()
	return nil
}

// Toggle flips a task's completion on the server and replaces it locally.
func (s *TaskStore) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	done := s.begin()
	defer done()

	t, err := s.client.ToggleTask(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.replace(*t)
	return t, nil
}

// SetExtras attaches local-only annotations to a task.
func (s *TaskStore) SetExtras(id string, extras TaskExtras) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extras[id] = extras
}

// Extras returns the local-only annotations for a task.
func (s *TaskStore) Extras(id string) (TaskExtras, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.extras[id]
	return e, ok
}

// begin marks the store as loading and clears the last error. The returned
// cleanup resets loading and must run whether the operation succeeds or not.
func (s *TaskStore) begin() func() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}
}

func (s *TaskStore) fail(err error) {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
}

func (s *TaskStore) replace(t domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return
		}
	}
	s.tasks = append(s.tasks, t)
}
