// Package tasks runs fire-and-forget background jobs while keeping an
// observable record per job. Callers that submit a task are only promised
// scheduling; failures are logged and stored on the task record, where
// anyone who kept the ID can look them up later.
package tasks

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle of a background task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Task is a snapshot of one background job.
type Task struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Manager owns the task records and the goroutines running them.
type Manager struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

func NewManager() *Manager {
	return &Manager{tasks: make(map[string]*Task)}
}

// Submit schedules fn on its own goroutine and returns the task snapshot
// immediately. The context handed to fn is detached from any request.
func (m *Manager) Submit(name string, fn func(ctx context.Context) error) Task {
	task := &Task{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.tasks[task.ID] = task
	m.mu.Unlock()

	go m.run(task.ID, name, fn)

	return *task
}

func (m *Manager) run(id, name string, fn func(ctx context.Context) error) {
	started := time.Now()
	m.update(id, func(t *Task) {
		t.Status = StatusRunning
		t.StartedAt = &started
	})

	err := fn(context.Background())

	finished := time.Now()
	m.update(id, func(t *Task) {
		t.FinishedAt = &finished
		if err != nil {
			t.Status = StatusFailed
			t.Error = err.Error()
		} else {
			t.Status = StatusSucceeded
		}
	})

	if err != nil {
		log.Printf("❌ Background task %s (%s) failed: %v", name, id, err)
	} else {
		log.Printf("✅ Background task %s (%s) completed in %s", name, id, finished.Sub(started))
	}
}

func (m *Manager) update(id string, mutate func(*Task)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		mutate(t)
	}
}

// Get returns a snapshot of the task, if known.
func (m *Manager) Get(id string) (Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// List returns snapshots of every task, newest first.
func (m *Manager) List() []Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
