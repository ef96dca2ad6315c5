// Package store holds the in-memory task collection shared by all requests.
package store

import (
	"slices"
	"sync"
	"time"

	"TaskTrackerService/apperror"
	"TaskTrackerService/models"
)

// TaskStore is an ordered, process-local collection of tasks.
// Writes are serialized by a single lock covering both the collection and
// the id counter; reads share the lock and only ever hand out copies.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []models.Task
	nextId int
	now    func() time.Time
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock replaces the time source used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// WithTasks replaces the initial collection. Ids continue after the highest given id.
func WithTasks(tasks ...models.Task) Option {
	return func(s *TaskStore) {
		s.tasks = slices.Clone(tasks)
		s.nextId = 1
		for _, t := range tasks {
			if t.Id >= s.nextId {
				s.nextId = t.Id + 1
			}
		}
	}
}

// SeedTask returns the task every new store starts with.
func SeedTask(createdAt time.Time) models.Task {
	return models.Task{
		Id:          1,
		Title:       "Set up environment",
		Description: "Install Node.js, npm, and git",
		Completed:   true,
		Priority:    models.PriorityMedium,
		CreatedAt:   createdAt,
	}
}

// New returns a store holding the seed task, unless overridden by WithTasks.
func New(opts ...Option) *TaskStore {
	s := &TaskStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.tasks == nil && s.nextId == 0 {
		s.tasks = []models.Task{SeedTask(s.now())}
		s.nextId = 2
	}
	return s
}

// List returns the tasks matching opts. Without a sort order tasks come
// back in insertion order; sorting is stable on CreatedAt.
func (s *TaskStore) List(opts models.ListOptions) []models.Task {
	s.mu.RLock()
	result := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if opts.Completed != nil && t.Completed != *opts.Completed {
			continue
		}
		result = append(result, t)
	}
	s.mu.RUnlock()

	switch opts.Sort {
	case models.SortAsc:
		slices.SortStableFunc(result, func(a, b models.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case models.SortDesc:
		slices.SortStableFunc(result, func(a, b models.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return result
}

// ListByPriority returns the tasks at the given level in insertion order.
func (s *TaskStore) ListByPriority(priority models.Priority) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.Priority == priority {
			result = append(result, t)
		}
	}
	return result
}

// Get returns the task with the given id or apperror.ErrNotFound.
func (s *TaskStore) Get(id int) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, apperror.ErrNotFound
	}
	return s.tasks[i], nil
}

// Create assigns the next id and creation time to task and appends it.
func (s *TaskStore) Create(task models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.Id = s.nextId
	task.CreatedAt = s.now()
	s.nextId++
	s.tasks = append(s.tasks, task)
	return task
}

// Update applies patch to the task with the given id and returns the result.
// Id and CreatedAt are never changed.
func (s *TaskStore) Update(id int, patch models.TaskPatch) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, apperror.ErrNotFound
	}
	patch.Apply(&s.tasks[i])
	return s.tasks[i], nil
}

// Delete removes the task with the given id, keeping the order of the others.
func (s *TaskStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return apperror.ErrNotFound
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

// Count returns the number of stored tasks, grouped by completion.
func (s *TaskStore) Count() (open int, completed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.Completed {
			completed++
		} else {
			open++
		}
	}
	return open, completed
}

// indexOf must be called with s.mu held.
func (s *TaskStore) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool {
		return t.Id == id
	})
}
