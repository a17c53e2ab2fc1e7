package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/prathmeshai01/task-manager/internal/models"
)

// MemoryTaskRepository is an in-memory TaskRepository used by tests.
// Ids grow monotonically and are never reused after deletion.
type MemoryTaskRepository struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]*models.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		nextID: 1,
		tasks:  make(map[int64]*models.Task),
	}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneTask(task)
	stored.ID = r.nextID
	r.nextID++
	r.tasks[stored.ID] = stored

	return cloneTask(stored), nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id int64) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTask(task), nil
}

func (r *MemoryTaskRepository) FindAll(_ context.Context, filters TaskFilters) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*models.Task
	for _, task := range r.tasks {
		if filters.Category != nil &&
			(task.Category == nil || *task.Category != *filters.Category) {
			continue
		}
		if filters.Status != nil && string(task.Status) != *filters.Status {
			continue
		}
		tasks = append(tasks, cloneTask(task))
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (r *MemoryTaskRepository) UpdateByID(_ context.Context, id int64, patch TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		task.Category = patch.Category
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	task.UpdatedAt = patch.UpdatedAt

	return cloneTask(task), nil
}

func (r *MemoryTaskRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func cloneTask(task *models.Task) *models.Task {
	clone := *task
	if task.Description != nil {
		description := *task.Description
		clone.Description = &description
	}
	if task.DueDate != nil {
		dueDate := *task.DueDate
		clone.DueDate = &dueDate
	}
	if task.Category != nil {
		category := *task.Category
		clone.Category = &category
	}
	return &clone
}
