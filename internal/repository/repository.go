package repository

import (
	"context"
	"errors"
	"time"

	"github.com/prathmeshai01/task-manager/internal/models"
)

var ErrNotFound = errors.New("task not found")

// TaskFilters narrows FindAll results. A nil field means
// the filter is not applied.
type TaskFilters struct {
	Category *string
	Status   *string
}

// TaskPatch is a partial update. Nil fields keep the stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.Priority
	Category    *string
	Status      *models.Status
	UpdatedAt   time.Time
}

type TaskRepository interface {
	// Create inserts the task and returns it with its assigned id.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// FindByID returns ErrNotFound if no task has the given id.
	FindByID(ctx context.Context, id int64) (*models.Task, error)

	// FindAll returns tasks matching the filters,
	// most recently created first.
	FindAll(ctx context.Context, filters TaskFilters) ([]*models.Task, error)

	// UpdateByID merges the patch onto the stored row and returns
	// the updated task, or ErrNotFound if no task has the given id.
	UpdateByID(ctx context.Context, id int64, patch TaskPatch) (*models.Task, error)

	// DeleteByID removes the row permanently. Ids are never reused.
	DeleteByID(ctx context.Context, id int64) error
}
