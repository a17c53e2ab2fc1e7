package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prathmeshai01/task-manager/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

// ValidationError names each invalid or missing field
// and the rule it broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return fmt.Sprintf("validation failed on %s", strings.Join(fields, ", "))
}

// TaskInput is the raw, unvalidated payload of a create or
// update call. Nil fields were absent from the request. Any
// field outside this allow-list never reaches the service.
type TaskInput struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *string
	Category    *string
	Status      *string
}

// ListTasksFilters narrows List results by exact match.
type ListTasksFilters struct {
	Category *string
	Status   *string
}

type TaskService interface {
	// ListTasks returns all tasks matching the filters,
	// most recently created first.
	ListTasks(ctx context.Context, filters ListTasksFilters) ([]*models.Task, error)

	// GetTask returns ErrTaskNotFound if no task has the given id.
	GetTask(ctx context.Context, id int64) (*models.Task, error)

	// CreateTask validates the input, assigns pending status and
	// the medium default priority, and persists a new task.
	//
	// It returns a *ValidationError if any rule fails.
	CreateTask(ctx context.Context, input TaskInput) (*models.Task, error)

	// UpdateTask merges the supplied fields onto the stored task
	// and refreshes its updated_at timestamp. Absent fields keep
	// their prior values.
	//
	// It returns ErrTaskNotFound if no task has the given id, or
	// a *ValidationError if any rule fails.
	UpdateTask(ctx context.Context, id int64, input TaskInput) (*models.Task, error)

	// DeleteTask removes the task permanently. It returns
	// ErrTaskNotFound if no task has the given id.
	DeleteTask(ctx context.Context, id int64) error
}
