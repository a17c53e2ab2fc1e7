package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/prathmeshai01/task-manager/internal/models"
)

type postgresTaskRepository struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresTaskRepository(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskRepository {
	return &postgresTaskRepository{
		logger: logger,
		pgPool: pgPool,
	}
}

func (r *postgresTaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	const insertTaskQuery = `
INSERT INTO tasks (title,
                   description,
                   due_date,
                   priority,
                   category,
                   status,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.Title,
		task.Description,
		task.DueDate,
		string(task.Priority),
		task.Category,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	r.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")

	return task, nil
}

func (r *postgresTaskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	const selectTaskQuery = `
SELECT id,
       title,
       description,
       due_date,
       priority,
       category,
       status,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	task, err := scanTask(r.pgPool.QueryRow(ctx, selectTaskQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

func (r *postgresTaskRepository) FindAll(ctx context.Context, filters TaskFilters) ([]*models.Task, error) {
	query := `
SELECT id,
       title,
       description,
       due_date,
       priority,
       category,
       status,
       created_at,
       updated_at
FROM tasks
`
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filters.Category != nil {
		args = append(args, *filters.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += "ORDER BY created_at DESC, id DESC"

	rows, err := r.pgPool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")

	return tasks, nil
}

func (r *postgresTaskRepository) UpdateByID(ctx context.Context, id int64, patch TaskPatch) (*models.Task, error) {
	const updateTaskQuery = `
UPDATE tasks
SET title       = COALESCE($1, title),
    description = COALESCE($2, description),
    due_date    = COALESCE($3::date, due_date),
    priority    = COALESCE($4, priority),
    category    = COALESCE($5, category),
    status      = COALESCE($6, status),
    updated_at  = $7
WHERE id = $8
RETURNING id, title, description, due_date, priority, category, status, created_at, updated_at
`
	task, err := scanTask(r.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		patch.Title,
		patch.Description,
		patch.DueDate,
		priorityArg(patch.Priority),
		patch.Category,
		statusArg(patch.Status),
		patch.UpdatedAt,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task")
		return nil, err
	}
	r.logger.Debug().
		Int64("task_id", id).
		Msg("updated task")

	return task, nil
}

func (r *postgresTaskRepository) DeleteByID(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task     models.Task
		priority string
		status   string
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&priority,
		&task.Category,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = models.Priority(priority)
	task.Status = models.Status(status)
	return &task, nil
}

func priorityArg(p *models.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

func statusArg(s *models.Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
