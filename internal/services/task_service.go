package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/prathmeshai01/task-manager/internal/models"
	"github.com/prathmeshai01/task-manager/internal/repository"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	repo   repository.TaskRepository
	now    func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	repo repository.TaskRepository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, filters ListTasksFilters) ([]*models.Task, error) {
	tasks, err := s.repo.FindAll(ctx, repository.TaskFilters{
		Category: filters.Category,
		Status:   filters.Status,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to get task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	validated, validationErr := validateTaskInput(input, validateCreate)
	if validationErr != nil {
		s.logger.Warn().
			Err(validationErr).
			Msg("rejected task input")
		return nil, validationErr
	}

	now := s.now()
	task := &models.Task{
		Title:       *validated.title,
		Description: validated.description,
		DueDate:     validated.dueDate,
		Priority:    models.PriorityMedium,
		Category:    validated.category,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if validated.priority != nil {
		task.Priority = *validated.priority
	}

	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, input TaskInput) (*models.Task, error) {
	// Existence is checked before validation so a bad payload
	// against a missing id still reads as not found.
	_, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	validated, validationErr := validateTaskInput(input, validateUpdate)
	if validationErr != nil {
		s.logger.Warn().
			Err(validationErr).
			Int64("task_id", id).
			Msg("rejected task input")
		return nil, validationErr
	}

	task, err := s.repo.UpdateByID(ctx, id, repository.TaskPatch{
		Title:       validated.title,
		Description: validated.description,
		DueDate:     validated.dueDate,
		Priority:    validated.priority,
		Category:    validated.category,
		Status:      validated.status,
		UpdatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", id).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}
