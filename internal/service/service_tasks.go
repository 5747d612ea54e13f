package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
)

// MaxTitleLength matches the tasks.title column.
const MaxTitleLength = validators.MaxTitleLength

type taskService struct {
	taskRepository store.TaskRepository
	validator      validators.Validator
	logger         *logger.Logger
}

func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		validator:      validators.NewTaskValidator(),
		logger:         logger,
	}
}

func (s *taskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.taskRepository.ListTasks(ctx, userID)
}

func (s *taskService) Get(ctx context.Context, userID, taskID int64) (models.Task, error) {
	task, err := s.taskRepository.GetTask(ctx, userID, taskID)
	return task, taskError(err)
}

// Create stores a new, not completed task. The title is trimmed.
func (s *taskService) Create(ctx context.Context, userID int64, title string) (models.Task, error) {
	task := models.Task{UserID: userID, Title: strings.TrimSpace(title)}
	if err := s.validator.Validate(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	task, err := s.taskRepository.CreateTask(ctx, task)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*taskService.Create").Send()
		return models.Task{}, err
	}

	return task, nil
}

// Update applies a partial update. An update without fields or with an
// empty title is a validation error.
func (s *taskService) Update(ctx context.Context, update models.TaskUpdate) (models.Task, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		update.Title = &title
	}

	task, err := s.taskRepository.UpdateTask(ctx, update)
	return task, taskError(err)
}

func (s *taskService) Delete(ctx context.Context, userID, taskID int64) error {
	return taskError(s.taskRepository.DeleteTask(ctx, userID, taskID))
}

func taskError(err error) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrNotFound
	}
	return err
}
