package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-keeper/internal/adapter"
	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
)

type clientTaskService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
}

func NewClientTaskService(serverAdapter adapter.ServerAdapter) ClientTaskService {
	return &clientTaskService{
		adapter:   serverAdapter,
		validator: validators.NewTaskValidator(),
	}
}

func (c *clientTaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := c.adapter.ListTasks(ctx)
	return tasks, mapAdapterError(err)
}

func (c *clientTaskService) Create(ctx context.Context, title string) (models.Task, error) {
	if err := c.checkTitle(ctx, title); err != nil {
		return models.Task{}, err
	}

	task, err := c.adapter.CreateTask(ctx, title)
	return task, mapAdapterError(err)
}

func (c *clientTaskService) Rename(ctx context.Context, taskID int64, title string) (models.Task, error) {
	if err := c.checkTitle(ctx, title); err != nil {
		return models.Task{}, err
	}

	task, err := c.adapter.UpdateTask(ctx, taskID, models.UpdateTaskRequest{Title: &title})
	return task, mapAdapterError(err)
}

func (c *clientTaskService) SetCompleted(ctx context.Context, taskID int64, completed bool) (models.Task, error) {
	task, err := c.adapter.UpdateTask(ctx, taskID, models.UpdateTaskRequest{Completed: &completed})
	return task, mapAdapterError(err)
}

func (c *clientTaskService) Delete(ctx context.Context, taskID int64) error {
	return mapAdapterError(c.adapter.DeleteTask(ctx, taskID))
}

// checkTitle rejects titles the server would refuse before a request is sent.
func (c *clientTaskService) checkTitle(ctx context.Context, title string) error {
	if err := c.validator.Validate(ctx, models.Task{Title: title}, validators.FieldTitle); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
