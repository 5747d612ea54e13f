package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-keeper/models"
)

func ptr[T any](v T) *T { return &v }

func TestNewTaskValidator(t *testing.T) {
	require.NotNil(t, NewTaskValidator())
}

func TestTaskValidator_UnsupportedType(t *testing.T) {
	err := NewTaskValidator().Validate(context.Background(), "task")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTaskValidator_Task(t *testing.T) {
	tests := []struct {
		name   string
		task   models.Task
		fields []string
		want   error
	}{
		{name: "valid", task: models.Task{UserID: 1, Title: "buy milk"}},
		{name: "valid pointer fields", task: models.Task{ID: 3, UserID: 1, Title: "x"}, fields: []string{FieldTaskID, FieldTitle}},
		{name: "empty title", task: models.Task{UserID: 1}, want: ErrEmptyTitle},
		{name: "blank title", task: models.Task{UserID: 1, Title: " \t "}, want: ErrEmptyTitle},
		{name: "too long", task: models.Task{UserID: 1, Title: strings.Repeat("я", MaxTitleLength+1)}, want: ErrTitleTooLong},
		{name: "max length", task: models.Task{UserID: 1, Title: strings.Repeat("я", MaxTitleLength)}},
		{name: "no owner", task: models.Task{Title: "x"}, want: ErrInvalidUserID},
		{name: "no id", task: models.Task{UserID: 1, Title: "x"}, fields: []string{FieldTaskID}, want: ErrInvalidTaskID},
		{name: "unknown field", task: models.Task{UserID: 1, Title: "x"}, fields: []string{"due"}, want: ErrUnknownField},
	}

	v := NewTaskValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.task, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTaskValidator_TaskPointer(t *testing.T) {
	err := NewTaskValidator().Validate(context.Background(), &models.Task{UserID: 1})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestTaskValidator_TaskUpdate(t *testing.T) {
	tests := []struct {
		name   string
		update models.TaskUpdate
		want   error
	}{
		{name: "title only", update: models.TaskUpdate{ID: 1, UserID: 2, Title: ptr("new")}},
		{name: "completed only", update: models.TaskUpdate{ID: 1, UserID: 2, Completed: ptr(true)}},
		{name: "nothing", update: models.TaskUpdate{ID: 1, UserID: 2}, want: ErrNoFieldsToUpdate},
		{name: "blank title", update: models.TaskUpdate{ID: 1, UserID: 2, Title: ptr("  ")}, want: ErrEmptyTitle},
		{name: "no id", update: models.TaskUpdate{UserID: 2, Completed: ptr(false)}, want: ErrInvalidTaskID},
		{name: "no owner", update: models.TaskUpdate{ID: 1, Completed: ptr(false)}, want: ErrInvalidUserID},
	}

	v := NewTaskValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), &tt.update)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
