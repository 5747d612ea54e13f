package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-task-keeper/models"
)

// Field name constants accepted by [TaskValidator.Validate].
const (
	FieldTaskID = "id"
	FieldUserID = "user_id"
	FieldTitle  = "title"
	// FieldUpdateFields requires at least one field in a TaskUpdate.
	FieldUpdateFields = "fields"
)

// MaxTitleLength matches the tasks.title column.
const MaxTitleLength = 255

// TaskValidator validates models.Task and models.TaskUpdate values.
// Titles are checked after trimming surrounding whitespace; the validator
// never modifies its input.
type TaskValidator struct{}

func NewTaskValidator() Validator {
	return &TaskValidator{}
}

func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Task:
		return v.validateTask(value, fields...)
	case *models.Task:
		return v.validateTask(*value, fields...)

	case models.TaskUpdate:
		return v.validateTaskUpdate(value, fields...)
	case *models.TaskUpdate:
		return v.validateTaskUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateTask(task models.Task, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldTaskID:
			if task.ID <= 0 {
				return ErrInvalidTaskID
			}
		case FieldUserID:
			if task.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldTitle:
			if err := validateTitle(task.Title); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TaskValidator) validateTaskUpdate(update models.TaskUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTaskID, FieldUserID, FieldUpdateFields, FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldTaskID:
			if update.ID <= 0 {
				return ErrInvalidTaskID
			}
		case FieldUserID:
			if update.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldUpdateFields:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldTitle:
			// an absent title is left unchanged
			if update.Title != nil {
				if err := validateTitle(*update.Title); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: more than %d characters", ErrTitleTooLong, MaxTitleLength)
	}
	return nil
}
