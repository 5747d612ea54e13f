package models

import "time"

// Task is a single to-do item. Every task belongs to exactly one user and is
// removed together with its owner.
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskUpdate describes a partial update of a task.
// Only non-nil fields are written.
type TaskUpdate struct {
	// ID is the task to update. Required.
	ID int64 `json:"-"`

	// UserID scopes the update to the owner. Required.
	UserID int64 `json:"-"`

	// Title is the new title. If nil, the title is left unchanged.
	Title *string `json:"title,omitempty"`

	// Completed is the new completion flag. If nil, it is left unchanged.
	Completed *bool `json:"completed,omitempty"`
}

// IsEmpty reports whether the update carries no fields to write.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil
}
