package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/models"
)

func newTestTaskRepo(t *testing.T) (*taskRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &taskRepository{db: db, logger: logger.Nop()}, mock
}

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows(taskColumns)
}

func TestListTasks(t *testing.T) {
	repo, mock := newTestTaskRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM tasks WHERE user_id = \$1 ORDER BY id`).
		WithArgs(int64(1)).
		WillReturnRows(taskRows().
			AddRow(1, 1, "buy milk", false, now).
			AddRow(2, 1, "walk dog", true, now))

	tasks, err := repo.ListTasks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "buy milk", tasks[0].Title)
	assert.True(t, tasks[1].Completed)
}

func TestListTasks_Empty(t *testing.T) {
	repo, mock := newTestTaskRepo(t)

	mock.ExpectQuery("SELECT .* FROM tasks").
		WithArgs(int64(1)).
		WillReturnRows(taskRows())

	tasks, err := repo.ListTasks(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestListTasks_QueryError(t *testing.T) {
	repo, mock := newTestTaskRepo(t)

	mock.ExpectQuery("SELECT .* FROM tasks").WillReturnError(errors.New("boom"))

	_, err := repo.ListTasks(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestGetTask_ScopedByOwner(t *testing.T) {
	repo, mock := newTestTaskRepo(t)

	mock.ExpectQuery(`SELECT .* FROM tasks WHERE \(?id = \$1 AND user_id = \$2\)?`).
		WithArgs(int64(5), int64(2)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetTask(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCreateTask(t *testing.T) {
	repo, mock := newTestTaskRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO tasks \(user_id,title,completed\) VALUES \(\$1,\$2,\$3\) RETURNING`).
		WithArgs(int64(1), "buy milk", false).
		WillReturnRows(taskRows().AddRow(10, 1, "buy milk", false, now))

	task, err := repo.CreateTask(context.Background(), models.Task{UserID: 1, Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), task.ID)
	assert.False(t, task.Completed)
}

func TestUpdateTask(t *testing.T) {
	repo, mock := newTestTaskRepo(t)
	done := true

	mock.ExpectQuery(`UPDATE tasks SET completed = \$1 WHERE \(?id = \$2 AND user_id = \$3\)? RETURNING`).
		WithArgs(true, int64(3), int64(1)).
		WillReturnRows(taskRows().AddRow(3, 1, "buy milk", true, time.Now()))

	task, err := repo.UpdateTask(context.Background(), models.TaskUpdate{ID: 3, UserID: 1, Completed: &done})
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, "buy milk", task.Title)
}

func TestUpdateTask_Empty(t *testing.T) {
	repo, _ := newTestTaskRepo(t)

	_, err := repo.UpdateTask(context.Background(), models.TaskUpdate{ID: 3, UserID: 1})
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}

func TestUpdateTask_ForeignTask(t *testing.T) {
	repo, mock := newTestTaskRepo(t)
	title := "mine now"

	mock.ExpectQuery("UPDATE tasks").
		WithArgs(title, int64(3), int64(2)).
		WillReturnRows(taskRows())

	_, err := repo.UpdateTask(context.Background(), models.TaskUpdate{ID: 3, UserID: 2, Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	repo, mock := newTestTaskRepo(t)

	mock.ExpectExec(`DELETE FROM tasks WHERE \(?id = \$1 AND user_id = \$2\)?`).
		WithArgs(int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM tasks`).
		WithArgs(int64(3), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteTask(context.Background(), 1, 3))
	assert.ErrorIs(t, repo.DeleteTask(context.Background(), 2, 3), ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
