package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/models"
)

func newTestTasksModel(t *testing.T, items ...models.Task) (*tasksModel, *mock.MockClientTaskService) {
	t.Helper()
	svc := mock.NewMockClientTaskService(gomock.NewController(t))
	m := newTasksModel(context.Background(), svc)
	m.items = items
	return m, svc
}

func typeText(m interface {
	Update(tea.Msg) (tea.Cmd, error)
}, text string) {
	for _, r := range text {
		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestTasksModel_Create(t *testing.T) {
	m, svc := newTestTasksModel(t)
	svc.EXPECT().Create(gomock.Any(), "milk").Return(models.Task{ID: 3, Title: "milk"}, nil)

	_, _ = m.Update(keyPress("n"))
	require.Equal(t, taskAdding, m.mode)
	typeText(m, "milk")

	cmd, err := m.Update(enterKey())
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, taskBrowse, m.mode)

	_, err = m.Update(cmd())
	require.NoError(t, err)
	require.Len(t, m.items, 1)
	assert.Equal(t, "milk", m.items[0].Title)
}

func TestTasksModel_TypingDoesNotTriggerHotkeys(t *testing.T) {
	m, _ := newTestTasksModel(t)

	_, _ = m.Update(keyPress("n"))
	typeText(m, "jkdr")

	assert.Equal(t, taskAdding, m.mode)
	assert.Equal(t, "jkdr", m.input.Value())
}

func TestTasksModel_Rename(t *testing.T) {
	m, svc := newTestTasksModel(t, models.Task{ID: 1, Title: "old"})
	svc.EXPECT().Rename(gomock.Any(), int64(1), "old!").Return(models.Task{ID: 1, Title: "old!"}, nil)

	_, _ = m.Update(keyPress("e"))
	require.Equal(t, taskRenaming, m.mode)
	typeText(m, "!")

	cmd, _ := m.Update(enterKey())
	_, err := m.Update(cmd())

	require.NoError(t, err)
	assert.Equal(t, "old!", m.items[0].Title)
}

func TestTasksModel_Toggle(t *testing.T) {
	m, svc := newTestTasksModel(t, models.Task{ID: 1, Title: "milk"})
	svc.EXPECT().SetCompleted(gomock.Any(), int64(1), true).Return(models.Task{ID: 1, Title: "milk", Completed: true}, nil)

	cmd, _ := m.Update(keyPress(" "))
	_, err := m.Update(cmd())

	require.NoError(t, err)
	assert.True(t, m.items[0].Completed)
	assert.Contains(t, m.View(models.User{Email: "a@example.com"}), "[x]")
}

func TestTasksModel_DeleteAsksFirst(t *testing.T) {
	m, svc := newTestTasksModel(t, models.Task{ID: 1, Title: "milk"}, models.Task{ID: 2, Title: "bread"})

	_, _ = m.Update(keyPress("d"))
	require.Equal(t, taskConfirmDelete, m.mode)
	assert.Contains(t, m.View(models.User{}), "Удалить задачу «milk»?")

	cmd, _ := m.Update(keyPress("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, taskBrowse, m.mode)
	assert.Len(t, m.items, 2)

	svc.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	_, _ = m.Update(keyPress("d"))
	cmd, _ = m.Update(keyPress("y"))
	_, err := m.Update(cmd())

	require.NoError(t, err)
	require.Len(t, m.items, 1)
	assert.Equal(t, int64(2), m.items[0].ID)
}

func TestTasksModel_DeleteFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		removed bool
	}{
		{name: "already gone", err: service.ErrNotFound, removed: true},
		{name: "network", err: errors.New("connection refused"), removed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestTasksModel(t, models.Task{ID: 1, Title: "milk"})

			_, err := m.Update(taskDeletedMsg{taskID: 1, err: tt.err})

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.removed, len(m.items) == 0)
		})
	}
}

func TestTasksModel_LoadError(t *testing.T) {
	m, _ := newTestTasksModel(t, models.Task{ID: 1, Title: "milk"})
	m.loading = true

	_, err := m.Update(tasksLoadedMsg{err: service.ErrUnauthorized})

	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.False(t, m.loading)
	assert.Len(t, m.items, 1)
}

func TestTasksModel_Clear(t *testing.T) {
	m, _ := newTestTasksModel(t, models.Task{ID: 1, Title: "milk"})
	_, _ = m.Update(keyPress("n"))

	m.clear()

	assert.Empty(t, m.items)
	assert.Equal(t, taskBrowse, m.mode)
	assert.Contains(t, m.View(models.User{}), "Нет задач")
}
