package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/models"
)

type taskEditMode int

const (
	taskBrowse taskEditMode = iota
	taskAdding
	taskRenaming
	taskConfirmDelete
)

// tasksModel is the task list of the signed-in user. Every action is sent
// to the server on its own and the local list is patched with the reply.
type tasksModel struct {
	ctx   context.Context
	tasks service.ClientTaskService

	items   []models.Task
	idx     int
	loading bool
	mode    taskEditMode
	input   textinput.Model
	editID  int64
}

func newTasksModel(ctx context.Context, tasks service.ClientTaskService) *tasksModel {
	input := textinput.New()
	input.Placeholder = "название задачи"
	input.CharLimit = service.MaxTitleLength
	input.Width = 50

	return &tasksModel{ctx: ctx, tasks: tasks, input: input}
}

// clear drops everything local; used when the user signs out.
func (m *tasksModel) clear() {
	m.items = nil
	m.idx = 0
	m.loading = false
	m.mode = taskBrowse
	m.input.SetValue("")
	m.input.Blur()
}

func (m *tasksModel) current() (models.Task, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.Task{}, false
	}
	return m.items[m.idx], true
}

func (m *tasksModel) editing() bool {
	return m.mode != taskBrowse
}

func (m *tasksModel) cmdLoad() tea.Cmd {
	m.loading = true
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		items, err := tasks.List(ctx)
		return tasksLoadedMsg{tasks: items, err: err}
	}
}

// Update handles list results and keys. Errors are returned to the caller
// for display; the list itself never shows them.
func (m *tasksModel) Update(msg tea.Msg) (tea.Cmd, error) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return nil, msg.err
		}
		m.items = msg.tasks
		m.clampCursor()
		return nil, nil

	case taskSavedMsg:
		if msg.err != nil {
			return nil, msg.err
		}
		m.upsert(msg.task)
		return nil, nil

	case taskDeletedMsg:
		// a task the server no longer has is gone either way
		if msg.err == nil || errors.Is(msg.err, service.ErrNotFound) {
			m.remove(msg.taskID)
		}
		return nil, msg.err

	case tea.KeyMsg:
		if m.editing() {
			return m.updateEditing(msg), nil
		}
		return m.updateBrowsing(msg), nil
	}

	return nil, nil
}

func (m *tasksModel) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.newItem):
		m.mode = taskAdding
		m.input.SetValue("")
		return m.input.Focus()
	case key.Matches(msg, keys.edit):
		task, ok := m.current()
		if !ok {
			return nil
		}
		m.mode = taskRenaming
		m.editID = task.ID
		m.input.SetValue(task.Title)
		m.input.CursorEnd()
		return m.input.Focus()
	case key.Matches(msg, keys.toggle), key.Matches(msg, keys.enter):
		task, ok := m.current()
		if !ok {
			return nil
		}
		return m.cmdSetCompleted(task.ID, !task.Completed)
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.mode = taskConfirmDelete
		}
	case key.Matches(msg, keys.refresh):
		return m.cmdLoad()
	}
	return nil
}

func (m *tasksModel) updateEditing(msg tea.KeyMsg) tea.Cmd {
	if m.mode == taskConfirmDelete {
		switch {
		case key.Matches(msg, keys.yes):
			m.mode = taskBrowse
			if task, ok := m.current(); ok {
				return m.cmdDelete(task.ID)
			}
		case key.Matches(msg, keys.no):
			m.mode = taskBrowse
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		m.mode = taskBrowse
		m.input.Blur()
		return nil
	case key.Matches(msg, keys.enter):
		title := m.input.Value()
		mode, id := m.mode, m.editID
		m.mode = taskBrowse
		m.input.Blur()
		if mode == taskAdding {
			return m.cmdCreate(title)
		}
		return m.cmdRename(id, title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *tasksModel) cmdCreate(title string) tea.Cmd {
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		task, err := tasks.Create(ctx, title)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m *tasksModel) cmdRename(taskID int64, title string) tea.Cmd {
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		task, err := tasks.Rename(ctx, taskID, title)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m *tasksModel) cmdSetCompleted(taskID int64, completed bool) tea.Cmd {
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		task, err := tasks.SetCompleted(ctx, taskID, completed)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m *tasksModel) cmdDelete(taskID int64) tea.Cmd {
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		return taskDeletedMsg{taskID: taskID, err: tasks.Delete(ctx, taskID)}
	}
}

// upsert replaces the task with the same id or appends it.
func (m *tasksModel) upsert(task models.Task) {
	for i := range m.items {
		if m.items[i].ID == task.ID {
			m.items[i] = task
			return
		}
	}
	m.items = append(m.items, task)
	m.idx = len(m.items) - 1
}

func (m *tasksModel) remove(taskID int64) {
	for i := range m.items {
		if m.items[i].ID == taskID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	m.clampCursor()
}

func (m *tasksModel) clampCursor() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *tasksModel) View(user models.User) string {
	var b strings.Builder

	b.WriteString("Пользователь: ")
	b.WriteString(user.Name)
	b.WriteString(" <")
	b.WriteString(user.Email)
	b.WriteString(">\n\n")

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString("Загрузка...\n")
	case len(m.items) == 0:
		b.WriteString("Нет задач\n")
	default:
		for i, task := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			mark := "[ ]"
			title := fitText(task.Title, 60)
			if task.Completed {
				mark = "[x]"
				title = doneStyle.Render(title)
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, mark, title))
		}
	}

	hotKeys := "n: новая │ e: переименовать │ пробел: выполнено │ d: удалить │ r: обновить │ f: файлы │ v: версия │ l: выйти │ q: выход"
	switch m.mode {
	case taskAdding:
		b.WriteString("\nНовая задача: [")
		b.WriteString(m.input.View())
		b.WriteString("]\n")
		hotKeys = "enter: сохранить │ esc: отмена"
	case taskRenaming:
		b.WriteString("\nНазвание: [")
		b.WriteString(m.input.View())
		b.WriteString("]\n")
		hotKeys = "enter: сохранить │ esc: отмена"
	case taskConfirmDelete:
		if task, ok := m.current(); ok {
			b.WriteString("\n")
			b.WriteString(confirmModel{kind: "задачу", subject: task.Title}.View())
			b.WriteString("\n")
		}
		hotKeys = "y: да │ n: нет"
	}

	return renderPage("ЗАДАЧИ", strings.TrimRight(b.String(), "\n"), hotKeys)
}
