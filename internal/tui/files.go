package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/models"
)

type filesModel struct {
	ctx   context.Context
	files service.ClientFileService

	items   []models.StoredFile
	idx     int
	loading bool
	status  string

	// uploading shows the path input, confirming the y/n delete prompt.
	uploading  bool
	confirming bool
	input      textinput.Model
}

func newFilesModel(ctx context.Context, files service.ClientFileService) *filesModel {
	input := textinput.New()
	input.Placeholder = "путь к файлу"
	input.CharLimit = 1024
	input.Width = 50

	return &filesModel{ctx: ctx, files: files, input: input}
}

func (m *filesModel) clear() {
	m.items = nil
	m.idx = 0
	m.loading = false
	m.uploading = false
	m.confirming = false
	m.status = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m *filesModel) current() (models.StoredFile, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.StoredFile{}, false
	}
	return m.items[m.idx], true
}

func (m *filesModel) editing() bool {
	return m.uploading || m.confirming
}

func (m *filesModel) cmdLoad() tea.Cmd {
	m.loading = true
	ctx, files := m.ctx, m.files
	return func() tea.Msg {
		items, err := files.List(ctx)
		return filesLoadedMsg{files: items, err: err}
	}
}

func (m *filesModel) Update(msg tea.Msg) (tea.Cmd, error) {
	switch msg := msg.(type) {
	case filesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return nil, msg.err
		}
		m.items = msg.files
		if m.idx >= len(m.items) {
			m.idx = max(len(m.items)-1, 0)
		}
		return nil, nil

	case fileUploadedMsg:
		if msg.err != nil {
			return nil, msg.err
		}
		m.status = "Загружен: " + msg.file.Name
		// a re-upload replaces the file of the same name
		for i := range m.items {
			if m.items[i].Name == msg.file.Name {
				m.items[i] = msg.file
				return nil, nil
			}
		}
		m.items = append(m.items, msg.file)
		return nil, nil

	case fileDeletedMsg:
		if msg.err != nil {
			return nil, msg.err
		}
		for i := range m.items {
			if m.items[i].Name == msg.name {
				m.items = append(m.items[:i], m.items[i+1:]...)
				break
			}
		}
		if m.idx >= len(m.items) {
			m.idx = max(len(m.items)-1, 0)
		}
		m.status = "Удалён: " + msg.name
		return nil, nil

	case copiedMsg:
		if msg.err != nil {
			return nil, msg.err
		}
		m.status = "Ссылка скопирована"
		return nil, nil

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirming(msg), nil
		}
		if m.uploading {
			return m.updateUploading(msg), nil
		}
		return m.updateBrowsing(msg), nil
	}

	return nil, nil
}

func (m *filesModel) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.upload):
		m.uploading = true
		m.input.SetValue("")
		return m.input.Focus()
	case key.Matches(msg, keys.copy):
		if file, ok := m.current(); ok {
			url := file.URL
			return func() tea.Msg { return copiedMsg{err: clipboard.WriteAll(url)} }
		}
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.confirming = true
		}
	case key.Matches(msg, keys.refresh):
		return m.cmdLoad()
	}
	return nil
}

func (m *filesModel) updateConfirming(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirming = false
		if file, ok := m.current(); ok {
			ctx, files, name := m.ctx, m.files, file.Name
			return func() tea.Msg { return fileDeletedMsg{name: name, err: files.Delete(ctx, name)} }
		}
	case key.Matches(msg, keys.no):
		m.confirming = false
	}
	return nil
}

func (m *filesModel) updateUploading(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.esc):
		m.uploading = false
		m.input.Blur()
		return nil
	case key.Matches(msg, keys.enter):
		path := strings.TrimSpace(m.input.Value())
		m.uploading = false
		m.input.Blur()
		if path == "" {
			return nil
		}
		ctx, files := m.ctx, m.files
		return func() tea.Msg {
			file, err := files.Upload(ctx, path)
			return fileUploadedMsg{file: file, err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *filesModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString("Загрузка...\n")
	case len(m.items) == 0:
		b.WriteString("Нет файлов\n")
	default:
		for i, file := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-40s %10d B\n", cursor, fitText(file.Name, 40), file.Size))
		}
		if file, ok := m.current(); ok {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(fitText(file.URL, 100)))
			b.WriteString("\n")
		}
	}

	if m.uploading {
		b.WriteString("\nФайл: [")
		b.WriteString(m.input.View())
		b.WriteString("]\n")
	}
	if m.confirming {
		if file, ok := m.current(); ok {
			b.WriteString("\n")
			b.WriteString(confirmModel{kind: "файл", subject: file.Name}.View())
			b.WriteString("\n")
		}
	}
	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	hotKeys := "u: загрузить │ c: копировать ссылку │ d: удалить │ r: обновить │ esc: к задачам"
	switch {
	case m.uploading:
		hotKeys = "enter: загрузить │ esc: отмена"
	case m.confirming:
		hotKeys = "y: да │ n: нет"
	}
	return renderPage("ФАЙЛЫ", strings.TrimRight(b.String(), "\n"), hotKeys)
}
