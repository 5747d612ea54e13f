package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/workers"
	"github.com/MKhiriev/go-task-keeper/models"
)

type page int

const (
	pageAuth page = iota
	pageTasks
	pageFiles
)

// rootModel is the TUI router:
//  1. derives the active page from the signed-in user
//  2. handles global keys and the error overlay
//  3. feeds Google redirects back through reconciliation
//  4. delegates everything else to the active page
type rootModel struct {
	ctx       context.Context
	services  *service.ClientServices
	reconcile ReconcileFunc
	callbacks <-chan workers.Callback

	user *models.User
	page page

	auth  *authModel
	tasks *tasksModel
	files *filesModel

	overlay       *errorOverlayModel
	showBuildInfo bool
	buildInfo     models.AppBuildInfo
	serverInfo    *models.BuildInfoResponse

	quitByUser bool
}

func newRootModel(ctx context.Context, services *service.ClientServices, buildInfo models.AppBuildInfo, start Start) *rootModel {
	m := &rootModel{
		ctx:       ctx,
		services:  services,
		reconcile: start.Reconcile,
		callbacks: start.Callbacks,
		buildInfo: buildInfo,
		auth:      newAuthModel(ctx, services.AuthService),
		tasks:     newTasksModel(ctx, services.TaskService),
		files:     newFilesModel(ctx, services.FileService),
	}
	switch {
	case start.RedirectError != "":
		m.overlay = &errorOverlayModel{message: humanizeRedirectError(start.RedirectError)}
	case start.Err != nil:
		m.showError(start.Err)
	}
	m.user = start.User
	if m.user != nil {
		m.page = pageTasks
	}
	return m
}

func (m *rootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.waitForCallback()}
	if m.user != nil {
		cmds = append(cmds, m.tasks.cmdLoad())
	}
	return tea.Batch(cmds...)
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case callbackMsg:
		next := m.waitForCallback()
		if msg.callback.Error != "" {
			m.overlay = &errorOverlayModel{message: humanizeRedirectError(msg.callback.Error)}
			return m, next
		}
		return m, tea.Batch(next, m.cmdReconcile(msg.callback.Token))

	case userResolvedMsg:
		if msg.err != nil {
			m.showError(msg.err)
		}
		return m, m.setUser(msg.user)

	case authResultMsg:
		m.auth.Update(msg)
		if msg.err != nil {
			return m, nil
		}
		user := msg.user
		return m, m.setUser(&user)

	case loggedOutMsg:
		if msg.err != nil {
			m.showError(msg.err)
		}
		return m, m.setUser(nil)

	case googleURLMsg:
		m.auth.Update(msg)
		return m, nil

	case serverInfoMsg:
		if msg.err == nil {
			info := msg.info
			m.serverInfo = &info
		}
		return m, nil

	case tasksLoadedMsg, taskSavedMsg, taskDeletedMsg:
		if m.user == nil {
			// a late reply for a user who has signed out
			return m, nil
		}
		_, err := m.tasks.Update(msg)
		return m, m.handleError(err)

	case filesLoadedMsg, fileUploadedMsg, fileDeletedMsg, copiedMsg:
		if m.user == nil {
			return m, nil
		}
		_, err := m.files.Update(msg)
		return m, m.handleError(err)
	}

	if m.page == pageAuth {
		return m, m.auth.Update(msg)
	}
	return m, nil
}

func (m *rootModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitByUser = true
		return tea.Quit
	}

	if m.overlay != nil {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.overlay = nil
		}
		return nil
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			m.showBuildInfo = false
		}
		return nil
	}

	switch m.page {
	case pageAuth:
		return m.auth.Update(msg)

	case pageTasks:
		if !m.tasks.editing() {
			switch {
			case key.Matches(msg, keys.quit):
				m.quitByUser = true
				return tea.Quit
			case key.Matches(msg, keys.logout):
				return m.cmdLogout()
			case key.Matches(msg, keys.files):
				m.page = pageFiles
				return m.files.cmdLoad()
			case key.Matches(msg, keys.version):
				m.showBuildInfo = true
				return m.cmdServerInfo()
			}
		}
		cmd, _ := m.tasks.Update(msg)
		return cmd

	case pageFiles:
		if !m.files.editing() && key.Matches(msg, keys.esc) {
			m.page = pageTasks
			return nil
		}
		cmd, _ := m.files.Update(msg)
		return cmd
	}

	return nil
}

// setUser moves between the signed-out and signed-in states. The task
// views are unreachable without a user and the auth view is left as soon
// as one is resolved.
func (m *rootModel) setUser(user *models.User) tea.Cmd {
	m.user = user
	if user == nil {
		m.page = pageAuth
		m.tasks.clear()
		m.files.clear()
		m.auth.reset()
		return nil
	}

	if m.page == pageAuth {
		m.page = pageTasks
	}
	return m.tasks.cmdLoad()
}

// handleError shows err in the overlay. An unauthorized reply means the
// credential is gone, so the user is signed out.
func (m *rootModel) handleError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.showError(err)
	if errors.Is(err, service.ErrUnauthorized) {
		return m.cmdLogout()
	}
	return nil
}

func (m *rootModel) showError(err error) {
	m.overlay = &errorOverlayModel{message: humanizeError(err)}
}

func (m *rootModel) waitForCallback() tea.Cmd {
	if m.callbacks == nil {
		return nil
	}
	ch := m.callbacks
	return func() tea.Msg {
		cb, ok := <-ch
		if !ok {
			return nil
		}
		return callbackMsg{callback: cb}
	}
}

func (m *rootModel) cmdReconcile(urlToken string) tea.Cmd {
	if m.reconcile == nil {
		return nil
	}
	ctx, reconcile := m.ctx, m.reconcile
	return func() tea.Msg {
		user, err := reconcile(ctx, urlToken)
		return userResolvedMsg{user: user, err: err}
	}
}

func (m *rootModel) cmdLogout() tea.Cmd {
	ctx, auth := m.ctx, m.services.AuthService
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(ctx)}
	}
}

func (m *rootModel) cmdServerInfo() tea.Cmd {
	ctx, info := m.ctx, m.services.AppInfoService
	return func() tea.Msg {
		resp, err := info.ServerBuildInfo(ctx)
		return serverInfoMsg{info: resp, err: err}
	}
}

func (m *rootModel) View() string {
	var body string
	switch {
	case m.showBuildInfo:
		body = renderBuildInfoWindow(m.buildInfo, m.serverInfo)
	case m.user == nil || m.page == pageAuth:
		body = m.auth.View()
	case m.page == pageFiles:
		body = m.files.View()
	default:
		body = m.tasks.View(*m.user)
	}

	if m.overlay != nil {
		body += "\n\n" + m.overlay.View()
	}
	return appStyle.Render(body)
}
