// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/models"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

const (
	inputEmail = iota
	inputPassword
	inputName
)

// authModel is the sign-in screen. It toggles between login and
// registration, and offers the Google sign-in URL. Errors are shown inline
// under the form.
type authModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	mode       authMode
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	googleURL  string
	status     string
}

func newAuthModel(ctx context.Context, auth service.ClientAuthService) *authModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	name := textinput.New()
	name.Placeholder = "name (необязательно)"
	name.CharLimit = 100
	name.Width = 40

	return &authModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{email, password, name},
	}
}

// reset clears the form after sign-out.
func (m *authModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = inputEmail
	m.inputs[m.focus].Focus()
	m.submitting = false
	m.errMsg = ""
	m.status = ""
}

func (m *authModel) visibleInputs() int {
	if m.mode == modeRegister {
		return 3
	}
	return 2
}

func (m *authModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		return nil

	case googleURLMsg:
		m.googleURL = msg.url
		if msg.err != nil {
			m.status = "Откройте ссылку в браузере:"
		} else {
			m.status = "Ссылка скопирована в буфер обмена:"
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.switchMode):
			m.toggleMode()
			return nil
		case key.Matches(msg, keys.google):
			return m.cmdGoogle()
		case key.Matches(msg, keys.tab), msg.String() == "down":
			m.focusNext()
			return nil
		case key.Matches(msg, keys.backtab), msg.String() == "up":
			m.focusPrev()
			return nil
		case key.Matches(msg, keys.enter):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *authModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	email := strings.TrimSpace(m.inputs[inputEmail].Value())
	password := m.inputs[inputPassword].Value()
	if email == "" || password == "" {
		m.errMsg = "E-mail и пароль обязательны"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth := m.ctx, m.auth
	if m.mode == modeRegister {
		req := models.RegisterRequest{Email: email, Password: password, Name: strings.TrimSpace(m.inputs[inputName].Value())}
		return func() tea.Msg {
			user, err := auth.Register(ctx, req)
			return authResultMsg{user: user, err: err}
		}
	}

	req := models.LoginRequest{Email: email, Password: password}
	return func() tea.Msg {
		user, err := auth.Login(ctx, req)
		return authResultMsg{user: user, err: err}
	}
}

func (m *authModel) cmdGoogle() tea.Cmd {
	url := m.auth.GoogleLoginURL()
	return func() tea.Msg {
		return googleURLMsg{url: url, err: clipboard.WriteAll(url)}
	}
}

func (m *authModel) toggleMode() {
	if m.mode == modeLogin {
		m.mode = modeRegister
	} else {
		m.mode = modeLogin
		if m.focus == inputName {
			m.setFocus(inputEmail)
		}
	}
	m.errMsg = ""
}

func (m *authModel) focusNext() {
	m.setFocus((m.focus + 1) % m.visibleInputs())
}

func (m *authModel) focusPrev() {
	n := m.visibleInputs()
	m.setFocus((m.focus - 1 + n) % n)
}

func (m *authModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *authModel) View() string {
	var b strings.Builder
	b.WriteString("Поле    │ Значение\n")
	b.WriteString("────────┼────────────────────────────────────────────\n")
	b.WriteString("E-mail  │ [")
	b.WriteString(m.inputs[inputEmail].View())
	b.WriteString("]\n")
	b.WriteString("Пароль  │ [")
	b.WriteString(m.inputs[inputPassword].View())
	b.WriteString("]\n")
	if m.mode == modeRegister {
		b.WriteString("Имя     │ [")
		b.WriteString(m.inputs[inputName].View())
		b.WriteString("]\n")
	}

	action := "Войти"
	title := "ВХОД"
	if m.mode == modeRegister {
		action = "Зарегистрироваться"
		title = "РЕГИСТРАЦИЯ"
	}
	if m.submitting {
		action += "..."
	}
	b.WriteString("\n[" + action + "]\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	if m.googleURL != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
		b.WriteString(m.googleURL)
		b.WriteString("\n")
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"tab: след. поле │ enter: подтвердить │ ctrl+r: вход/регистрация │ ctrl+g: Google")
}
