// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/service"
)

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}

func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Неверный e-mail или пароль"
	case errors.Is(err, service.ErrDuplicateEmail):
		return "Пользователь с таким e-mail уже существует"
	case errors.Is(err, service.ErrUnauthorized):
		return "Сессия истекла, войдите снова"
	case errors.Is(err, service.ErrNotFound):
		return "Запись не найдена"
	case errors.Is(err, service.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), service.ErrValidation.Error())
		return "Некорректные данные" + msg
	}

	return humanizeServerUnavailableError(err)
}

func humanizeRedirectError(code string) string {
	switch code {
	case app.RedirectErrEmailInUse:
		return "Этот e-mail уже используется другим аккаунтом"
	case app.RedirectErrOAuthDisabled:
		return "Вход через Google не настроен на сервере"
	default:
		return "Не удалось войти через Google"
	}
}
