// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-task-keeper/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, server *models.BuildInfoResponse) string {
	var b strings.Builder

	b.WriteString("Название приложения: go-task-keeper\n")
	b.WriteString("Версия: ")
	b.WriteString(valueOrNA(info.BuildVersion()))
	b.WriteString("\n")
	b.WriteString("Дата: ")
	b.WriteString(valueOrNA(info.BuildDate()))
	b.WriteString("\n")
	b.WriteString("Коммит: ")
	b.WriteString(valueOrNA(info.BuildCommit()))

	b.WriteString("\n\nСервер: ")
	if server == nil {
		b.WriteString("N/A")
	} else {
		b.WriteString(valueOrNA(server.Version))
		b.WriteString(" (")
		b.WriteString(valueOrNA(server.Commit))
		b.WriteString(")")
	}

	return renderPage("ИНФОРМАЦИЯ О ПРОГРАММЕ", b.String(), "esc: назад")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
