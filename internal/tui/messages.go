package tui

import (
	"github.com/MKhiriev/go-task-keeper/internal/workers"
	"github.com/MKhiriev/go-task-keeper/models"
)

// userResolvedMsg carries the outcome of a credential reconciliation.
type userResolvedMsg struct {
	user *models.User
	err  error
}

type authResultMsg struct {
	user models.User
	err  error
}

type loggedOutMsg struct {
	err error
}

type callbackMsg struct {
	callback workers.Callback
}

type googleURLMsg struct {
	url string
	err error
}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type taskSavedMsg struct {
	task models.Task
	err  error
}

type taskDeletedMsg struct {
	taskID int64
	err    error
}

type filesLoadedMsg struct {
	files []models.StoredFile
	err   error
}

type fileUploadedMsg struct {
	file models.StoredFile
	err  error
}

type fileDeletedMsg struct {
	name string
	err  error
}

type serverInfoMsg struct {
	info models.BuildInfoResponse
	err  error
}

type copiedMsg struct {
	err error
}
