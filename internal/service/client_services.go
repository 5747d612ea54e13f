package service

import (
	"github.com/MKhiriev/go-task-keeper/internal/adapter"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
)

// ClientServices groups the client-side services used by the TUI.
type ClientServices struct {
	AuthService    ClientAuthService
	TaskService    ClientTaskService
	FileService    ClientFileService
	AppInfoService ClientAppInfoService
}

func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService:    NewClientAuthService(localStore.Credentials, serverAdapter, logger),
		TaskService:    NewClientTaskService(serverAdapter),
		FileService:    NewClientFileService(serverAdapter),
		AppInfoService: NewClientAppInfoService(serverAdapter),
	}
}
