package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrDuplicateEmail:     http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusBadRequest,
	service.ErrUnauthorized:       http.StatusUnauthorized,
	service.ErrNotFound:           http.StatusNotFound,
	ErrInvalidJSON:                http.StatusBadRequest,

	store.ErrBlobNotFound:         http.StatusNotFound,
	store.ErrInvalidBlobSignature: http.StatusForbidden,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError answers err with its mapped status. Unmapped errors are
// logged and replaced by a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	if status == http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Msg("request failed")
		utils.WriteError(w, app.MsgInternalServerError, status)
		return
	}

	message := err.Error()
	switch {
	case errors.Is(err, store.ErrInvalidBlobSignature):
		message = app.MsgInvalidSignature
	case errors.Is(err, store.ErrBlobNotFound):
		message = service.ErrNotFound.Error()
	}

	log.Debug().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	utils.WriteError(w, message, status)
}
