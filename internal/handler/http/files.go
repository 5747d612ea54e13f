package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

// multipartOverhead is the room left for multipart boundaries and part
// headers on top of the file itself.
const multipartOverhead = 1 << 20

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, r, ErrUploadTooLarge, "*Handler.uploadFile")
			return
		}
		writeServiceError(w, r, ErrNoFileProvided, "*Handler.uploadFile")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeServiceError(w, r, ErrNoFileProvided, "*Handler.uploadFile")
		return
	}
	defer file.Close()

	stored, err := h.services.FileService.Upload(
		r.Context(),
		userID,
		header.Filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.uploadFile")
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)

	files, err := h.services.FileService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.listFiles")
		return
	}
	if files == nil {
		files = []models.StoredFile{}
	}

	utils.WriteJSON(w, files, http.StatusOK)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)

	if err := h.services.FileService.Delete(r.Context(), userID, pathParam(r, "name")); err != nil {
		writeServiceError(w, r, err, "*Handler.deleteFile")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgFileDeleted}, http.StatusOK)
}

// downloadRawFile serves a blob of the local backend. The signature in the
// query authorises the read, so the route needs no credential.
func (h *Handler) downloadRawFile(w http.ResponseWriter, r *http.Request) {
	if h.rawBlobs == nil {
		notFound(w, r)
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "user"), 10, 64)
	if err != nil {
		notFound(w, r)
		return
	}
	name := pathParam(r, "name")

	query := r.URL.Query()
	f, err := h.rawBlobs.Open(store.UserBlobKey(userID, name), query.Get("exp"), query.Get("sig"))
	if err != nil {
		writeServiceError(w, r, err, "*Handler.downloadRawFile")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.downloadRawFile").Send()
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// pathParam returns the decoded value of a path segment.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
