package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)

	tasks, err := h.services.TaskService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.listTasks")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.getTask")
		return
	}

	task, err := h.services.TaskService.Get(r.Context(), userID, taskID)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.getTask")
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, r, ErrInvalidJSON, "*Handler.createTask")
		return
	}

	task, err := h.services.TaskService.Create(r.Context(), userID, req.Title)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.createTask")
		return
	}

	utils.WriteJSON(w, task, http.StatusCreated)
}

// updateTask applies a partial update: absent fields keep their values.
func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.updateTask")
		return
	}

	var req models.UpdateTaskRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, r, ErrInvalidJSON, "*Handler.updateTask")
		return
	}

	task, err := h.services.TaskService.Update(r.Context(), models.TaskUpdate{
		ID:        taskID,
		UserID:    userID,
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		writeServiceError(w, r, err, "*Handler.updateTask")
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.deleteTask")
		return
	}

	if err = h.services.TaskService.Delete(r.Context(), userID, taskID); err != nil {
		writeServiceError(w, r, err, "*Handler.deleteTask")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgTaskDeleted}, http.StatusOK)
}

func taskIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidTaskID
	}
	return id, nil
}
