package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Shaurya0501/project-manager/models"
	"github.com/Shaurya0501/project-manager/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// GetTasksByProjectHandler lists a project's tasks after the owner-or-member
// check on that project.
func (h *TaskHandler) GetTasksByProjectHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathObjectID(w, mux.Vars(r)["projectId"], "project")
	if !ok {
		return
	}

	tasks, err := h.service.ListTasksByProject(r.Context(), projectID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathObjectID(w, mux.Vars(r)["id"], "task")
	if !ok {
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), taskID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.service.CreateTask(r.Context(), task, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathObjectID(w, mux.Vars(r)["id"], "task")
	if !ok {
		return
	}

	var upd models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.UpdateTask(r.Context(), taskID, userID, upd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathObjectID(w, mux.Vars(r)["id"], "task")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), taskID, userID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Task removed")
}
