package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Shaurya0501/project-manager/models"
	"github.com/Shaurya0501/project-manager/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

// ListProjectsHandler returns the projects the requester owns or belongs to.
func (h *ProjectHandler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	projects, err := h.Service.ListProjects(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByIDHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathObjectID(w, mux.Vars(r)["id"], "project")
	if !ok {
		return
	}

	project, err := h.Service.GetProjectByID(r.Context(), projectID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.Service.CreateProject(r.Context(), project, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *ProjectHandler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathObjectID(w, mux.Vars(r)["id"], "project")
	if !ok {
		return
	}

	var upd models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	project, err := h.Service.UpdateProject(r.Context(), projectID, userID, upd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathObjectID(w, mux.Vars(r)["id"], "project")
	if !ok {
		return
	}

	if err := h.Service.DeleteProject(r.Context(), projectID, userID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Project removed")
}
