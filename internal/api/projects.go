package api

import (
	"encoding/json"
	"net/http"

	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/models/entities"

	"github.com/go-chi/chi/v5"
)

// ListProjectsHandler handles GET /api/v1/projects
func ListProjectsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := deps.Managers.Projects.GetAll(r.Context())
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to list projects")
			return
		}
		respondWithSuccess(w, http.StatusOK, &projects)
	}
}

// GetProjectHandler handles GET /api/v1/projects/{id}
func GetProjectHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid project id")
			return
		}

		project, err := deps.Managers.Projects.GetByID(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to fetch project")
			return
		}
		if project == nil {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, project)
	}
}

// ListProjectsByLoginHandler handles GET /api/v1/users/login/{login}/projects
func ListProjectsByLoginHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := deps.Repo.Projects.ListByLogin(r.Context(), chi.URLParam(r, "login"))
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to list projects")
			return
		}
		respondWithSuccess(w, http.StatusOK, &projects)
	}
}

// CreateProjectHandler handles POST /api/v1/projects
func CreateProjectHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateProjectReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Login == "" || req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "login and name are required")
			return
		}

		project, err := deps.Managers.Projects.Create(r.Context(), &entities.Project{
			Login:      req.Login,
			Name:       req.Name,
			Deadline:   req.Deadline,
			Teammates:  req.Teammates,
			Difficulty: req.Difficulty,
			Category:   req.Category,
			Completion: req.Completion,
			Status:     req.Status,
		})
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		respondWithSuccess(w, http.StatusCreated, project)
	}
}

// UpdateProjectHandler handles PATCH /api/v1/projects/{id}
func UpdateProjectHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid project id")
			return
		}
		patch, err := decodePatch(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		project, err := deps.Managers.Projects.Update(r.Context(), id, patch)
		if err != nil {
			respondWithError(w, statusForError(err), err.Error())
			return
		}
		if project == nil {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		respondWithSuccess(w, http.StatusOK, project)
	}
}

// DeleteProjectHandler handles DELETE /api/v1/projects/{id}
func DeleteProjectHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid project id")
			return
		}

		deleted, err := deps.Managers.Projects.Delete(r.Context(), id)
		if err != nil {
			respondWithError(w, statusForError(err), "Failed to delete project")
			return
		}
		if !deleted {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
