package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	auth "github.com/projectpulse/projectpulse/internal/auth/middleware"
	"github.com/projectpulse/projectpulse/internal/project"
)

type projectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status"`
	StartAt     *int64 `json:"start_at,omitempty"`
	EndAt       *int64 `json:"end_at,omitempty"`
}

func CreateProjectHandler(store project.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status := req.Status
		if status == "" {
			status = project.StatusPlanning
		}
		if !project.ValidStatus(status) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		now := time.Now().Unix()
		p := project.Project{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Status:      status,
			StartAt:     req.StartAt,
			EndAt:       req.EndAt,
			CreatedBy:   auth.SubjectFromContext(r.Context()),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		stored, err := store.Create(r.Context(), p)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	}
}

func ListProjectsHandler(store project.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := project.ListOpts{
			Q:      strings.TrimSpace(r.URL.Query().Get("q")),
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:  queryInt(r, "limit", "50"),
			Offset: queryInt(r, "offset", "0"),
		}
		out, err := store.List(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetProjectHandler(store project.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.Get(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func UpdateProjectHandler(store project.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prev, err := store.Get(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		var req projectRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status := req.Status
		if status == "" {
			status = prev.Status
		}
		if !project.ValidStatus(status) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		prev.Name = strings.TrimSpace(req.Name)
		prev.Description = req.Description
		prev.Status = status
		prev.StartAt = req.StartAt
		prev.EndAt = req.EndAt
		prev.UpdatedAt = time.Now().Unix()
		stored, err := store.Update(r.Context(), prev)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stored)
	}
}

func DeleteProjectHandler(store project.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "projectID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
