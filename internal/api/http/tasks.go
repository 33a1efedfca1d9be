package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/projectpulse/projectpulse/internal/project"
	"github.com/projectpulse/projectpulse/internal/task"
)

type taskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	DueAt       *int64 `json:"due_at,omitempty"`
}

func CreateTaskHandler(tasks task.Store, projects project.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if _, err := projects.Get(r.Context(), projectID); err != nil {
			writeError(w, err)
			return
		}
		var req taskRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status := req.Status
		if status == "" {
			status = task.StatusTodo
		}
		if !task.ValidStatus(status) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		now := time.Now().Unix()
		t := task.Task{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Status:      status,
			Assignee:    strings.TrimSpace(req.Assignee),
			DueAt:       req.DueAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		stored, err := tasks.Create(r.Context(), t)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	}
}

// ListTasksHandler serves the project timeline: due date ascending, undated
// tasks last. ?assignee= filters to one user's assignments instead.
func ListTasksHandler(tasks task.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a := strings.TrimSpace(r.URL.Query().Get("assignee")); a != "" {
			out, err := tasks.ListByAssignee(r.Context(), a)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, out)
			return
		}
		out, err := tasks.ListByProject(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetTaskHandler(tasks task.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := tasks.Get(r.Context(), chi.URLParam(r, "taskID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func UpdateTaskHandler(tasks task.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prev, err := tasks.Get(r.Context(), chi.URLParam(r, "taskID"))
		if err != nil {
			writeError(w, err)
			return
		}
		var req taskRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status := req.Status
		if status == "" {
			status = prev.Status
		}
		if !task.ValidStatus(status) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		prev.Title = strings.TrimSpace(req.Title)
		prev.Description = req.Description
		prev.Status = status
		prev.Assignee = strings.TrimSpace(req.Assignee)
		prev.DueAt = req.DueAt
		prev.UpdatedAt = time.Now().Unix()
		stored, err := tasks.Update(r.Context(), prev)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stored)
	}
}

func DeleteTaskHandler(tasks task.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := tasks.Delete(r.Context(), chi.URLParam(r, "taskID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
