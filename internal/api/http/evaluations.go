package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/projectpulse/projectpulse/internal/evaluation"
	"github.com/projectpulse/projectpulse/internal/project"
)

// RubricHandler serves the active rubric so the capture UI can render the
// wizard from the same taxonomy the calculator scores against.
func RubricHandler(r evaluation.Rubric) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, r)
	}
}

type evaluationRequest struct {
	EvaluatorName string             `json:"evaluator_name" validate:"required,max=200"`
	Answers       map[string]float64 `json:"answers" validate:"required"`
}

func SubmitEvaluationHandler(svc *evaluation.Service, projects project.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if _, err := projects.Get(r.Context(), projectID); err != nil {
			writeError(w, err)
			return
		}
		var req evaluationRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		stored, err := svc.Submit(r.Context(), evaluation.SubmitInput{
			ProjectID:     projectID,
			EvaluatorName: strings.TrimSpace(req.EvaluatorName),
			Answers:       evaluation.AnswerSet(req.Answers),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	}
}

func ListEvaluationsHandler(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByProject(r.Context(), chi.URLParam(r, "projectID"),
			queryInt(r, "limit", "50"), queryInt(r, "offset", "0"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// EvaluationSummaryHandler backs the radar chart: per-dimension averages over
// the project's stored evaluations.
func EvaluationSummaryHandler(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.ProjectSummary(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

func GetEvaluationHandler(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, err := svc.Get(r.Context(), chi.URLParam(r, "evaluationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ev)
	}
}

func ReplaceEvaluationHandler(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluationRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		stored, err := svc.Replace(r.Context(), chi.URLParam(r, "evaluationID"), evaluation.ReplaceInput{
			EvaluatorName: strings.TrimSpace(req.EvaluatorName),
			Answers:       evaluation.AnswerSet(req.Answers),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stored)
	}
}

func DeleteEvaluationHandler(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "evaluationID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
