package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/projectpulse/projectpulse/internal/evaluation"
	"github.com/projectpulse/projectpulse/internal/project"
	"github.com/projectpulse/projectpulse/internal/task"
)

// Handlers only — routes remain in main.go

var validate = validator.New()

// decodeJSON decodes the body into v and runs struct-tag validation.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("bad json")
	}
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Validation problems are
// the caller's to fix (400); vanished records are non-fatal (404); anything
// else is a store fault (500).
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, evaluation.ErrUnknownQuestion),
		errors.Is(err, evaluation.ErrInvalidAnswerValue),
		errors.Is(err, evaluation.ErrIncompleteEvaluation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, evaluation.ErrNotFound),
		errors.Is(err, project.ErrNotFound),
		errors.Is(err, task.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, key, fallback string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		v, _ = strconv.Atoi(fallback)
	}
	return v
}
