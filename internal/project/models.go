package project

import "errors"

var ErrNotFound = errors.New("project not found")

const (
	StatusPlanning  = "planning"
	StatusActive    = "active"
	StatusOnHold    = "on_hold"
	StatusCompleted = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	StartAt     *int64 `json:"start_at,omitempty"` // unix seconds
	EndAt       *int64 `json:"end_at,omitempty"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}
