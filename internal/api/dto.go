package api

import (
	"github.com/starford/uruz/internal/apperr"
	"github.com/starford/uruz/internal/habitservice"
	"github.com/starford/uruz/internal/models"
	"github.com/starford/uruz/internal/store"
)

// CreateHabitRequest is the request body for creating a habit (aliased from
// the service layer, which owns the validation rules).
type CreateHabitRequest = habitservice.CreateHabitInput

// UpdateHabitRequest is the request body for a sparse habit update.
type UpdateHabitRequest = habitservice.UpdateHabitInput

// CreateDailyRequest is the request body for creating a daily.
type CreateDailyRequest = habitservice.CreateDailyInput

// UpdateDailyRequest is the request body for a sparse daily update.
type UpdateDailyRequest = habitservice.UpdateDailyInput

// Habit is the canonical habit record as returned to clients.
type Habit = models.Habit

// Daily is the canonical daily record as returned to clients.
type Daily = models.Daily

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page" example:"1"`
	Limit int `json:"limit" example:"20"`
	Total int `json:"total" example:"42"`
	Pages int `json:"pages" example:"3"`
}

// pageCount computes ceil(total/limit).
func pageCount(total, limit int) int {
	return (total + limit - 1) / limit
}

// StatsSummary is the aggregate payload of the stats endpoint.
type StatsSummary struct {
	Summary      statsTotals            `json:"summary"`
	ByDifficulty store.DifficultyCounts `json:"byDifficulty"`
}

type statsTotals struct {
	Total      int     `json:"total"`
	Positive   int     `json:"positive"`
	Negative   int     `json:"negative"`
	CounterSum int     `json:"counterSum"`
	CounterAvg float64 `json:"counterAvg"`
}

// dataResponse is the success envelope shared by every endpoint.
type dataResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// errResponse is the failure envelope. Errors carries the full per-field list
// on validation failures so a client can highlight every invalid field at once.
type errResponse struct {
	Success bool               `json:"success"`
	Error   string             `json:"error" validate:"required"`
	Errors  apperr.FieldErrors `json:"errors,omitempty"`
}
