package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/uruz/internal/habitservice"
	"github.com/starford/uruz/internal/models"
	"github.com/starford/uruz/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc *habitservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *habitservice.Service) *Handler {
	return &Handler{svc: svc}
}

func recordID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// ListHabits handles GET /habits.
//
//	@Summary		List habits with pagination and optional filters
//	@Tags			habits
//	@Produce		json
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			limit		query		int		false	"Page size"
//	@Param			difficulty	query		string	false	"Filter by difficulty"	Enums(easy, medium, hard)
//	@Param			positive	query		bool	false	"Filter by positive polarity"
//	@Success		200			{object}	dataResponse
//	@Security		BearerAuth
//	@Router			/habits [get]
func (h *Handler) ListHabits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, limit = habitservice.NormalizePage(page, limit)

	f := store.HabitFilter{Page: page, Limit: limit, Difficulty: q.Get("difficulty")}
	if f.Difficulty != "" && !models.ValidDifficulty(f.Difficulty) {
		writeError(w, http.StatusBadRequest, "difficulty must be one of easy, medium, hard")
		return
	}
	if v := q.Get("positive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "positive must be a boolean")
			return
		}
		f.Positive = &b
	}

	habits, total, err := h.svc.ListHabits(r.Context(), f)
	if err != nil {
		writeServiceError(w, "list habits", err)
		return
	}
	writePage(w, habits, Pagination{Page: page, Limit: limit, Total: total, Pages: pageCount(total, limit)})
}

// GetHabit handles GET /habits/{id}.
//
//	@Summary		Get a single habit by id
//	@Tags			habits
//	@Produce		json
//	@Param			id	path		string	true	"Habit id"
//	@Success		200	{object}	dataResponse
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/habits/{id} [get]
func (h *Handler) GetHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := h.svc.GetHabit(r.Context(), recordID(r))
	if err != nil {
		writeServiceError(w, "get habit", err)
		return
	}
	writeData(w, http.StatusOK, habit)
}

// CreateHabit handles POST /habits.
//
//	@Summary		Create a new habit
//	@Tags			habits
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateHabitRequest	true	"Habit to create"
//	@Success		201		{object}	dataResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/habits [post]
func (h *Handler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	habit, err := h.svc.CreateHabit(r.Context(), req)
	if err != nil {
		writeServiceError(w, "create habit", err)
		return
	}
	writeData(w, http.StatusCreated, habit)
}

// UpdateHabit handles PATCH /habits/{id}.
//
//	@Summary		Apply a sparse update to a habit
//	@Tags			habits
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Habit id"
//	@Param			body	body		UpdateHabitRequest	true	"Fields to change"
//	@Success		200		{object}	dataResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/habits/{id} [patch]
func (h *Handler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	habit, err := h.svc.UpdateHabit(r.Context(), recordID(r), req)
	if err != nil {
		writeServiceError(w, "update habit", err)
		return
	}
	writeData(w, http.StatusOK, habit)
}

// CompleteHabit handles POST /habits/{id}/complete.
//
//	@Summary		Mark a habit completed for today
//	@Tags			habits
//	@Produce		json
//	@Param			id	path		string	true	"Habit id"
//	@Success		200	{object}	dataResponse
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/habits/{id}/complete [post]
func (h *Handler) CompleteHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := h.svc.CompleteHabit(r.Context(), recordID(r))
	if err != nil {
		writeServiceError(w, "complete habit", err)
		return
	}
	writeData(w, http.StatusOK, habit)
}

// DeleteHabit handles DELETE /habits/{id}. The deleted record is returned as
// confirmation.
//
//	@Summary		Delete a habit permanently
//	@Tags			habits
//	@Produce		json
//	@Param			id	path		string	true	"Habit id"
//	@Success		200	{object}	dataResponse
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/habits/{id} [delete]
func (h *Handler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := h.svc.DeleteHabit(r.Context(), recordID(r))
	if err != nil {
		writeServiceError(w, "delete habit", err)
		return
	}
	writeData(w, http.StatusOK, habit)
}

// HabitStats handles GET /habits/stats/summary.
//
//	@Summary		Aggregate statistics over the full habit collection
//	@Tags			habits
//	@Produce		json
//	@Success		200	{object}	dataResponse
//	@Security		BearerAuth
//	@Router			/habits/stats/summary [get]
func (h *Handler) HabitStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.HabitStats(r.Context())
	if err != nil {
		writeServiceError(w, "habit stats", err)
		return
	}
	writeData(w, http.StatusOK, StatsSummary{
		Summary: statsTotals{
			Total:      stats.Total,
			Positive:   stats.Positive,
			Negative:   stats.Negative,
			CounterSum: stats.CounterSum,
			CounterAvg: stats.CounterAvg,
		},
		ByDifficulty: stats.ByDifficulty,
	})
}
