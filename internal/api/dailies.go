package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/starford/uruz/internal/habitservice"
)

// ListDailies handles GET /dailies.
//
//	@Summary		List dailies with pagination
//	@Tags			dailies
//	@Produce		json
//	@Param			page	query		int	false	"Page number (1-based)"
//	@Param			limit	query		int	false	"Page size"
//	@Success		200		{object}	dataResponse
//	@Security		BearerAuth
//	@Router			/dailies [get]
func (h *Handler) ListDailies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, limit = habitservice.NormalizePage(page, limit)

	dailies, total, err := h.svc.ListDailies(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, "list dailies", err)
		return
	}
	writePage(w, dailies, Pagination{Page: page, Limit: limit, Total: total, Pages: pageCount(total, limit)})
}

// GetDaily handles GET /dailies/{id}.
//
//	@Summary		Get a single daily by id
//	@Tags			dailies
//	@Produce		json
//	@Param			id	path		string	true	"Daily id"
//	@Success		200	{object}	dataResponse
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dailies/{id} [get]
func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	daily, err := h.svc.GetDaily(r.Context(), recordID(r))
	if err != nil {
		writeServiceError(w, "get daily", err)
		return
	}
	writeData(w, http.StatusOK, daily)
}

// CreateDaily handles POST /dailies.
//
//	@Summary		Create a new daily
//	@Tags			dailies
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateDailyRequest	true	"Daily to create"
//	@Success		201		{object}	dataResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dailies [post]
func (h *Handler) CreateDaily(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	daily, err := h.svc.CreateDaily(r.Context(), req)
	if err != nil {
		writeServiceError(w, "create daily", err)
		return
	}
	writeData(w, http.StatusCreated, daily)
}

// UpdateDaily handles PATCH /dailies/{id}.
//
//	@Summary		Apply a sparse update to a daily
//	@Tags			dailies
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Daily id"
//	@Param			body	body		UpdateDailyRequest	true	"Fields to change"
//	@Success		200		{object}	dataResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dailies/{id} [patch]
func (h *Handler) UpdateDaily(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	daily, err := h.svc.UpdateDaily(r.Context(), recordID(r), req)
	if err != nil {
		writeServiceError(w, "update daily", err)
		return
	}
	writeData(w, http.StatusOK, daily)
}

// CompleteDaily handles POST /dailies/{id}/complete.
//
//	@Summary		Mark a daily completed for today
//	@Tags			dailies
//	@Produce		json
//	@Param			id	path		string	true	"Daily id"
//	@Success		200	{object}	dataResponse
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dailies/{id}/complete [post]
func (h *Handler) CompleteDaily(w http.ResponseWriter, r *http.Request) {
	daily, err := h.svc.CompleteDaily(r.Context(), recordID(r))
	if err != nil {
		writeServiceError(w, "complete daily", err)
		return
	}
	writeData(w, http.StatusOK, daily)
}

// DeleteDaily handles DELETE /dailies/{id}.
//
//	@Summary		Delete a daily permanently
//	@Tags			dailies
//	@Produce		json
//	@Param			id	path		string	true	"Daily id"
//	@Success		200	{object}	dataResponse
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dailies/{id} [delete]
func (h *Handler) DeleteDaily(w http.ResponseWriter, r *http.Request) {
	daily, err := h.svc.DeleteDaily(r.Context(), recordID(r))
	if err != nil {
		writeServiceError(w, "delete daily", err)
		return
	}
	writeData(w, http.StatusOK, daily)
}
