package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/medtrack/medtrack-api/internal/domain/model"
	"github.com/medtrack/medtrack-api/internal/service"
)

// RecordHandlers provides HTTP handlers for health record CRUD.
// All routes sit behind RequireAuth; the user ID always comes from the
// session claims, never from the request.
type RecordHandlers struct {
	Svc *service.RecordService
}

// Create handles POST /api/records.
func (h *RecordHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRecordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	rec, err := h.Svc.Create(r.Context(), UserIDFromContext(r.Context()), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, rec)
}

// List handles GET /api/records?value_type_id=&limit=&offset=.
func (h *RecordHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, err := recordsListOptions(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	recs, err := h.Svc.List(r.Context(), UserIDFromContext(r.Context()), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if recs == nil {
		recs = []*model.Record{}
	}
	WriteJSON(w, http.StatusOK, recs)
}

// GetByID handles GET /api/records/{id}.
func (h *RecordHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.Svc.GetByID(r.Context(), UserIDFromContext(r.Context()), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}

// Update handles PUT /api/records/{id}.
func (h *RecordHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateRecordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	rec, err := h.Svc.Update(r.Context(), UserIDFromContext(r.Context()), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/records/{id}.
func (h *RecordHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), UserIDFromContext(r.Context()), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/records/stats?value_type_id=.
func (h *RecordHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	valueTypeID := model.ValueTypeBloodSugar
	if raw := r.URL.Query().Get("value_type_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_query",
				Err:     errors.New("value_type_id must be a positive integer"),
			})
			return
		}
		valueTypeID = parsed
	}

	stats, err := h.Svc.Stats(r.Context(), UserIDFromContext(r.Context()), valueTypeID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// recordsListOptions parses list query parameters with bounds applied.
func recordsListOptions(r *http.Request) (model.RecordsListOptions, error) {
	opts := model.RecordsListOptions{Limit: DefaultRecordsLimit}
	q := r.URL.Query()

	if raw := q.Get("value_type_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return opts, errors.New("value_type_id must be a positive integer")
		}
		opts.ValueTypeID = &id
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return opts, errors.New("limit must be a positive integer")
		}
		opts.Limit = min(limit, MaxRecordsLimit)
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return opts, errors.New("offset must be a non-negative integer")
		}
		opts.Offset = offset
	}
	return opts, nil
}

// pathID parses the {id} path value, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_id",
			Err:     errors.New("id must be a positive integer"),
		})
		return 0, false
	}
	return id, true
}
