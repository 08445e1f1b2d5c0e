package httpx

import (
	"net/http"

	"github.com/medtrack/medtrack-api/internal/domain/model"
	"github.com/medtrack/medtrack-api/internal/service"
)

// ValueTypeHandlers provides HTTP handlers for the metric catalog.
type ValueTypeHandlers struct {
	Svc *service.ValueTypeService
}

// List handles GET /api/value-types.
func (h *ValueTypeHandlers) List(w http.ResponseWriter, r *http.Request) {
	vts, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if vts == nil {
		vts = []*model.ValueType{}
	}
	WriteJSON(w, http.StatusOK, vts)
}

// GetByID handles GET /api/value-types/{id}.
func (h *ValueTypeHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	vt, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, vt)
}
