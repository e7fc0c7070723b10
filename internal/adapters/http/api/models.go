package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// ModelInfoDependencies defines the interface for model metadata operations.
type ModelInfoDependencies interface {
	ModelInfo(ctx context.Context, name, position string) (map[string]any, error)
}

// ModelInfoHandler handles model metadata requests.
type ModelInfoHandler struct {
	deps ModelInfoDependencies
}

// NewModelInfoHandler creates a new model metadata handler.
func NewModelInfoHandler(deps ModelInfoDependencies) *ModelInfoHandler {
	return &ModelInfoHandler{deps: deps}
}

// HandleModelInfo handles GET /api/v1/model-info/{name} requests.
func (h *ModelInfoHandler) HandleModelInfo(w http.ResponseWriter, r *http.Request) {
	const op = "api.model_info"
	name := mux.Vars(r)["name"]
	position := r.URL.Query().Get("position")

	info, err := h.deps.ModelInfo(r.Context(), name, position)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
