package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/the12thplayer/predict/internal/domain/scouting"
)

// ScoutingDependencies defines the interface for player scouting operations.
type ScoutingDependencies interface {
	RecommendPlayers(ctx context.Context, position string, limit, maxAge, minMinutes int) (*scouting.Recommendations, error)
	Positions(ctx context.Context) []scouting.PositionInfo
}

// ScoutingHandler handles player scouting requests.
type ScoutingHandler struct {
	deps ScoutingDependencies
}

// NewScoutingHandler creates a new scouting handler.
func NewScoutingHandler(deps ScoutingDependencies) *ScoutingHandler {
	return &ScoutingHandler{deps: deps}
}

// HandleRecommendations handles GET /api/v1/players/recommendations requests.
// Zero values for limit, max_age and min_minutes take positional defaults.
func (h *ScoutingHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.player_recommendations"
	position := strings.TrimSpace(r.URL.Query().Get("position"))
	if position == "" {
		writeError(w, http.StatusBadRequest, "validation_error", errors.New("missing position"))
		return
	}
	limit := queryInt(r, "limit", 0)
	maxAge := queryInt(r, "max_age", 0)
	minMinutes := queryInt(r, "min_minutes", -1)

	recs, err := h.deps.RecommendPlayers(r.Context(), position, limit, maxAge, minMinutes)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// HandlePositions handles GET /api/v1/players/positions requests.
func (h *ScoutingHandler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"positions": h.deps.Positions(r.Context()),
	})
}
