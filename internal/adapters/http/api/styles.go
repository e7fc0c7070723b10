package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	service "github.com/the12thplayer/predict/internal/app"
	"github.com/the12thplayer/predict/internal/domain/style"
)

// StyleDependencies defines the interface for tactical style operations.
type StyleDependencies interface {
	TeamStyle(ctx context.Context, team, season string) (*style.Profile, error)
	LeagueStyles(ctx context.Context, season string) (*style.LeagueStyles, error)
	TeamStyleHistory(ctx context.Context, team string) (*style.History, error)
	Teams(ctx context.Context) *service.TeamList
}

// StyleHandler handles tactical style requests.
type StyleHandler struct {
	deps StyleDependencies
}

// NewStyleHandler creates a new style handler.
func NewStyleHandler(deps StyleDependencies) *StyleHandler {
	return &StyleHandler{deps: deps}
}

// HandleTeamStyle handles GET /api/v1/team-style/{team} requests.
func (h *StyleHandler) HandleTeamStyle(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_style"
	team := mux.Vars(r)["team"]
	season := r.URL.Query().Get("season")

	profile, err := h.deps.TeamStyle(r.Context(), team, season)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleLeagueStyles handles GET /api/v1/team-styles/all requests.
func (h *StyleHandler) HandleLeagueStyles(w http.ResponseWriter, r *http.Request) {
	const op = "api.league_styles"
	season := r.URL.Query().Get("season")

	styles, err := h.deps.LeagueStyles(r.Context(), season)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, styles)
}

// HandleStyleHistory handles GET /api/v1/team-style-history/{team} requests.
func (h *StyleHandler) HandleStyleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_style_history"
	team := mux.Vars(r)["team"]

	history, err := h.deps.TeamStyleHistory(r.Context(), team)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// HandleTeams handles GET /api/v1/teams requests.
func (h *StyleHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Teams(r.Context()))
}
