// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// Version reported by the root endpoint.
const Version = "1.0.0"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SeasonDependencies
	MatchDependencies
	StyleDependencies
	ScoutingDependencies
	NewsDependencies
	ModelInfoDependencies
}

// Server wires HTTP routes for the prediction API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	seasonHandler   *SeasonHandler
	matchHandler    *MatchHandler
	styleHandler    *StyleHandler
	scoutingHandler *ScoutingHandler
	newsHandler     *NewsHandler
	modelHandler    *ModelInfoHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		seasonHandler:   NewSeasonHandler(deps),
		matchHandler:    NewMatchHandler(deps),
		styleHandler:    NewStyleHandler(deps),
		scoutingHandler: NewScoutingHandler(deps),
		newsHandler:     NewNewsHandler(deps),
		modelHandler:    NewModelInfoHandler(deps),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/", MetricsMiddleware(s.handleRoot, "root")).Methods(http.MethodGet)
	r.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health")).Methods(http.MethodGet)
	r.Handle("/metrics", s.healthHandler.MetricsHandler()).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/seasons", MetricsMiddleware(s.seasonHandler.HandleListSeasons, "seasons")).Methods(http.MethodGet)
	v1.HandleFunc("/predict-season/{season}", MetricsMiddleware(s.seasonHandler.HandlePredictSeason, "predict_season")).Methods(http.MethodGet)
	v1.HandleFunc("/predict-season", MetricsMiddleware(s.seasonHandler.HandlePredictCustom, "predict_season_custom")).Methods(http.MethodPost)
	v1.HandleFunc("/forecast-next-season", MetricsMiddleware(s.seasonHandler.HandleForecast, "forecast_next_season")).Methods(http.MethodGet)

	v1.HandleFunc("/predict-match", MetricsMiddleware(s.matchHandler.HandlePredictMatch, "predict_match")).Methods(http.MethodPost)
	v1.HandleFunc("/match-result", MetricsMiddleware(s.matchHandler.HandleMatchResult, "match_result")).Methods(http.MethodGet)
	v1.HandleFunc("/match-comparison", MetricsMiddleware(s.matchHandler.HandleMatchComparison, "match_comparison")).Methods(http.MethodGet)
	v1.HandleFunc("/head-to-head", MetricsMiddleware(s.matchHandler.HandleHeadToHead, "head_to_head")).Methods(http.MethodGet)

	v1.HandleFunc("/team-styles/all", MetricsMiddleware(s.styleHandler.HandleLeagueStyles, "team_styles_all")).Methods(http.MethodGet)
	v1.HandleFunc("/team-style/{team}", MetricsMiddleware(s.styleHandler.HandleTeamStyle, "team_style")).Methods(http.MethodGet)
	v1.HandleFunc("/team-style-history/{team}", MetricsMiddleware(s.styleHandler.HandleStyleHistory, "team_style_history")).Methods(http.MethodGet)
	v1.HandleFunc("/teams", MetricsMiddleware(s.styleHandler.HandleTeams, "teams")).Methods(http.MethodGet)

	v1.HandleFunc("/players/positions", MetricsMiddleware(s.scoutingHandler.HandlePositions, "player_positions")).Methods(http.MethodGet)
	v1.HandleFunc("/players/recommendations", MetricsMiddleware(s.scoutingHandler.HandleRecommendations, "player_recommendations")).Methods(http.MethodGet)

	v1.HandleFunc("/classify-news", MetricsMiddleware(s.newsHandler.HandleClassify, "classify_news")).Methods(http.MethodPost)

	v1.HandleFunc("/model-info/{name}", MetricsMiddleware(s.modelHandler.HandleModelInfo, "model_info")).Methods(http.MethodGet)
}

// handleRoot handles GET / requests with a service description.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Premier League Prediction API",
		"version": Version,
		"endpoints": map[string]string{
			"season_ranking":   "/api/v1/predict-season/{season}",
			"match_outcome":    "/api/v1/predict-match",
			"team_styles":      "/api/v1/team-style/{team}",
			"player_scouting":  "/api/v1/players/recommendations",
			"news_credibility": "/api/v1/classify-news",
			"health":           "/health",
		},
	})
}

type errorResponse struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind string, err error) {
	detail := http.StatusText(status)
	if err != nil {
		detail = err.Error()
	}
	writeJSON(w, status, errorResponse{Kind: kind, Detail: detail})
}

// writeDomainError translates a service error into its HTTP status and kind.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	status, kind := mapError(err)
	writeError(w, status, kind, Wrap(op, err))
}
