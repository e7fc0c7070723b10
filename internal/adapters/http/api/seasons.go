package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	service "github.com/the12thplayer/predict/internal/app"
	"github.com/the12thplayer/predict/internal/domain/ranking"
)

// SeasonDependencies defines the interface for season ranking operations.
type SeasonDependencies interface {
	Seasons(ctx context.Context) (*service.SeasonList, error)
	PredictSeason(ctx context.Context, season string, compareActual bool) (*ranking.SeasonPrediction, error)
	PredictCustom(ctx context.Context, season string, teams []ranking.TeamStats) (*ranking.SeasonPrediction, error)
	ForecastNextSeason(ctx context.Context) (*ranking.SeasonPrediction, error)
}

// SeasonHandler handles season ranking requests.
type SeasonHandler struct {
	deps SeasonDependencies
}

// NewSeasonHandler creates a new season ranking handler.
func NewSeasonHandler(deps SeasonDependencies) *SeasonHandler {
	return &SeasonHandler{deps: deps}
}

// HandleListSeasons handles GET /api/v1/seasons requests.
func (h *SeasonHandler) HandleListSeasons(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_seasons"
	seasons, err := h.deps.Seasons(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

// HandlePredictSeason handles GET /api/v1/predict-season/{season} requests.
func (h *SeasonHandler) HandlePredictSeason(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict_season"
	season := mux.Vars(r)["season"]
	compare := queryBool(r, "compare_actual")

	pred, err := h.deps.PredictSeason(r.Context(), season, compare)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

// customPredictionRequest mirrors the request schema for POST /predict-season.
type customPredictionRequest struct {
	Season string              `json:"season"`
	Teams  []ranking.TeamStats `json:"teams"`
}

// HandlePredictCustom handles POST /api/v1/predict-season requests with
// caller-supplied team statistics.
func (h *SeasonHandler) HandlePredictCustom(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict_season_custom"
	var req customPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", NewKind(op, ErrBadRequest))
		return
	}

	pred, err := h.deps.PredictCustom(r.Context(), req.Season, req.Teams)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

// HandleForecast handles GET /api/v1/forecast-next-season requests.
func (h *SeasonHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "api.forecast_next_season"
	pred, err := h.deps.ForecastNextSeason(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}
