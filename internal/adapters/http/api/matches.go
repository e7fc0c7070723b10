package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/the12thplayer/predict/internal/adapters/livedata"
	service "github.com/the12thplayer/predict/internal/app"
	"github.com/the12thplayer/predict/internal/domain/matchodds"
)

// MatchDependencies defines the interface for match outcome and live
// result operations.
type MatchDependencies interface {
	PredictMatch(ctx context.Context, homeTeam, awayTeam, season string, expertMode bool) (*matchodds.Prediction, error)
	MatchResult(ctx context.Context, homeTeam, awayTeam string) (*livedata.MatchResult, error)
	CompareMatch(ctx context.Context, homeTeam, awayTeam, predictedResult, confidence string) (*service.MatchComparison, error)
	HeadToHead(ctx context.Context, homeTeam, awayTeam string, limit int) (*service.HeadToHead, error)
}

// MatchHandler handles match outcome requests.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// matchRequest mirrors the request schema for POST /predict-match.
type matchRequest struct {
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Season     string `json:"season"`
	ExpertMode bool   `json:"expert_mode"`
}

func (m matchRequest) validate() error {
	switch {
	case strings.TrimSpace(m.HomeTeam) == "":
		return errors.New("missing home_team")
	case strings.TrimSpace(m.AwayTeam) == "":
		return errors.New("missing away_team")
	}
	return nil
}

// HandlePredictMatch handles POST /api/v1/predict-match requests.
func (h *MatchHandler) HandlePredictMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict_match"
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", NewKind(op, ErrBadRequest))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err)
		return
	}

	pred, err := h.deps.PredictMatch(r.Context(), req.HomeTeam, req.AwayTeam, req.Season, req.ExpertMode)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

// teamPair reads the home_team and away_team query parameters.
func teamPair(r *http.Request) (string, string, error) {
	home := strings.TrimSpace(r.URL.Query().Get("home_team"))
	away := strings.TrimSpace(r.URL.Query().Get("away_team"))
	switch {
	case home == "":
		return "", "", errors.New("missing home_team")
	case away == "":
		return "", "", errors.New("missing away_team")
	}
	return home, away, nil
}

// HandleMatchResult handles GET /api/v1/match-result requests.
func (h *MatchHandler) HandleMatchResult(w http.ResponseWriter, r *http.Request) {
	const op = "api.match_result"
	home, away, err := teamPair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err)
		return
	}

	result, err := h.deps.MatchResult(r.Context(), home, away)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleMatchComparison handles GET /api/v1/match-comparison requests. The
// prediction under comparison comes from the caller, who holds the earlier
// prediction response.
func (h *MatchHandler) HandleMatchComparison(w http.ResponseWriter, r *http.Request) {
	const op = "api.match_comparison"
	home, away, err := teamPair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err)
		return
	}
	predicted := strings.TrimSpace(r.URL.Query().Get("predicted_result"))
	if predicted == "" {
		writeError(w, http.StatusBadRequest, "validation_error", errors.New("missing predicted_result"))
		return
	}
	confidence := r.URL.Query().Get("confidence")

	cmp, err := h.deps.CompareMatch(r.Context(), home, away, predicted, confidence)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

// HandleHeadToHead handles GET /api/v1/head-to-head requests.
func (h *MatchHandler) HandleHeadToHead(w http.ResponseWriter, r *http.Request) {
	const op = "api.head_to_head"
	home, away, err := teamPair(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err)
		return
	}
	limit := queryInt(r, "limit", 10)

	h2h, err := h.deps.HeadToHead(r.Context(), home, away, limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, h2h)
}
