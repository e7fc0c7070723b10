// Package artifact loads the serialized model bundles exported by the
// upstream training project. Each bundle is a JSON file pairing a trained
// estimator with its scaler, ordered feature schema and metadata. Bundles are
// read once at startup and immutable afterwards.
package artifact

import (
	"github.com/the12thplayer/predict/internal/domain/model"
)

// Capability identifies one prediction capability and its artifact.
type Capability string

const (
	CapabilitySeasonRanking   Capability = "season_ranking"
	CapabilityMatchOutcome    Capability = "match_outcome"
	CapabilityTeamStyle       Capability = "team_style"
	CapabilityPlayerScoring   Capability = "player_scoring"
	CapabilityNewsCredibility Capability = "news_credibility"
)

// Positions covered by the player scoring bundles, one artifact each.
var Positions = []string{"defender", "midfielder", "forward", "goalkeeper"}

// Metadata describes a trained model: algorithm name, export version and
// training-time evaluation metrics (mae, r2_score, accuracy, ...).
type Metadata struct {
	Algorithm string             `json:"algorithm"`
	Version   string             `json:"version"`
	Metrics   map[string]float64 `json:"metrics"`
}

// SeasonRankingBundle holds the season ranking regressor.
type SeasonRankingBundle struct {
	Metadata Metadata              `json:"metadata"`
	Features []string              `json:"features"`
	Scaler   *model.StandardScaler `json:"scaler,omitempty"`
	Model    *model.KNNRegressor   `json:"model"`
}

// MatchOutcomeBundle holds the match outcome classifier. Importances are
// per-feature, aligned with Features.
type MatchOutcomeBundle struct {
	Metadata    Metadata              `json:"metadata"`
	Features    []string              `json:"features"`
	Scaler      *model.StandardScaler `json:"scaler,omitempty"`
	Model       *model.RandomForest   `json:"model"`
	Importances []float64             `json:"importances"`
}

// TeamStyleBundle holds the tactical style clusterer.
type TeamStyleBundle struct {
	Metadata Metadata              `json:"metadata"`
	Features []string              `json:"features"`
	Scaler   *model.StandardScaler `json:"scaler,omitempty"`
	Model    *model.KMeans         `json:"model"`
}

// PlayerScoringBundle holds one position's boosted-tree score regressor.
type PlayerScoringBundle struct {
	Metadata Metadata              `json:"metadata"`
	Position string                `json:"position"`
	Features []string              `json:"features"`
	Scaler   *model.StandardScaler `json:"scaler,omitempty"`
	Model    *model.BoostedTrees   `json:"model"`
}

// NewsCredibilityBundle holds the text vectorizer and voting ensemble.
type NewsCredibilityBundle struct {
	Metadata   Metadata              `json:"metadata"`
	Vectorizer *model.TFIDF          `json:"vectorizer"`
	Ensemble   *model.VotingEnsemble `json:"ensemble"`
}
