// Package service provides the core prediction service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
	"github.com/the12thplayer/predict/internal/adapters/livedata"
	"github.com/the12thplayer/predict/internal/domain/matchodds"
	"github.com/the12thplayer/predict/internal/domain/newscred"
	"github.com/the12thplayer/predict/internal/domain/ranking"
	"github.com/the12thplayer/predict/internal/domain/scouting"
	"github.com/the12thplayer/predict/internal/domain/style"
	"github.com/the12thplayer/predict/pkg/logger"
	"github.com/the12thplayer/predict/pkg/metrics"
)

// Dataset file names inside the data directory.
const (
	teamSeasonsFile = "team_season_aggregated.csv"
	matchesFile     = "processed_premier_league_combined.csv"
	playersFile     = "players_24-25.csv"
)

// Service implements the API dependencies for the prediction system.
type Service struct {
	mu sync.RWMutex

	// Core components
	models      *artifact.Store
	teamSeasons *dataset.TeamSeasonStore
	matches     *dataset.MatchStore
	players     *dataset.PlayerStore
	liveData    *livedata.Client

	ranking   *ranking.Service
	matchodds *matchodds.Service
	style     *style.Service
	scouting  *scouting.Service
	newscred  *newscred.Service

	// Configuration
	modelsDir              string
	dataDir                string
	defaultSeason          string
	maxRecommendationLimit int
	confidenceHigh         float64
	confidenceModerate     float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithModelsDir sets the directory holding the model bundles.
func WithModelsDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.modelsDir = dir
		}
	}
}

// WithDataDir sets the directory holding the processed CSV datasets.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithDefaultSeason sets the season used when a request names none.
func WithDefaultSeason(season string) Option {
	return func(s *Service) {
		if season != "" {
			s.defaultSeason = season
		}
	}
}

// WithMaxRecommendationLimit caps the scouting page size.
func WithMaxRecommendationLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxRecommendationLimit = limit
		}
	}
}

// WithConfidenceCutoffs sets the match outcome confidence cutoffs.
func WithConfidenceCutoffs(high, moderate float64) Option {
	return func(s *Service) {
		if high > 0 && moderate > 0 {
			s.confidenceHigh = high
			s.confidenceModerate = moderate
		}
	}
}

// WithLiveData sets a custom live results client.
func WithLiveData(client *livedata.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.liveData = client
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelsDir:              "models",
		dataDir:                "data/processed",
		defaultSeason:          "2024-25",
		maxRecommendationLimit: 50,
		confidenceHigh:         0.55,
		confidenceModerate:     0.40,
		logger:                 nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the model bundles and datasets and wires the capability
// services. Missing model artifacts degrade their capability; missing
// datasets abort startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting prediction service...")

	s.models = artifact.New(s.modelsDir, artifact.WithLogger(s.logger))
	s.models.Load(ctx)

	var err error
	s.teamSeasons, err = dataset.LoadTeamSeasons(filepath.Join(s.dataDir, teamSeasonsFile))
	if err != nil {
		return fmt.Errorf("load team seasons: %w", err)
	}
	metrics.SetDatasetRows("team_seasons", s.teamSeasons.Len())

	s.matches, err = dataset.LoadMatches(filepath.Join(s.dataDir, matchesFile))
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	metrics.SetDatasetRows("matches", s.matches.Len())

	s.players, err = dataset.LoadPlayers(filepath.Join(s.dataDir, playersFile))
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	metrics.SetDatasetRows("players", s.players.Len())

	if s.liveData == nil {
		s.liveData = livedata.New()
	}

	s.ranking = ranking.New(s.models, s.teamSeasons)
	s.matchodds = matchodds.New(s.models, s.matches,
		matchodds.WithConfidenceCutoffs(s.confidenceHigh, s.confidenceModerate),
	)
	s.style = style.New(s.models, s.teamSeasons)
	s.scouting = scouting.New(s.models, s.players,
		scouting.WithMaxLimit(s.maxRecommendationLimit),
	)
	s.newscred = newscred.New(s.models)

	s.started = true
	s.logger.Info(ctx, "prediction service started",
		logger.String("modelsDir", s.modelsDir),
		logger.String("dataDir", s.dataDir),
		logger.Int("teamSeasonRows", s.teamSeasons.Len()),
		logger.Int("matchRows", s.matches.Len()),
		logger.Int("playerRows", s.players.Len()),
	)

	return nil
}

// Stop shuts the service down. Stores are in-memory, so there is nothing to
// flush; the flag just blocks further use after shutdown.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "prediction service stopped")
}

// observe runs one inference and records its outcome and latency.
func observe[T any](capability artifact.Capability, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fn()
	metrics.RecordInferenceLatency(string(capability), float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordPredictionError(string(capability))
		var zero T
		return zero, err
	}
	metrics.RecordPrediction(string(capability))
	return out, nil
}

// SeasonList is the season discovery payload.
type SeasonList struct {
	Seasons []string `json:"seasons"`
	Default string   `json:"default"`
}

// Seasons lists the seasons with data, most recent first. The default falls
// back to the configured season when the dataset is empty.
func (s *Service) Seasons(ctx context.Context) (*SeasonList, error) {
	seasons, def, err := s.ranking.Seasons(ctx)
	if err != nil {
		return nil, err
	}
	if def == "" {
		def = s.defaultSeason
	}
	if seasons == nil {
		seasons = []string{}
	}
	return &SeasonList{Seasons: seasons, Default: def}, nil
}

// PredictSeason predicts the final table for a dataset season.
func (s *Service) PredictSeason(ctx context.Context, season string, compareActual bool) (*ranking.SeasonPrediction, error) {
	return observe(artifact.CapabilitySeasonRanking, func() (*ranking.SeasonPrediction, error) {
		return s.ranking.PredictSeason(ctx, season, compareActual)
	})
}

// PredictCustom predicts the final table for caller-supplied team statistics.
func (s *Service) PredictCustom(ctx context.Context, season string, teams []ranking.TeamStats) (*ranking.SeasonPrediction, error) {
	if season == "" {
		season = s.defaultSeason
	}
	return observe(artifact.CapabilitySeasonRanking, func() (*ranking.SeasonPrediction, error) {
		return s.ranking.PredictCustom(ctx, season, teams)
	})
}

// ForecastNextSeason predicts the next season's table from the latest data.
func (s *Service) ForecastNextSeason(ctx context.Context) (*ranking.SeasonPrediction, error) {
	return observe(artifact.CapabilitySeasonRanking, func() (*ranking.SeasonPrediction, error) {
		return s.ranking.ForecastNextSeason(ctx)
	})
}

// PredictMatch classifies one fixture.
func (s *Service) PredictMatch(ctx context.Context, homeTeam, awayTeam, season string, expertMode bool) (*matchodds.Prediction, error) {
	if season == "" {
		season = s.defaultSeason
	}
	return observe(artifact.CapabilityMatchOutcome, func() (*matchodds.Prediction, error) {
		return s.matchodds.Predict(ctx, homeTeam, awayTeam, season, expertMode)
	})
}

// MatchResult fetches the latest real fixture between two teams.
func (s *Service) MatchResult(ctx context.Context, homeTeam, awayTeam string) (*livedata.MatchResult, error) {
	return s.liveData.MatchResult(ctx, homeTeam, awayTeam)
}

// MatchComparison is a prediction set against the real result.
type MatchComparison struct {
	HomeTeam        string  `json:"home_team"`
	AwayTeam        string  `json:"away_team"`
	PredictedResult string  `json:"predicted_result"`
	ActualResult    *string `json:"actual_result"`
	MatchStatus     string  `json:"match_status"`
	IsCorrect       *bool   `json:"is_correct"`
	HomeScore       *int    `json:"home_score"`
	AwayScore       *int    `json:"away_score"`
	MatchDate       *string `json:"match_date"`
	Confidence      string  `json:"confidence"`
}

// CompareMatch checks a caller-supplied prediction against the live result.
// A fixture absent upstream, or an unreachable upstream, compares as
// scheduled with the actual-result fields unset; the caller keeps their
// prediction either way.
func (s *Service) CompareMatch(ctx context.Context, homeTeam, awayTeam, predictedResult, confidence string) (*MatchComparison, error) {
	out := &MatchComparison{
		HomeTeam:        homeTeam,
		AwayTeam:        awayTeam,
		PredictedResult: predictedResult,
		MatchStatus:     livedata.StatusScheduled,
		Confidence:      confidence,
	}

	result, err := s.liveData.MatchResult(ctx, homeTeam, awayTeam)
	if err != nil {
		if errors.Is(err, livedata.ErrMatchNotFound) || errors.Is(err, livedata.ErrUpstream) {
			s.logger.Warn(ctx, "comparing without live result",
				logger.String("homeTeam", homeTeam),
				logger.String("awayTeam", awayTeam),
				logger.Error(err))
			return out, nil
		}
		return nil, err
	}

	out.MatchStatus = result.Status
	out.HomeScore = result.HomeScore
	out.AwayScore = result.AwayScore
	if result.MatchDate != "" {
		date := result.MatchDate
		out.MatchDate = &date
	}
	if result.ActualResult != "" {
		actual := result.ActualResult
		out.ActualResult = &actual
		if result.Status == livedata.StatusFinished {
			correct := predictedResult == actual
			out.IsCorrect = &correct
		}
	}
	return out, nil
}

// HeadToHead is the historical record between two teams.
type HeadToHead struct {
	HomeTeam string                     `json:"home_team"`
	AwayTeam string                     `json:"away_team"`
	Matches  []livedata.HeadToHeadMatch `json:"matches"`
	Stats    livedata.HeadToHeadStats   `json:"stats"`
}

// HeadToHead fetches the recent meetings between two teams.
func (s *Service) HeadToHead(ctx context.Context, homeTeam, awayTeam string, limit int) (*HeadToHead, error) {
	matches, stats, err := s.liveData.HeadToHead(ctx, homeTeam, awayTeam, limit)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []livedata.HeadToHeadMatch{}
	}
	return &HeadToHead{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		Matches:  matches,
		Stats:    stats,
	}, nil
}

// TeamStyle classifies one team's tactical style for a season.
func (s *Service) TeamStyle(ctx context.Context, team, season string) (*style.Profile, error) {
	if season == "" {
		season = s.defaultSeason
	}
	return observe(artifact.CapabilityTeamStyle, func() (*style.Profile, error) {
		return s.style.Profile(ctx, team, season)
	})
}

// LeagueStyles classifies the whole league for a season.
func (s *Service) LeagueStyles(ctx context.Context, season string) (*style.LeagueStyles, error) {
	if season == "" {
		season = s.defaultSeason
	}
	return observe(artifact.CapabilityTeamStyle, func() (*style.LeagueStyles, error) {
		return s.style.LeagueStyles(ctx, season)
	})
}

// TeamStyleHistory traces a team's style across its seasons.
func (s *Service) TeamStyleHistory(ctx context.Context, team string) (*style.History, error) {
	return observe(artifact.CapabilityTeamStyle, func() (*style.History, error) {
		return s.style.History(ctx, team)
	})
}

// TeamList is the team discovery payload.
type TeamList struct {
	Teams []string `json:"teams"`
	Total int      `json:"total"`
}

// Teams lists every team with historical data.
func (s *Service) Teams(ctx context.Context) *TeamList {
	teams := s.style.Teams(ctx)
	if teams == nil {
		teams = []string{}
	}
	return &TeamList{Teams: teams, Total: len(teams)}
}

// RecommendPlayers ranks the scouting pool for one position.
func (s *Service) RecommendPlayers(ctx context.Context, position string, limit, maxAge, minMinutes int) (*scouting.Recommendations, error) {
	return observe(artifact.CapabilityPlayerScoring, func() (*scouting.Recommendations, error) {
		return s.scouting.Recommend(ctx, position, limit, maxAge, minMinutes)
	})
}

// Positions lists the scouted roles.
func (s *Service) Positions(ctx context.Context) []scouting.PositionInfo {
	return s.scouting.Positions(ctx)
}

// ClassifyNews grades one article's credibility.
func (s *Service) ClassifyNews(ctx context.Context, title, text string) (*newscred.Classification, error) {
	return observe(artifact.CapabilityNewsCredibility, func() (*newscred.Classification, error) {
		return s.newscred.Classify(ctx, title, text)
	})
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"modelsDir":     s.modelsDir,
		"dataDir":       s.dataDir,
		"defaultSeason": s.defaultSeason,
	}

	if s.started {
		stats["teamSeasonRows"] = s.teamSeasons.Len()
		stats["matchRows"] = s.matches.Len()
		stats["playerRows"] = s.players.Len()
		stats["teams"] = len(s.models.Teams())
	}

	return stats
}
