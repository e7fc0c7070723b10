// Package ranking predicts final league positions for a season's teams using
// the trained position regressor.
package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
	"github.com/the12thplayer/predict/pkg/logger"
)

// Positions are clipped to the league table range.
const (
	minPosition = 1
	maxPosition = 20
)

// defaultMAE stands in when the bundle metadata carries no mae.
const defaultMAE = 1.15

// ModelSource provides the ranking model and the valid team list.
type ModelSource interface {
	SeasonRanking() (*artifact.SeasonRankingBundle, error)
	Teams() []string
}

// SeasonData provides the per-season team aggregates.
type SeasonData interface {
	Seasons() []string
	SeasonTeams(season string) ([]dataset.TeamSeason, error)
}

// TeamPrediction is one team's predicted finishing position.
type TeamPrediction struct {
	Rank              int     `json:"rank"`
	Team              string  `json:"team"`
	PredictedPosition int     `json:"predicted_position"`
	RawPrediction     float64 `json:"raw_prediction"`
	Confidence        string  `json:"confidence"`
	ActualPosition    *int    `json:"actual_position,omitempty"`
	PositionDiff      *int    `json:"position_diff,omitempty"`
}

// Comparison summarizes predictions against the actual final table.
type Comparison struct {
	AvgPositionError float64 `json:"avg_position_error"`
	ExactMatches     int     `json:"exact_matches"`
	Within1          int     `json:"within_1"`
	Within3          int     `json:"within_3"`
}

// Metadata describes the model behind a prediction response.
type Metadata struct {
	Algorithm string   `json:"algorithm"`
	MAE       *float64 `json:"mae,omitempty"`
	R2Score   *float64 `json:"r2_score,omitempty"`
	Version   string   `json:"version,omitempty"`
	Note      string   `json:"note,omitempty"`
}

// SeasonPrediction is a full predicted table for one season.
type SeasonPrediction struct {
	Season        string           `json:"season"`
	BasedOnSeason string           `json:"based_on_season,omitempty"`
	Predictions   []TeamPrediction `json:"predictions"`
	Comparison    *Comparison      `json:"comparison,omitempty"`
	Metadata      Metadata         `json:"model_metadata"`
}

// Service is the season ranking capability.
type Service struct {
	models ModelSource
	data   SeasonData
	log    logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates the ranking service.
func New(models ModelSource, data SeasonData, opts ...Option) *Service {
	s := &Service{
		models: models,
		data:   data,
		log:    logger.Named("ranking"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seasons returns the available seasons, most recent first, plus the default.
func (s *Service) Seasons(ctx context.Context) ([]string, string, error) {
	seasons := s.data.Seasons()
	def := ""
	if len(seasons) > 0 {
		def = seasons[0]
	}
	return seasons, def, nil
}

// PredictSeason predicts the final table for a dataset season. When
// compareActual is set the response carries the actual positions and the
// aggregate comparison metrics.
func (s *Service) PredictSeason(ctx context.Context, season string, compareActual bool) (*SeasonPrediction, error) {
	rows, err := s.data.SeasonTeams(season)
	if err != nil {
		return nil, err
	}

	stats := make([]TeamStats, len(rows))
	actual := make(map[string]int, len(rows))
	for i, row := range rows {
		stats[i] = statsFromRow(row)
		if row.FinalPosition > 0 {
			actual[row.Team] = row.FinalPosition
		}
	}

	pred, err := s.predict(ctx, season, stats)
	if err != nil {
		return nil, err
	}

	if compareActual && len(actual) > 0 {
		attachComparison(pred, actual)
	}
	return pred, nil
}

// PredictCustom predicts the final table for caller-supplied team statistics.
// Every submitted team must be in the valid team list.
func (s *Service) PredictCustom(ctx context.Context, season string, teams []TeamStats) (*SeasonPrediction, error) {
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	valid := s.models.Teams()
	if len(valid) > 0 {
		for _, ts := range teams {
			if !contains(valid, ts.Team) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownTeam, ts.Team)
			}
		}
	}

	return s.predict(ctx, season, teams)
}

// ForecastNextSeason predicts the next season's table from the latest
// available season's aggregates.
func (s *Service) ForecastNextSeason(ctx context.Context) (*SeasonPrediction, error) {
	seasons := s.data.Seasons()
	if len(seasons) == 0 {
		return nil, fmt.Errorf("%w: no season data", dataset.ErrNotFound)
	}
	latest := seasons[0]

	rows, err := s.data.SeasonTeams(latest)
	if err != nil {
		return nil, err
	}
	stats := make([]TeamStats, len(rows))
	for i, row := range rows {
		stats[i] = statsFromRow(row)
	}

	pred, err := s.predict(ctx, nextSeason(latest), stats)
	if err != nil {
		return nil, err
	}
	pred.BasedOnSeason = latest
	pred.Metadata.Note = "Forecast based on current season performance trends"
	return pred, nil
}

// predict runs the regressor over every team and argsorts into ranks.
// Ties keep submission order (stable sort), so repeated identical requests
// produce identical tables.
func (s *Service) predict(ctx context.Context, season string, teams []TeamStats) (*SeasonPrediction, error) {
	bundle, err := s.models.SeasonRanking()
	if err != nil {
		return nil, err
	}

	type scored struct {
		team string
		raw  float64
	}
	list := make([]scored, len(teams))
	for i, ts := range teams {
		vec := vector(features(ts), bundle.Features)
		if bundle.Scaler != nil {
			if vec, err = bundle.Scaler.Transform(vec); err != nil {
				return nil, err
			}
		}
		raw, err := bundle.Model.Predict(vec)
		if err != nil {
			return nil, err
		}
		list[i] = scored{team: ts.Team, raw: clip(raw, minPosition, maxPosition)}
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].raw < list[j].raw })

	mae := defaultMAE
	if v, ok := bundle.Metadata.Metrics["mae"]; ok {
		mae = v
	}
	confidence := confidenceForMAE(mae)

	predictions := make([]TeamPrediction, len(list))
	for i, sc := range list {
		predictions[i] = TeamPrediction{
			Rank:              i + 1,
			Team:              sc.team,
			PredictedPosition: i + 1,
			RawPrediction:     math.Round(sc.raw*100) / 100,
			Confidence:        confidence,
		}
	}

	return &SeasonPrediction{
		Season:      season,
		Predictions: predictions,
		Metadata:    metadataFrom(bundle.Metadata),
	}, nil
}

func attachComparison(pred *SeasonPrediction, actual map[string]int) {
	var diffs []int
	for i := range pred.Predictions {
		p := &pred.Predictions[i]
		pos, ok := actual[p.Team]
		if !ok {
			continue
		}
		diff := p.Rank - pos
		if diff < 0 {
			diff = -diff
		}
		p.ActualPosition = &pos
		p.PositionDiff = &diff
		diffs = append(diffs, diff)
	}
	if len(diffs) == 0 {
		return
	}

	var c Comparison
	sum := 0
	for _, d := range diffs {
		sum += d
		if d == 0 {
			c.ExactMatches++
		}
		if d <= 1 {
			c.Within1++
		}
		if d <= 3 {
			c.Within3++
		}
	}
	c.AvgPositionError = math.Round(float64(sum)/float64(len(diffs))*100) / 100
	pred.Comparison = &c
}

func statsFromRow(row dataset.TeamSeason) TeamStats {
	winRate := row.WinRate
	cleanSheetRate := row.CleanSheetRate
	return TeamStats{
		Team:           row.Team,
		Wins:           row.Wins,
		Draws:          row.Draws,
		Losses:         row.Losses,
		GoalsScored:    row.GoalsScored,
		GoalsConceded:  row.GoalsConceded,
		CleanSheets:    row.CleanSheets,
		WinRate:        &winRate,
		CleanSheetRate: &cleanSheetRate,
	}
}

func metadataFrom(md artifact.Metadata) Metadata {
	out := Metadata{
		Algorithm: md.Algorithm,
		Version:   md.Version,
	}
	if out.Algorithm == "" {
		out.Algorithm = "KNN Regressor"
	}
	if v, ok := md.Metrics["mae"]; ok {
		mae := v
		out.MAE = &mae
	}
	if v, ok := md.Metrics["r2_score"]; ok {
		r2 := v
		out.R2Score = &r2
	}
	return out
}

// confidenceForMAE buckets model error into a coarse confidence label.
func confidenceForMAE(mae float64) string {
	switch {
	case mae <= 1.0:
		return "high"
	case mae <= 2.0:
		return "medium"
	default:
		return "low"
	}
}

func clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// nextSeason advances a season label, e.g. 2024-25 -> 2025-26.
func nextSeason(season string) string {
	parts := strings.SplitN(season, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return season
	}
	return fmt.Sprintf("%d-%02d", year+1, (year+2)%100)
}
