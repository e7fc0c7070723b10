// Package scouting ranks young players per position with the trained scoring
// models and the top-five-league scouting dataset.
package scouting

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
	"github.com/the12thplayer/predict/pkg/logger"
)

const (
	defaultLimit      = 10
	defaultMaxLimit   = 50
	defaultMinMinutes = 90

	defaultMaxAge           = 23
	defaultMaxAgeGoalkeeper = 26
)

// positionCodes maps the scouted roles to the dataset position codes.
var positionCodes = map[string]string{
	"forward":    "FW",
	"midfielder": "MF",
	"defender":   "DF",
	"goalkeeper": "GK",
}

// ModelSource provides the per-position scoring models.
type ModelSource interface {
	PlayerScoring(position string) (*artifact.PlayerScoringBundle, error)
}

// PlayerData provides the filtered scouting pool.
type PlayerData interface {
	Filter(posCode string, maxAge int, minMinutes float64) []dataset.Player
}

// Filters echoes the effective filter values of one request.
type Filters struct {
	MaxAge     int `json:"max_age"`
	MinMinutes int `json:"min_minutes"`
	Limit      int `json:"limit"`
}

// Recommendation is one ranked player with position-specific stats.
type Recommendation struct {
	Rank           int             `json:"rank"`
	Player         string          `json:"player"`
	Squad          string          `json:"squad"`
	League         string          `json:"league"`
	Age            int             `json:"age"`
	MarketValue    decimal.Decimal `json:"market_value"`
	PredictedScore float64         `json:"predicted_score"`
	Stats          map[string]any  `json:"stats"`
}

// Recommendations is the ranked scouting list for one position.
type Recommendations struct {
	Position        string           `json:"position"`
	Filters         Filters          `json:"filters"`
	Recommendations []Recommendation `json:"recommendations"`
}

// PositionInfo describes one scouted role for discovery.
type PositionInfo struct {
	Name          string `json:"name"`
	MaxAgeDefault int    `json:"max_age_default"`
	Description   string `json:"description"`
}

// Service is the player scouting capability.
type Service struct {
	models ModelSource
	data   PlayerData
	log    logger.Logger

	maxLimit int
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

// WithMaxLimit caps the number of recommendations one request may ask for.
func WithMaxLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// New creates the scouting service.
func New(models ModelSource, data PlayerData, opts ...Option) *Service {
	s := &Service{
		models:   models,
		data:     data,
		log:      logger.Named("scouting"),
		maxLimit: defaultMaxLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend ranks the filtered player pool for one position by predicted
// score, market value breaking ties. A zero maxAge selects the positional
// default, a negative minMinutes the standard floor, a zero limit the
// standard page size.
func (s *Service) Recommend(ctx context.Context, position string, limit, maxAge, minMinutes int) (*Recommendations, error) {
	position = strings.ToLower(position)
	posCode, ok := positionCodes[position]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, position)
	}

	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 || limit > s.maxLimit {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidLimit, s.maxLimit)
	}
	if maxAge <= 0 {
		maxAge = defaultMaxAge
		if position == "goalkeeper" {
			maxAge = defaultMaxAgeGoalkeeper
		}
	}
	if minMinutes < 0 {
		minMinutes = defaultMinMinutes
	}

	bundle, err := s.models.PlayerScoring(position)
	if err != nil {
		return nil, err
	}

	out := &Recommendations{
		Position: position,
		Filters: Filters{
			MaxAge:     maxAge,
			MinMinutes: minMinutes,
			Limit:      limit,
		},
		Recommendations: []Recommendation{},
	}

	pool := s.data.Filter(posCode, maxAge, float64(minMinutes))
	if len(pool) == 0 {
		return out, nil
	}

	type scored struct {
		player dataset.Player
		d      derived
		score  float64
	}
	list := make([]scored, 0, len(pool))
	for _, p := range pool {
		d := derive(p)
		vec := vector(features(p, d), bundle.Features)
		if bundle.Scaler != nil {
			if vec, err = bundle.Scaler.Transform(vec); err != nil {
				return nil, err
			}
		}
		score, err := bundle.Model.Predict(vec)
		if err != nil {
			return nil, err
		}
		list = append(list, scored{player: p, d: d, score: score})
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].player.MarketValue.GreaterThan(list[j].player.MarketValue)
	})
	if len(list) > limit {
		list = list[:limit]
	}

	for i, sc := range list {
		out.Recommendations = append(out.Recommendations, Recommendation{
			Rank:           i + 1,
			Player:         sc.player.Name,
			Squad:          sc.player.Squad,
			League:         leagueName(sc.player.League),
			Age:            sc.player.Age,
			MarketValue:    sc.player.MarketValue,
			PredictedScore: round3(sc.score),
			Stats:          positionStats(position, sc.player, sc.d),
		})
	}
	return out, nil
}

// Positions lists the scouted roles and their default age ceilings.
func (s *Service) Positions(ctx context.Context) []PositionInfo {
	return []PositionInfo{
		{Name: "Forward", MaxAgeDefault: defaultMaxAge, Description: "Strikers and wingers"},
		{Name: "Midfielder", MaxAgeDefault: defaultMaxAge, Description: "Central and attacking midfielders"},
		{Name: "Defender", MaxAgeDefault: defaultMaxAge, Description: "Center-backs and full-backs"},
		{Name: "Goalkeeper", MaxAgeDefault: defaultMaxAgeGoalkeeper, Description: "Goalkeepers"},
	}
}

// positionStats builds the role-specific stat sheet shown with each
// recommendation.
func positionStats(position string, p dataset.Player, d derived) map[string]any {
	stats := make(map[string]any)
	switch position {
	case "forward":
		stats["Goals/90"] = round2(d.GoalsPer90)
		stats["Assists/90"] = round2(d.AssistsPer90)
		stats["Shots"] = int(p.Shots)
		stats["Shots on Target"] = int(p.ShotsOnTarget)
		stats["Shot Accuracy"] = percent1(d.ShotsOnTargetPct)
		stats["xG"] = round2(p.XG)
		stats["Progressive Carries"] = int(p.ProgCarries)
	case "midfielder":
		stats["Goals/90"] = round2(d.GoalsPer90)
		stats["Assists/90"] = round2(d.AssistsPer90)
		stats["Pass Completion"] = percent1(p.PassCompletionPct)
		stats["Key Passes"] = int(p.KeyPasses)
		stats["Progressive Passes"] = int(p.ProgPasses)
		stats["Tackles/90"] = round2(d.TacklesPer90)
		stats["Interceptions/90"] = round2(d.InterceptionsPer90)
	case "defender":
		stats["Tackles"] = int(p.Tackles)
		stats["Tackles/90"] = round2(d.TacklesPer90)
		stats["Interceptions"] = int(p.Interceptions)
		stats["Interceptions/90"] = round2(d.InterceptionsPer90)
		stats["Clearances"] = int(p.Clearances)
		stats["Pass Completion"] = percent1(p.PassCompletionPct)
		stats["Goals/90"] = round2(d.GoalsPer90)
	case "goalkeeper":
		stats["Goals Against/90"] = round2(p.GoalsAgainst90)
		stats["Save %"] = percent1(p.SavePct)
		stats["Saves"] = int(p.Saves)
		stats["Clean Sheet %"] = percent1(p.CleanSheetPct)
		stats["PSxG"] = round2(p.PSxG)
	}
	stats["Minutes"] = int(p.Minutes)
	stats["90s Played"] = math.Round(p.Nineties*10) / 10
	return stats
}

// leagueName strips the country prefix from a competition name,
// "eng Premier League" -> "Premier League".
func leagueName(raw string) string {
	if i := strings.Index(raw, " "); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

func percent1(v float64) string {
	return fmt.Sprintf("%.1f%%", math.Round(v*10)/10)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
