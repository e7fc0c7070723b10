// Package style classifies teams into tactical playing styles by assigning
// their aggregated season statistics to the trained style clusters.
package style

import (
	"context"
	"fmt"
	"math"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
	"github.com/the12thplayer/predict/pkg/logger"
)

const maxSimilarTeams = 5

// ModelSource provides the style clusterer.
type ModelSource interface {
	TeamStyle() (*artifact.TeamStyleBundle, error)
}

// TeamData provides the aggregated season statistics.
type TeamData interface {
	Teams() []string
	HasTeam(team string) bool
	SeasonTeams(season string) ([]dataset.TeamSeason, error)
	TeamSeason(team, season string) (dataset.TeamSeason, error)
	TeamHistory(team string) ([]dataset.TeamSeason, error)
}

// Profile is one team's tactical style in one season.
type Profile struct {
	Team          string             `json:"team"`
	Season        string             `json:"season"`
	Cluster       ClusterInfo        `json:"cluster"`
	SimilarTeams  []string           `json:"similar_teams"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Stats         map[string]float64 `json:"stats"`
}

// TeamStyle is one team's cluster assignment in a league-wide listing.
type TeamStyle struct {
	Team      string `json:"team"`
	ClusterID int    `json:"cluster_id"`
	Style     string `json:"style"`
}

// LeagueStyles lists every team's style for one season, grouped by cluster.
type LeagueStyles struct {
	Season     string              `json:"season"`
	TotalTeams int                 `json:"total_teams"`
	Clusters   map[string][]string `json:"clusters"`
	Styles     []TeamStyle         `json:"styles"`
}

// SeasonStyle is one season entry in a team's style history. Stats holds the
// radar axes normalized to a 0-100 scale.
type SeasonStyle struct {
	Season    string             `json:"season"`
	ClusterID int                `json:"cluster_id"`
	Style     string             `json:"style"`
	Stats     map[string]float64 `json:"stats"`
	Position  *int               `json:"position"`
	Points    *int               `json:"points"`
}

// History is a team's style evolution across its seasons.
type History struct {
	Team         string        `json:"team"`
	TotalSeasons int           `json:"total_seasons"`
	History      []SeasonStyle `json:"history"`
}

// Service is the team style capability.
type Service struct {
	models ModelSource
	data   TeamData
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

// New creates the style service.
func New(models ModelSource, data TeamData, opts ...Option) *Service {
	s := &Service{
		models: models,
		data:   data,
		log:    logger.Named("style"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Teams returns every team with historical data, sorted by name.
func (s *Service) Teams(ctx context.Context) []string {
	return s.data.Teams()
}

// Profile classifies one team's style for one season, with same-cluster
// neighbours and distance-derived cluster probabilities.
func (s *Service) Profile(ctx context.Context, team, season string) (*Profile, error) {
	if !s.data.HasTeam(team) {
		return nil, fmt.Errorf("%w: team %q", dataset.ErrNotFound, team)
	}

	bundle, err := s.models.TeamStyle()
	if err != nil {
		return nil, err
	}

	row, err := s.data.TeamSeason(team, season)
	if err != nil {
		return nil, err
	}

	feats := features(row)
	cluster, scaled, err := s.assign(bundle, feats)
	if err != nil {
		return nil, err
	}

	similar, err := s.similarTeams(bundle, cluster, team, season)
	if err != nil {
		return nil, err
	}

	probs, err := clusterProbabilities(bundle, scaled)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Team:          team,
		Season:        season,
		Cluster:       clusterInfo(cluster),
		SimilarTeams:  similar,
		Probabilities: probs,
		Stats:         feats,
	}, nil
}

// LeagueStyles classifies every team of one season and groups the league by
// style.
func (s *Service) LeagueStyles(ctx context.Context, season string) (*LeagueStyles, error) {
	bundle, err := s.models.TeamStyle()
	if err != nil {
		return nil, err
	}

	rows, err := s.data.SeasonTeams(season)
	if err != nil {
		return nil, err
	}

	out := &LeagueStyles{
		Season:   season,
		Clusters: make(map[string][]string),
	}
	for _, row := range rows {
		cluster, _, err := s.assign(bundle, features(row))
		if err != nil {
			return nil, err
		}
		info := clusterInfo(cluster)
		out.Styles = append(out.Styles, TeamStyle{
			Team:      row.Team,
			ClusterID: cluster,
			Style:     info.Label,
		})
		out.Clusters[info.Label] = append(out.Clusters[info.Label], row.Team)
	}
	out.TotalTeams = len(out.Styles)
	return out, nil
}

// History classifies a team's style for every season it appears in, with the
// radar axes used by the style evolution chart.
func (s *Service) History(ctx context.Context, team string) (*History, error) {
	bundle, err := s.models.TeamStyle()
	if err != nil {
		return nil, err
	}

	rows, err := s.data.TeamHistory(team)
	if err != nil {
		return nil, err
	}

	out := &History{Team: team}
	for _, row := range rows {
		feats := features(row)
		cluster, _, err := s.assign(bundle, feats)
		if err != nil {
			return nil, err
		}

		entry := SeasonStyle{
			Season:    row.Season,
			ClusterID: cluster,
			Style:     clusterInfo(cluster).Label,
			Stats:     radarStats(feats),
		}
		if row.FinalPosition > 0 {
			pos := row.FinalPosition
			entry.Position = &pos
		}
		if row.Points > 0 {
			pts := row.Points
			entry.Points = &pts
		}
		out.History = append(out.History, entry)
	}
	out.TotalSeasons = len(out.History)
	return out, nil
}

func (s *Service) assign(bundle *artifact.TeamStyleBundle, feats map[string]float64) (int, []float64, error) {
	vec := vector(feats, bundle.Features)
	if bundle.Scaler != nil {
		scaled, err := bundle.Scaler.Transform(vec)
		if err != nil {
			return 0, nil, err
		}
		vec = scaled
	}
	cluster, err := bundle.Model.Assign(vec)
	if err != nil {
		return 0, nil, err
	}
	return cluster, vec, nil
}

// similarTeams returns up to five other teams assigned to the same cluster in
// the same season.
func (s *Service) similarTeams(bundle *artifact.TeamStyleBundle, cluster int, team, season string) ([]string, error) {
	rows, err := s.data.SeasonTeams(season)
	if err != nil {
		return nil, err
	}

	var similar []string
	for _, row := range rows {
		if row.Team == team {
			continue
		}
		other, _, err := s.assign(bundle, features(row))
		if err != nil {
			continue
		}
		if other != cluster {
			continue
		}
		similar = append(similar, row.Team)
		if len(similar) == maxSimilarTeams {
			break
		}
	}
	return similar, nil
}

// clusterProbabilities converts centroid distances to a normalized inverse
// distance distribution keyed by style label.
func clusterProbabilities(bundle *artifact.TeamStyleBundle, scaled []float64) (map[string]float64, error) {
	distances, err := bundle.Model.Distances(scaled)
	if err != nil {
		return nil, err
	}

	inv := make([]float64, len(distances))
	total := 0.0
	for i, d := range distances {
		inv[i] = 1 / (d + 1e-10)
		total += inv[i]
	}

	probs := make(map[string]float64, len(inv))
	for i, v := range inv {
		probs[clusterInfo(i).Label] = math.Round(v/total*1000) / 1000
	}
	return probs, nil
}

// radarStats normalizes the raw style features onto the 0-100 radar axes.
func radarStats(feats map[string]float64) map[string]float64 {
	return map[string]float64{
		"Attack":     round1(feats["Avg_Goals_Scored"] / 3 * 100),
		"Defense":    round1((1 - feats["Avg_Goals_Conceded"]/3) * 100),
		"Possession": round1(feats["Shot_Accuracy"]),
		"Pressing":   round1(feats["Fouls_per_Match"] / 15 * 100),
		"Set Pieces": round1(feats["Avg_Corners"] / 10 * 100),
		"Discipline": round1((1 - feats["Cards_per_Foul"]) * 100),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
