// Package matchodds classifies fixtures into home win, draw or away win
// using the trained outcome classifier over historical team form.
package matchodds

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
	"github.com/the12thplayer/predict/internal/domain/model"
	"github.com/the12thplayer/predict/pkg/logger"
)

// Outcome labels by class index. Class order is [away win, draw, home win].
var outcomeLabels = map[int]string{
	0: "Away Win",
	1: "Draw",
	2: "Home Win",
}

const (
	defaultHighCutoff     = 0.55
	defaultModerateCutoff = 0.40
	defaultAccuracy       = 0.592

	maxImportances      = 10
	importanceThreshold = 0.01
)

// ModelSource provides the outcome classifier and the team encodings.
type ModelSource interface {
	MatchOutcome() (*artifact.MatchOutcomeBundle, error)
	Teams() []string
	TeamEncoding() map[string]int
}

// FormSource provides per-side historical form for a team.
type FormSource interface {
	TeamForm(team string, home bool) (dataset.Form, error)
}

// Probabilities carries the class probabilities of one fixture.
type Probabilities struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}

// FeatureImportance is one feature's contribution in expert mode.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Value      float64 `json:"value"`
	Importance float64 `json:"importance"`
}

// Prediction is the classified outcome of one fixture.
type Prediction struct {
	HomeTeam          string              `json:"home_team"`
	AwayTeam          string              `json:"away_team"`
	Season            string              `json:"season"`
	Prediction        string              `json:"prediction"`
	Probabilities     Probabilities       `json:"probabilities"`
	Confidence        string              `json:"confidence"`
	FeatureImportance []FeatureImportance `json:"feature_importance,omitempty"`
	ModelAccuracy     *float64            `json:"model_accuracy,omitempty"`
}

// Service is the match outcome capability.
type Service struct {
	models ModelSource
	form   FormSource
	log    logger.Logger

	highCutoff     float64
	moderateCutoff float64
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

// WithConfidenceCutoffs sets the probability cutoffs for the High and
// Moderate confidence labels.
func WithConfidenceCutoffs(high, moderate float64) Option {
	return func(s *Service) {
		if high > 0 {
			s.highCutoff = high
		}
		if moderate > 0 {
			s.moderateCutoff = moderate
		}
	}
}

// New creates the match outcome service.
func New(models ModelSource, form FormSource, opts ...Option) *Service {
	s := &Service{
		models:         models,
		form:           form,
		log:            logger.Named("matchodds"),
		highCutoff:     defaultHighCutoff,
		moderateCutoff: defaultModerateCutoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict classifies one fixture. Expert mode additionally reports the
// leading feature importances and the model's test accuracy.
func (s *Service) Predict(ctx context.Context, homeTeam, awayTeam, season string, expertMode bool) (*Prediction, error) {
	if homeTeam == awayTeam {
		return nil, fmt.Errorf("%w: %q", ErrSameTeams, homeTeam)
	}
	// An empty team list means the artifact failed to load, not that every
	// team is unknown; match history still vets the names below.
	valid := s.models.Teams()
	if len(valid) > 0 {
		if !contains(valid, homeTeam) {
			return nil, fmt.Errorf("%w: home team %q", ErrUnknownTeam, homeTeam)
		}
		if !contains(valid, awayTeam) {
			return nil, fmt.Errorf("%w: away team %q", ErrUnknownTeam, awayTeam)
		}
	}

	bundle, err := s.models.MatchOutcome()
	if err != nil {
		return nil, err
	}

	homeForm, err := s.form.TeamForm(homeTeam, true)
	if err != nil {
		return nil, err
	}
	awayForm, err := s.form.TeamForm(awayTeam, false)
	if err != nil {
		return nil, err
	}

	encoding := s.models.TeamEncoding()
	feats := buildFeatures(encoding[homeTeam], encoding[awayTeam], seasonEncoding(season), homeForm, awayForm)

	vec := vector(feats, bundle.Features)
	scaled := vec
	if bundle.Scaler != nil {
		if scaled, err = bundle.Scaler.Transform(vec); err != nil {
			return nil, err
		}
	}

	probs, err := bundle.Model.PredictProba(scaled)
	if err != nil {
		return nil, err
	}
	class := model.Argmax(probs)

	pred := &Prediction{
		HomeTeam:      homeTeam,
		AwayTeam:      awayTeam,
		Season:        season,
		Prediction:    outcomeLabels[class],
		Probabilities: probabilitiesFrom(probs),
		Confidence:    s.confidence(probs),
	}

	if expertMode {
		pred.FeatureImportance = topImportances(bundle, feats)
		accuracy := defaultAccuracy
		if v, ok := bundle.Metadata.Metrics["accuracy"]; ok {
			accuracy = v
		}
		pred.ModelAccuracy = &accuracy
	}
	return pred, nil
}

func probabilitiesFrom(probs []float64) Probabilities {
	p := Probabilities{HomeWin: 0.33, Draw: 0.33, AwayWin: 0.33}
	if len(probs) > 0 {
		p.AwayWin = probs[0]
	}
	if len(probs) > 1 {
		p.Draw = probs[1]
	}
	if len(probs) > 2 {
		p.HomeWin = probs[2]
	}
	return p
}

func (s *Service) confidence(probs []float64) string {
	top := 0.0
	for _, p := range probs {
		top = math.Max(top, p)
	}
	switch {
	case top >= s.highCutoff:
		return "High"
	case top >= s.moderateCutoff:
		return "Moderate"
	default:
		return "Low"
	}
}

// topImportances reports the unscaled feature values of the strongest
// importances, descending, capped at ten.
func topImportances(bundle *artifact.MatchOutcomeBundle, feats map[string]float64) []FeatureImportance {
	var list []FeatureImportance
	for i, name := range bundle.Features {
		if i >= len(bundle.Importances) {
			break
		}
		imp := bundle.Importances[i]
		if imp <= importanceThreshold {
			continue
		}
		list = append(list, FeatureImportance{
			Feature:    name,
			Value:      feats[name],
			Importance: math.Round(imp*1000) / 1000,
		})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Importance > list[j].Importance })
	if len(list) > maxImportances {
		list = list[:maxImportances]
	}
	return list
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
