// Package newscred grades Premier League news articles into four credibility
// tiers with the trained text ensemble.
package newscred

import (
	"context"
	"fmt"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/domain/model"
	"github.com/the12thplayer/predict/pkg/logger"
)

var tierLabels = map[int]string{
	1: "Tier 1 - Official Source",
	2: "Tier 2 - Reliable Journalist",
	3: "Tier 3 - Tabloid/Blog",
	4: "Tier 4 - Social Media",
}

var tierDescriptions = map[int]string{
	1: "Official sources (BBC, ESPN, official club statements, verified journalists)",
	2: "Reliable sports journalists and reputable sports outlets",
	3: "Tabloids, sports blogs, and sensationalist coverage",
	4: "Social media posts, unverified sources, and user-generated content",
}

// ModelSource provides the credibility ensemble.
type ModelSource interface {
	NewsCredibility() (*artifact.NewsCredibilityBundle, error)
}

// TierProbabilities carries the probability of each credibility tier.
type TierProbabilities struct {
	Tier1 float64 `json:"tier_1"`
	Tier2 float64 `json:"tier_2"`
	Tier3 float64 `json:"tier_3"`
	Tier4 float64 `json:"tier_4"`
}

// Classification is the graded credibility of one article.
type Classification struct {
	Title                  string            `json:"title"`
	PredictedTier          int               `json:"predicted_tier"`
	TierLabel              string            `json:"tier_label"`
	Confidence             float64           `json:"confidence"`
	Probabilities          TierProbabilities `json:"probabilities"`
	CredibilityDescription string            `json:"credibility_description"`
}

// Service is the news credibility capability.
type Service struct {
	models ModelSource
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

// New creates the news credibility service.
func New(models ModelSource, opts ...Option) *Service {
	s := &Service{
		models: models,
		log:    logger.Named("newscred"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify grades one article. Title and text are cleaned, combined and run
// through the vectorizer and ensemble; the confidence is the probability of
// the winning tier.
func (s *Service) Classify(ctx context.Context, title, text string) (*Classification, error) {
	cleanTitle := clean(title)
	cleanText := clean(text)
	if cleanTitle == "" || cleanText == "" {
		return nil, ErrEmptyArticle
	}

	bundle, err := s.models.NewsCredibility()
	if err != nil {
		return nil, err
	}

	combined := cleanTitle + " " + cleanText
	vec, err := bundle.Vectorizer.Transform(combined)
	if err != nil {
		return nil, err
	}

	probs, err := bundle.Ensemble.PredictProba(vec)
	if err != nil {
		return nil, err
	}

	best := model.Argmax(probs)
	tier := best + 1
	classes := bundle.Ensemble.Classes()
	if best < len(classes) {
		tier = classes[best]
	}

	label, ok := tierLabels[tier]
	if !ok {
		return nil, fmt.Errorf("unexpected tier %d from ensemble", tier)
	}

	return &Classification{
		Title:                  title,
		PredictedTier:          tier,
		TierLabel:              label,
		Confidence:             probAt(probs, tier-1),
		Probabilities:          tierProbabilities(probs),
		CredibilityDescription: tierDescriptions[tier],
	}, nil
}

func tierProbabilities(probs []float64) TierProbabilities {
	return TierProbabilities{
		Tier1: probAt(probs, 0),
		Tier2: probAt(probs, 1),
		Tier3: probAt(probs, 2),
		Tier4: probAt(probs, 3),
	}
}

func probAt(probs []float64, i int) float64 {
	if i < 0 || i >= len(probs) {
		return 0
	}
	return probs[i]
}
