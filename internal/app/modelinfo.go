package service

import (
	"context"
	"fmt"
)

// ModelInfo reports one model's algorithm, feature schema and evaluation
// metrics. The position argument selects the bundle for the player scoring
// model and is ignored otherwise.
func (s *Service) ModelInfo(ctx context.Context, name, position string) (map[string]any, error) {
	switch name {
	case "bo1":
		bundle, err := s.models.SeasonRanking()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"business_objective": "Season Ranking Prediction",
			"algorithm":          bundle.Metadata.Algorithm,
			"features":           bundle.Features,
			"performance": map[string]any{
				"mae":      bundle.Metadata.Metrics["mae"],
				"r2_score": bundle.Metadata.Metrics["r2_score"],
			},
			"version": bundle.Metadata.Version,
		}, nil

	case "bo2":
		bundle, err := s.models.MatchOutcome()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"business_objective": "Match Outcome Prediction",
			"algorithm":          bundle.Metadata.Algorithm,
			"features":           bundle.Features,
			"performance": map[string]any{
				"test_accuracy": bundle.Metadata.Metrics["accuracy"],
			},
			"version": bundle.Metadata.Version,
		}, nil

	case "bo3":
		bundle, err := s.models.TeamStyle()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"business_objective": "Team Tactical Style Clustering",
			"algorithm":          bundle.Metadata.Algorithm,
			"features":           bundle.Features,
			"num_clusters":       bundle.Model.NumClusters(),
			"performance": map[string]any{
				"silhouette_score": bundle.Metadata.Metrics["silhouette_score"],
			},
			"version": bundle.Metadata.Version,
		}, nil

	case "bo4":
		bundle, err := s.models.PlayerScoring(position)
		if err != nil {
			return nil, err
		}
		maxAge := 23
		if position == "goalkeeper" {
			maxAge = 26
		}
		return map[string]any{
			"business_objective": "Player Recommendations",
			"position":           position,
			"algorithm":          bundle.Metadata.Algorithm,
			"features":           bundle.Features,
			"filters": map[string]any{
				"max_age":     maxAge,
				"min_minutes": 90,
			},
			"performance": bundle.Metadata.Metrics,
			"version":     bundle.Metadata.Version,
		}, nil

	case "bo5":
		bundle, err := s.models.NewsCredibility()
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"business_objective": "News Credibility Classification",
			"algorithm":          bundle.Metadata.Algorithm,
			"performance": map[string]any{
				"test_accuracy": bundle.Metadata.Metrics["accuracy"],
			},
			"version": bundle.Metadata.Version,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}
