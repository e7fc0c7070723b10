package matchodds

import (
	"strconv"
	"strings"

	"github.com/the12thplayer/predict/internal/adapters/dataset"
)

// buildFeatures assembles the named feature map for one fixture from both
// teams' side-specific form. Aliases kept by older model exports are emitted
// alongside the current names so any schema the bundle declares resolves.
func buildFeatures(homeEnc, awayEnc, seasonEnc int, h, a dataset.Form) map[string]float64 {
	return map[string]float64{
		"HomeTeam_le":    float64(homeEnc),
		"AwayTeam_le":    float64(awayEnc),
		"Season_encoded": float64(seasonEnc),

		"HS":  h.Shots,
		"AS":  a.Shots,
		"HST": h.ShotsOnTarget,
		"AST": a.ShotsOnTarget,
		"HF":  h.Fouls,
		"AF":  a.Fouls,
		"HC":  h.Corners,
		"AC":  a.Corners,
		"HY":  h.Yellows,
		"AY":  a.Yellows,
		"HR":  h.Reds,
		"AR":  a.Reds,

		"home_wins_L5":           float64(h.FormWins),
		"home_goals_scored_L5":   float64(h.FormGoals),
		"home_goals_conceded_L5": float64(int(h.GoalsConceded * 5)),
		"away_wins_L5":           float64(a.FormWins),
		"away_goals_scored_L5":   float64(a.FormGoals),
		"away_goals_conceded_L5": float64(int(a.GoalsConceded * 5)),

		"home_shot_accuracy": ratio(h.ShotsOnTarget, h.Shots),
		"away_shot_accuracy": ratio(a.ShotsOnTarget, a.Shots),
		"home_discipline":    ratio(h.Yellows+h.Reds, h.Fouls),
		"away_discipline":    ratio(a.Yellows+a.Reds, a.Fouls),

		"HS_per_Shots":         ratio(h.ShotsOnTarget, h.Shots),
		"AS_per_Shots":         ratio(a.ShotsOnTarget, a.Shots),
		"HF_per_Fouls":         ratio(h.Yellows+h.Reds, h.Fouls),
		"AF_per_Fouls":         ratio(a.Yellows+a.Reds, a.Fouls),
		"Home_Wins":            float64(h.Wins),
		"Away_Wins":            float64(a.Wins),
		"Home_Form":            float64(h.FormWins) / 10,
		"Away_Form":            float64(a.FormWins) / 10,
		"Home_Attack_Strength": h.GoalsScored,
		"Away_Attack_Strength": a.GoalsScored,
	}
}

// vector orders the named features by the bundle's schema, zero for unknowns.
func vector(feats map[string]float64, schema []string) []float64 {
	out := make([]float64, len(schema))
	for i, name := range schema {
		out[i] = feats[name]
	}
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// seasonEncoding maps a season label to the ordinal the training export used,
// 2024-25 -> 24.
func seasonEncoding(season string) int {
	start := strings.SplitN(season, "-", 2)[0]
	year, err := strconv.Atoi(start)
	if err != nil {
		return 0
	}
	return year - 2000
}
