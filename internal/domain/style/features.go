package style

import "github.com/the12thplayer/predict/internal/adapters/dataset"

// features derives the clustering feature map from one aggregated season row.
func features(row dataset.TeamSeason) map[string]float64 {
	matches := float64(row.MatchesPlayed)
	return map[string]float64{
		"Avg_Goals_Scored":    row.AvgGoalsScored,
		"Avg_Shots":           row.AvgShots,
		"Avg_Shots_On_Target": row.AvgShotsOnTarget,
		"Shot_Accuracy":       row.ShotAccuracy,
		"Goals_per_Shot":      ratio(row.AvgGoalsScored, row.AvgShots),
		"Avg_Goals_Conceded":  row.AvgGoalsConceded,
		"Clean_Sheet_Rate":    row.CleanSheetRate,
		"Avg_Corners":         row.AvgCorners,
		"Corners_per_Shot":    ratio(row.AvgCorners, row.AvgShots),
		"Fouls_per_Match":     ratio(row.Fouls, matches),
		"Yellow_per_Match":    ratio(row.YellowCards, matches),
		"Red_per_Match":       ratio(row.RedCards, matches),
		"Cards_per_Foul":      ratio(row.YellowCards+row.RedCards, row.Fouls),
		"Win_Rate":            row.WinRate,
		"Home_Win_Rate":       row.HomeWinRate,
		"Away_Win_Rate":       row.AwayWinRate,
		"Points_Per_Game":     row.PointsPerGame,
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
