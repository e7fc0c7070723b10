package ranking

// TeamStats carries one team's season statistics for ranking prediction.
// WinRate and CleanSheetRate are derived from the counts when not provided.
type TeamStats struct {
	Team           string   `json:"team"`
	Wins           int      `json:"wins"`
	Draws          int      `json:"draws"`
	Losses         int      `json:"losses"`
	GoalsScored    int      `json:"goals_scored"`
	GoalsConceded  int      `json:"goals_conceded"`
	CleanSheets    int      `json:"clean_sheets"`
	WinRate        *float64 `json:"win_rate,omitempty"`
	CleanSheetRate *float64 `json:"clean_sheet_rate,omitempty"`
}

// features engineers the named feature map the ranking model was trained on.
// Derived values: goal difference, points (3 per win, 1 per draw) and the
// rates over matches played.
func features(ts TeamStats) map[string]float64 {
	total := ts.Wins + ts.Draws + ts.Losses

	winRate := 0.0
	if ts.WinRate != nil {
		winRate = *ts.WinRate
	} else if total > 0 {
		winRate = float64(ts.Wins) / float64(total)
	}

	cleanSheetRate := 0.0
	if ts.CleanSheetRate != nil {
		cleanSheetRate = *ts.CleanSheetRate
	} else if total > 0 {
		cleanSheetRate = float64(ts.CleanSheets) / float64(total)
	}

	return map[string]float64{
		"Wins":             float64(ts.Wins),
		"Draws":            float64(ts.Draws),
		"Losses":           float64(ts.Losses),
		"Goals_Scored":     float64(ts.GoalsScored),
		"Goals_Conceded":   float64(ts.GoalsConceded),
		"Goal_Difference":  float64(ts.GoalsScored - ts.GoalsConceded),
		"Points":           float64(ts.Wins*3 + ts.Draws),
		"Win_Rate":         winRate,
		"Clean_Sheet_Rate": cleanSheetRate,
		"Clean_Sheets":     float64(ts.CleanSheets),
	}
}

// vector orders the feature map by the bundle's schema. Features the schema
// names but the map lacks contribute zero.
func vector(feats map[string]float64, schema []string) []float64 {
	out := make([]float64, len(schema))
	for i, name := range schema {
		out[i] = feats[name]
	}
	return out
}
