package scouting

import "github.com/the12thplayer/predict/internal/adapters/dataset"

// derived holds the per-90 and ratio features computed from one player's raw
// season line.
type derived struct {
	GoalsPer90         float64
	AssistsPer90       float64
	ProductivityScore  float64
	ShotsOnTargetPct   float64
	TacklesPer90       float64
	InterceptionsPer90 float64
}

func derive(p dataset.Player) derived {
	var d derived
	if p.Nineties > 0 {
		d.GoalsPer90 = p.Goals / p.Nineties
		d.AssistsPer90 = p.Assists / p.Nineties
		d.TacklesPer90 = p.Tackles / p.Nineties
		d.InterceptionsPer90 = p.Interceptions / p.Nineties
	}
	d.ProductivityScore = d.GoalsPer90 + d.AssistsPer90
	if p.Shots > 0 {
		d.ShotsOnTargetPct = p.ShotsOnTarget / p.Shots * 100
	}
	return d
}

// features builds the named feature map the scoring models draw from. Raw
// column names and the derived names are both emitted so any exported schema
// resolves.
func features(p dataset.Player, d derived) map[string]float64 {
	marketValue, _ := p.MarketValue.Float64()
	return map[string]float64{
		"Age":   float64(p.Age),
		"Min":   p.Minutes,
		"90s":   p.Nineties,
		"Gls":   p.Goals,
		"Ast":   p.Assists,
		"Sh":    p.Shots,
		"SoT":   p.ShotsOnTarget,
		"G/Sh":  p.GoalsPerShot,
		"xG":    p.XG,
		"Cmp%":  p.PassCompletionPct,
		"KP":    p.KeyPasses,
		"PrgP":  p.ProgPasses,
		"PrgC":  p.ProgCarries,
		"Tkl":   p.Tackles,
		"Int":   p.Interceptions,
		"Clr":   p.Clearances,
		"GA90":  p.GoalsAgainst90,
		"Save%": p.SavePct,
		"Saves": p.Saves,
		"CS%":   p.CleanSheetPct,
		"PSxG":  p.PSxG,

		"Market_Value": marketValue,

		"Goals_per_90":         d.GoalsPer90,
		"Assists_per_90":       d.AssistsPer90,
		"Productivity_Score":   d.ProductivityScore,
		"Shots_on_Target_pct":  d.ShotsOnTargetPct,
		"Pass_Completion_pct":  p.PassCompletionPct,
		"Tackles_per_90":       d.TacklesPer90,
		"Interceptions_per_90": d.InterceptionsPer90,
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
