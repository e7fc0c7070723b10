package livedata

import (
	"strings"
)

// teamIDs maps current-league team names to TheSportsDB team identifiers.
var teamIDs = map[string]string{
	"Arsenal":           "133604",
	"Aston Villa":       "133601",
	"Bournemouth":       "134301",
	"Brentford":         "134355",
	"Brighton":          "133603",
	"Burnley":           "133614",
	"Chelsea":           "133610",
	"Crystal Palace":    "133632",
	"Everton":           "133615",
	"Fulham":            "133600",
	"Leeds United":      "133619",
	"Liverpool":         "133602",
	"Man City":          "133613",
	"Man United":        "133612",
	"Newcastle":         "134777",
	"Nottingham Forest": "133720",
	"Sunderland":        "133625",
	"Tottenham":         "133616",
	"West Ham":          "133636",
	"Wolves":            "133599",
}

// nameVariations lists alternate spellings the upstream uses for our
// canonical team names.
var nameVariations = map[string][]string{
	"Arsenal":           {"Arsenal", "Arsenal FC"},
	"Man City":          {"Manchester City", "Man City", "Manchester City FC"},
	"Man United":        {"Manchester United", "Man Utd", "Manchester United FC"},
	"Newcastle":         {"Newcastle United", "Newcastle", "Newcastle United FC"},
	"Nottingham Forest": {"Nottm Forest", "Nottingham Forest", "Nottingham Forest FC"},
	"Tottenham":         {"Tottenham", "Spurs", "Tottenham Hotspur"},
	"West Ham":          {"West Ham", "West Ham United"},
	"Wolves":            {"Wolves", "Wolverhampton", "Wolverhampton Wanderers"},
	"Brighton":          {"Brighton", "Brighton & Hove Albion"},
	"Bournemouth":       {"Bournemouth", "AFC Bournemouth"},
}

// matchesName reports whether an upstream team string refers to our
// canonical team name, allowing known variations and substring matches.
func matchesName(canonical, upstream string) bool {
	c := strings.ToLower(canonical)
	u := strings.ToLower(upstream)
	for _, v := range nameVariations[canonical] {
		lv := strings.ToLower(v)
		if strings.Contains(u, lv) || strings.Contains(lv, u) {
			return true
		}
	}
	return strings.Contains(u, c) || strings.Contains(c, u)
}
