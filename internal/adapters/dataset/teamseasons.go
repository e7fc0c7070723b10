package dataset

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// TeamSeason is one team's aggregated statistics for one season.
type TeamSeason struct {
	Season        string
	SeasonEncoded int
	Team          string

	MatchesPlayed int
	Wins          int
	Draws         int
	Losses        int
	GoalsScored   int
	GoalsConceded int
	CleanSheets   int
	Points        int
	FinalPosition int

	WinRate        float64
	HomeWinRate    float64
	AwayWinRate    float64
	CleanSheetRate float64
	PointsPerGame  float64

	AvgGoalsScored   float64
	AvgGoalsConceded float64
	AvgShots         float64
	AvgShotsOnTarget float64
	ShotAccuracy     float64
	AvgCorners       float64
	Fouls            float64
	YellowCards      float64
	RedCards         float64
}

// TeamSeasonStore holds the per-season aggregates, indexed for lookups.
type TeamSeasonStore struct {
	rows     []TeamSeason
	bySeason map[string][]TeamSeason
	byTeam   map[string][]TeamSeason
}

// LoadTeamSeasons reads the aggregated team-season CSV from path.
func LoadTeamSeasons(path string) (*TeamSeasonStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return NewTeamSeasonStore(f)
}

// NewTeamSeasonStore parses the aggregated team-season CSV from r.
func NewTeamSeasonStore(r io.Reader) (*TeamSeasonStore, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("team seasons: %w", err)
	}

	s := &TeamSeasonStore{
		bySeason: make(map[string][]TeamSeason),
		byTeam:   make(map[string][]TeamSeason),
	}
	for _, row := range rows {
		ts := TeamSeason{
			Season:        h.str(row, "Season"),
			SeasonEncoded: h.integer(row, "Season_encoded"),
			Team:          h.str(row, "Team"),

			MatchesPlayed: h.integer(row, "Matches_Played"),
			Wins:          h.integer(row, "Wins"),
			Draws:         h.integer(row, "Draws"),
			Losses:        h.integer(row, "Losses"),
			GoalsScored:   h.integer(row, "Goals_Scored"),
			GoalsConceded: h.integer(row, "Goals_Conceded"),
			CleanSheets:   h.integer(row, "Clean_Sheets"),
			Points:        h.integer(row, "Points"),
			FinalPosition: h.integer(row, "Final_Position"),

			WinRate:        h.num(row, "Win_Rate"),
			HomeWinRate:    h.num(row, "Home_Win_Rate"),
			AwayWinRate:    h.num(row, "Away_Win_Rate"),
			CleanSheetRate: h.num(row, "Clean_Sheet_Rate"),
			PointsPerGame:  h.num(row, "Points_Per_Game"),

			AvgGoalsScored:   h.num(row, "Avg_Goals_Scored"),
			AvgGoalsConceded: h.num(row, "Avg_Goals_Conceded"),
			AvgShots:         h.num(row, "Avg_Shots"),
			AvgShotsOnTarget: h.num(row, "Avg_Shots_On_Target"),
			ShotAccuracy:     h.num(row, "Shot_Accuracy"),
			AvgCorners:       h.num(row, "Avg_Corners"),
			Fouls:            h.num(row, "Fouls"),
			YellowCards:      h.num(row, "Yellow_Cards"),
			RedCards:         h.num(row, "Red_Cards"),
		}
		if ts.Season == "" || ts.Team == "" {
			continue
		}
		s.rows = append(s.rows, ts)
		s.bySeason[ts.Season] = append(s.bySeason[ts.Season], ts)
		s.byTeam[ts.Team] = append(s.byTeam[ts.Team], ts)
	}
	return s, nil
}

// Len returns the number of team-season rows.
func (s *TeamSeasonStore) Len() int {
	return len(s.rows)
}

// Seasons returns every season in the dataset, most recent first.
func (s *TeamSeasonStore) Seasons() []string {
	seasons := make([]string, 0, len(s.bySeason))
	for season := range s.bySeason {
		seasons = append(seasons, season)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(seasons)))
	return seasons
}

// Teams returns every team with historical data, sorted by name.
func (s *TeamSeasonStore) Teams() []string {
	teams := make([]string, 0, len(s.byTeam))
	for team := range s.byTeam {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// HasTeam reports whether the team appears anywhere in the dataset.
func (s *TeamSeasonStore) HasTeam(team string) bool {
	_, ok := s.byTeam[team]
	return ok
}

// SeasonTeams returns every team row for a season, in dataset order.
// Returns ErrNotFound for a season with no rows.
func (s *TeamSeasonStore) SeasonTeams(season string) ([]TeamSeason, error) {
	rows, ok := s.bySeason[season]
	if !ok {
		return nil, fmt.Errorf("%w: season %q", ErrNotFound, season)
	}
	out := make([]TeamSeason, len(rows))
	copy(out, rows)
	return out, nil
}

// TeamSeason returns one team's row for one season. Returns ErrNotFound if
// the combination has no data.
func (s *TeamSeasonStore) TeamSeason(team, season string) (TeamSeason, error) {
	for _, ts := range s.byTeam[team] {
		if ts.Season == season {
			return ts, nil
		}
	}
	return TeamSeason{}, fmt.Errorf("%w: team %q season %q", ErrNotFound, team, season)
}

// TeamHistory returns every season row for a team, oldest first.
// Returns ErrNotFound for an unknown team.
func (s *TeamSeasonStore) TeamHistory(team string) ([]TeamSeason, error) {
	rows, ok := s.byTeam[team]
	if !ok {
		return nil, fmt.Errorf("%w: team %q", ErrNotFound, team)
	}
	out := make([]TeamSeason, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SeasonEncoded < out[j].SeasonEncoded
	})
	return out, nil
}
