package dataset

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// formWindow is the number of recent matches used for form features.
const formWindow = 10

// Match is one played match with its full-time statistics.
type Match struct {
	Date     string
	Season   string
	HomeTeam string
	AwayTeam string

	// FTR is the full-time result: H, D or A.
	FTR string

	FTHG float64
	FTAG float64
	HS   float64
	AS   float64
	HST  float64
	AST  float64
	HF   float64
	AF   float64
	HC   float64
	AC   float64
	HY   float64
	AY   float64
	HR   float64
	AR   float64
}

// Form aggregates a team's historical statistics on one side of the pitch,
// plus a rolling window over its most recent matches.
type Form struct {
	Shots         float64
	ShotsOnTarget float64
	Fouls         float64
	Corners       float64
	Yellows       float64
	Reds          float64
	Wins          int
	GoalsScored   float64
	GoalsConceded float64

	// FormWins and FormGoals cover the last formWindow matches.
	FormWins  int
	FormGoals int
}

// MatchStore holds the historical match rows, indexed per team and side.
type MatchStore struct {
	matches []Match
	home    map[string][]int
	away    map[string][]int
}

// LoadMatches reads the combined match CSV from path.
func LoadMatches(path string) (*MatchStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return NewMatchStore(f)
}

// NewMatchStore parses the combined match CSV from r.
func NewMatchStore(r io.Reader) (*MatchStore, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("matches: %w", err)
	}

	s := &MatchStore{
		home: make(map[string][]int),
		away: make(map[string][]int),
	}
	for _, row := range rows {
		m := Match{
			Date:     h.str(row, "Date"),
			Season:   h.str(row, "Season"),
			HomeTeam: h.str(row, "HomeTeam"),
			AwayTeam: h.str(row, "AwayTeam"),
			FTR:      h.str(row, "FTR"),
			FTHG:     h.num(row, "FTHG"),
			FTAG:     h.num(row, "FTAG"),
			HS:       h.num(row, "HS"),
			AS:       h.num(row, "AS"),
			HST:      h.num(row, "HST"),
			AST:      h.num(row, "AST"),
			HF:       h.num(row, "HF"),
			AF:       h.num(row, "AF"),
			HC:       h.num(row, "HC"),
			AC:       h.num(row, "AC"),
			HY:       h.num(row, "HY"),
			AY:       h.num(row, "AY"),
			HR:       h.num(row, "HR"),
			AR:       h.num(row, "AR"),
		}
		if m.HomeTeam == "" || m.AwayTeam == "" {
			continue
		}
		idx := len(s.matches)
		s.matches = append(s.matches, m)
		s.home[m.HomeTeam] = append(s.home[m.HomeTeam], idx)
		s.away[m.AwayTeam] = append(s.away[m.AwayTeam], idx)
	}
	return s, nil
}

// Len returns the number of match rows.
func (s *MatchStore) Len() int {
	return len(s.matches)
}

// TeamForm aggregates a team's matches on one side (home or away) into the
// historical means and recent-form counters the match classifier consumes.
// Returns ErrInsufficientHistory when the team has no matches on that side.
func (s *MatchStore) TeamForm(team string, home bool) (Form, error) {
	index := s.away[team]
	if home {
		index = s.home[team]
	}
	if len(index) == 0 {
		return Form{}, fmt.Errorf("%w: team %q", ErrInsufficientHistory, team)
	}

	rows := make([]Match, 0, len(index))
	for _, i := range index {
		rows = append(rows, s.matches[i])
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	var f Form
	winResult := "A"
	if home {
		winResult = "H"
	}
	for _, m := range rows {
		if home {
			f.Shots += m.HS
			f.ShotsOnTarget += m.HST
			f.Fouls += m.HF
			f.Corners += m.HC
			f.Yellows += m.HY
			f.Reds += m.HR
			f.GoalsScored += m.FTHG
			f.GoalsConceded += m.FTAG
		} else {
			f.Shots += m.AS
			f.ShotsOnTarget += m.AST
			f.Fouls += m.AF
			f.Corners += m.AC
			f.Yellows += m.AY
			f.Reds += m.AR
			f.GoalsScored += m.FTAG
			f.GoalsConceded += m.FTHG
		}
		if m.FTR == winResult {
			f.Wins++
		}
	}

	n := float64(len(rows))
	f.Shots /= n
	f.ShotsOnTarget /= n
	f.Fouls /= n
	f.Corners /= n
	f.Yellows /= n
	f.Reds /= n
	f.GoalsScored /= n
	f.GoalsConceded /= n

	recent := rows
	if len(recent) > formWindow {
		recent = recent[len(recent)-formWindow:]
	}
	for _, m := range recent {
		if m.FTR == winResult {
			f.FormWins++
		}
		if home {
			f.FormGoals += int(m.FTHG)
		} else {
			f.FormGoals += int(m.FTAG)
		}
	}
	return f, nil
}
