package dataset

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// topLeagues limits scouting to the top five European leagues.
var topLeagues = []string{"Premier League", "La Liga", "Bundesliga", "Serie A", "Ligue 1"}

// Player is one player's season statistics from the scouting dataset.
// Column names follow the upstream export; MarketValue is in euros.
type Player struct {
	Name     string
	Squad    string
	League   string
	Pos      string
	Nation   string
	Age      int
	Minutes  float64
	Nineties float64

	Goals         float64
	Assists       float64
	Shots         float64
	ShotsOnTarget float64
	GoalsPerShot  float64
	XG            float64

	PassCompletionPct float64
	KeyPasses         float64
	ProgPasses        float64
	ProgCarries       float64

	Tackles       float64
	Interceptions float64
	Clearances    float64

	GoalsAgainst90 float64
	SavePct        float64
	Saves          float64
	CleanSheetPct  float64
	PSxG           float64

	MarketValue decimal.Decimal
}

// PlayerStore holds the scouting dataset rows.
type PlayerStore struct {
	players []Player
}

// LoadPlayers reads the player CSV from path.
func LoadPlayers(path string) (*PlayerStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return NewPlayerStore(f)
}

// NewPlayerStore parses the player CSV from r.
func NewPlayerStore(r io.Reader) (*PlayerStore, error) {
	h, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}

	s := &PlayerStore{}
	for _, row := range rows {
		p := Player{
			Name:     h.str(row, "Player"),
			Squad:    h.str(row, "Squad"),
			League:   h.str(row, "Comp"),
			Pos:      h.str(row, "Pos"),
			Nation:   h.str(row, "Nation"),
			Age:      h.integer(row, "Age"),
			Minutes:  h.num(row, "Min"),
			Nineties: h.num(row, "90s"),

			Goals:         h.num(row, "Gls"),
			Assists:       h.num(row, "Ast"),
			Shots:         h.num(row, "Sh"),
			ShotsOnTarget: h.num(row, "SoT"),
			GoalsPerShot:  h.num(row, "G/Sh"),
			XG:            h.num(row, "xG"),

			PassCompletionPct: h.num(row, "Cmp%"),
			KeyPasses:         h.num(row, "KP"),
			ProgPasses:        h.num(row, "PrgP"),
			ProgCarries:       h.num(row, "PrgC"),

			Tackles:       h.num(row, "Tkl"),
			Interceptions: h.num(row, "Int"),
			Clearances:    h.num(row, "Clr"),

			GoalsAgainst90: h.num(row, "GA90"),
			SavePct:        h.num(row, "Save%"),
			Saves:          h.num(row, "Saves"),
			CleanSheetPct:  h.num(row, "CS%"),
			PSxG:           h.num(row, "PSxG"),

			MarketValue: decimal.NewFromFloat(h.num(row, "Market_Value")),
		}
		if p.Name == "" {
			continue
		}
		s.players = append(s.players, p)
	}
	return s, nil
}

// Len returns the number of player rows.
func (s *PlayerStore) Len() int {
	return len(s.players)
}

// Filter returns players matching a position code (FW, MF, DF, GK) within the
// age ceiling and minutes floor, restricted to the top five leagues. Players
// appearing in multiple leagues keep the row with the most minutes. An empty
// result is not an error.
func (s *PlayerStore) Filter(posCode string, maxAge int, minMinutes float64) []Player {
	best := make(map[string]Player)
	order := make([]string, 0)

	for _, p := range s.players {
		if !strings.Contains(p.Pos, posCode) {
			continue
		}
		if maxAge > 0 && p.Age > maxAge {
			continue
		}
		if p.Minutes < minMinutes {
			continue
		}
		if !inTopLeague(p.League) {
			continue
		}

		prev, seen := best[p.Name]
		if !seen {
			best[p.Name] = p
			order = append(order, p.Name)
			continue
		}
		if p.Minutes > prev.Minutes {
			best[p.Name] = p
		}
	}

	out := make([]Player, 0, len(order))
	for _, name := range order {
		out = append(out, best[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func inTopLeague(league string) bool {
	for _, l := range topLeagues {
		if strings.Contains(strings.ToLower(league), strings.ToLower(l)) {
			return true
		}
	}
	return false
}
