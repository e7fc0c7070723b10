package style

import (
	"context"
	"sort"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
	"github.com/the12thplayer/predict/internal/domain/model"
	"github.com/the12thplayer/predict/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type stubModels struct {
	bundle *artifact.TeamStyleBundle
	err    error
}

func (m *stubModels) TeamStyle() (*artifact.TeamStyleBundle, error) {
	return m.bundle, m.err
}

type stubData struct {
	rows []dataset.TeamSeason
}

func (d *stubData) Teams() []string {
	seen := map[string]bool{}
	var teams []string
	for _, row := range d.rows {
		if !seen[row.Team] {
			seen[row.Team] = true
			teams = append(teams, row.Team)
		}
	}
	sort.Strings(teams)
	return teams
}

func (d *stubData) HasTeam(team string) bool {
	for _, row := range d.rows {
		if row.Team == team {
			return true
		}
	}
	return false
}

func (d *stubData) SeasonTeams(season string) ([]dataset.TeamSeason, error) {
	var out []dataset.TeamSeason
	for _, row := range d.rows {
		if row.Season == season {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, dataset.ErrNotFound
	}
	return out, nil
}

func (d *stubData) TeamSeason(team, season string) (dataset.TeamSeason, error) {
	for _, row := range d.rows {
		if row.Team == team && row.Season == season {
			return row, nil
		}
	}
	return dataset.TeamSeason{}, dataset.ErrNotFound
}

func (d *stubData) TeamHistory(team string) ([]dataset.TeamSeason, error) {
	var out []dataset.TeamSeason
	for _, row := range d.rows {
		if row.Team == team {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, dataset.ErrNotFound
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SeasonEncoded < out[j].SeasonEncoded })
	return out, nil
}

// goalsBundle clusters on scoring and conceding averages only.
func goalsBundle() *artifact.TeamStyleBundle {
	return &artifact.TeamStyleBundle{
		Metadata: artifact.Metadata{
			Algorithm: "KMeans",
			Version:   "1.0.0",
			Metrics:   map[string]float64{"silhouette_score": 0.45},
		},
		Features: []string{"Avg_Goals_Scored", "Avg_Goals_Conceded"},
		Model: &model.KMeans{Centroids: [][]float64{
			{2.5, 1.0},
			{0.9, 0.8},
			{1.5, 1.2},
		}},
	}
}

func fixtureRows() []dataset.TeamSeason {
	return []dataset.TeamSeason{
		{Season: "2023-24", SeasonEncoded: 23, Team: "Arsenal", MatchesPlayed: 38, AvgGoalsScored: 2.6, AvgGoalsConceded: 0.9, ShotAccuracy: 38.5, AvgCorners: 7.0, Fouls: 380, YellowCards: 57, RedCards: 1, FinalPosition: 2, Points: 89},
		{Season: "2023-24", SeasonEncoded: 23, Team: "Manchester City", MatchesPlayed: 38, AvgGoalsScored: 2.4, AvgGoalsConceded: 1.0, FinalPosition: 1, Points: 91},
		{Season: "2023-24", SeasonEncoded: 23, Team: "Everton", MatchesPlayed: 38, AvgGoalsScored: 1.0, AvgGoalsConceded: 0.9, FinalPosition: 15, Points: 40},
		{Season: "2023-24", SeasonEncoded: 23, Team: "Chelsea", MatchesPlayed: 38, AvgGoalsScored: 1.6, AvgGoalsConceded: 1.3, FinalPosition: 6, Points: 63},
		{Season: "2022-23", SeasonEncoded: 22, Team: "Arsenal", MatchesPlayed: 38, AvgGoalsScored: 1.0, AvgGoalsConceded: 0.9, FinalPosition: 5, Points: 69},
	}
}

func TestProfile(t *testing.T) {
	data := &stubData{rows: fixtureRows()}

	convey.Convey("Given a high-scoring team", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, data)

		profile, err := svc.Profile(context.Background(), "Arsenal", "2023-24")

		convey.So(err, convey.ShouldBeNil)
		convey.So(profile.Cluster.ID, convey.ShouldEqual, 0)
		convey.So(profile.Cluster.Label, convey.ShouldEqual, "Attacking")
		convey.So(profile.Cluster.Description, convey.ShouldContainSubstring, "High-scoring")
		convey.So(profile.SimilarTeams, convey.ShouldResemble, []string{"Manchester City"})
		convey.So(profile.Stats["Avg_Goals_Scored"], convey.ShouldEqual, 2.6)

		convey.Convey("The probabilities cover every cluster and sum to one", func() {
			convey.So(profile.Probabilities, convey.ShouldHaveLength, 3)
			convey.So(profile.Probabilities, convey.ShouldContainKey, "Attacking")
			convey.So(profile.Probabilities, convey.ShouldContainKey, "Defensive")
			convey.So(profile.Probabilities, convey.ShouldContainKey, "Possession")

			sum := 0.0
			best := ""
			top := 0.0
			for label, p := range profile.Probabilities {
				sum += p
				if p > top {
					top, best = p, label
				}
			}
			convey.So(sum, convey.ShouldAlmostEqual, 1.0, 0.01)
			convey.So(best, convey.ShouldEqual, "Attacking")
		})
	})

	convey.Convey("Given a defensive team", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, data)

		profile, err := svc.Profile(context.Background(), "Everton", "2023-24")

		convey.So(err, convey.ShouldBeNil)
		convey.So(profile.Cluster.Label, convey.ShouldEqual, "Defensive")
		convey.So(profile.SimilarTeams, convey.ShouldBeEmpty)
	})

	convey.Convey("Given an unknown team", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, data)

		_, err := svc.Profile(context.Background(), "Real Madrid", "2023-24")

		convey.So(err, convey.ShouldWrap, dataset.ErrNotFound)
	})

	convey.Convey("Given a season the team did not play", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, data)

		_, err := svc.Profile(context.Background(), "Everton", "2022-23")

		convey.So(err, convey.ShouldWrap, dataset.ErrNotFound)
	})

	convey.Convey("Given an unavailable model", t, func() {
		svc := New(&stubModels{err: artifact.ErrModelUnavailable}, data)

		_, err := svc.Profile(context.Background(), "Arsenal", "2023-24")

		convey.So(err, convey.ShouldWrap, artifact.ErrModelUnavailable)
	})
}

func TestLeagueStyles(t *testing.T) {
	convey.Convey("Given a season of teams", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, &stubData{rows: fixtureRows()})

		styles, err := svc.LeagueStyles(context.Background(), "2023-24")

		convey.So(err, convey.ShouldBeNil)
		convey.So(styles.TotalTeams, convey.ShouldEqual, 4)
		convey.So(styles.Styles, convey.ShouldHaveLength, 4)
		convey.So(styles.Clusters["Attacking"], convey.ShouldResemble, []string{"Arsenal", "Manchester City"})
		convey.So(styles.Clusters["Defensive"], convey.ShouldResemble, []string{"Everton"})
		convey.So(styles.Clusters["Possession"], convey.ShouldResemble, []string{"Chelsea"})
	})

	convey.Convey("Given an unknown season", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, &stubData{rows: fixtureRows()})

		_, err := svc.LeagueStyles(context.Background(), "1999-00")

		convey.So(err, convey.ShouldWrap, dataset.ErrNotFound)
	})
}

func TestHistory(t *testing.T) {
	convey.Convey("Given a team with multiple seasons", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, &stubData{rows: fixtureRows()})

		history, err := svc.History(context.Background(), "Arsenal")

		convey.So(err, convey.ShouldBeNil)
		convey.So(history.Team, convey.ShouldEqual, "Arsenal")
		convey.So(history.TotalSeasons, convey.ShouldEqual, 2)
		convey.So(history.History[0].Season, convey.ShouldEqual, "2022-23")
		convey.So(history.History[0].Style, convey.ShouldEqual, "Defensive")
		convey.So(history.History[1].Season, convey.ShouldEqual, "2023-24")
		convey.So(history.History[1].Style, convey.ShouldEqual, "Attacking")

		convey.Convey("The radar axes are normalized to 0-100", func() {
			stats := history.History[1].Stats
			convey.So(stats["Attack"], convey.ShouldEqual, 86.7)
			convey.So(stats["Defense"], convey.ShouldEqual, 70.0)
			convey.So(stats["Possession"], convey.ShouldEqual, 38.5)
			convey.So(stats["Set Pieces"], convey.ShouldEqual, 70.0)
		})

		convey.Convey("League finish and points ride along", func() {
			convey.So(*history.History[1].Position, convey.ShouldEqual, 2)
			convey.So(*history.History[1].Points, convey.ShouldEqual, 89)
		})
	})

	convey.Convey("Given an unknown team", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, &stubData{rows: fixtureRows()})

		_, err := svc.History(context.Background(), "Real Madrid")

		convey.So(err, convey.ShouldWrap, dataset.ErrNotFound)
	})
}

func TestTeams(t *testing.T) {
	convey.Convey("Given the dataset teams", t, func() {
		svc := New(&stubModels{bundle: goalsBundle()}, &stubData{rows: fixtureRows()})

		teams := svc.Teams(context.Background())

		convey.So(teams, convey.ShouldResemble, []string{"Arsenal", "Chelsea", "Everton", "Manchester City"})
	})
}
