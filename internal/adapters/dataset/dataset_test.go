package dataset_test

import (
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/the12thplayer/predict/internal/adapters/dataset"
)

const teamSeasonsCSV = `Season,Season_encoded,Team,Matches_Played,Wins,Draws,Losses,Goals_Scored,Goals_Conceded,Clean_Sheets,Points,Final_Position,Win_Rate,Clean_Sheet_Rate,Points_Per_Game,Avg_Goals_Scored,Avg_Goals_Conceded,Avg_Shots,Avg_Shots_On_Target,Shot_Accuracy,Avg_Corners,Fouls,Yellow_Cards,Red_Cards,Home_Win_Rate,Away_Win_Rate
2023-24,23,Arsenal,38,28,5,5,91,29,18,89,2,0.7368,0.4737,2.34,2.39,0.76,17.2,6.1,35.5,7.1,380,55,1,0.79,0.68
2023-24,23,Burnley,38,5,9,24,41,78,4,24,19,0.1316,0.1053,0.63,1.08,2.05,10.2,3.2,31.4,4.4,420,70,4,0.16,0.11
2022-23,22,Arsenal,38,26,6,6,88,43,14,84,2,0.6842,0.3684,2.21,2.32,1.13,16.1,5.8,36.0,6.8,390,52,2,0.74,0.63
`

const matchesCSV = `Date,Season,HomeTeam,AwayTeam,FTR,FTHG,FTAG,HS,AS,HST,AST,HF,AF,HC,AC,HY,AY,HR,AR
2024-01-10,2023-24,Arsenal,Burnley,H,3,1,20,6,9,2,8,12,7,3,1,2,0,0
2024-01-20,2023-24,Arsenal,Chelsea,D,1,1,16,10,5,4,10,11,6,4,2,1,0,0
2024-02-01,2023-24,Arsenal,Everton,H,2,0,18,8,7,3,9,13,8,2,1,3,0,1
2024-02-10,2023-24,Burnley,Arsenal,A,0,2,7,19,2,8,14,9,3,8,3,1,1,0
`

const playersCSV = `Player,Squad,Comp,Pos,Nation,Age,Min,90s,Gls,Ast,Sh,SoT,G/Sh,xG,Cmp%,KP,PrgP,PrgC,Tkl,Int,Clr,GA90,Save%,Saves,CS%,PSxG,Market_Value
Bukayo Saka,Arsenal,eng Premier League,FW,ENG,22,2870,31.9,16,9,98,41,0.14,14.2,81.2,70,180,150,30,12,8,0,0,0,0,0,120000000
Erling Haaland,Man City,eng Premier League,FW,NOR,23,2550,28.3,27,5,110,55,0.23,26.1,72.5,25,60,70,6,3,4,0,0,0,0,0,180000000
Loan Spell,Dortmund,de Bundesliga,FW,GER,21,400,4.4,2,1,12,5,0.17,1.8,70.0,5,15,20,4,2,3,0,0,0,0,0,5000000
Loan Spell,Girona,es La Liga,FW,GER,21,1400,15.6,8,3,40,18,0.2,7.5,74.0,18,45,55,10,5,6,0,0,0,0,0,5000000
Old Striker,Inter,it Serie A,FW,ITA,33,2900,32.2,18,6,95,40,0.19,17.0,76.0,30,80,60,12,6,5,0,0,0,0,0,9000000
Lower Leaguer,Ipswich,eng Championship,FW,ENG,21,3000,33.3,20,7,100,45,0.2,18.0,70.0,25,60,50,15,8,10,0,0,0,0,0,8000000
Keeper Kid,Ajax,nl Eredivisie,GK,NED,20,2700,30.0,0,0,0,0,0,0,85.0,0,12,2,0,0,0,0.9,75.2,88,40.0,41.5,15000000
`

func TestTeamSeasonStore(t *testing.T) {
	convey.Convey("Given the aggregated team-season dataset", t, func() {
		store, err := dataset.NewTeamSeasonStore(strings.NewReader(teamSeasonsCSV))
		convey.So(err, convey.ShouldBeNil)
		convey.So(store.Len(), convey.ShouldEqual, 3)

		convey.Convey("When listing seasons", func() {
			seasons := store.Seasons()

			convey.Convey("Then they should be most recent first", func() {
				convey.So(seasons, convey.ShouldResemble, []string{"2023-24", "2022-23"})
			})
		})

		convey.Convey("When listing teams", func() {
			teams := store.Teams()

			convey.Convey("Then they should be sorted and deduplicated", func() {
				convey.So(teams, convey.ShouldResemble, []string{"Arsenal", "Burnley"})
			})
		})

		convey.Convey("When fetching a season's teams", func() {
			rows, err := store.SeasonTeams("2023-24")

			convey.Convey("Then it should return the season rows in dataset order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 2)
				convey.So(rows[0].Team, convey.ShouldEqual, "Arsenal")
				convey.So(rows[0].Wins, convey.ShouldEqual, 28)
				convey.So(rows[0].FinalPosition, convey.ShouldEqual, 2)
				convey.So(rows[1].Team, convey.ShouldEqual, "Burnley")
			})
		})

		convey.Convey("When fetching an unknown season", func() {
			_, err := store.SeasonTeams("1990-91")

			convey.Convey("Then it should return a not-found error", func() {
				convey.So(err, convey.ShouldWrap, dataset.ErrNotFound)
			})
		})

		convey.Convey("When fetching one team-season row", func() {
			row, err := store.TeamSeason("Arsenal", "2022-23")

			convey.Convey("Then it should return the matching row", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(row.Points, convey.ShouldEqual, 84)
				convey.So(row.WinRate, convey.ShouldAlmostEqual, 0.6842)
			})
		})

		convey.Convey("When fetching a missing team-season combination", func() {
			_, err := store.TeamSeason("Burnley", "2022-23")

			convey.Convey("Then it should return a not-found error", func() {
				convey.So(err, convey.ShouldWrap, dataset.ErrNotFound)
			})
		})

		convey.Convey("When fetching a team's history", func() {
			history, err := store.TeamHistory("Arsenal")

			convey.Convey("Then it should be ordered oldest season first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(history, convey.ShouldHaveLength, 2)
				convey.So(history[0].Season, convey.ShouldEqual, "2022-23")
				convey.So(history[1].Season, convey.ShouldEqual, "2023-24")
			})
		})
	})
}

func TestMatchStore(t *testing.T) {
	convey.Convey("Given the historical match dataset", t, func() {
		store, err := dataset.NewMatchStore(strings.NewReader(matchesCSV))
		convey.So(err, convey.ShouldBeNil)
		convey.So(store.Len(), convey.ShouldEqual, 4)

		convey.Convey("When aggregating Arsenal's home form", func() {
			form, err := store.TeamForm("Arsenal", true)

			convey.Convey("Then it should average the home-side statistics", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(form.Shots, convey.ShouldAlmostEqual, 18.0)
				convey.So(form.ShotsOnTarget, convey.ShouldAlmostEqual, 7.0)
				convey.So(form.GoalsScored, convey.ShouldAlmostEqual, 2.0)
				convey.So(form.GoalsConceded, convey.ShouldAlmostEqual, 2.0/3.0)
				convey.So(form.Wins, convey.ShouldEqual, 2)
			})

			convey.Convey("Then recent form should cover the window", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(form.FormWins, convey.ShouldEqual, 2)
				convey.So(form.FormGoals, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When aggregating Arsenal's away form", func() {
			form, err := store.TeamForm("Arsenal", false)

			convey.Convey("Then it should use the away-side columns", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(form.Shots, convey.ShouldAlmostEqual, 19.0)
				convey.So(form.Wins, convey.ShouldEqual, 1)
				convey.So(form.GoalsScored, convey.ShouldAlmostEqual, 2.0)
			})
		})

		convey.Convey("When aggregating a team with no matches", func() {
			_, err := store.TeamForm("Leeds United", true)

			convey.Convey("Then it should return an insufficient history error", func() {
				convey.So(err, convey.ShouldWrap, dataset.ErrInsufficientHistory)
			})
		})
	})
}

func TestPlayerStore(t *testing.T) {
	convey.Convey("Given the scouting player dataset", t, func() {
		store, err := dataset.NewPlayerStore(strings.NewReader(playersCSV))
		convey.So(err, convey.ShouldBeNil)
		convey.So(store.Len(), convey.ShouldEqual, 7)

		convey.Convey("When filtering young forwards", func() {
			players := store.Filter("FW", 23, 90)

			names := make([]string, 0, len(players))
			for _, p := range players {
				names = append(names, p.Name)
			}

			convey.Convey("Then it should apply age, league and position filters", func() {
				convey.So(names, convey.ShouldContain, "Bukayo Saka")
				convey.So(names, convey.ShouldContain, "Erling Haaland")
				convey.So(names, convey.ShouldNotContain, "Old Striker")
				convey.So(names, convey.ShouldNotContain, "Lower Leaguer")
				convey.So(names, convey.ShouldNotContain, "Keeper Kid")
			})

			convey.Convey("Then a transferred player should keep the row with most minutes", func() {
				count := 0
				var kept dataset.Player
				for _, p := range players {
					if p.Name == "Loan Spell" {
						count++
						kept = p
					}
				}
				convey.So(count, convey.ShouldEqual, 1)
				convey.So(kept.Minutes, convey.ShouldAlmostEqual, 1400)
				convey.So(kept.League, convey.ShouldEqual, "es La Liga")
			})
		})

		convey.Convey("When filtering below the minimum player age", func() {
			players := store.Filter("FW", 15, 90)

			convey.Convey("Then the result should be empty, not an error", func() {
				convey.So(players, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When filtering by minutes", func() {
			players := store.Filter("FW", 23, 2000)

			convey.Convey("Then low-minute players should be excluded", func() {
				for _, p := range players {
					convey.So(p.Minutes, convey.ShouldBeGreaterThanOrEqualTo, 2000)
				}
			})
		})

		convey.Convey("When parsing market values", func() {
			players := store.Filter("FW", 23, 90)

			convey.Convey("Then values should be exact decimals", func() {
				for _, p := range players {
					if p.Name == "Erling Haaland" {
						convey.So(p.MarketValue.String(), convey.ShouldEqual, "180000000")
					}
				}
			})
		})
	})
}
