package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/the12thplayer/predict/internal/adapters/artifact"
	"github.com/the12thplayer/predict/internal/adapters/http/api"
	"github.com/the12thplayer/predict/internal/adapters/livedata"
	service "github.com/the12thplayer/predict/internal/app"
	"github.com/the12thplayer/predict/internal/domain/matchodds"
	"github.com/the12thplayer/predict/internal/domain/newscred"
	"github.com/the12thplayer/predict/internal/domain/ranking"
	"github.com/the12thplayer/predict/internal/domain/scouting"
	"github.com/the12thplayer/predict/internal/domain/style"
)

// Mock implementation of api.Dependencies for testing
type mockDeps struct {
	seasonList   *service.SeasonList
	seasonPred   *ranking.SeasonPrediction
	matchPred    *matchodds.Prediction
	matchResult  *livedata.MatchResult
	comparison   *service.MatchComparison
	headToHead   *service.HeadToHead
	profile      *style.Profile
	leagueStyles *style.LeagueStyles
	history      *style.History
	teams        *service.TeamList
	recs         *scouting.Recommendations
	news         *newscred.Classification
	modelInfo    map[string]any

	err error

	lastSeason    string
	lastCompare   bool
	lastTeam      string
	lastLimit     int
	lastPredicted string
	lastPosition  string
	lastTitle     string
	lastText      string
}

func (m *mockDeps) Seasons(ctx context.Context) (*service.SeasonList, error) {
	return m.seasonList, m.err
}

func (m *mockDeps) PredictSeason(ctx context.Context, season string, compareActual bool) (*ranking.SeasonPrediction, error) {
	m.lastSeason = season
	m.lastCompare = compareActual
	if m.err != nil {
		return nil, m.err
	}
	return m.seasonPred, nil
}

func (m *mockDeps) PredictCustom(ctx context.Context, season string, teams []ranking.TeamStats) (*ranking.SeasonPrediction, error) {
	m.lastSeason = season
	if m.err != nil {
		return nil, m.err
	}
	return m.seasonPred, nil
}

func (m *mockDeps) ForecastNextSeason(ctx context.Context) (*ranking.SeasonPrediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.seasonPred, nil
}

func (m *mockDeps) PredictMatch(ctx context.Context, homeTeam, awayTeam, season string, expertMode bool) (*matchodds.Prediction, error) {
	m.lastSeason = season
	if m.err != nil {
		return nil, m.err
	}
	return m.matchPred, nil
}

func (m *mockDeps) MatchResult(ctx context.Context, homeTeam, awayTeam string) (*livedata.MatchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.matchResult, nil
}

func (m *mockDeps) CompareMatch(ctx context.Context, homeTeam, awayTeam, predictedResult, confidence string) (*service.MatchComparison, error) {
	m.lastPredicted = predictedResult
	if m.err != nil {
		return nil, m.err
	}
	return m.comparison, nil
}

func (m *mockDeps) HeadToHead(ctx context.Context, homeTeam, awayTeam string, limit int) (*service.HeadToHead, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.headToHead, nil
}

func (m *mockDeps) TeamStyle(ctx context.Context, team, season string) (*style.Profile, error) {
	m.lastTeam = team
	m.lastSeason = season
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockDeps) LeagueStyles(ctx context.Context, season string) (*style.LeagueStyles, error) {
	m.lastSeason = season
	if m.err != nil {
		return nil, m.err
	}
	return m.leagueStyles, nil
}

func (m *mockDeps) TeamStyleHistory(ctx context.Context, team string) (*style.History, error) {
	m.lastTeam = team
	if m.err != nil {
		return nil, m.err
	}
	return m.history, nil
}

func (m *mockDeps) Teams(ctx context.Context) *service.TeamList {
	return m.teams
}

func (m *mockDeps) RecommendPlayers(ctx context.Context, position string, limit, maxAge, minMinutes int) (*scouting.Recommendations, error) {
	m.lastPosition = position
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.recs, nil
}

func (m *mockDeps) Positions(ctx context.Context) []scouting.PositionInfo {
	return []scouting.PositionInfo{{Name: "forward", MaxAgeDefault: 23}}
}

func (m *mockDeps) ClassifyNews(ctx context.Context, title, text string) (*newscred.Classification, error) {
	m.lastTitle = title
	m.lastText = text
	if m.err != nil {
		return nil, m.err
	}
	return m.news, nil
}

func (m *mockDeps) ModelInfo(ctx context.Context, name, position string) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.modelInfo, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newRouter(deps *mockDeps) *mux.Router {
	r := mux.NewRouter()
	api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}).Register(r)
	return r
}

func doRequest(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestServer_Root(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		router := newRouter(&mockDeps{})

		Convey("GET / describes the service", func() {
			rec := doRequest(router, http.MethodGet, "/", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			body := decodeBody(t, rec)
			So(body["message"], ShouldEqual, "Premier League Prediction API")
			So(body["version"], ShouldEqual, api.Version)
		})

		Convey("GET /health reports healthy", func() {
			rec := doRequest(router, http.MethodGet, "/health", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["status"], ShouldEqual, "healthy")
		})

		Convey("GET /stats proxies the stats provider", func() {
			rec := doRequest(router, http.MethodGet, "/stats", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["started"], ShouldBeTrue)
		})

		Convey("GET /metrics serves the Prometheus registry", func() {
			rec := doRequest(router, http.MethodGet, "/metrics", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestServer_Seasons(t *testing.T) {
	Convey("Given season ranking routes", t, func() {
		deps := &mockDeps{
			seasonList: &service.SeasonList{Seasons: []string{"2024-25"}, Default: "2024-25"},
			seasonPred: &ranking.SeasonPrediction{Season: "2024-25"},
		}
		router := newRouter(deps)

		Convey("GET /api/v1/seasons returns the list", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/seasons", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["default"], ShouldEqual, "2024-25")
		})

		Convey("GET /api/v1/predict-season/{season} forwards the path season", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/predict-season/2023-24?compare_actual=true", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastSeason, ShouldEqual, "2023-24")
			So(deps.lastCompare, ShouldBeTrue)
		})

		Convey("POST /api/v1/predict-season rejects malformed JSON", func() {
			rec := doRequest(router, http.MethodPost, "/api/v1/predict-season", "{not-json")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(t, rec)["kind"], ShouldEqual, "validation_error")
		})

		Convey("POST /api/v1/predict-season accepts custom teams", func() {
			body := `{"season":"2024-25","teams":[{"team":"Arsenal","wins":28}]}`
			rec := doRequest(router, http.MethodPost, "/api/v1/predict-season", body)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("GET /api/v1/forecast-next-season succeeds", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/forecast-next-season", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("An unknown team maps to 404", func() {
			deps.err = fmt.Errorf("lookup: %w", ranking.ErrUnknownTeam)
			rec := doRequest(router, http.MethodGet, "/api/v1/predict-season/2023-24", "")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
			So(decodeBody(t, rec)["kind"], ShouldEqual, "not_found")
		})

		Convey("A missing model maps to 500 model_unavailable", func() {
			deps.err = fmt.Errorf("bundle: %w", artifact.ErrModelUnavailable)
			rec := doRequest(router, http.MethodGet, "/api/v1/predict-season/2023-24", "")
			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
			So(decodeBody(t, rec)["kind"], ShouldEqual, "model_unavailable")
		})
	})
}

func TestServer_Matches(t *testing.T) {
	Convey("Given match routes", t, func() {
		deps := &mockDeps{
			matchPred:   &matchodds.Prediction{Prediction: "Home Win"},
			matchResult: &livedata.MatchResult{Status: livedata.StatusFinished},
			comparison:  &service.MatchComparison{MatchStatus: livedata.StatusFinished},
			headToHead:  &service.HeadToHead{},
		}
		router := newRouter(deps)

		Convey("POST /api/v1/predict-match validates the body", func() {
			rec := doRequest(router, http.MethodPost, "/api/v1/predict-match", `{"away_team":"Chelsea"}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(t, rec)["detail"], ShouldContainSubstring, "home_team")
		})

		Convey("POST /api/v1/predict-match returns the prediction", func() {
			body := `{"home_team":"Arsenal","away_team":"Chelsea","expert_mode":true}`
			rec := doRequest(router, http.MethodPost, "/api/v1/predict-match", body)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["prediction"], ShouldEqual, "Home Win")
		})

		Convey("Same-team fixtures map to 400", func() {
			deps.err = matchodds.ErrSameTeams
			body := `{"home_team":"Arsenal","away_team":"Arsenal"}`
			rec := doRequest(router, http.MethodPost, "/api/v1/predict-match", body)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(t, rec)["kind"], ShouldEqual, "validation_error")
		})

		Convey("GET /api/v1/match-result requires both teams", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/match-result?home_team=Arsenal", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Upstream failures map to 502", func() {
			deps.err = fmt.Errorf("fetch: %w", livedata.ErrUpstream)
			rec := doRequest(router, http.MethodGet, "/api/v1/match-result?home_team=Arsenal&away_team=Chelsea", "")
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(decodeBody(t, rec)["kind"], ShouldEqual, "upstream_unavailable")
		})

		Convey("GET /api/v1/match-comparison requires the earlier prediction", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/match-comparison?home_team=Arsenal&away_team=Chelsea", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)

			rec = doRequest(router, http.MethodGet,
				"/api/v1/match-comparison?home_team=Arsenal&away_team=Chelsea&predicted_result=Home+Win", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastPredicted, ShouldEqual, "Home Win")
		})

		Convey("GET /api/v1/head-to-head defaults the limit", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/head-to-head?home_team=Arsenal&away_team=Chelsea", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 10)
		})
	})
}

func TestServer_Styles(t *testing.T) {
	Convey("Given style routes", t, func() {
		deps := &mockDeps{
			profile:      &style.Profile{Team: "Arsenal"},
			leagueStyles: &style.LeagueStyles{Season: "2024-25"},
			history:      &style.History{Team: "Arsenal"},
			teams:        &service.TeamList{Teams: []string{"Arsenal"}, Total: 1},
		}
		router := newRouter(deps)

		Convey("GET /api/v1/team-style/{team} forwards the path team", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/team-style/Arsenal?season=2023-24", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastTeam, ShouldEqual, "Arsenal")
			So(deps.lastSeason, ShouldEqual, "2023-24")
		})

		Convey("GET /api/v1/team-styles/all does not shadow the team route", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/team-styles/all", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["season"], ShouldEqual, "2024-25")
		})

		Convey("GET /api/v1/team-style-history/{team} succeeds", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/team-style-history/Arsenal", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("GET /api/v1/teams lists the teams", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/teams", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["total"], ShouldEqual, 1)
		})
	})
}

func TestServer_Scouting(t *testing.T) {
	Convey("Given scouting routes", t, func() {
		deps := &mockDeps{recs: &scouting.Recommendations{Position: "forward"}}
		router := newRouter(deps)

		Convey("GET /api/v1/players/recommendations requires a position", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/players/recommendations", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Filters pass through with zero-value defaults", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/players/recommendations?position=forward&limit=5", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastPosition, ShouldEqual, "forward")
			So(deps.lastLimit, ShouldEqual, 5)
		})

		Convey("An invalid position maps to 400", func() {
			deps.err = fmt.Errorf("recommend: %w", scouting.ErrInvalidPosition)
			rec := doRequest(router, http.MethodGet, "/api/v1/players/recommendations?position=striker", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("GET /api/v1/players/positions lists the roles", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/players/positions", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["positions"], ShouldNotBeNil)
		})
	})
}

func TestServer_News(t *testing.T) {
	Convey("Given the news route", t, func() {
		deps := &mockDeps{news: &newscred.Classification{PredictedTier: 1}}
		router := newRouter(deps)

		Convey("POST /api/v1/classify-news reads article query parameters", func() {
			rec := doRequest(router, http.MethodPost, "/api/v1/classify-news?title=Official&text=Statement", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastTitle, ShouldEqual, "Official")
			So(deps.lastText, ShouldEqual, "Statement")
		})

		Convey("An empty article maps to 400", func() {
			deps.err = fmt.Errorf("classify: %w", newscred.ErrEmptyArticle)
			rec := doRequest(router, http.MethodPost, "/api/v1/classify-news", "")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestServer_ModelInfo(t *testing.T) {
	Convey("Given the model-info route", t, func() {
		deps := &mockDeps{modelInfo: map[string]any{"algorithm": "KNN Regressor"}}
		router := newRouter(deps)

		Convey("GET /api/v1/model-info/{name} returns the metadata", func() {
			rec := doRequest(router, http.MethodGet, "/api/v1/model-info/bo1", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(t, rec)["algorithm"], ShouldEqual, "KNN Regressor")
		})

		Convey("An unknown model maps to 404", func() {
			deps.err = fmt.Errorf("info: %w", service.ErrUnknownModel)
			rec := doRequest(router, http.MethodGet, "/api/v1/model-info/bo9", "")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given the middleware chain", t, func() {
		router := newRouter(&mockDeps{seasonList: &service.SeasonList{}})
		origins := []string{"http://localhost:3000"}
		handler := api.CORS(origins, api.RequestID(router))

		Convey("Allowed origins receive CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:3000")
		})

		Convey("Unknown origins receive no CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil)
			req.Header.Set("Origin", "http://evil.example")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})

		Convey("Preflight requests short-circuit", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/predict-match", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusNoContent)
			So(rec.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, "POST")
		})

		Convey("Requests are tagged with an ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})

		Convey("Supplied request IDs are echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/seasons", nil)
			req.Header.Set("X-Request-ID", "req-1")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			So(rec.Header().Get("X-Request-ID"), ShouldEqual, "req-1")
		})
	})
}
