// Package livedata fetches real match results from TheSportsDB, the free
// sports-results API the frontend compares predictions against. The client is
// a thin collaborator: one bounded request per call, no caching, no retries;
// upstream failures surface as a distinguishable error kind.
package livedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/the12thplayer/predict/pkg/logger"
	"github.com/the12thplayer/predict/pkg/metrics"
)

const defaultBaseURL = "https://www.thesportsdb.com/api/v1/json/3"

// Match statuses returned to callers.
const (
	StatusFinished  = "FINISHED"
	StatusScheduled = "SCHEDULED"
)

// MatchResult is the latest known fixture between two teams.
type MatchResult struct {
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
	MatchDate    string `json:"match_date,omitempty"`
	Status       string `json:"status"`
	ActualResult string `json:"actual_result,omitempty"`
}

// HeadToHeadMatch is one historical meeting between two teams.
type HeadToHeadMatch struct {
	Date      string `json:"date,omitempty"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	Result    string `json:"result,omitempty"`
	Season    string `json:"season"`
}

// HeadToHeadStats summarizes a head-to-head record.
type HeadToHeadStats struct {
	TotalMatches int `json:"total_matches"`
	HomeWins     int `json:"home_wins"`
	AwayWins     int `json:"away_wins"`
	Draws        int `json:"draws"`
}

// Client calls TheSportsDB.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout bounds a single upstream request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client with a 5s default timeout.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     logger.Named("livedata"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// event is TheSportsDB's wire shape for one fixture.
type event struct {
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	League    string `json:"strLeague"`
	Status    string `json:"strStatus"`
	HomeScore string `json:"intHomeScore"`
	AwayScore string `json:"intAwayScore"`
	DateEvent string `json:"dateEvent"`
}

type eventsResponse struct {
	Results []event `json:"results"`
}

// MatchResult returns the most recent fixture between home and away,
// preferring finished matches over scheduled ones. Returns ErrMatchNotFound
// when no fixture between the two teams appears in the upstream window.
func (c *Client) MatchResult(ctx context.Context, home, away string) (*MatchResult, error) {
	events, err := c.recentEvents(ctx, home)
	if err != nil {
		return nil, err
	}

	var finished, scheduled []event
	for _, ev := range events {
		if !strings.Contains(ev.League, "Premier League") {
			continue
		}
		if !pairMatches(home, away, ev) {
			continue
		}
		if isFinished(ev.Status) {
			finished = append(finished, ev)
		} else {
			scheduled = append(scheduled, ev)
		}
	}

	all := append(finished, scheduled...)
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s vs %s", ErrMatchNotFound, home, away)
	}

	ev := all[0]
	homeScore := parseScore(ev.HomeScore)
	awayScore := parseScore(ev.AwayScore)

	// The fixture may be the reverse pairing; swap scores to keep the
	// caller's home/away orientation.
	if matchesName(home, ev.AwayTeam) && matchesName(away, ev.HomeTeam) {
		homeScore, awayScore = awayScore, homeScore
	}

	result := &MatchResult{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		MatchDate: ev.DateEvent,
		Status:    StatusScheduled,
	}
	if isFinished(ev.Status) {
		result.Status = StatusFinished
		result.ActualResult = deriveResult(homeScore, awayScore)
	}
	return result, nil
}

// HeadToHead returns the recent meetings between home and away from the
// upstream window, newest first, capped at limit.
func (c *Client) HeadToHead(ctx context.Context, home, away string, limit int) ([]HeadToHeadMatch, HeadToHeadStats, error) {
	events, err := c.recentEvents(ctx, home)
	if err != nil {
		return nil, HeadToHeadStats{}, err
	}

	var matches []HeadToHeadMatch
	var stats HeadToHeadStats
	for _, ev := range events {
		if !pairMatches(home, away, ev) {
			continue
		}

		homeScore := parseScore(ev.HomeScore)
		awayScore := parseScore(ev.AwayScore)
		if matchesName(home, ev.AwayTeam) && matchesName(away, ev.HomeTeam) {
			homeScore, awayScore = awayScore, homeScore
		}

		result := deriveResult(homeScore, awayScore)
		switch result {
		case "Home Win":
			stats.HomeWins++
		case "Away Win":
			stats.AwayWins++
		case "Draw":
			stats.Draws++
		}

		matches = append(matches, HeadToHeadMatch{
			Date:      ev.DateEvent,
			HomeTeam:  home,
			AwayTeam:  away,
			HomeScore: homeScore,
			AwayScore: awayScore,
			Result:    result,
			Season:    seasonFromDate(ev.DateEvent),
		})
		if limit > 0 && len(matches) >= limit {
			break
		}
	}

	stats.TotalMatches = len(matches)
	return matches, stats, nil
}

// recentEvents fetches the home team's recent fixtures.
func (c *Client) recentEvents(ctx context.Context, team string) ([]event, error) {
	id, ok := teamIDs[team]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTeamNotMapped, team)
	}

	u := fmt.Sprintf("%s/eventslast.php?id=%s", c.baseURL, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RecordUpstreamLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordUpstreamRequest("error")
		c.log.Warn(ctx, "live-data request failed", logger.String("team", team), logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordUpstreamRequest("error")
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.RecordUpstreamRequest("error")
		return nil, fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}

	metrics.RecordUpstreamRequest("ok")
	return body.Results, nil
}

func pairMatches(home, away string, ev event) bool {
	direct := matchesName(home, ev.HomeTeam) && matchesName(away, ev.AwayTeam)
	reverse := matchesName(home, ev.AwayTeam) && matchesName(away, ev.HomeTeam)
	return direct || reverse
}

func isFinished(status string) bool {
	return status == "Match Finished" || status == "FT"
}

func parseScore(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func deriveResult(home, away *int) string {
	if home == nil || away == nil {
		return ""
	}
	switch {
	case *home > *away:
		return "Home Win"
	case *home < *away:
		return "Away Win"
	default:
		return "Draw"
	}
}

// seasonFromDate maps a YYYY-MM-DD match date to its Aug-Jul season,
// e.g. 2024-05-15 -> 2023-24.
func seasonFromDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "Unknown"
	}
	year := t.Year()
	if t.Month() >= time.August {
		return fmt.Sprintf("%d-%02d", year, (year+1)%100)
	}
	return fmt.Sprintf("%d-%02d", year-1, year%100)
}
