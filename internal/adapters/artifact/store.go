package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/the12thplayer/predict/pkg/logger"
	"github.com/the12thplayer/predict/pkg/metrics"
)

// Artifact file names inside the models directory.
const (
	seasonRankingFile   = "bo1_season_ranking.json"
	matchOutcomeFile    = "bo2_match_prediction.json"
	teamStyleFile       = "bo3_team_style.json"
	newsCredibilityFile = "bo5_news_credibility.json"
	teamsFile           = "teams.json"
	teamEncodingFile    = "team_encoding.json"
)

func playerScoringFile(position string) string {
	return fmt.Sprintf("bo4_%s.json", position)
}

// Store loads every model bundle exactly once and exposes typed accessors.
// A capability whose artifact fails to load stays unavailable for the process
// lifetime; the other capabilities are unaffected.
type Store struct {
	dir string
	log logger.Logger

	seasonRanking   *SeasonRankingBundle
	matchOutcome    *MatchOutcomeBundle
	teamStyle       *TeamStyleBundle
	playerScoring   map[string]*PlayerScoringBundle
	newsCredibility *NewsCredibilityBundle
	teams           []string
	teamEncoding    map[string]int

	loadErrs map[Capability]error
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets the logger used during loading.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Store reading from dir. Call Load before any accessor.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:           dir,
		log:           logger.Named("artifact"),
		playerScoring: make(map[string]*PlayerScoringBundle),
		loadErrs:      make(map[Capability]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every artifact from disk. Individual failures are recorded per
// capability rather than aborting: the process still starts and the affected
// endpoints report the model as unavailable. No file I/O happens after Load.
func (s *Store) Load(ctx context.Context) {
	s.seasonRanking = loadBundle[SeasonRankingBundle](s, ctx, CapabilitySeasonRanking, seasonRankingFile)
	s.matchOutcome = loadBundle[MatchOutcomeBundle](s, ctx, CapabilityMatchOutcome, matchOutcomeFile)
	s.teamStyle = loadBundle[TeamStyleBundle](s, ctx, CapabilityTeamStyle, teamStyleFile)
	s.newsCredibility = loadBundle[NewsCredibilityBundle](s, ctx, CapabilityNewsCredibility, newsCredibilityFile)

	for _, position := range Positions {
		b := loadBundle[PlayerScoringBundle](s, ctx, CapabilityPlayerScoring, playerScoringFile(position))
		if b != nil {
			s.playerScoring[position] = b
		}
	}

	if err := decodeFile(filepath.Join(s.dir, teamsFile), &s.teams); err != nil {
		s.log.Warn(ctx, "failed to load team list", logger.String("file", teamsFile), logger.Error(err))
	}
	if err := decodeFile(filepath.Join(s.dir, teamEncodingFile), &s.teamEncoding); err != nil {
		s.log.Warn(ctx, "failed to load team encoding", logger.String("file", teamEncodingFile), logger.Error(err))
	}
}

// loadBundle decodes one artifact file, recording availability per capability.
func loadBundle[T any](s *Store, ctx context.Context, capability Capability, name string) *T {
	var bundle T
	if err := decodeFile(filepath.Join(s.dir, name), &bundle); err != nil {
		s.loadErrs[capability] = err
		s.log.Warn(ctx, "model artifact unavailable",
			logger.String("capability", string(capability)),
			logger.String("file", name),
			logger.Error(err))
		metrics.SetModelLoaded(string(capability), false)
		return nil
	}
	s.log.Info(ctx, "model artifact loaded",
		logger.String("capability", string(capability)),
		logger.String("file", name))
	metrics.SetModelLoaded(string(capability), true)
	return &bundle
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) unavailable(capability Capability) error {
	if err, ok := s.loadErrs[capability]; ok {
		return fmt.Errorf("%w: %s: %w", ErrModelUnavailable, capability, err)
	}
	return fmt.Errorf("%w: %s", ErrModelUnavailable, capability)
}

// SeasonRanking returns the season ranking bundle.
func (s *Store) SeasonRanking() (*SeasonRankingBundle, error) {
	if s.seasonRanking == nil {
		return nil, s.unavailable(CapabilitySeasonRanking)
	}
	return s.seasonRanking, nil
}

// MatchOutcome returns the match outcome bundle.
func (s *Store) MatchOutcome() (*MatchOutcomeBundle, error) {
	if s.matchOutcome == nil {
		return nil, s.unavailable(CapabilityMatchOutcome)
	}
	return s.matchOutcome, nil
}

// TeamStyle returns the team style bundle.
func (s *Store) TeamStyle() (*TeamStyleBundle, error) {
	if s.teamStyle == nil {
		return nil, s.unavailable(CapabilityTeamStyle)
	}
	return s.teamStyle, nil
}

// PlayerScoring returns the scoring bundle for a position.
func (s *Store) PlayerScoring(position string) (*PlayerScoringBundle, error) {
	valid := false
	for _, p := range Positions {
		if p == position {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPosition, position)
	}
	b, ok := s.playerScoring[position]
	if !ok {
		return nil, s.unavailable(CapabilityPlayerScoring)
	}
	return b, nil
}

// NewsCredibility returns the news credibility bundle.
func (s *Store) NewsCredibility() (*NewsCredibilityBundle, error) {
	if s.newsCredibility == nil {
		return nil, s.unavailable(CapabilityNewsCredibility)
	}
	return s.newsCredibility, nil
}

// Teams returns the valid current-league team names.
func (s *Store) Teams() []string {
	return s.teams
}

// TeamEncoding returns the team name to numeric key mapping.
func (s *Store) TeamEncoding() map[string]int {
	return s.teamEncoding
}
