// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ModelsDir is the directory holding the serialized model bundles
	// (bo1..bo5), teams.json and team_encoding.json.
	ModelsDir string `koanf:"models_dir"`

	// DataDir is the directory holding the processed CSV datasets.
	DataDir string `koanf:"data_dir"`

	// AllowedOrigins is the fixed CORS allowlist of known frontend origins.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// LiveDataBaseURL points at the external sports-results API.
	LiveDataBaseURL string `koanf:"live_data_base_url"`

	// LiveDataTimeoutMS bounds a single live-data request.
	LiveDataTimeoutMS int `koanf:"live_data_timeout_ms"`

	// DefaultSeason is returned when no season data is available.
	DefaultSeason string `koanf:"default_season"`

	// MaxRecommendationLimit caps GET /players/recommendations?limit.
	MaxRecommendationLimit int `koanf:"max_recommendation_limit"`

	// ConfidenceHighCutoff and ConfidenceModerateCutoff bucket match-outcome
	// confidence over max(probabilities): >= high is "High", >= moderate is
	// "Moderate", anything lower is "Low".
	ConfidenceHighCutoff     float64 `koanf:"confidence_high_cutoff"`
	ConfidenceModerateCutoff float64 `koanf:"confidence_moderate_cutoff"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:  "info",
		Addr:      ":8000",
		ModelsDir: "models",
		DataDir:   "data/processed",
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"https://the-12th-player-app.onrender.com",
		},
		LiveDataBaseURL:          "https://www.thesportsdb.com/api/v1/json/3",
		LiveDataTimeoutMS:        5000,
		DefaultSeason:            "2024-25",
		MaxRecommendationLimit:   50,
		ConfidenceHighCutoff:     0.55,
		ConfidenceModerateCutoff: 0.40,
	}
	return c
}

// LiveDataTimeout returns the live-data request timeout as a duration.
func (c *Config) LiveDataTimeout() time.Duration {
	return time.Duration(c.LiveDataTimeoutMS) * time.Millisecond
}
