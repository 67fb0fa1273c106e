// Package config holds the pipeline configuration: every tunable the stages
// consume lives here, loaded from YAML with sane defaults, so nothing hides
// in package-level state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/rankforge/standings/internal/seeding"
)

// Config is the full set of pipeline tunables.
type Config struct {
	// OutlierRank is the 1-based rank used as the normalization reference:
	// rosters at or above the Nth-best value share the top modifier.
	OutlierRank int `yaml:"outlier_rank"`

	// TimeWindowEnd is the epoch end of the data window; -1 means the latest
	// match in the data. TimeWindowLength and GracePeriod are in seconds.
	TimeWindowEnd    int64 `yaml:"time_window_end"`
	TimeWindowLength int64 `yaml:"time_window_length"`
	GracePeriod      int64 `yaml:"grace_period"`

	// DecayExponent shapes the time-decay curve; 1 is linear.
	DecayExponent float64 `yaml:"decay_exponent"`

	// HighValueEventMod is carried on the ranking context but not yet
	// applied by any formula.
	HighValueEventMod float64 `yaml:"high_value_event_mod"`

	// OverlapThreshold is how many of 5 players two lineups must share to
	// resolve to the same roster.
	OverlapThreshold int `yaml:"overlap_threshold"`

	// BucketSize is the top-K window for best-results factors.
	BucketSize int `yaml:"bucket_size"`

	// MinSeedRating and MaxSeedRating bound the band seed values are
	// remapped into.
	MinSeedRating float64 `yaml:"min_seed_rating"`
	MaxSeedRating float64 `yaml:"max_seed_rating"`

	// FixedRD pins the rating deviation, turning the Glicko engine into a
	// fixed-uncertainty Elo-like update.
	FixedRD float64 `yaml:"fixed_rd"`

	// MinMatchesForRank gates rank assignment.
	MinMatchesForRank int `yaml:"min_matches_for_rank"`

	// SeedWeights are the per-factor coefficients of the seed average.
	SeedWeights seeding.Weights `yaml:"seed_weights"`
}

// DefaultConfig returns the production tunables.
func DefaultConfig() *Config {
	return &Config{
		OutlierRank:       5,
		TimeWindowEnd:     -1,
		TimeWindowLength:  6 * 30 * 24 * 3600,
		GracePeriod:       30 * 24 * 3600,
		DecayExponent:     1,
		HighValueEventMod: 1,
		OverlapThreshold:  3,
		BucketSize:        10,
		MinSeedRating:     400,
		MaxSeedRating:     2000,
		FixedRD:           75,
		MinMatchesForRank: 10,
		SeedWeights:       seeding.DefaultWeights(),
	}
}

// LoadConfig reads a YAML config file over the defaults, so a partial file
// only overrides what it names.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.OutlierRank < 1 {
		return fmt.Errorf("outlier_rank must be >= 1, got %d", c.OutlierRank)
	}
	if c.OverlapThreshold < 1 || c.OverlapThreshold > 5 {
		return fmt.Errorf("overlap_threshold must be in [1,5], got %d", c.OverlapThreshold)
	}
	if c.BucketSize < 1 {
		return fmt.Errorf("bucket_size must be >= 1, got %d", c.BucketSize)
	}
	if c.MaxSeedRating < c.MinSeedRating {
		return fmt.Errorf("max_seed_rating %.0f below min_seed_rating %.0f", c.MaxSeedRating, c.MinSeedRating)
	}
	if c.FixedRD <= 0 {
		return fmt.Errorf("fixed_rd must be positive, got %.2f", c.FixedRD)
	}
	if c.MinMatchesForRank < 0 {
		return fmt.Errorf("min_matches_for_rank must be >= 0, got %d", c.MinMatchesForRank)
	}
	return nil
}
