package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.OutlierRank)
	assert.Equal(t, int64(-1), cfg.TimeWindowEnd)
	assert.Equal(t, int64(6*30*24*3600), cfg.TimeWindowLength)
	assert.Equal(t, int64(30*24*3600), cfg.GracePeriod)
	assert.Equal(t, 3, cfg.OverlapThreshold)
	assert.Equal(t, 75.0, cfg.FixedRD)
	assert.Equal(t, 0.0, cfg.SeedWeights.OwnNetwork)
	assert.Equal(t, 1.0, cfg.SeedWeights.LanFactor)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standings.yaml")
	payload := []byte("outlier_rank: 3\ndecay_exponent: 2\nseed_weights:\n  own_network: 0.5\n")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.OutlierRank)
	assert.Equal(t, 2.0, cfg.DecayExponent)
	assert.Equal(t, 0.5, cfg.SeedWeights.OwnNetwork)
	// Unnamed fields keep their defaults.
	assert.Equal(t, 10, cfg.BucketSize)
	assert.Equal(t, 75.0, cfg.FixedRD)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("outlier_rank: [oops"), 0o644))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("invalid_values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("outlier_rank: 0"), 0o644))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"outlier_rank_zero", func(c *Config) { c.OutlierRank = 0 }},
		{"overlap_too_low", func(c *Config) { c.OverlapThreshold = 0 }},
		{"overlap_too_high", func(c *Config) { c.OverlapThreshold = 6 }},
		{"bucket_zero", func(c *Config) { c.BucketSize = 0 }},
		{"inverted_band", func(c *Config) { c.MinSeedRating = 3000 }},
		{"non_positive_rd", func(c *Config) { c.FixedRD = 0 }},
		{"negative_match_gate", func(c *Config) { c.MinMatchesForRank = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
