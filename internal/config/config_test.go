package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/dom-patcher/internal/config"
	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWithDefault(t *testing.T) {
	cfg, err := config.WithDefault().Build()

	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Timeout())
	assert.Equal(t, 2, cfg.SettleAttempts())
	assert.Equal(t, 500*time.Millisecond, cfg.SettleDelay())
	assert.Equal(t, 3, cfg.MaxAttempt())
	assert.Equal(t, 1*time.Second, cfg.BackoffInitialDuration())
	assert.Equal(t, 2.0, cfg.BackoffMultiplier())
	assert.Equal(t, 30*time.Second, cfg.BackoffMaxDuration())
	assert.Equal(t, "output", cfg.OutputDir())
	assert.False(t, cfg.DryRun())
	assert.Equal(t, hashutil.HashAlgoBLAKE3, cfg.HashAlgo())
	assert.NotEmpty(t, cfg.UserAgent())
}

func TestWithOverrides(t *testing.T) {
	cfg, err := config.WithDefault().
		WithTimeout(10 * time.Second).
		WithUserAgent("custom-agent/2.0").
		WithSettleAttempts(5).
		WithSettleDelay(250 * time.Millisecond).
		WithMaxAttempt(1).
		WithJitter(100 * time.Millisecond).
		WithRandomSeed(42).
		WithOutputDir("artifacts").
		WithDryRun(true).
		WithHashAlgo(hashutil.HashAlgoSHA256).
		Build()

	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, "custom-agent/2.0", cfg.UserAgent())
	assert.Equal(t, 5, cfg.SettleAttempts())
	assert.Equal(t, 250*time.Millisecond, cfg.SettleDelay())
	assert.Equal(t, 1, cfg.MaxAttempt())
	assert.Equal(t, 100*time.Millisecond, cfg.Jitter())
	assert.Equal(t, int64(42), cfg.RandomSeed())
	assert.Equal(t, "artifacts", cfg.OutputDir())
	assert.True(t, cfg.DryRun())
	assert.Equal(t, hashutil.HashAlgoSHA256, cfg.HashAlgo())
}

func TestBuild_RejectsNonPositiveTimeout(t *testing.T) {
	_, err := config.WithDefault().WithTimeout(0).Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestBuild_RejectsZeroSettleAttempts(t *testing.T) {
	_, err := config.WithDefault().WithSettleAttempts(0).Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestBuild_RejectsZeroMaxAttempt(t *testing.T) {
	_, err := config.WithDefault().WithMaxAttempt(0).Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestBuild_RejectsUnknownHashAlgo(t *testing.T) {
	_, err := config.WithDefault().WithHashAlgo(hashutil.HashAlgo("md5")).Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWithConfigFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"timeout_ms": 15000,
		"user_agent": "file-agent/1.0",
		"settle_attempts": 4,
		"settle_delay_ms": 200,
		"max_attempt": 2,
		"backoff_initial_ms": 500,
		"backoff_multiplier": 1.5,
		"backoff_max_ms": 10000,
		"jitter_ms": 50,
		"random_seed": 7,
		"output_dir": "out",
		"dry_run": true,
		"hash_algo": "sha256"
	}`)

	cfg, err := config.WithConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, "file-agent/1.0", cfg.UserAgent())
	assert.Equal(t, 4, cfg.SettleAttempts())
	assert.Equal(t, 200*time.Millisecond, cfg.SettleDelay())
	assert.Equal(t, 2, cfg.MaxAttempt())
	assert.Equal(t, 500*time.Millisecond, cfg.BackoffInitialDuration())
	assert.Equal(t, 1.5, cfg.BackoffMultiplier())
	assert.Equal(t, 10*time.Second, cfg.BackoffMaxDuration())
	assert.Equal(t, 50*time.Millisecond, cfg.Jitter())
	assert.Equal(t, int64(7), cfg.RandomSeed())
	assert.Equal(t, "out", cfg.OutputDir())
	assert.True(t, cfg.DryRun())
	assert.Equal(t, hashutil.HashAlgoSHA256, cfg.HashAlgo())
}

func TestWithConfigFile_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"timeout_ms": 5000}`)

	cfg, err := config.WithConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 2, cfg.SettleAttempts())
	assert.Equal(t, "output", cfg.OutputDir())
	assert.Equal(t, hashutil.HashAlgoBLAKE3, cfg.HashAlgo())
}

func TestWithConfigFile_MissingFile(t *testing.T) {
	_, err := config.WithConfigFile(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrFileDoesNotExist)
}

func TestWithConfigFile_MalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	_, err := config.WithConfigFile(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigParsingFail)
}

func TestWithConfigFile_InvalidValueFailsBuild(t *testing.T) {
	path := writeConfigFile(t, `{"hash_algo": "md5"}`)

	_, err := config.WithConfigFile(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
