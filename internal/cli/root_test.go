package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmd "github.com/rohmanhakim/dom-patcher/internal/cli"
	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
)

func TestInitConfig_Defaults(t *testing.T) {
	cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()

	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Timeout())
	assert.Equal(t, 2, cfg.SettleAttempts())
	assert.Equal(t, 3, cfg.MaxAttempt())
	assert.Equal(t, "output", cfg.OutputDir())
	assert.Equal(t, hashutil.HashAlgoBLAKE3, cfg.HashAlgo())
	// The seed falls back to the clock when not set explicitly.
	assert.NotZero(t, cfg.RandomSeed())
}

func TestInitConfig_FlagOverrides(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetUserAgentForTest("flag-agent/1.0")
	cmd.SetTimeoutForTest(20 * time.Second)
	cmd.SetSettleAttemptsForTest(3)
	cmd.SetSettleDelayForTest(100 * time.Millisecond)
	cmd.SetMaxAttemptForTest(5)
	cmd.SetJitterForTest(25 * time.Millisecond)
	cmd.SetRandomSeedForTest(99)
	cmd.SetOutputDirForTest("custom-out")
	cmd.SetDryRunForTest(true)
	cmd.SetHashAlgoForTest("sha256")
	defer cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()

	require.NoError(t, err)
	assert.Equal(t, "flag-agent/1.0", cfg.UserAgent())
	assert.Equal(t, 20*time.Second, cfg.Timeout())
	assert.Equal(t, 3, cfg.SettleAttempts())
	assert.Equal(t, 100*time.Millisecond, cfg.SettleDelay())
	assert.Equal(t, 5, cfg.MaxAttempt())
	assert.Equal(t, 25*time.Millisecond, cfg.Jitter())
	assert.Equal(t, int64(99), cfg.RandomSeed())
	assert.Equal(t, "custom-out", cfg.OutputDir())
	assert.True(t, cfg.DryRun())
	assert.Equal(t, hashutil.HashAlgoSHA256, cfg.HashAlgo())
}

func TestInitConfig_InvalidHashAlgoFlag(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetHashAlgoForTest("md5")
	defer cmd.ResetFlags()

	_, err := cmd.InitConfigWithError()

	require.Error(t, err)
}

func TestInitConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout_ms": 7000, "output_dir": "from-file"}`), 0644))

	cmd.ResetFlags()
	cmd.SetConfigFileForTest(path)
	defer cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()

	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, cfg.Timeout())
	assert.Equal(t, "from-file", cfg.OutputDir())
}

func TestInitConfig_MissingFile(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetConfigFileForTest(filepath.Join(t.TempDir(), "nope.json"))
	defer cmd.ResetFlags()

	_, err := cmd.InitConfigWithError()

	require.Error(t, err)
}

func TestParseSuggestionPair(t *testing.T) {
	suggestion, err := cmd.ParseSuggestionPair("Talk to CRO Expert=>Get Your CRO Analysis")

	require.NoError(t, err)
	assert.Equal(t, "Talk to CRO Expert", suggestion.CurrentVal)
	assert.Equal(t, "Get Your CRO Analysis", suggestion.NewVal)
}

func TestParseSuggestionPair_KeepsLaterArrows(t *testing.T) {
	suggestion, err := cmd.ParseSuggestionPair("a=>b=>c")

	require.NoError(t, err)
	assert.Equal(t, "a", suggestion.CurrentVal)
	assert.Equal(t, "b=>c", suggestion.NewVal)
}

func TestParseSuggestionPair_MissingSeparator(t *testing.T) {
	_, err := cmd.ParseSuggestionPair("no separator here")

	require.Error(t, err)
}

func TestLoadSuggestions_FileEntriesFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"current_val": "from file", "new_val": "first"}
	]`), 0644))

	cmd.ResetFlags()
	cmd.SetSuggestionsFileForTest(path)
	cmd.SetSuggestionsForTest([]string{"from flag=>second"})
	defer cmd.ResetFlags()

	suggestions, err := cmd.LoadSuggestions()

	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "from file", suggestions[0].CurrentVal)
	assert.Equal(t, "from flag", suggestions[1].CurrentVal)
}

func TestLoadSuggestions_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suggestions.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0644))

	cmd.ResetFlags()
	cmd.SetSuggestionsFileForTest(path)
	defer cmd.ResetFlags()

	_, err := cmd.LoadSuggestions()

	require.Error(t, err)
}

func TestLoadSuggestions_BadFlag(t *testing.T) {
	cmd.ResetFlags()
	cmd.SetSuggestionsForTest([]string{"missing-separator"})
	defer cmd.ResetFlags()

	_, err := cmd.LoadSuggestions()

	require.Error(t, err)
}
