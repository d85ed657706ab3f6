package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
)

type Config struct {
	//===============
	// Fetch
	//===============
	// Maximum time of a single fetch request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Settle polling
	//===============
	// Maximum number of fetches performed while waiting for the page
	// body to stabilize. 1 disables polling entirely.
	settleAttempts int
	// Waiting time between two settle polls
	settleDelay time.Duration

	//===============
	// Retry
	//===============
	// maximum attempt during retry
	maxAttempt int
	// initial delay for backoff
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration
	// Randomized variation added on top of the backoff delay
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64

	//===============
	// Output
	//===============
	// Root directory in which to store the resulting change-log files
	outputDir string
	// Whether the program simulates what it would do without
	// actually performing any irreversible or side-effecting actions
	dryRun bool
	// Hash algorithm used for deterministic artifact filenames and
	// settle-poll body comparison
	hashAlgo hashutil.HashAlgo
}

// configFile mirrors Config for JSON decoding. Durations are expressed
// in milliseconds in the file.
type configFile struct {
	TimeoutMs              int64   `json:"timeout_ms"`
	UserAgent              string  `json:"user_agent"`
	SettleAttempts         int     `json:"settle_attempts"`
	SettleDelayMs          int64   `json:"settle_delay_ms"`
	MaxAttempt             int     `json:"max_attempt"`
	BackoffInitialMs       int64   `json:"backoff_initial_ms"`
	BackoffMultiplier      float64 `json:"backoff_multiplier"`
	BackoffMaxMs           int64   `json:"backoff_max_ms"`
	JitterMs               int64   `json:"jitter_ms"`
	RandomSeed             int64   `json:"random_seed"`
	OutputDir              string  `json:"output_dir"`
	DryRun                 bool    `json:"dry_run"`
	HashAlgo               string  `json:"hash_algo"`
}

const (
	defaultTimeout        = 90 * time.Second
	defaultUserAgent      = "dom-patcher/1.0 (+https://github.com/rohmanhakim/dom-patcher)"
	defaultSettleAttempts = 2
	defaultSettleDelay    = 500 * time.Millisecond
	defaultMaxAttempt     = 3
	defaultBackoffInitial = 1 * time.Second
	defaultBackoffMult    = 2.0
	defaultBackoffMax     = 30 * time.Second
	defaultOutputDir      = "output"
)

// WithDefault returns a config pre-populated with defaults, ready for
// chained With* overrides and a final Build().
func WithDefault() *Config {
	return &Config{
		timeout:                defaultTimeout,
		userAgent:              defaultUserAgent,
		settleAttempts:         defaultSettleAttempts,
		settleDelay:            defaultSettleDelay,
		maxAttempt:             defaultMaxAttempt,
		backoffInitialDuration: defaultBackoffInitial,
		backoffMultiplier:      defaultBackoffMult,
		backoffMaxDuration:     defaultBackoffMax,
		outputDir:              defaultOutputDir,
		hashAlgo:               hashutil.HashAlgoBLAKE3,
	}
}

// WithConfigFile reads a JSON config file and returns the resulting
// Config. Missing fields keep their defaults.
func WithConfigFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrReadConfigFail, err)
	}

	var file configFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigParsingFail, err)
	}

	builder := WithDefault()
	if file.TimeoutMs > 0 {
		builder = builder.WithTimeout(time.Duration(file.TimeoutMs) * time.Millisecond)
	}
	if file.UserAgent != "" {
		builder = builder.WithUserAgent(file.UserAgent)
	}
	if file.SettleAttempts > 0 {
		builder = builder.WithSettleAttempts(file.SettleAttempts)
	}
	if file.SettleDelayMs > 0 {
		builder = builder.WithSettleDelay(time.Duration(file.SettleDelayMs) * time.Millisecond)
	}
	if file.MaxAttempt > 0 {
		builder = builder.WithMaxAttempt(file.MaxAttempt)
	}
	if file.BackoffInitialMs > 0 {
		builder = builder.WithBackoffInitialDuration(time.Duration(file.BackoffInitialMs) * time.Millisecond)
	}
	if file.BackoffMultiplier > 0 {
		builder = builder.WithBackoffMultiplier(file.BackoffMultiplier)
	}
	if file.BackoffMaxMs > 0 {
		builder = builder.WithBackoffMaxDuration(time.Duration(file.BackoffMaxMs) * time.Millisecond)
	}
	if file.JitterMs > 0 {
		builder = builder.WithJitter(time.Duration(file.JitterMs) * time.Millisecond)
	}
	if file.RandomSeed != 0 {
		builder = builder.WithRandomSeed(file.RandomSeed)
	}
	if file.OutputDir != "" {
		builder = builder.WithOutputDir(file.OutputDir)
	}
	if file.DryRun {
		builder = builder.WithDryRun(true)
	}
	if file.HashAlgo != "" {
		builder = builder.WithHashAlgo(hashutil.HashAlgo(file.HashAlgo))
	}

	return builder.Build()
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(userAgent string) *Config {
	c.userAgent = userAgent
	return c
}

func (c *Config) WithSettleAttempts(attempts int) *Config {
	c.settleAttempts = attempts
	return c
}

func (c *Config) WithSettleDelay(delay time.Duration) *Config {
	c.settleDelay = delay
	return c
}

func (c *Config) WithMaxAttempt(maxAttempt int) *Config {
	c.maxAttempt = maxAttempt
	return c
}

func (c *Config) WithBackoffInitialDuration(d time.Duration) *Config {
	c.backoffInitialDuration = d
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(d time.Duration) *Config {
	c.backoffMaxDuration = d
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithOutputDir(dir string) *Config {
	c.outputDir = dir
	return c
}

func (c *Config) WithDryRun(dryRun bool) *Config {
	c.dryRun = dryRun
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) Build() (Config, error) {
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.settleAttempts < 1 {
		return Config{}, fmt.Errorf("%w: settleAttempts must be at least 1", ErrInvalidConfig)
	}
	if c.maxAttempt < 1 {
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1", ErrInvalidConfig)
	}
	if c.hashAlgo != hashutil.HashAlgoSHA256 && c.hashAlgo != hashutil.HashAlgoBLAKE3 {
		return Config{}, fmt.Errorf("%w: unsupported hash algorithm %q", ErrInvalidConfig, c.hashAlgo)
	}

	return *c, nil
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) SettleAttempts() int {
	return c.settleAttempts
}

func (c Config) SettleDelay() time.Duration {
	return c.settleDelay
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) DryRun() bool {
	return c.dryRun
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}
