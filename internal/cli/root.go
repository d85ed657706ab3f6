package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohmanhakim/dom-patcher/internal/build"
	"github.com/rohmanhakim/dom-patcher/internal/changelog"
	"github.com/rohmanhakim/dom-patcher/internal/config"
	"github.com/rohmanhakim/dom-patcher/internal/domtree"
	"github.com/rohmanhakim/dom-patcher/internal/fetcher"
	"github.com/rohmanhakim/dom-patcher/internal/metadata"
	"github.com/rohmanhakim/dom-patcher/internal/report"
	"github.com/rohmanhakim/dom-patcher/internal/session"
	"github.com/rohmanhakim/dom-patcher/internal/storage"
	"github.com/rohmanhakim/dom-patcher/pkg/hashutil"
	"github.com/rohmanhakim/dom-patcher/pkg/retry"
	"github.com/rohmanhakim/dom-patcher/pkg/timeutil"
)

var (
	cfgFile         string
	pageURL         string
	suggestionPairs []string
	suggestionsFile string
	outputDir       string
	dryRun          bool
	userAgent       string
	timeout         time.Duration
	settleAttempts  int
	settleDelay     time.Duration
	maxAttempt      int
	backoffInitial  time.Duration
	backoffMult     float64
	backoffMax      time.Duration
	jitter          time.Duration
	randomSeed      int64
	hashAlgo        string
)

// parseSuggestionPair splits one "current=>new" flag value.
func parseSuggestionPair(pair string) (changelog.Suggestion, error) {
	parts := strings.SplitN(pair, "=>", 2)
	if len(parts) != 2 {
		return changelog.Suggestion{}, fmt.Errorf("invalid suggestion %q: expected \"current=>new\"", pair)
	}
	return changelog.Suggestion{
		CurrentVal: parts[0],
		NewVal:     parts[1],
	}, nil
}

// loadSuggestions merges --suggestion flags with the optional JSON file,
// file entries first, preserving order within each source.
func loadSuggestions() ([]changelog.Suggestion, error) {
	var suggestions []changelog.Suggestion

	if suggestionsFile != "" {
		raw, err := os.ReadFile(suggestionsFile)
		if err != nil {
			return nil, fmt.Errorf("error reading suggestions file %s: %w", suggestionsFile, err)
		}
		var fromFile []changelog.Suggestion
		if err := json.Unmarshal(raw, &fromFile); err != nil {
			return nil, fmt.Errorf("error parsing suggestions file %s: %w", suggestionsFile, err)
		}
		suggestions = append(suggestions, fromFile...)
	}

	for _, pair := range suggestionPairs {
		suggestion, err := parseSuggestionPair(pair)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "dom-patcher",
	Version: build.FullVersion(),
	Short:   "Prepare precise text replacements for a live web page.",
	Long: `dom-patcher locates caller-supplied phrases within the rendered text
content of a web page and produces a per-text-node change log (XPath-style
location, original text, replacement text) so a downstream tool can patch
the live DOM in place without disturbing surrounding markup.

Replacement phrases are redistributed across the matched text nodes in
proportion to each node's original word count, so styling boundaries that
split a phrase across elements survive the substitution.`,
	Run: func(cmd *cobra.Command, args []string) {
		if pageURL == "" {
			fmt.Fprintf(os.Stderr, "Error: --url is required.\n")
			cmd.Usage()
			os.Exit(1)
		}

		parsedURL, err := url.Parse(pageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid url %s: %s\n", pageURL, err)
			os.Exit(1)
		}

		suggestions, err := loadSuggestions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		if len(suggestions) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no suggestions provided. Use --suggestion or --suggestions-file.\n")
			cmd.Usage()
			os.Exit(1)
		}

		cfg := InitConfig()

		recorder := metadata.NewRecorder(parsedURL.Host)
		htmlFetcher := fetcher.NewHtmlFetcher(&recorder)
		treeProvider := domtree.NewTreeProvider(&recorder)
		contextRule := report.NewContextRule(&recorder)

		patchSession := session.NewSession(
			&recorder,
			&recorder,
			&htmlFetcher,
			&treeProvider,
			contextRule,
		)

		outcome, runErr := patchSession.Run(
			context.Background(),
			*parsedURL,
			suggestions,
			session.NewParam(
				cfg.UserAgent(),
				cfg.Timeout(),
				cfg.SettleAttempts(),
				cfg.SettleDelay(),
				cfg.HashAlgo(),
				retry.RetryParam{
					Jitter:      cfg.Jitter(),
					RandomSeed:  cfg.RandomSeed(),
					MaxAttempts: cfg.MaxAttempt(),
					BackoffParam: timeutil.NewBackoffParam(
						cfg.BackoffInitialDuration(),
						cfg.BackoffMultiplier(),
						cfg.BackoffMaxDuration(),
					),
				},
			),
		)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", runErr)
			os.Exit(1)
		}

		resultJSON, jsonErr := json.MarshalIndent(outcome.Results(), "", "  ")
		if jsonErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", jsonErr)
			os.Exit(1)
		}
		fmt.Println(string(resultJSON))

		if cfg.DryRun() {
			fmt.Fprintf(os.Stderr, "Dry run: skipping artifact writes to %s\n", cfg.OutputDir())
			return
		}

		sink := storage.NewLocalSink(&recorder)
		writeResult, writeErr := sink.Write(cfg.OutputDir(), *parsedURL, outcome.Results(), cfg.HashAlgo())
		if writeErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", writeErr)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", writeResult.ResultPath())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&pageURL, "url", "", "page URL to search for replacement targets")
	rootCmd.PersistentFlags().StringArrayVar(&suggestionPairs, "suggestion", []string{}, "replacement as `current=>new` (can be repeated)")
	rootCmd.PersistentFlags().StringVar(&suggestionsFile, "suggestions-file", "", "JSON file with [{\"current_val\":..., \"new_val\":...}]")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "output", "root output directory for change-log artifacts")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print results without writing artifacts")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for a single HTTP request")
	rootCmd.PersistentFlags().IntVar(&settleAttempts, "settle-attempts", 0, "maximum fetches while waiting for the page to settle")
	rootCmd.PersistentFlags().DurationVar(&settleDelay, "settle-delay", 0, "delay between settle polls")
	rootCmd.PersistentFlags().IntVar(&maxAttempt, "max-attempt", 0, "maximum retry attempts per fetch")
	rootCmd.PersistentFlags().DurationVar(&backoffInitial, "backoff-initial", 0, "initial retry backoff delay")
	rootCmd.PersistentFlags().Float64Var(&backoffMult, "backoff-multiplier", 0, "retry backoff multiplier")
	rootCmd.PersistentFlags().DurationVar(&backoffMax, "backoff-max", 0, "maximum retry backoff delay")
	rootCmd.PersistentFlags().DurationVar(&jitter, "jitter", 0, "random jitter added to backoff delays")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for random number generation (0 for current time)")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "hash algorithm for artifact names (sha256 or blake3)")
}

// InitConfig reads in config file and CLI flags.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and CLI flags, returning any errors.
// This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		fmt.Printf("Initializing config from file: %s\n", cfgFile)
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Build config from CLI flags using the With... functions with method chaining
	configBuilder := config.WithDefault()

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if settleAttempts > 0 {
		configBuilder = configBuilder.WithSettleAttempts(settleAttempts)
	}

	if settleDelay > 0 {
		configBuilder = configBuilder.WithSettleDelay(settleDelay)
	}

	if maxAttempt > 0 {
		configBuilder = configBuilder.WithMaxAttempt(maxAttempt)
	}

	if backoffInitial > 0 {
		configBuilder = configBuilder.WithBackoffInitialDuration(backoffInitial)
	}

	if backoffMult > 0 {
		configBuilder = configBuilder.WithBackoffMultiplier(backoffMult)
	}

	if backoffMax > 0 {
		configBuilder = configBuilder.WithBackoffMaxDuration(backoffMax)
	}

	if jitter > 0 {
		configBuilder = configBuilder.WithJitter(jitter)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	} else {
		configBuilder = configBuilder.WithRandomSeed(time.Now().UnixNano())
	}

	if outputDir != "" && outputDir != "output" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if dryRun {
		configBuilder = configBuilder.WithDryRun(dryRun)
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	pageURL = ""
	suggestionPairs = []string{}
	suggestionsFile = ""
	outputDir = ""
	dryRun = false
	userAgent = ""
	timeout = 0
	settleAttempts = 0
	settleDelay = 0
	maxAttempt = 0
	backoffInitial = 0
	backoffMult = 0
	backoffMax = 0
	jitter = 0
	randomSeed = 0
	hashAlgo = ""
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetPageURLForTest(raw string) {
	pageURL = raw
}

func SetSuggestionsForTest(pairs []string) {
	suggestionPairs = pairs
}

func SetSuggestionsFileForTest(path string) {
	suggestionsFile = path
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetDryRunForTest(dry bool) {
	dryRun = dry
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetSettleAttemptsForTest(attempts int) {
	settleAttempts = attempts
}

func SetSettleDelayForTest(delay time.Duration) {
	settleDelay = delay
}

func SetMaxAttemptForTest(attempts int) {
	maxAttempt = attempts
}

func SetJitterForTest(j time.Duration) {
	jitter = j
}

func SetRandomSeedForTest(seed int64) {
	randomSeed = seed
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}
