// match3 is a terminal match-3 tile puzzle.
//
// Usage:
//
//	match3 list              - List available variants
//	match3 play [variant]    - Play a variant (menu if omitted)
//	match3 serve             - Start SSH server for remote play
//	match3 sessions          - List or browse journaled sessions
//	match3 replay <id>       - Replay a journaled session
//	match3 config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set journal path (default: ~/.match3/journal.db)
//	--config <path>       - Use a custom match3.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--debug               - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3"
	"github.com/vovakirdan/match3/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles in your terminal",
	Long: `Match-3 is a tile-matching puzzle for the terminal. Swap two
neighbouring pieces to line up three or more of a kind; matched pieces
clear, the rest fall and new ones drop in from above.

Available commands:
  list      - Show all variants
  play      - Play a variant
  serve     - Start SSH server for remote play
  sessions  - List or browse journaled sessions
  replay    - Rebuild a journaled session and check it
  config    - Print the default configuration

Examples:
  match3 play
  match3 play match3_classic --seed 42
  match3 play --difficulty easy
  match3 serve --ssh :2222
  match3 replay 12`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/journal.db", "Path to the move journal (empty to disable)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the game configuration from the flags and installs it
// for the games created afterwards.
func loadConfig() (config.Match3Config, config.Source, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.Match3Config{}, "", err
	}

	cfg, source, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return config.Match3Config{}, "", err
	}
	config.ApplyMatch3Preset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Match3Config{}, "", err
	}

	match3.SetConfig(cfg)
	return cfg, source, nil
}

// newLogger builds the logger for the command. Without --log-file,
// fallback receives the output. The returned closer must be called.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openJournal opens the journal named by --db. Journaling is best effort:
// a nil store means play goes on without it.
func openJournal(logger *log.Logger) *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open move journal: %v\n", err)
		logger.Warn("journal disabled", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// mustOpenJournal opens the journal for commands that only read it.
func mustOpenJournal() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, fmt.Errorf("no journal: --db is empty")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open move journal: %w", err)
	}
	return store, nil
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
