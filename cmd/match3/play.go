package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or pick one from a menu.

Controls:
  Mouse            - Press a piece, drag onto a neighbour, release
  Arrows/WASD/HJKL - Move the cursor
  Space/Enter      - Pick up the piece under the cursor, then drop it
                     on a neighbour to swap
  Esc              - Drop the held piece
  P                - Pause
  R                - New board
  ?                - Toggle full help
  Q/Ctrl+C         - Quit (back to the menu when started from it)

Difficulty options:
  easy   - 4 piece types
  normal - 6 piece types
  hard   - 8 piece types
  fixed  - Use the config's palette_size

Examples:
  match3 play
  match3 play match3 --difficulty easy
  match3 play match3_classic --seed 7
  match3 play --config ./my-match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown variant %q, run 'match3 list' to see available variants", args[0])
	}

	if _, _, err := loadConfig(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "match3")
	if err != nil {
		return err
	}
	defer closeLog()

	var journal storage.Journal
	if store := openJournal(logger); store != nil {
		defer store.Close()
		journal = store
	}

	cfg := terminalConfig()
	if len(args) == 1 {
		return playVariant(args[0], journal, logger, cfg)
	}

	// Menu loop: quitting a game returns to the menu
	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		if result.Quit {
			return nil
		}
		cfg = result.Config

		if err := playVariant(result.GameID, journal, logger, cfg); err != nil {
			return err
		}
	}
}

// playVariant runs one game until the player quits it.
func playVariant(id string, journal storage.Journal, logger *log.Logger, cfg core.RuntimeConfig) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	if err := tui.Run(game, journal, logger, cfg); err != nil {
		return fmt.Errorf("running %s: %w", id, err)
	}
	return nil
}
