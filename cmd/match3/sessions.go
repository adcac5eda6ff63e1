package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/registry"
)

var (
	flagSessionsLimit int
	flagSessionsGame  string
	flagSessionsClear bool
	flagSessionsTUI   bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List journaled sessions",
	Long: `Show the most recent journaled sessions, newest first.

Every board played is journaled with its seed and board settings,
followed by each swap attempt. Use 'match3 replay <id>' to rebuild one.

Examples:
  match3 sessions
  match3 sessions --game match3_classic --limit 5
  match3 sessions --browse
  match3 sessions --clear --game match3`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 20, "Number of sessions to show")
	sessionsCmd.Flags().StringVar(&flagSessionsGame, "game", "", "Only this variant")
	sessionsCmd.Flags().BoolVar(&flagSessionsClear, "clear", false, "Delete the sessions (of --game, or all)")
	sessionsCmd.Flags().BoolVar(&flagSessionsTUI, "browse", false, "Browse sessions interactively and replay one")
}

func runSessions(_ *cobra.Command, _ []string) error {
	if flagSessionsGame != "" && !registry.Exists(flagSessionsGame) {
		return fmt.Errorf("unknown variant %q", flagSessionsGame)
	}

	store, err := mustOpenJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagSessionsClear {
		if err := store.ClearSessions(flagSessionsGame); err != nil {
			return err
		}
		fmt.Println("Sessions cleared.")
		return nil
	}

	if flagSessionsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		id, err := tui.RunSessions(store, width, height)
		if err != nil || id == 0 {
			return err
		}
		return printReplay(store, id)
	}

	// Filtering happens here, so fetch enough rows to fill the limit.
	fetch := flagSessionsLimit
	if flagSessionsGame != "" {
		fetch *= 10
	}
	entries, err := store.RecentSessions(fetch)
	if err != nil {
		return err
	}

	fmt.Println("Recent sessions")
	fmt.Println()

	shown := 0
	for _, e := range entries {
		if flagSessionsGame != "" && e.GameID != flagSessionsGame {
			continue
		}
		if shown == 0 {
			fmt.Printf("  %-6s  %-16s  %-20s  %-7s  %-5s  %-5s  %s\n", "ID", "Variant", "Seed", "Board", "Types", "Moves", "Date")
			fmt.Printf("  %-6s  %-16s  %-20s  %-7s  %-5s  %-5s  %s\n", "--", "-------", "----", "-----", "-----", "-----", "----")
		}
		fmt.Printf("  %-6d  %-16s  %-20d  %-7s  %-5d  %-5d  %s\n",
			e.ID, e.GameID, e.Seed,
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			e.PaletteSize, e.Moves,
			e.CreatedAt.Format("2006-01-02 15:04"))
		shown++
		if shown == flagSessionsLimit {
			break
		}
	}

	if shown == 0 {
		fmt.Println("No sessions journaled yet.")
		fmt.Println()
		fmt.Println("Play 'match3 play' to start one.")
	}
	return nil
}
