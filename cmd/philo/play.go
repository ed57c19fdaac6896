package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/philo/internal/core"
	"github.com/vovakirdan/philo/internal/platform/tui"
	"github.com/vovakirdan/philo/internal/registry"
	"github.com/vovakirdan/philo/internal/storage"

	// Register the reflex games
	_ "github.com/vovakirdan/philo/internal/games/philo"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Tap to start. Then wait: tapping on any other color loses the round,
and so does letting the target color go by.

Controls:
  Space/Enter/Click  - Tap
  P/Esc              - Pause
  B                  - Back (when paused or after a loss)
  Ctrl+S             - Save a screenshot
  Q/Ctrl+C           - Quit

Examples:
  philo play philo
  philo play philo_color
  philo play philo --seed 42
  philo play philo_color --config ./my-reflex.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size and flags.
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

// openStore opens the journal, warning and continuing without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open reaction journal: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'philo list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newPlayLogger()
	store := openStore()

	runErr := tui.Run(game, tui.GameOptions{
		Store:   store,
		Config:  terminalConfig(),
		Session: os.Getenv("USER"),
		Logger:  logger,
	})

	// Close before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
