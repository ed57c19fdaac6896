// philo-gui opens the reflex game in a window.
//
// Usage:
//
//	philo-gui                      - Tap on black
//	philo-gui --variant color      - Tap when the round's color comes back
//
// Click, touch, Space or Enter to tap. P/Esc pauses, Q quits.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/philo/internal/config"
	"github.com/vovakirdan/philo/internal/platform/gui"
	"github.com/vovakirdan/philo/internal/storage"
)

var (
	flagVariant  string
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagWidth    int
	flagHeight   int
)

// gameIDs maps variant names to the journal keys used by the terminal arcade.
var gameIDs = map[string]string{
	"black": "philo",
	"color": "philo_color",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "philo-gui",
	Short: "Philo in a window",
	Long: `Open the reflex game in a window.

The window cycles through random colors. Tap (click, touch, Space or Enter)
while the target color is shown.

Examples:
  philo-gui
  philo-gui --variant color
  philo-gui --variant color --seed 42 --width 720 --height 1280`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGUI,
}

func init() {
	rootCmd.Flags().StringVar(&flagVariant, "variant", "black", "Game variant: black or color")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom timing presets YAML")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.philo/journal.db", "Path to reaction journal database")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().IntVar(&flagWidth, "width", gui.DefaultWidth, "Window width in pixels")
	rootCmd.Flags().IntVar(&flagHeight, "height", gui.DefaultHeight, "Window height in pixels")
}

func runGUI(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "philo-gui",
		Level:           level,
	})

	gameID, ok := gameIDs[flagVariant]
	if !ok {
		return fmt.Errorf("unknown variant %q (want black or color)", flagVariant)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cfg.FromFile() {
		logger.Info("timing presets loaded from file", "path", cfg.Source)
	} else {
		logger.Debug("timing presets loaded", "source", cfg.Source)
	}
	variant, err := cfg.Variant(flagVariant)
	if err != nil {
		return err
	}
	title := cfg.Variants[flagVariant].Title
	if title == "" {
		title = "Philo"
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("journal disabled", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	err = gui.Run(gui.Options{
		GameID:  gameID,
		Title:   title,
		Variant: variant,
		Seed:    flagSeed,
		Width:   flagWidth,
		Height:  flagHeight,
		Store:   store,
		Session: os.Getenv("USER"),
		Logger:  logger,
	})
	if err != nil {
		logger.Error("game stopped", "error", err)
		return err
	}
	return nil
}
