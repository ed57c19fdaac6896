// philo is a reflex arcade for the terminal: tap when the screen turns black,
// or when the round's color comes back.
//
// Usage:
//
//	philo list              - List available games
//	philo play <game>       - Play a game
//	philo menu              - Start menu to pick games interactively
//	philo serve             - Start SSH server for remote play
//	philo stats [game]      - Show the reaction journal
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set journal path (default: ~/.philo/journal.db)
//	--config <path>     - Load timing presets from a YAML file
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/philo/internal/config"
	"github.com/vovakirdan/philo/internal/games/philo"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "philo",
	Short: "Philo - tap on the right color",
	Long: `Philo is a reflex game. The screen cycles through random colors;
tap while the target color is up, before it goes away.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  stats    - View the reaction journal

Examples:
  philo list
  philo play philo
  philo play philo_color --config ./reflex.yaml
  philo menu
  philo serve --ssh :2222
  philo stats philo`,
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.philo/journal.db", "Path to reaction journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom timing presets YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// applyGlobalFlags validates global flags before any command runs.
func applyGlobalFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := parseLevel(flagLogLevel); err != nil {
		return err
	}
	presets, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logPresets(newLogger("philo"), presets)
	philo.SetConfigPath(flagConfig)
	return nil
}
