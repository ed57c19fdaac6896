package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/philo/internal/registry"
	"github.com/vovakirdan/philo/internal/storage"
)

// recentLimit is how many rounds `stats <game>` lists.
const recentLimit = 10

var flagClear bool

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show the reaction journal",
	Long: `Display reaction statistics per game: hits, how rounds were lost,
and the average reaction time.

With --clear, the journal of the game (or of every game) is deleted.

Examples:
  philo stats
  philo stats philo_color
  philo stats philo --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the journal instead of showing it")
}

func runStats(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'philo list' to see available games.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening reaction journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Journal cleared.")
		return
	}

	if gameID != "" {
		showGameStats(store, gameID)
		return
	}

	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	printHeader()
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			st = &storage.ReactionStats{GameID: g.ID}
		}
		printStatsRow(g.Title, st)
	}
}

// showGameStats prints one game's totals followed by its latest rounds.
func showGameStats(store *storage.Store, gameID string) {
	st, err := store.ReactionStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	printHeader()
	printStatsRow(titleOf(gameID), st)

	recent, err := store.Recent(gameID, recentLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving recent rounds: %v\n", err)
		return
	}
	if len(recent) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent rounds:")
	for _, r := range recent {
		outcome := r.Kind
		if r.Kind == storage.KindHit {
			outcome = fmt.Sprintf("hit %dms", r.ReactionMS)
		}
		fmt.Printf("  %s  %-10s  %-14s  score %d\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Session, outcome, r.Score)
	}
}

func printHeader() {
	fmt.Println("Reaction journal")
	fmt.Println()
	fmt.Printf("  %-22s  %5s  %5s  %7s  %8s\n", "Game", "Hits", "Early", "Timeout", "Avg")
	fmt.Printf("  %-22s  %5s  %5s  %7s  %8s\n", "----", "----", "-----", "-------", "---")
}

func printStatsRow(title string, st *storage.ReactionStats) {
	avg := "-"
	if st.Hits > 0 {
		avg = fmt.Sprintf("%.0fms", st.AvgReactionMS)
	}
	fmt.Printf("  %-22s  %5d  %5d  %7d  %8s\n", title, st.Hits, st.EarlyTaps, st.Timeouts, avg)
}

func titleOf(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}
