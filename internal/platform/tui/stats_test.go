package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/philo/internal/registry"
	"github.com/vovakirdan/philo/internal/storage"
)

func TestStatsRows(t *testing.T) {
	games := []registry.GameInfo{
		{ID: "philo", Title: "Philo: Tap on Black"},
		{ID: "philo_color", Title: "Philo: Tap the Color"},
	}
	stats := map[string]*storage.ReactionStats{
		"philo": {
			GameID:        "philo",
			Hits:          3,
			EarlyTaps:     1,
			Timeouts:      2,
			AvgReactionMS: 287.4,
			LastPlayed:    time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC),
		},
	}

	rows := StatsRows(games, stats)
	if len(rows) != 2 {
		t.Fatalf("StatsRows() returned %d rows, expected 2", len(rows))
	}

	expected := []string{"Philo: Tap on Black", "3", "1", "2", "287ms", "Mar 04 05:06"}
	for i, want := range expected {
		if rows[0][i] != want {
			t.Errorf("rows[0][%d] = %q, expected %q", i, rows[0][i], want)
		}
	}

	if rows[1][1] != "0" || rows[1][4] != "-" {
		t.Errorf("rows[1] = %v, expected empty stats", rows[1])
	}
}

func TestStatsRowsNoHits(t *testing.T) {
	games := []registry.GameInfo{{ID: "philo", Title: "Philo"}}
	stats := map[string]*storage.ReactionStats{"philo": {GameID: "philo", Timeouts: 1}}

	rows := StatsRows(games, stats)
	if len(rows[0]) != 6 {
		t.Fatalf("row has %d columns, expected 6", len(rows[0]))
	}
	if rows[0][4] != "-" {
		t.Errorf("avg = %q, expected a dash without hits", rows[0][4])
	}
}
