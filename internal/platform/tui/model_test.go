package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/philo/internal/core"
	"github.com/vovakirdan/philo/internal/games/philo"
	"github.com/vovakirdan/philo/internal/reflex"
	"github.com/vovakirdan/philo/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) (GameModel, *philo.Game) {
	t.Helper()
	game := philo.New()
	m := NewGameModel(game, GameOptions{
		Store:   store,
		Config:  core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 42},
		Session: "tester",
	})
	m.Init()
	return m, game
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm
}

func TestGameModelTapStartsRound(t *testing.T) {
	m, game := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg{})

	if phase := game.Engine().State().Phase; phase != reflex.PhaseWaiting {
		t.Errorf("Phase = %v, expected waiting after a tap", phase)
	}
}

func TestGameModelMouseTap(t *testing.T) {
	m, game := newTestModel(t, nil)

	m = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if phase := game.Engine().State().Phase; phase != reflex.PhaseWaiting {
		t.Errorf("Phase = %v, expected waiting after a click", phase)
	}
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("BackToMenu() = true while playing")
	}

	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg{})
	if !m.State().Paused {
		t.Fatal("State().Paused = false after p")
	}

	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after b while paused")
	}
}

func TestGameModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	m, game := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, expected 60x19", m.screen.Width(), m.screen.Height())
	}
	if phase := game.Engine().State().Phase; phase != reflex.PhaseWaiting {
		t.Errorf("Phase = %v, expected the round to survive a resize", phase)
	}
}

func TestGameModelRecordsJournal(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, game := newTestModel(t, store)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})

	// An immediate second tap is early unless the target came up within one tick.
	if game.Engine().State().Phase != reflex.PhaseWaiting {
		t.Skip("target appeared within the first tick")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	update(t, m, TickMsg{})

	entries, err := store.Recent("philo", 10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d journal entries, expected 1", len(entries))
	}
	if entries[0].Kind != storage.KindEarlyTap || entries[0].Session != "tester" {
		t.Errorf("entry = %+v, expected an early tap by tester", entries[0])
	}
}
