package philo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/philo/internal/core"
	"github.com/vovakirdan/philo/internal/reflex"
	"github.com/vovakirdan/philo/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  40,
		ScreenH:  12,
		TickRate: 60,
		Seed:     seed,
	}
}

func tap() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionTap)
	return in
}

// stepUntil steps with empty input until cond holds, failing after limit ticks.
func stepUntil(t *testing.T, g *Game, limit int, cond func(reflex.Snapshot) bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond(g.Engine().State()) {
			return
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatalf("condition not reached after %d ticks", limit)
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"philo", "philo_color"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestVariants(t *testing.T) {
	tests := []struct {
		name   string
		game   *Game
		target reflex.TargetMode
	}{
		{"black", New(), reflex.TargetBlack},
		{"color", NewColor(), reflex.TargetRandom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.game.Reset(testConfig(1))
			if got := tt.game.Engine().Variant().Target; got != tt.target {
				t.Errorf("Target = %q, expected %q", got, tt.target)
			}
		})
	}
}

func TestPresetsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { SetConfigPath("") })

	tests := []struct {
		name     string
		yaml     string
		expected float64
	}{
		{"valid preset", "variants:\n  black:\n    max_time_for_colors: 8.0\n", 8.0},
		{"invalid preset falls back", "variants:\n  black:\n    max_time_per_color: -1\n", 20.0},
		{"unparsable file falls back", "variants: [\n", 20.0},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			SetConfigPath(path)

			g := New()
			g.Reset(testConfig(3))
			if g.Engine() == nil {
				t.Fatal("Engine() = nil after Reset")
			}
			if got := g.Engine().Variant().MaxTimeForColors; got != tc.expected {
				t.Errorf("MaxTimeForColors = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFirstTapStartsRound(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))

	if label := g.Canvas().Label(); label != "Tap when the screen turns black" {
		t.Errorf("idle label = %q", label)
	}

	g.Step(tap())

	snap := g.Engine().State()
	if snap.Phase != reflex.PhaseWaiting {
		t.Errorf("Phase = %v, expected waiting", snap.Phase)
	}
	if label := g.Canvas().Label(); label != "Hits: 0" {
		t.Errorf("label = %q, expected %q", label, "Hits: 0")
	}
}

func TestHitAndMiss(t *testing.T) {
	g := New()
	g.Reset(testConfig(99))
	g.Step(tap())

	// The longest possible wait is 20s.
	stepUntil(t, g, 25*60, func(s reflex.Snapshot) bool { return s.TouchValid })

	if !g.Canvas().Background().Equal(core.ColorBlack) {
		t.Errorf("background = %v, expected black while the target is up", g.Canvas().Background())
	}

	res := g.Step(tap())
	if res.State.Score != 1 {
		t.Errorf("Score = %d, expected 1", res.State.Score)
	}
	if label := g.Canvas().Label(); label != "Hits: 1" {
		t.Errorf("label = %q, expected %q", label, "Hits: 1")
	}

	// Tap again straight away; the next target cannot be up yet unless the
	// drawn wait fit in a single tick.
	if g.Engine().State().Phase == reflex.PhaseWaiting {
		res = g.Step(tap())
		if !res.State.GameOver {
			t.Fatal("early tap should end the round")
		}
		if res.State.Score != 1 {
			t.Errorf("Score after loss = %d, expected lost score 1", res.State.Score)
		}
		if label := g.Canvas().Label(); label != "You Lost: 1" {
			t.Errorf("label = %q, expected %q", label, "You Lost: 1")
		}
	}
}

func TestTimeoutEndsRound(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))
	g.Step(tap())

	stepUntil(t, g, 30*60, func(s reflex.Snapshot) bool { return s.Lost })

	if !g.State().GameOver {
		t.Error("GameOver = false after the window closed")
	}
	if g.Engine().State().Phase != reflex.PhaseIdle {
		t.Errorf("Phase = %v, expected idle", g.Engine().State().Phase)
	}
}

func TestPauseFreezesTime(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	g.Step(tap())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("Paused = false after pause toggle")
	}

	before := g.Engine().State()
	for i := 0; i < 600; i++ {
		g.Step(tap())
	}
	after := g.Engine().State()

	if after.Clock != before.Clock {
		t.Errorf("Clock moved while paused: %v -> %v", before.Clock, after.Clock)
	}
	if after.Phase != before.Phase {
		t.Errorf("Phase changed while paused: %v -> %v", before.Phase, after.Phase)
	}

	res = g.Step(pause)
	if res.State.Paused {
		t.Error("Paused = true after second toggle")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (reflex.Snapshot, int) {
		g := NewColor()
		g.Reset(testConfig(12345))
		for i := 0; i < 3000; i++ {
			in := core.NewInputFrame()
			if i%97 == 0 {
				in.Set(core.ActionTap)
			}
			g.Step(in)
		}
		return g.Engine().State(), g.ticks
	}

	s1, t1 := run()
	s2, t2 := run()
	if s1 != s2 {
		t.Errorf("Determinism failed: %+v != %+v", s1, s2)
	}
	if t1 != t2 {
		t.Errorf("Determinism failed: ticks %d != %d", t1, t2)
	}
}

func TestObserversSurviveReset(t *testing.T) {
	g := New()
	started := 0
	g.Subscribe(reflex.ObserverFunc(func(ev reflex.Event) {
		if ev.Kind == reflex.EventRoundStarted {
			started++
		}
	}))

	g.Reset(testConfig(1))
	g.Step(tap())
	g.Reset(testConfig(2))
	g.Step(tap())

	if started != 2 {
		t.Errorf("got %d round_started events, expected 2", started)
	}
}

func TestRender(t *testing.T) {
	g := NewColor()
	g.Reset(testConfig(8))

	screen := core.NewScreen(40, 12)
	g.Render(screen)

	if !screen.Background().Equal(g.Engine().State().Target) {
		t.Errorf("idle background = %v, expected target swatch %v", screen.Background(), g.Engine().State().Target)
	}
	if !strings.Contains(screen.String(), "Tap when this color comes back") {
		t.Errorf("screen missing instructions:\n%s", screen.String())
	}
	if !strings.Contains(screen.String(), "tap to start") {
		t.Errorf("screen missing start hint:\n%s", screen.String())
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Errorf("screen missing pause overlay:\n%s", screen.String())
	}
}
