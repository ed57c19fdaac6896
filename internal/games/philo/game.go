// Package philo registers the reflex cabinets with the arcade.
// Two games share one engine: "philo" asks for a tap on black and
// "philo_color" asks for a tap on a color picked each round.
package philo

import (
	"github.com/vovakirdan/philo/internal/config"
	"github.com/vovakirdan/philo/internal/core"
	"github.com/vovakirdan/philo/internal/reflex"
	"github.com/vovakirdan/philo/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a reflex.Engine to the fixed-tick registry.Game contract.
type Game struct {
	id      string
	title   string
	variant string // preset name in the reflex config

	runtime   core.RuntimeConfig
	engine    *reflex.Engine
	canvas    *Canvas
	observers []reflex.Observer
	paused    bool
	ticks     int
}

// New creates the black-target game.
func New() *Game {
	return &Game{id: "philo", title: "Philo: Tap on Black", variant: "black"}
}

// NewColor creates the random-target game.
func NewColor() *Game {
	return &Game{id: "philo_color", title: "Philo: Tap the Color", variant: "color"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset builds a fresh engine from the configured variant and cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.paused = false
	g.ticks = 0
	g.canvas = NewCanvas()

	rng := reflex.NewRandomSource(cfg.Seed)
	engine, err := reflex.NewEngine(g.loadVariant(), g.canvas, rng)
	if err != nil {
		// The canvas is never nil and built-in variants always validate.
		engine, _ = reflex.NewEngine(g.builtIn(), g.canvas, rng)
	}
	for _, o := range g.observers {
		engine.Subscribe(o)
	}
	g.engine = engine
}

// loadVariant reads the preset for this game. It returns the built-in
// constants when the config is missing or does not validate, so the
// result always builds an engine.
func (g *Game) loadVariant() reflex.Variant {
	presets, err := config.Load(configPath)
	if err != nil {
		return g.builtIn()
	}
	v, err := presets.Variant(g.variant)
	if err != nil {
		return g.builtIn()
	}
	return v
}

// builtIn returns the shipped constants of this game's variant. They
// always validate.
func (g *Game) builtIn() reflex.Variant {
	if g.variant == "color" {
		return reflex.VariantColor()
	}
	return reflex.VariantBlack()
}

// Step advances the game by one tick. Taps are judged in order before
// time moves on; a paused game ignores taps and does not advance.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(g.runtime)
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for i := 0; i < in.Count(core.ActionTap); i++ {
		g.engine.OnTap()
	}

	dt := g.runtime.TickSeconds()
	g.engine.Advance(dt)
	g.canvas.Tick(dt)
	g.ticks++

	return core.StepResult{State: g.State()}
}

// Render draws the background color, the label and any overlay.
func (g *Game) Render(dst *core.Screen) {
	if g.engine == nil {
		return
	}
	g.canvas.Draw(dst)

	fg := g.canvas.Background().Contrast()
	mid := dst.Height() / 2
	switch {
	case g.paused:
		dst.DrawTextCentered(mid-2, "PAUSED", fg)
		dst.DrawTextCentered(mid+2, "Press P to resume", fg)
	case g.engine.State().Phase == reflex.PhaseIdle:
		dst.DrawTextCentered(mid+2, "tap to start", g.canvas.LabelColor())
	}
}

// State returns the score and flags. After a loss the lost score is
// reported until the next round starts.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	snap := g.engine.State()
	score := snap.Score
	if snap.Lost {
		score = snap.LastScore
	}
	return core.GameState{
		Score:    score,
		GameOver: snap.Lost,
		Paused:   g.paused,
	}
}

// Subscribe registers an observer for round events. Observers survive Reset.
func (g *Game) Subscribe(o reflex.Observer) {
	if o == nil {
		return
	}
	g.observers = append(g.observers, o)
	if g.engine != nil {
		g.engine.Subscribe(o)
	}
}

// Engine returns the running engine, or nil before the first Reset.
func (g *Game) Engine() *reflex.Engine {
	return g.engine
}

// Canvas returns the display the engine draws through.
func (g *Game) Canvas() *Canvas {
	return g.canvas
}

func init() {
	registry.Register("philo", func() registry.Game {
		return New()
	})
	registry.Register("philo_color", func() registry.Game {
		return NewColor()
	})
}
