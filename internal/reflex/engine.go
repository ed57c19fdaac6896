// Package reflex implements the reflex game: the background cycles through
// random colors and the player has to tap while the target color is up.
//
// The Engine is a plain state machine. A host feeds it frame timestamps
// (OnFrame) and taps (OnTap) from a single goroutine and renders through the
// Display it was built with. Nothing in this package blocks, sleeps or spawns
// goroutines; deferred color changes live on a Scheduler advanced by frames.
package reflex

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/philo/internal/core"
)

// ErrNilDisplay is returned when an engine is built without a display.
var ErrNilDisplay = errors.New("reflex: display is required")

// Phase is the state of the round state machine.
type Phase int

const (
	PhaseIdle          Phase = iota // before the first tap or after a loss
	PhaseWaiting                    // cycling non-target colors; a tap loses
	PhaseTargetVisible              // target color up; a tap scores
	PhaseOver                       // set while a loss is being applied
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseTargetVisible:
		return "target_visible"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Round is the mutable state of the current round.
type Round struct {
	Phase  Phase
	Score  int
	Target core.Color
	Timer  RoundTimer

	shownAt float64 // game time at which the target appeared
}

// TouchValid reports whether a tap right now would score.
func (r Round) TouchValid() bool {
	return r.Phase == PhaseTargetVisible
}

// Snapshot is a read-only view of the engine for hosts and tests.
type Snapshot struct {
	Phase                Phase
	Score                int
	LastScore            int  // score of the last lost round
	Lost                 bool // a round was lost and no new one has started
	TouchValid           bool
	Target               core.Color
	Current              core.Color
	SecondsUntilValid    float64
	ValidDisplayDuration float64
	Cycling              bool
	Clock                float64
}

// Engine is the reflex game state machine.
type Engine struct {
	variant   Variant
	display   Display
	rng       RandomSource
	sched     *Scheduler
	cycler    *ColorCycler
	round     Round
	current   core.Color
	lastScore int
	lost      bool
	observers []Observer

	clock         float64 // game time in seconds, advanced by frames
	lastTimestamp float64
	hasTimestamp  bool
}

// NewEngine builds an engine for the variant and puts it in the idle phase.
// A nil rng is replaced by a time-seeded source.
func NewEngine(v Variant, display Display, rng RandomSource) (*Engine, error) {
	if display == nil {
		return nil, ErrNilDisplay
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandomSource(0)
	}

	e := &Engine{
		variant: v,
		display: display,
		rng:     rng,
		sched:   NewScheduler(),
	}
	e.cycler = newColorCycler(e, e.sched, rng, v)
	e.round.Timer = newRoundTimer(rng, v)
	e.Reset()
	return e, nil
}

// Variant returns the constants the engine runs with.
func (e *Engine) Variant() Variant {
	return e.variant
}

// Subscribe registers an observer for round events.
func (e *Engine) Subscribe(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// Reset abandons any round in progress and shows the instructions.
// The frame clock is forgotten, so the next frame has zero delta.
func (e *Engine) Reset() {
	e.cycler.Stop()
	e.sched.Reset()
	e.round.Timer.Clear()
	e.round.Score = 0
	e.lastScore = 0
	e.lost = false
	e.clock = 0
	e.hasTimestamp = false
	e.enterIdle(e.variant.Instructions())
}

// OnTap judges a tap against the current phase.
func (e *Engine) OnTap() {
	switch e.round.Phase {
	case PhaseIdle:
		e.startRound()
	case PhaseTargetVisible:
		e.hit()
	case PhaseWaiting:
		e.lose(LossEarlyTap)
	}
}

// OnFrame is called once per rendered frame with a monotonic timestamp in
// seconds. The first frame, paused frames and frames whose timestamp went
// backwards contribute no elapsed time.
func (e *Engine) OnFrame(timestamp float64, paused bool) {
	dt := 0.0
	if e.hasTimestamp && !paused && timestamp > e.lastTimestamp {
		dt = timestamp - e.lastTimestamp
	}
	e.lastTimestamp = timestamp
	e.hasTimestamp = true

	e.Advance(dt)
}

// Advance moves the game forward by dt seconds. Hosts with a fixed
// simulation step call it directly instead of OnFrame.
func (e *Engine) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	e.clock += dt

	switch e.round.Timer.Tick(e.round.Phase, dt) {
	case TimerTargetDue:
		e.showTarget()
	case TimerWindowClosed:
		e.lose(LossTimeout)
	}

	e.sched.Advance(dt)
}

// State returns a snapshot of the engine.
func (e *Engine) State() Snapshot {
	return Snapshot{
		Phase:                e.round.Phase,
		Score:                e.round.Score,
		LastScore:            e.lastScore,
		Lost:                 e.lost,
		TouchValid:           e.round.TouchValid(),
		Target:               e.round.Target,
		Current:              e.current,
		SecondsUntilValid:    e.round.Timer.SecondsUntilValid,
		ValidDisplayDuration: e.round.Timer.ValidDisplayDuration,
		Cycling:              e.cycler.Active(),
		Clock:                e.clock,
	}
}

func (e *Engine) startRound() {
	e.round.Score = 0
	e.lost = false
	e.display.PlayFadeOut()
	e.display.SetLabelText(hitsLabel(0))

	e.round.Phase = PhaseWaiting
	e.round.Timer.Arm()
	e.cycler.Start()
	e.emit(Event{Kind: EventRoundStarted})
}

func (e *Engine) hit() {
	reaction := e.clock - e.round.shownAt

	e.round.Score++
	e.display.SetLabelText(hitsLabel(e.round.Score))

	e.round.Phase = PhaseWaiting
	e.round.Timer.Arm()
	e.cycler.Start()
	e.emit(Event{Kind: EventHit, Reaction: reaction})
}

func (e *Engine) showTarget() {
	e.round.Phase = PhaseTargetVisible
	e.cycler.Stop()
	e.showColor(e.round.Target)
	e.round.Timer.OpenWindow()
	e.round.shownAt = e.clock
	e.emit(Event{Kind: EventTargetShown, Window: e.round.Timer.ValidDisplayDuration})
}

func (e *Engine) lose(reason LossReason) {
	e.round.Phase = PhaseOver
	e.cycler.Stop()
	e.round.Timer.Clear()

	score := e.round.Score
	// Emitted before the score is cleared so observers see what was lost.
	e.emit(Event{Kind: EventRoundLost, Reason: reason})

	e.lastScore = score
	e.lost = true
	e.round.Score = 0
	e.enterIdle(fmt.Sprintf("You Lost: %d", score))
	e.display.PlayFadeIn()
}

// enterIdle shows the next target as the idle background so the player
// knows what to wait for. The random-target variant draws it here.
func (e *Engine) enterIdle(label string) {
	e.round.Phase = PhaseIdle
	if e.variant.Target == TargetRandom {
		e.round.Target = drawColor(e.rng)
	} else {
		e.round.Target = core.ColorBlack
	}
	e.showColor(e.round.Target)
	e.display.SetLabelText(label)
}

func (e *Engine) emit(ev Event) {
	ev.At = e.clock
	ev.Target = e.round.Target
	ev.Score = e.round.Score
	for _, o := range e.observers {
		o.OnRoundEvent(ev)
	}
}

func hitsLabel(score int) string {
	return fmt.Sprintf("Hits: %d", score)
}

// cycleHost implementation.

func (e *Engine) phase() Phase {
	return e.round.Phase
}

func (e *Engine) targetColor() core.Color {
	return e.round.Target
}

func (e *Engine) showColor(c core.Color) {
	e.current = c
	e.display.SetBackgroundColor(c)
}
