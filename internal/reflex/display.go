package reflex

import "github.com/vovakirdan/philo/internal/core"

// Display is what the engine draws through. Calls are made synchronously
// from OnTap and OnFrame, never concurrently.
type Display interface {
	SetBackgroundColor(c core.Color)
	SetLabelText(text string)
	PlayFadeOut()
	PlayFadeIn()
}

// EventKind tags a round event.
type EventKind int

const (
	EventRoundStarted EventKind = iota
	EventTargetShown
	EventHit
	EventRoundLost
)

// String returns the event name used in logs and the journal.
func (k EventKind) String() string {
	switch k {
	case EventRoundStarted:
		return "round_started"
	case EventTargetShown:
		return "target_shown"
	case EventHit:
		return "hit"
	case EventRoundLost:
		return "round_lost"
	default:
		return "unknown"
	}
}

// LossReason tells how a round ended.
type LossReason string

const (
	LossEarlyTap LossReason = "early_tap" // tapped while a non-target color was up
	LossTimeout  LossReason = "timeout"   // the valid window expired without a tap
)

// Event describes something that happened in a round.
type Event struct {
	Kind   EventKind
	At     float64 // engine game time, seconds
	Score  int     // score after the event; for losses, the score that was lost
	Target core.Color

	Reaction float64    // EventHit: seconds between the target appearing and the tap
	Window   float64    // EventTargetShown: length of the valid window
	Reason   LossReason // EventRoundLost only
}

// Observer receives round events after the engine has applied them.
type Observer interface {
	OnRoundEvent(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// OnRoundEvent calls f(ev).
func (f ObserverFunc) OnRoundEvent(ev Event) {
	f(ev)
}
