package reflex

// TimerEvent is the outcome of a RoundTimer tick.
type TimerEvent int

const (
	TimerNone        TimerEvent = iota
	TimerTargetDue              // the wait is over: show the target
	TimerWindowClosed           // the target was up for the whole window without a tap
)

// RoundTimer turns elapsed time into phase transitions.
//
// SecondsUntilValid counts down to the moment the target appears. Once the
// target is up it is reset to zero and keeps counting down, so a negative
// value is the time the target has been visible.
type RoundTimer struct {
	SecondsUntilValid    float64
	ValidDisplayDuration float64

	variant Variant
	rng     RandomSource
}

func newRoundTimer(rng RandomSource, v Variant) RoundTimer {
	return RoundTimer{variant: v, rng: rng}
}

// Arm draws a new wait in [0, MaxTimeForColors).
func (t *RoundTimer) Arm() {
	t.SecondsUntilValid = t.rng.NextUniform() * t.variant.MaxTimeForColors
	t.ValidDisplayDuration = 0
}

// OpenWindow starts the valid window: the countdown is pinned to zero and
// the window length is drawn, never shorter than MinDisplayTime.
func (t *RoundTimer) OpenWindow() {
	t.SecondsUntilValid = 0
	t.ValidDisplayDuration = t.rng.NextUniform() * t.variant.MaxPressDisplayTime
	if t.ValidDisplayDuration < t.variant.MinDisplayTime {
		t.ValidDisplayDuration = t.variant.MinDisplayTime
	}
}

// Clear zeroes both timers.
func (t *RoundTimer) Clear() {
	t.SecondsUntilValid = 0
	t.ValidDisplayDuration = 0
}

// Tick subtracts dt while a round runs and reports at most one transition.
func (t *RoundTimer) Tick(p Phase, dt float64) TimerEvent {
	if p != PhaseWaiting && p != PhaseTargetVisible {
		return TimerNone
	}

	t.SecondsUntilValid -= dt

	if p == PhaseWaiting && t.SecondsUntilValid <= 0 {
		return TimerTargetDue
	}
	if p == PhaseTargetVisible && t.SecondsUntilValid <= -t.ValidDisplayDuration {
		return TimerWindowClosed
	}
	return TimerNone
}

// Shown returns how long the target has been up, in seconds.
func (t *RoundTimer) Shown() float64 {
	if t.SecondsUntilValid >= 0 {
		return 0
	}
	return -t.SecondsUntilValid
}
