package reflex

import "github.com/vovakirdan/philo/internal/core"

// maxColorRedraws bounds rejection sampling against the target color.
const maxColorRedraws = 16

// cycleHost is the part of the engine the cycler needs.
type cycleHost interface {
	phase() Phase
	targetColor() core.Color
	showColor(c core.Color)
}

// ColorCycler swaps the background to a new random color after random delays
// for as long as the round is waiting for the target.
//
// Each change schedules the next one. The chain ends either through Stop,
// which cancels the pending change, or when a change fires outside
// PhaseWaiting, in which case it does nothing and does not reschedule.
type ColorCycler struct {
	host     cycleHost
	sched    *Scheduler
	rng      RandomSource
	variant  Variant
	active   bool
	pending  TaskID
	produced int
}

func newColorCycler(host cycleHost, sched *Scheduler, rng RandomSource, v Variant) *ColorCycler {
	return &ColorCycler{host: host, sched: sched, rng: rng, variant: v}
}

// Start shows a fresh non-target color right away and schedules the next change.
// A change already pending is replaced.
func (c *ColorCycler) Start() {
	c.sched.Cancel(c.pending)
	c.pending = 0
	c.active = true
	c.change()
}

// Stop ends the chain.
func (c *ColorCycler) Stop() {
	c.active = false
	c.sched.Cancel(c.pending)
	c.pending = 0
}

// Active reports whether a change is scheduled.
func (c *ColorCycler) Active() bool {
	return c.active && c.sched.Pending(c.pending)
}

func (c *ColorCycler) fire() {
	c.pending = 0
	if !c.active || c.host.phase() != PhaseWaiting {
		c.active = false
		return
	}
	c.change()
}

func (c *ColorCycler) change() {
	c.host.showColor(c.nextColor())
	c.produced++

	// (1-u) maps [0,1) onto (0,1], so a color always stays up for some time.
	delay := (1 - c.rng.NextUniform()) * c.variant.MaxTimePerColor
	c.pending = c.sched.After(delay, c.fire)
}

// nextColor draws a display color. When the variant excludes the target,
// draws equal to it (or closer than MinTargetDistance) are rejected; after
// maxColorRedraws failures the target with its red channel rotated is used,
// which is never equal to the target.
func (c *ColorCycler) nextColor() core.Color {
	if !c.variant.ExcludesTarget() {
		return drawColor(c.rng)
	}

	target := c.host.targetColor()
	for range maxColorRedraws {
		color := drawColor(c.rng)
		if c.acceptable(color, target) {
			return color
		}
	}
	return target.Rotated()
}

func (c *ColorCycler) acceptable(color, target core.Color) bool {
	if color.Equal(target) {
		return false
	}
	if c.variant.MinTargetDistance > 0 && color.Distance(target) < c.variant.MinTargetDistance {
		return false
	}
	return true
}
