package reflex

import (
	"testing"
)

func TestCycledColorsAvoidTarget(t *testing.T) {
	v := VariantColor()
	v.MaxTimeForColors = 1e6 // keep the round waiting
	v.MaxTimePerColor = 0.05

	e, d := newTestEngine(v, NewRandomSource(11))
	e.OnTap()
	target := e.State().Target

	seen := 0
	checked := len(d.backgrounds) - 1 // the first cycled color is already up
	for range 5000 {
		e.Advance(1.0 / 60.0)
		if e.State().Phase != PhaseWaiting {
			t.Fatalf("round left waiting unexpectedly: %v", e.State().Phase)
		}
		for _, c := range d.backgrounds[checked:] {
			seen++
			if c.Equal(target) {
				t.Fatalf("cycled color %+v equals target", c)
			}
			if c.Distance(target) < v.MinTargetDistance && !c.Equal(target.Rotated()) {
				t.Fatalf("cycled color %+v is too close to target %+v", c, target)
			}
		}
		checked = len(d.backgrounds)
	}

	if seen < 100 {
		t.Errorf("only %d colors cycled, expected many", seen)
	}
}

func TestCyclerFallbackWhenDrawsCollide(t *testing.T) {
	rng := &stubSource{fallback: 0.5} // every draw is the same gray
	e, d := newTestEngine(VariantColor(), rng)

	target := e.State().Target
	if !target.Equal(drawColor(&stubSource{fallback: 0.5})) {
		t.Fatalf("target = %+v, expected gray from the stub", target)
	}

	e.OnTap()

	got := d.lastBackground()
	if got.Equal(target) {
		t.Fatal("cycler showed the target color")
	}
	if !got.Equal(target.Rotated()) {
		t.Errorf("background = %+v, expected fallback %+v", got, target.Rotated())
	}
}

func TestBlackVariantDoesNotExclude(t *testing.T) {
	rng := &stubSource{fallback: 0} // draws black
	e, d := newTestEngine(VariantBlack(), rng)
	rng.push(0.5) // wait = 10s

	e.OnTap()

	if e.State().Phase != PhaseWaiting {
		t.Fatalf("Phase = %v, expected waiting", e.State().Phase)
	}
	if !d.lastBackground().Equal(e.State().Target) {
		t.Errorf("background = %+v, expected the unfiltered black draw", d.lastBackground())
	}
}

func TestCyclerDelayWithinBounds(t *testing.T) {
	v := VariantBlack()
	rng := &stubSource{fallback: 0.5}
	rng.push(0.9)              // wait = 18s
	rng.push(0.1, 0.2, 0.3, 0) // first color, delay = full 7s
	e, d := newTestEngine(v, rng)
	e.OnTap()
	shown := len(d.backgrounds)

	e.Advance(6.99)
	if len(d.backgrounds) != shown {
		t.Fatal("color changed before its delay elapsed")
	}
	e.Advance(0.02)
	if len(d.backgrounds) != shown+1 {
		t.Fatalf("color changes = %d, expected one more at 7s", len(d.backgrounds)-shown)
	}
}

func TestStaleColorChangeIsIgnored(t *testing.T) {
	rng := &stubSource{fallback: 0.5}
	rng.push(0.9) // wait = 18s
	e, d := newTestEngine(VariantBlack(), rng)
	e.OnTap()
	shown := len(d.backgrounds)

	// Leave the waiting phase without stopping the cycler.
	e.round.Phase = PhaseIdle
	e.Advance(10)

	if len(d.backgrounds) != shown {
		t.Error("a color change fired outside the waiting phase")
	}
	if e.cycler.Active() {
		t.Error("chain should end after a stale firing")
	}
	if e.sched.Len() != 0 {
		t.Errorf("scheduler has %d tasks, expected none", e.sched.Len())
	}
}

func TestCyclerRestartReplacesPendingChange(t *testing.T) {
	sched := NewScheduler()
	host := &fakeHost{p: PhaseWaiting}
	c := newColorCycler(host, sched, &stubSource{fallback: 0.5}, VariantBlack())

	c.Start()
	c.Start()
	if sched.Len() != 1 {
		t.Errorf("scheduler has %d tasks, expected 1", sched.Len())
	}

	c.Stop()
	if sched.Len() != 0 || c.Active() {
		t.Error("Stop should cancel the pending change")
	}
	if c.produced != 2 {
		t.Errorf("produced = %d, expected 2", c.produced)
	}
}
