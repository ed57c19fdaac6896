package gui

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/philo/internal/reflex"
)

type fakeInput struct {
	taps  int
	pause bool
	quit  bool
}

func (f *fakeInput) Taps() int {
	n := f.taps
	f.taps = 0
	return n
}

func (f *fakeInput) PausePressed() bool {
	p := f.pause
	f.pause = false
	return p
}

func (f *fakeInput) QuitPressed() bool {
	return f.quit
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestApp(t *testing.T) (*App, *fakeInput, *fakeClock) {
	t.Helper()
	in := &fakeInput{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	app, err := newApp(Options{GameID: "philo", Variant: reflex.VariantBlack(), Seed: 11}, in, clock.now)
	if err != nil {
		t.Fatalf("newApp() failed: %v", err)
	}
	return app, in, clock
}

func TestAppRejectsInvalidVariant(t *testing.T) {
	_, err := newApp(Options{Variant: reflex.Variant{}}, &fakeInput{}, time.Now)
	if !errors.Is(err, reflex.ErrInvalidVariant) {
		t.Errorf("newApp() error = %v, expected ErrInvalidVariant", err)
	}
}

func TestAppTapStartsRound(t *testing.T) {
	app, in, clock := newTestApp(t)

	app.Update()
	in.taps = 1
	clock.advance(16 * time.Millisecond)
	app.Update()

	if phase := app.Engine().State().Phase; phase != reflex.PhaseWaiting {
		t.Errorf("Phase = %v, expected waiting", phase)
	}
}

func TestAppUsesWallClock(t *testing.T) {
	app, in, clock := newTestApp(t)

	app.Update()
	in.taps = 1
	app.Update()

	clock.advance(1500 * time.Millisecond)
	app.Update()

	if got := app.Engine().State().Clock; got < 1.49 || got > 1.51 {
		t.Errorf("Clock = %v, expected 1.5", got)
	}
}

func TestAppPauseStopsTime(t *testing.T) {
	app, in, clock := newTestApp(t)

	app.Update()
	in.taps = 1
	app.Update()

	in.pause = true
	clock.advance(time.Second)
	app.Update()
	if !app.Paused() {
		t.Fatal("Paused() = false after pause key")
	}
	before := app.Engine().State()

	clock.advance(30 * time.Second)
	in.taps = 3
	app.Update()
	after := app.Engine().State()

	if after.Clock != before.Clock || after.Phase != before.Phase {
		t.Errorf("state moved while paused: %+v -> %+v", before, after)
	}

	// Only the time since the last paused frame counts after resuming.
	in.pause = true
	clock.advance(16 * time.Millisecond)
	app.Update()
	if got := app.Engine().State().Clock; math.Abs(got-(before.Clock+0.016)) > 1e-6 {
		t.Errorf("Clock after resume = %v, expected %v", got, before.Clock+0.016)
	}
}

// startRound taps on the first frame and returns the drawn wait.
func startRound(t *testing.T, app *App, in *fakeInput) float64 {
	t.Helper()
	app.Update()
	in.taps = 1
	app.Update()
	st := app.Engine().State()
	if st.Phase != reflex.PhaseWaiting {
		t.Fatalf("Phase = %v, expected waiting", st.Phase)
	}
	return st.SecondsUntilValid
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestAppTapOnFrameShowingTargetIsEarly(t *testing.T) {
	app, in, clock := newTestApp(t)
	wait := startRound(t, app, in)

	clock.advance(seconds(wait - 0.01))
	app.Update()

	// The tap lands on the frame whose delta crosses the threshold; the
	// player was still looking at a cycled color.
	in.taps = 1
	clock.advance(20 * time.Millisecond)
	app.Update()

	st := app.Engine().State()
	if !st.Lost {
		t.Errorf("Lost = false, expected the tap to be judged early")
	}
	if st.Score != 0 {
		t.Errorf("Score = %d, expected 0", st.Score)
	}
}

func TestAppTapOnLastFrameOfWindowHits(t *testing.T) {
	app, in, clock := newTestApp(t)
	wait := startRound(t, app, in)

	clock.advance(seconds(wait + 0.01))
	app.Update()
	st := app.Engine().State()
	if st.Phase != reflex.PhaseTargetVisible {
		t.Fatalf("Phase = %v, expected target visible", st.Phase)
	}

	// SecondsUntilValid is 0 on the frame the target appears.
	clock.advance(seconds(st.ValidDisplayDuration - 0.01))
	app.Update()

	in.taps = 1
	clock.advance(20 * time.Millisecond)
	app.Update()

	st = app.Engine().State()
	if st.Lost {
		t.Fatal("Lost = true, expected a hit before the window closed")
	}
	if st.Score != 1 {
		t.Errorf("Score = %d, expected 1", st.Score)
	}
	if st.Phase != reflex.PhaseWaiting {
		t.Errorf("Phase = %v, expected waiting for the next target", st.Phase)
	}
}

func TestAppQuit(t *testing.T) {
	app, in, _ := newTestApp(t)
	in.quit = true
	if err := app.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() = %v, expected ebiten.Termination", err)
	}
}

func TestLayoutFollowsWindow(t *testing.T) {
	app, _, _ := newTestApp(t)
	w, h := app.Layout(640, 360)
	if w != 640 || h != 360 {
		t.Errorf("Layout() = %dx%d, expected 640x360", w, h)
	}
}
