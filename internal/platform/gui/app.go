// Package gui runs a reflex cabinet in a window with Ebiten.
// The whole window is the background color; mouse clicks, touches and the
// space bar are taps. The engine is driven by the real frame clock.
package gui

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/vovakirdan/philo/internal/core"
	"github.com/vovakirdan/philo/internal/games/philo"
	"github.com/vovakirdan/philo/internal/reflex"
	"github.com/vovakirdan/philo/internal/storage"
)

// Window defaults.
const (
	DefaultWidth  = 480
	DefaultHeight = 800
	labelSize     = 36
	hintSize      = 16
)

// Options configures the windowed game.
type Options struct {
	GameID  string // journal key, e.g. "philo" or "philo_color"
	Title   string
	Variant reflex.Variant
	Seed    int64 // 0 = time based
	Width   int
	Height  int
	Store   *storage.Store // nil disables the journal
	Session string
	Logger  *log.Logger // nil discards logs
}

// App implements ebiten.Game around a reflex engine.
type App struct {
	engine *reflex.Engine
	canvas *philo.Canvas
	input  Input
	now    func() time.Time
	logger *log.Logger

	start     time.Time
	started   bool
	lastFrame float64
	paused    bool
	width     int
	height    int

	labelFace font.Face
	hintFace  font.Face
}

// NewApp builds the engine and the window state. Fonts are loaded here.
func NewApp(opts Options) (*App, error) {
	return newApp(opts, &ebitenInput{}, time.Now)
}

func newApp(opts Options, input Input, now func() time.Time) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	canvas := philo.NewCanvas()
	rng := reflex.NewRandomSource(opts.Seed)
	engine, err := reflex.NewEngine(opts.Variant, canvas, rng)
	if err != nil {
		return nil, fmt.Errorf("gui: %w", err)
	}
	logger.Debug("engine ready", "game", opts.GameID, "variant", opts.Variant.Name, "seed", rng.Seed())
	if opts.Store != nil {
		engine.Subscribe(storage.NewJournal(opts.Store, opts.GameID, opts.Session))
	}
	engine.Subscribe(philo.RoundLogger(logger, opts.GameID, opts.Session))

	a := &App{
		engine:    engine,
		canvas:    canvas,
		input:     input,
		now:       now,
		logger:    logger,
		width:     opts.Width,
		height:    opts.Height,
		labelFace: loadFace(labelSize, logger),
		hintFace:  loadFace(hintSize, logger),
	}
	if a.width <= 0 {
		a.width = DefaultWidth
	}
	if a.height <= 0 {
		a.height = DefaultHeight
	}
	return a, nil
}

// loadFace returns Go Bold at the given size, or the built-in bitmap face
// when the font cannot be parsed.
func loadFace(size float64, logger *log.Logger) font.Face {
	tt, err := opentype.Parse(gobold.TTF)
	if err != nil {
		logger.Warn("cannot parse font, using bitmap face", "error", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.Warn("cannot create font face, using bitmap face", "error", err)
		return basicfont.Face7x13
	}
	return face
}

// Update advances the game by one frame. Time is taken from the wall clock;
// paused frames contribute none.
func (a *App) Update() error {
	if a.input.QuitPressed() {
		return ebiten.Termination
	}

	now := a.now()
	if !a.started {
		a.start = now
		a.started = true
	}
	ts := now.Sub(a.start).Seconds()

	if a.input.PausePressed() {
		a.paused = !a.paused
	}

	// Taps are judged against the screen the player saw, before time moves
	// on. Taps made while paused are dropped.
	taps := a.input.Taps()
	if !a.paused {
		for ; taps > 0; taps-- {
			a.engine.OnTap()
		}
	}

	a.engine.OnFrame(ts, a.paused)
	if !a.paused {
		if dt := ts - a.lastFrame; dt > 0 {
			a.canvas.Tick(dt)
		}
	}
	a.lastFrame = ts
	return nil
}

// Draw fills the window with the background and draws the label.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(a.canvas.Background()))

	if label := a.canvas.Label(); label != "" {
		a.drawCentered(screen, label, a.labelFace, a.height/2, a.canvas.LabelColor())
	}

	hintColor := a.canvas.Background().Contrast()
	switch {
	case a.paused:
		a.drawCentered(screen, "PAUSED", a.hintFace, a.height/2-2*labelSize, hintColor)
	case a.engine.State().Phase == reflex.PhaseIdle:
		a.drawCentered(screen, "tap to start", a.hintFace, a.height/2+2*labelSize, a.canvas.LabelColor())
	}
}

func (a *App) drawCentered(screen *ebiten.Image, s string, face font.Face, y int, c core.Color) {
	bounds := text.BoundString(face, s)
	x := (a.width - bounds.Dx()) / 2
	text.Draw(screen, s, face, x, y+bounds.Dy()/2, toRGBA(c))
}

// Layout uses the window size as the logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width = outsideWidth
	a.height = outsideHeight
	return outsideWidth, outsideHeight
}

// Engine returns the engine, for tests and diagnostics.
func (a *App) Engine() *reflex.Engine {
	return a.engine
}

// Paused reports whether the game is paused.
func (a *App) Paused() bool {
	return a.paused
}

func toRGBA(c core.Color) color.RGBA {
	r, g, b, alpha := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(app.width, app.height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	app.logger.Info("window opened", "game", opts.GameID, "variant", opts.Variant.Name)
	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
