package philo

import (
	"github.com/vovakirdan/philo/internal/core"
)

// Label animation constants, in seconds and alpha.
const (
	FadeDuration = 0.4  // length of a fade in or out
	DimAlpha     = 0.35 // label alpha after fading out; the hit counter stays readable
)

// Canvas is a reflex.Display that keeps what should be on screen:
// one background color and one centered label with an animated alpha.
// Hosts advance the animation with Tick and read the result back.
type Canvas struct {
	background core.Color
	label      string

	alpha    float64
	from     float64
	to       float64
	elapsed  float64
	duration float64
}

// NewCanvas creates a canvas with a fully visible label on black.
func NewCanvas() *Canvas {
	return &Canvas{alpha: 1, from: 1, to: 1}
}

// SetBackgroundColor replaces the background.
func (c *Canvas) SetBackgroundColor(col core.Color) {
	c.background = col
}

// SetLabelText replaces the label text.
func (c *Canvas) SetLabelText(text string) {
	c.label = text
}

// PlayFadeOut dims the label.
func (c *Canvas) PlayFadeOut() {
	c.fadeTo(DimAlpha)
}

// PlayFadeIn brings the label back to full strength.
func (c *Canvas) PlayFadeIn() {
	c.fadeTo(1)
}

// fadeTo starts a new fade from the current alpha, replacing any running one.
func (c *Canvas) fadeTo(alpha float64) {
	c.from = c.alpha
	c.to = alpha
	c.elapsed = 0
	c.duration = FadeDuration
}

// Tick advances the label animation by dt seconds.
func (c *Canvas) Tick(dt float64) {
	if !c.Fading() || dt <= 0 {
		return
	}
	c.elapsed += dt
	t := core.ClampF(c.elapsed/c.duration, 0, 1)
	c.alpha = c.from + (c.to-c.from)*t
}

// Fading reports whether a fade is still running.
func (c *Canvas) Fading() bool {
	return c.elapsed < c.duration
}

// Background returns the current background color.
func (c *Canvas) Background() core.Color {
	return c.background
}

// Label returns the current label text.
func (c *Canvas) Label() string {
	return c.label
}

// Alpha returns the label opacity in [0, 1].
func (c *Canvas) Alpha() float64 {
	return c.alpha
}

// LabelColor returns the label color with its alpha baked in, so hosts
// without transparency can draw it as an opaque color.
func (c *Canvas) LabelColor() core.Color {
	return c.background.Blend(c.background.Contrast(), c.alpha)
}

// Draw paints the canvas into a screen buffer: background plus the label
// centered vertically.
func (c *Canvas) Draw(dst *core.Screen) {
	dst.SetBackground(c.background)
	dst.Clear()
	if c.label == "" || c.alpha <= 0 {
		return
	}
	dst.DrawTextCentered(dst.Height()/2, c.label, c.LabelColor())
}
