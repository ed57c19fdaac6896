package core

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with channels in [0, 1].
// Two colors are equal only if every channel is exactly equal.
type Color struct {
	R, G, B float64
}

// Predefined colors used by the arcade.
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{1, 1, 1}
	ColorGray  = Color{0.55, 0.55, 0.55}
)

// RGB creates a color from channel values, clamping each to [0, 1].
func RGB(r, g, b float64) Color {
	return Color{R: ClampF(r, 0, 1), G: ClampF(g, 0, 1), B: ClampF(b, 0, 1)}
}

// Equal reports whether two colors are identical.
func (c Color) Equal(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Hex returns the color as a "#rrggbb" string for terminal styling.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// RGBA8 returns the color as 8-bit channels, for graphical hosts.
func (c Color) RGBA8() (r, g, b, a uint8) {
	cr, cg, cb := c.colorful().Clamped().RGB255()
	return cr, cg, cb, 0xff
}

// Blend linearly mixes c toward other by t (0 = c, 1 = other).
func (c Color) Blend(other Color, t float64) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return other
	}
	mixed := c.colorful().BlendRgb(other.colorful(), t)
	return Color{R: mixed.R, G: mixed.G, B: mixed.B}
}

// Distance returns the perceptual CIE76 distance between two colors.
func (c Color) Distance(other Color) float64 {
	return c.colorful().DistanceCIE76(other.colorful())
}

// Luminance returns the relative luminance used to pick readable label colors.
func (c Color) Luminance() float64 {
	_, _, l := c.colorful().Hcl()
	return l
}

// Contrast returns black or white, whichever reads better on c.
func (c Color) Contrast() Color {
	if c.Luminance() > 0.55 {
		return ColorBlack
	}
	return ColorWhite
}

// Rotated returns c with its red channel shifted by half the range.
// The result never equals c.
func (c Color) Rotated() Color {
	return Color{R: math.Mod(c.R+0.5, 1), G: c.G, B: c.B}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
