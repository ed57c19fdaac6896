package reflex

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/philo/internal/core"
)

// ErrInvalidVariant is returned when a variant's timing constants cannot run a game.
var ErrInvalidVariant = errors.New("reflex: invalid variant")

// TargetMode selects how the target color is chosen.
type TargetMode string

const (
	// TargetBlack always uses black as the target.
	TargetBlack TargetMode = "black"
	// TargetRandom draws a fresh target color for every round and keeps
	// it out of the cycling colors.
	TargetRandom TargetMode = "random"
)

// Variant holds the timing constants of one flavor of the game. All times are seconds.
type Variant struct {
	Name   string
	Target TargetMode

	MaxTimeForColors    float64 // upper bound of the wait before the target appears
	MaxTimePerColor     float64 // upper bound of how long one cycled color stays up
	MaxPressDisplayTime float64 // upper bound of the valid window
	MinDisplayTime      float64 // floor of the valid window

	// MinTargetDistance rejects cycled colors perceptually closer than this
	// (CIE76) to the target. Zero keeps plain equality rejection.
	MinTargetDistance float64
}

// VariantBlack is the classic game: tap when the screen turns black.
func VariantBlack() Variant {
	return Variant{
		Name:                "black",
		Target:              TargetBlack,
		MaxTimeForColors:    20.0,
		MaxTimePerColor:     7.0,
		MaxPressDisplayTime: 5.0,
		MinDisplayTime:      0.5,
	}
}

// VariantColor asks the player to tap on a per-round press color.
func VariantColor() Variant {
	return Variant{
		Name:                "color",
		Target:              TargetRandom,
		MaxTimeForColors:    14.0,
		MaxTimePerColor:     3.0,
		MaxPressDisplayTime: 5.0,
		MinDisplayTime:      0.6,
		MinTargetDistance:   0.15,
	}
}

// ExcludesTarget reports whether cycled colors must differ from the target.
func (v Variant) ExcludesTarget() bool {
	return v.Target == TargetRandom
}

// Instructions returns the label shown before the first round.
func (v Variant) Instructions() string {
	if v.Target == TargetRandom {
		return "Tap when this color comes back"
	}
	return "Tap when the screen turns black"
}

// Validate checks that the constants describe a playable game.
func (v Variant) Validate() error {
	switch v.Target {
	case TargetBlack, TargetRandom:
	default:
		return fmt.Errorf("%w: unknown target mode %q", ErrInvalidVariant, v.Target)
	}
	if v.MaxTimeForColors <= 0 {
		return fmt.Errorf("%w: max time for colors must be positive, got %v", ErrInvalidVariant, v.MaxTimeForColors)
	}
	if v.MaxTimePerColor <= 0 {
		return fmt.Errorf("%w: max time per color must be positive, got %v", ErrInvalidVariant, v.MaxTimePerColor)
	}
	if v.MaxPressDisplayTime <= 0 {
		return fmt.Errorf("%w: max press display time must be positive, got %v", ErrInvalidVariant, v.MaxPressDisplayTime)
	}
	if v.MinDisplayTime <= 0 || v.MinDisplayTime > v.MaxPressDisplayTime {
		return fmt.Errorf("%w: min display time must be in (0, %v], got %v",
			ErrInvalidVariant, v.MaxPressDisplayTime, v.MinDisplayTime)
	}
	if v.MinTargetDistance < 0 {
		return fmt.Errorf("%w: min target distance must not be negative", ErrInvalidVariant)
	}
	return nil
}

// drawColor draws an opaque color with uniform channels.
func drawColor(rng RandomSource) core.Color {
	r := rng.NextUniform()
	g := rng.NextUniform()
	b := rng.NextUniform()
	return core.Color{R: r, G: g, B: b}
}
