// Package config provides YAML-based timing presets for the reflex cabinets.
package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/philo/internal/reflex"
)

// ErrInvalidConfig is returned when a loaded configuration cannot run a game.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Preset sources that are not files.
const (
	SourceEmbedded = "embedded"
	SourceBuiltIn  = "built-in"
)

// ReflexConfig contains every variant preset, keyed by variant name.
type ReflexConfig struct {
	Variants map[string]VariantConfig `yaml:"variants"`

	// Source is the file the presets were read from, or SourceEmbedded
	// or SourceBuiltIn.
	Source string `yaml:"-"`
}

// FromFile reports whether the presets came from a file on disk and so
// may differ from the shipped timings.
func (c ReflexConfig) FromFile() bool {
	return c.Source != "" && c.Source != SourceEmbedded && c.Source != SourceBuiltIn
}

// VariantConfig defines the timing of one variant.
type VariantConfig struct {
	Title               string  `yaml:"title"`
	Target              string  `yaml:"target"` // "black" or "random"
	MaxTimeForColors    float64 `yaml:"max_time_for_colors"`
	MaxTimePerColor     float64 `yaml:"max_time_per_color"`
	MaxPressDisplayTime float64 `yaml:"max_press_display_time"`
	MinDisplayTime      float64 `yaml:"min_display_time"`
	MinTargetDistance   float64 `yaml:"min_target_distance"`
}

// Variant converts the preset into engine constants.
func (vc VariantConfig) Variant(name string) reflex.Variant {
	return reflex.Variant{
		Name:                name,
		Target:              reflex.TargetMode(vc.Target),
		MaxTimeForColors:    vc.MaxTimeForColors,
		MaxTimePerColor:     vc.MaxTimePerColor,
		MaxPressDisplayTime: vc.MaxPressDisplayTime,
		MinDisplayTime:      vc.MinDisplayTime,
		MinTargetDistance:   vc.MinTargetDistance,
	}
}

// Variant returns the named variant, or an error if it is missing or invalid.
func (c ReflexConfig) Variant(name string) (reflex.Variant, error) {
	vc, ok := c.Variants[name]
	if !ok {
		return reflex.Variant{}, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, name)
	}
	v := vc.Variant(name)
	if err := v.Validate(); err != nil {
		return reflex.Variant{}, fmt.Errorf("%w: variant %q: %w", ErrInvalidConfig, name, err)
	}
	return v, nil
}

// Names returns the variant names in sorted order.
func (c ReflexConfig) Names() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every variant.
func (c ReflexConfig) Validate() error {
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no variants defined", ErrInvalidConfig)
	}
	for _, name := range c.Names() {
		if _, err := c.Variant(name); err != nil {
			return err
		}
	}
	return nil
}
