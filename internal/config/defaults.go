package config

import (
	_ "embed"

	"github.com/vovakirdan/philo/internal/reflex"
)

//go:embed defaults/reflex.yaml
var defaultReflexYAML []byte

// DefaultReflexConfig returns the built-in presets.
func DefaultReflexConfig() ReflexConfig {
	return ReflexConfig{
		Variants: map[string]VariantConfig{
			"black": fromVariant("Philo: Tap on Black", reflex.VariantBlack()),
			"color": fromVariant("Philo: Tap the Color", reflex.VariantColor()),
		},
		Source: SourceBuiltIn,
	}
}

func fromVariant(title string, v reflex.Variant) VariantConfig {
	return VariantConfig{
		Title:               title,
		Target:              string(v.Target),
		MaxTimeForColors:    v.MaxTimeForColors,
		MaxTimePerColor:     v.MaxTimePerColor,
		MaxPressDisplayTime: v.MaxPressDisplayTime,
		MinDisplayTime:      v.MinDisplayTime,
		MinTargetDistance:   v.MinTargetDistance,
	}
}
