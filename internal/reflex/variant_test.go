package reflex

import (
	"errors"
	"testing"
)

func TestVariantDefaults(t *testing.T) {
	tests := []struct {
		v                          Variant
		forColors, perColor, floor float64
		excludes                   bool
	}{
		{VariantBlack(), 20.0, 7.0, 0.5, false},
		{VariantColor(), 14.0, 3.0, 0.6, true},
	}

	for _, tc := range tests {
		t.Run(tc.v.Name, func(t *testing.T) {
			if err := tc.v.Validate(); err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if tc.v.MaxTimeForColors != tc.forColors || tc.v.MaxTimePerColor != tc.perColor {
				t.Errorf("timings = %v/%v, expected %v/%v",
					tc.v.MaxTimeForColors, tc.v.MaxTimePerColor, tc.forColors, tc.perColor)
			}
			if tc.v.MaxPressDisplayTime != 5.0 {
				t.Errorf("MaxPressDisplayTime = %v, expected 5.0", tc.v.MaxPressDisplayTime)
			}
			if tc.v.MinDisplayTime != tc.floor {
				t.Errorf("MinDisplayTime = %v, expected %v", tc.v.MinDisplayTime, tc.floor)
			}
			if tc.v.ExcludesTarget() != tc.excludes {
				t.Errorf("ExcludesTarget() = %v, expected %v", tc.v.ExcludesTarget(), tc.excludes)
			}
		})
	}
}

func TestVariantValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *Variant)
	}{
		{"unknown target", func(v *Variant) { v.Target = "purple" }},
		{"zero wait", func(v *Variant) { v.MaxTimeForColors = 0 }},
		{"negative per color", func(v *Variant) { v.MaxTimePerColor = -1 }},
		{"zero press time", func(v *Variant) { v.MaxPressDisplayTime = 0 }},
		{"zero floor", func(v *Variant) { v.MinDisplayTime = 0 }},
		{"floor above max", func(v *Variant) { v.MinDisplayTime = 6 }},
		{"negative distance", func(v *Variant) { v.MinTargetDistance = -0.1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := VariantBlack()
			tc.mutate(&v)
			if err := v.Validate(); !errors.Is(err, ErrInvalidVariant) {
				t.Errorf("Validate() = %v, expected ErrInvalidVariant", err)
			}
		})
	}
}

func TestSeededSourceDeterminism(t *testing.T) {
	a := NewRandomSource(12345)
	b := NewRandomSource(12345)

	for i := range 100 {
		va, vb := a.NextUniform(), b.NextUniform()
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d = %v, outside [0, 1)", i, va)
		}
	}

	if a.Seed() != 12345 {
		t.Errorf("Seed() = %d, expected 12345", a.Seed())
	}
}
