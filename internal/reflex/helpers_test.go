package reflex

import "github.com/vovakirdan/philo/internal/core"

// stubSource replays fixed values, then repeats fallback.
type stubSource struct {
	values   []float64
	fallback float64
}

func (s *stubSource) NextUniform() float64 {
	if len(s.values) == 0 {
		return s.fallback
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func (s *stubSource) push(values ...float64) {
	s.values = append(s.values, values...)
}

type recordingDisplay struct {
	backgrounds []core.Color
	labels      []string
	fadeIns     int
	fadeOuts    int
}

func (d *recordingDisplay) SetBackgroundColor(c core.Color) {
	d.backgrounds = append(d.backgrounds, c)
}

func (d *recordingDisplay) SetLabelText(text string) {
	d.labels = append(d.labels, text)
}

func (d *recordingDisplay) PlayFadeOut() { d.fadeOuts++ }
func (d *recordingDisplay) PlayFadeIn()  { d.fadeIns++ }

func (d *recordingDisplay) lastLabel() string {
	if len(d.labels) == 0 {
		return ""
	}
	return d.labels[len(d.labels)-1]
}

func (d *recordingDisplay) lastBackground() core.Color {
	if len(d.backgrounds) == 0 {
		return core.Color{}
	}
	return d.backgrounds[len(d.backgrounds)-1]
}

func newTestEngine(v Variant, rng RandomSource) (*Engine, *recordingDisplay) {
	d := &recordingDisplay{}
	e, err := NewEngine(v, d, rng)
	if err != nil {
		panic(err)
	}
	return e, d
}

type fakeHost struct {
	p      Phase
	target core.Color
	shown  []core.Color
}

func (h *fakeHost) phase() Phase            { return h.p }
func (h *fakeHost) targetColor() core.Color { return h.target }
func (h *fakeHost) showColor(c core.Color)  { h.shown = append(h.shown, c) }
