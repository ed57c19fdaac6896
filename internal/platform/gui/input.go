package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input reports what the player did since the previous frame.
type Input interface {
	// Taps returns the number of taps that began this frame.
	Taps() int
	// PausePressed reports whether the pause key was pressed this frame.
	PausePressed() bool
	// QuitPressed reports whether the quit key was pressed this frame.
	QuitPressed() bool
}

// ebitenInput reads mouse, touch and keyboard state from Ebiten.
// Valid only inside Update.
type ebitenInput struct {
	touches []ebiten.TouchID
}

func (in *ebitenInput) Taps() int {
	n := 0
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		n++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		n++
	}
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	return n + len(in.touches)
}

func (in *ebitenInput) PausePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func (in *ebitenInput) QuitPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyQ)
}
