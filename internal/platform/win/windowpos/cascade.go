// Package windowpos reads and sets native window coordinates, which fyne does
// not expose, and computes where successive player windows open.
package windowpos

import "fyne.io/fyne/v2"

const (
	// CascadeStep is the offset in pixels between successive windows.
	CascadeStep = 28
	// cascadeWrap restarts the cascade so windows never walk off screen.
	cascadeWrap = 8
)

// Cascade returns the position of the n-th window (0-based) of a cascade that
// starts at x, y.
func Cascade(x, y, n int) (int, int) {
	if n < 0 {
		n = 0
	}
	off := (n % cascadeWrap) * CascadeStep
	return x + off, y + off
}

// PlaceCascaded moves w to slot n of the cascade starting at x, y.
func PlaceCascaded(w fyne.Window, x, y, n int) bool {
	cx, cy := Cascade(x, y, n)
	return Move(w, cx, cy)
}
