//go:build !windows

package windowpos

import "fyne.io/fyne/v2"

// Position is unavailable off Windows and always reports failure.
func Position(fyne.Window) (int, int, bool) { return 0, 0, false }

// Move is unavailable off Windows and always reports failure; the window
// manager places windows itself.
func Move(fyne.Window, int, int) bool { return false }
