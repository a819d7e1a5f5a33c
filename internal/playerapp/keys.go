package playerapp

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/miniplayer/internal/orchestrator"
)

// shortcutForKey maps an unmodified key to a transport shortcut.
func shortcutForKey(name fyne.KeyName) orchestrator.Shortcut {
	switch name {
	case fyne.KeySpace:
		return orchestrator.ShortcutPlayPause
	case fyne.KeyLeft:
		return orchestrator.ShortcutSeekBack
	case fyne.KeyRight:
		return orchestrator.ShortcutSeekForward
	case fyne.KeyUp:
		return orchestrator.ShortcutVolumeUp
	case fyne.KeyDown:
		return orchestrator.ShortcutVolumeDown
	}
	return orchestrator.ShortcutNone
}

type commandKey struct {
	key fyne.KeyName
	mod fyne.KeyModifier
	sc  orchestrator.Shortcut
}

// commandKeys lists the Cmd (macOS) or Ctrl (elsewhere) combinations every
// player window registers. "+" is reachable as "=", "+" or Shift+"=".
func commandKeys() []commandKey {
	mod := fyne.KeyModifierShortcutDefault
	return []commandKey{
		{fyne.KeyN, mod, orchestrator.ShortcutNewWindow},
		{fyne.KeyO, mod, orchestrator.ShortcutOpen},
		{fyne.KeyW, mod, orchestrator.ShortcutClose},
		{fyne.KeyEqual, mod, orchestrator.ShortcutZoomIn},
		{fyne.KeyEqual, mod | fyne.KeyModifierShift, orchestrator.ShortcutZoomIn},
		{fyne.KeyPlus, mod, orchestrator.ShortcutZoomIn},
		{fyne.KeyMinus, mod, orchestrator.ShortcutZoomOut},
	}
}

// registerCommandKeys installs commandKeys on c and routes them to send.
func registerCommandKeys(c fyne.Canvas, send func(orchestrator.Shortcut)) {
	for _, ck := range commandKeys() {
		sc := ck.sc
		c.AddShortcut(&desktop.CustomShortcut{KeyName: ck.key, Modifier: ck.mod}, func(fyne.Shortcut) {
			send(sc)
		})
	}
}

// shortcutCatcher is an invisible focusable widget that keeps receiving keys
// while buttons and sliders are used with the mouse.
type shortcutCatcher struct {
	widget.BaseWidget
	onKey func(*fyne.KeyEvent)
}

func newShortcutCatcher(handler func(*fyne.KeyEvent)) *shortcutCatcher {
	c := &shortcutCatcher{onKey: handler}
	c.ExtendBaseWidget(c)
	return c
}

func (s *shortcutCatcher) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(color.NRGBA{})
	rect.SetMinSize(fyne.NewSize(1, 1))
	return widget.NewSimpleRenderer(rect)
}

func (s *shortcutCatcher) MinSize() fyne.Size { return fyne.NewSize(1, 1) }

func (s *shortcutCatcher) FocusGained() {}

func (s *shortcutCatcher) FocusLost() {}

func (s *shortcutCatcher) TypedKey(ev *fyne.KeyEvent) {
	if s.onKey != nil && ev != nil {
		s.onKey(ev)
	}
}

func (s *shortcutCatcher) TypedRune(rune) {}
