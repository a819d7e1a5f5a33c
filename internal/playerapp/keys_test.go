package playerapp

import (
	"testing"

	"fyne.io/fyne/v2"

	"github.com/edward-ap/miniplayer/internal/orchestrator"
)

func TestShortcutForKey(t *testing.T) {
	tests := []struct {
		key  fyne.KeyName
		want orchestrator.Shortcut
	}{
		{fyne.KeySpace, orchestrator.ShortcutPlayPause},
		{fyne.KeyLeft, orchestrator.ShortcutSeekBack},
		{fyne.KeyRight, orchestrator.ShortcutSeekForward},
		{fyne.KeyUp, orchestrator.ShortcutVolumeUp},
		{fyne.KeyDown, orchestrator.ShortcutVolumeDown},
		{fyne.KeyN, orchestrator.ShortcutNone},
		{fyne.KeyReturn, orchestrator.ShortcutNone},
	}
	for _, tt := range tests {
		if got := shortcutForKey(tt.key); got != tt.want {
			t.Fatalf("shortcutForKey(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestCommandKeys(t *testing.T) {
	want := map[fyne.KeyName]orchestrator.Shortcut{
		fyne.KeyN:     orchestrator.ShortcutNewWindow,
		fyne.KeyO:     orchestrator.ShortcutOpen,
		fyne.KeyW:     orchestrator.ShortcutClose,
		fyne.KeyEqual: orchestrator.ShortcutZoomIn,
		fyne.KeyPlus:  orchestrator.ShortcutZoomIn,
		fyne.KeyMinus: orchestrator.ShortcutZoomOut,
	}
	seen := make(map[fyne.KeyName]bool)
	for _, ck := range commandKeys() {
		if ck.mod&fyne.KeyModifierShortcutDefault == 0 {
			t.Fatalf("%s registered without the shortcut modifier", ck.key)
		}
		w, ok := want[ck.key]
		if !ok {
			t.Fatalf("unexpected command key %s", ck.key)
		}
		if ck.sc != w {
			t.Fatalf("%s maps to %v, want %v", ck.key, ck.sc, w)
		}
		seen[ck.key] = true
	}
	for k := range want {
		if !seen[k] {
			t.Fatalf("missing command key %s", k)
		}
	}
}
