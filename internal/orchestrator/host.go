package orchestrator

import (
	"fmt"

	"github.com/edward-ap/miniplayer/internal/menu"
	"github.com/edward-ap/miniplayer/internal/session"
)

// WindowID identifies a session and its window. IDs start at 1 and are never
// reused within a process; the zero value means "no window".
type WindowID uint64

// WindowRequest asks the host to create a window for a new session.
type WindowRequest struct {
	ID    WindowID
	Title string
	Zoom  float64
}

// Host is the windowing layer. The orchestrator calls it from its own
// goroutine; implementations marshal onto the UI thread as needed and report
// back by posting messages to the Loop.
type Host interface {
	// OpenWindow creates the window for req.ID and posts Opened when shown.
	OpenWindow(req WindowRequest)
	// CloseWindow destroys the window; the host posts Closed afterwards.
	CloseWindow(id WindowID)
	// Present renders v in the window of id.
	Present(id WindowID, v session.View)
	ShowAbout()
	// PickFile shows the open dialog and posts FilePicked with the result.
	PickFile()
	// Exit terminates the application.
	Exit()
}

// MenuSource is the polled side of the main menu.
type MenuSource interface {
	PollAction() (menu.Action, bool)
}

// FilePickTarget says where the next picked file goes: a fresh window, or an
// existing session when that session is still empty.
type FilePickTarget struct {
	id WindowID
}

// NewWindowTarget sends the picked file to a new window.
func NewWindowTarget() FilePickTarget { return FilePickTarget{} }

// IntoSession sends the picked file to session id.
func IntoSession(id WindowID) FilePickTarget { return FilePickTarget{id: id} }

// Session returns the target session, if any.
func (t FilePickTarget) Session() (WindowID, bool) { return t.id, t.id != 0 }

func (t FilePickTarget) String() string {
	if t.id == 0 {
		return "new-window"
	}
	return fmt.Sprintf("session(%d)", t.id)
}

// Shortcut is a key command aimed at the window that received the key.
type Shortcut int

const (
	ShortcutNone Shortcut = iota
	ShortcutPlayPause
	ShortcutSeekBack
	ShortcutSeekForward
	ShortcutVolumeUp
	ShortcutVolumeDown
	ShortcutNewWindow
	ShortcutOpen
	ShortcutClose
	ShortcutZoomIn
	ShortcutZoomOut
)

var shortcutNames = [...]string{
	ShortcutNone:        "none",
	ShortcutPlayPause:   "play-pause",
	ShortcutSeekBack:    "seek-back",
	ShortcutSeekForward: "seek-forward",
	ShortcutVolumeUp:    "volume-up",
	ShortcutVolumeDown:  "volume-down",
	ShortcutNewWindow:   "new-window",
	ShortcutOpen:        "open",
	ShortcutClose:       "close",
	ShortcutZoomIn:      "zoom-in",
	ShortcutZoomOut:     "zoom-out",
}

func (s Shortcut) String() string {
	if s >= 0 && int(s) < len(shortcutNames) {
		return shortcutNames[s]
	}
	return fmt.Sprintf("shortcut(%d)", int(s))
}
