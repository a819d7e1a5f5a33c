// Package menu builds the application main menu and turns item clicks into
// actions the event loop can poll without blocking.
package menu

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Action is a menu command.
type Action int

const (
	About Action = iota
	NewWindow
	Open
	ZoomIn
	ZoomOut
)

var actionIDs = [...]string{
	About:     "about",
	NewWindow: "new_window",
	Open:      "open",
	ZoomIn:    "zoom_in",
	ZoomOut:   "zoom_out",
}

// ID returns the stable identifier attached to the menu item.
func (a Action) ID() string {
	if a < 0 || int(a) >= len(actionIDs) {
		return ""
	}
	return actionIDs[a]
}

func (a Action) String() string {
	if id := a.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseID maps a menu item identifier back to its Action.
func ParseID(id string) (Action, bool) {
	for a, s := range actionIDs {
		if s == id {
			return Action(a), true
		}
	}
	return 0, false
}

// EventBuffer bounds the clicks waiting to be polled.
const EventBuffer = 64

var (
	// ErrNoApp is returned by Install when there is no application.
	ErrNoApp = errors.New("menu: no application")
	// ErrNoDesktop is returned when the driver has no desktop main menu.
	ErrNoDesktop = errors.New("menu: driver does not support a main menu")
)

// Native is the installed main menu.
type Native struct {
	main   *fyne.MainMenu
	events chan string

	mu       sync.Mutex
	attached map[fyne.Window]struct{}
}

// Install builds the main menu for app. It fails when app is nil or its
// driver is not a desktop driver.
func Install(app fyne.App) (*Native, error) {
	if app == nil {
		return nil, ErrNoApp
	}
	if _, ok := app.Driver().(desktop.Driver); !ok {
		return nil, ErrNoDesktop
	}
	return build(), nil
}

func build() *Native {
	n := &Native{
		events:   make(chan string, EventBuffer),
		attached: make(map[fyne.Window]struct{}),
	}
	file := fyne.NewMenu("File",
		n.item("New Window", NewWindow),
		n.item("Open…", Open),
	)
	view := fyne.NewMenu("View",
		n.item("Zoom In", ZoomIn),
		n.item("Zoom Out", ZoomOut),
	)
	help := fyne.NewMenu("Help",
		n.item("About MiniPlayer", About),
	)
	n.main = fyne.NewMainMenu(file, view, help)
	return n
}

// item keys are handled by each window's canvas, so menu items carry no
// Shortcut of their own; one key press must not produce two commands.
func (n *Native) item(label string, a Action) *fyne.MenuItem {
	id := a.ID()
	return fyne.NewMenuItem(label, func() { n.push(id) })
}

func (n *Native) push(id string) {
	select {
	case n.events <- id:
	default:
		log.Printf("menu: event buffer full, dropping %q", id)
	}
}

// Main returns the menu definition.
func (n *Native) Main() *fyne.MainMenu { return n.main }

// Attach shows the menu on w. Attaching the same window twice does nothing.
func (n *Native) Attach(w fyne.Window) {
	if w == nil {
		return
	}
	n.mu.Lock()
	if _, ok := n.attached[w]; ok {
		n.mu.Unlock()
		return
	}
	n.attached[w] = struct{}{}
	n.mu.Unlock()
	w.SetMainMenu(n.main)
}

// Detach forgets w so the map does not keep closed windows alive.
func (n *Native) Detach(w fyne.Window) {
	n.mu.Lock()
	delete(n.attached, w)
	n.mu.Unlock()
}

// PollAction returns the next clicked action without blocking. It reports
// false when nothing is pending or the pending event has an unknown id.
func (n *Native) PollAction() (Action, bool) {
	select {
	case id := <-n.events:
		return ParseID(id)
	default:
		return 0, false
	}
}
