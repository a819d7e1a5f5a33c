// Package orchestrator owns the registry of player sessions and drives them
// from a fixed-rate tick.
//
// An Orchestrator is not safe for concurrent use. Loop runs it on a single
// goroutine and everything else talks to it by posting messages.
package orchestrator

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/edward-ap/miniplayer/internal/diag"
	"github.com/edward-ap/miniplayer/internal/menu"
	"github.com/edward-ap/miniplayer/internal/openfile"
	"github.com/edward-ap/miniplayer/internal/playback"
	"github.com/edward-ap/miniplayer/internal/session"
)

const (
	// TickInterval is the reconcile and dispatch period.
	TickInterval = 16 * time.Millisecond
	// SeekStep is the arrow-key seek distance in seconds.
	SeekStep = 5.0
	// VolumeStep is the arrow-key volume change in percent.
	VolumeStep = 10.0
	// DefaultStartupDialogDelay leaves time for the platform to hand over the
	// files the app was launched with before the open dialog is shown.
	DefaultStartupDialogDelay = 400 * time.Millisecond
)

// ExitOnLastWindowClose is the platform default: macOS apps stay running
// without windows.
var ExitOnLastWindowClose = runtime.GOOS != "darwin"

// Options configures an Orchestrator. Zero values are usable.
type Options struct {
	// Factory creates playback engines; nil runs every session engineless.
	Factory playback.Factory
	Clock   session.Clock

	ExitOnLastWindowClose bool
	DefaultZoom           float64

	// InitialVolume is applied to each loaded engine when HasInitialVolume.
	InitialVolume    float64
	HasInitialVolume bool

	// InstallMenu and InstallIcon are attempted once, on the first tick.
	InstallMenu func() (MenuSource, error)
	InstallIcon func() error
	// OpenFile receives paths from the platform open-file hook.
	OpenFile *openfile.Bridge

	Sampler            *diag.MemorySampler
	StartupDialogDelay time.Duration
}

// Orchestrator is the multi-window shell state.
type Orchestrator struct {
	host  Host
	opts  Options
	clock session.Clock

	sessions map[WindowID]*session.Session
	nextID   WindowID
	focused  WindowID
	target   FilePickTarget

	menu          MenuSource
	menuAttempted bool
	iconAttempted bool
	hookAttempted bool
	globalError   string

	startupDue     time.Time
	startupPending bool
	exiting        bool
}

// New returns an orchestrator with no sessions.
func New(host Host, opts Options) *Orchestrator {
	clock := opts.Clock
	if clock == nil {
		clock = session.SystemClock{}
	}
	if opts.DefaultZoom <= 0 {
		opts.DefaultZoom = 1
	}
	if opts.StartupDialogDelay <= 0 {
		opts.StartupDialogDelay = DefaultStartupDialogDelay
	}
	return &Orchestrator{
		host:     host,
		opts:     opts,
		clock:    clock,
		sessions: make(map[WindowID]*session.Session),
	}
}

// Len returns the number of live sessions.
func (o *Orchestrator) Len() int { return len(o.sessions) }

// Session returns the session of id, or nil.
func (o *Orchestrator) Session(id WindowID) *session.Session { return o.sessions[id] }

// Focused returns the focused window, or 0 when there is none.
func (o *Orchestrator) Focused() WindowID { return o.focused }

// GlobalError returns the last shell-wide failure message.
func (o *Orchestrator) GlobalError() string { return o.globalError }

// PendingTarget returns where the next picked file will go.
func (o *Orchestrator) PendingTarget() FilePickTarget { return o.target }

// Open creates a session, loading path when it is not empty, focuses it and
// asks the host for its window.
func (o *Orchestrator) Open(path string) WindowID {
	o.nextID++
	id := o.nextID

	ctrl := playback.NewController(o.opts.Factory)
	if o.opts.HasInitialVolume {
		ctrl.SetInitialVolume(o.opts.InitialVolume)
	}
	s := session.New(ctrl, o.clock)
	s.Zoom = o.opts.DefaultZoom
	if path != "" {
		o.load(id, s, path)
	}
	o.sessions[id] = s
	o.focused = id
	o.host.OpenWindow(WindowRequest{ID: id, Title: s.Title, Zoom: s.Zoom})
	o.logMemory("window_opened")
	return id
}

func (o *Orchestrator) load(id WindowID, s *session.Session, path string) {
	if err := s.Load(path); err != nil {
		log.Printf("orchestrator: window %d: %v", id, err)
	}
}

// WindowOpened marks the session of id active.
func (o *Orchestrator) WindowOpened(id WindowID) {
	if s, ok := o.sessions[id]; ok && s.Phase == session.Opening {
		s.Phase = session.Active
	}
}

// Focus makes id the focused window when it is live.
func (o *Orchestrator) Focus(id WindowID) {
	if _, ok := o.sessions[id]; ok {
		o.focused = id
	}
}

// CloseWindow handles a close request: the session is shut down and removed
// before the host is asked to destroy the window.
func (o *Orchestrator) CloseWindow(id WindowID) {
	if !o.remove(id) {
		return
	}
	o.host.CloseWindow(id)
}

// WindowClosed handles the host's notice that a window is gone. When it was
// the last one and the exit policy allows it, the host is told to exit.
func (o *Orchestrator) WindowClosed(id WindowID) {
	o.remove(id)
	if len(o.sessions) == 0 && o.opts.ExitOnLastWindowClose && !o.exiting {
		o.exiting = true
		o.host.Exit()
	}
}

func (o *Orchestrator) remove(id WindowID) bool {
	s, ok := o.sessions[id]
	if !ok {
		return false
	}
	s.Close()
	delete(o.sessions, id)
	if o.focused == id {
		o.focused = o.anySession()
	}
	o.logMemory("window_closed")
	return true
}

// anySession returns the lowest live id, or 0.
func (o *Orchestrator) anySession() WindowID {
	var best WindowID
	for id := range o.sessions {
		if best == 0 || id < best {
			best = id
		}
	}
	return best
}

// Tick runs one reconcile and dispatch cycle.
func (o *Orchestrator) Tick() {
	o.ensureIntegrations()

	for _, s := range o.sessions {
		s.Reconcile()
	}
	o.logMemoryTick()

	if o.opts.OpenFile != nil {
		for _, p := range o.opts.OpenFile.TakeQueued() {
			o.handleExternalPath(p)
		}
	}

	if o.menu != nil {
		for {
			a, ok := o.menu.PollAction()
			if !ok {
				break
			}
			o.HandleMenuAction(a)
		}
	}

	o.maybeStartupDialog()
	o.present()
}

// ensureIntegrations attempts each platform integration once. Failures are
// shown to the user and never retried.
func (o *Orchestrator) ensureIntegrations() {
	if !o.menuAttempted {
		o.menuAttempted = true
		if o.opts.InstallMenu != nil {
			m, err := o.opts.InstallMenu()
			if err != nil {
				o.setGlobalError(fmt.Sprintf("Failed to install native menu: %v", err))
			} else {
				o.menu = m
			}
		}
	}
	if !o.iconAttempted {
		o.iconAttempted = true
		if o.opts.InstallIcon != nil {
			if err := o.opts.InstallIcon(); err != nil {
				o.setGlobalError(fmt.Sprintf("Failed to set app icon: %v", err))
			}
		}
	}
	o.ensureOpenFileHook()
}

func (o *Orchestrator) ensureOpenFileHook() {
	if o.hookAttempted {
		return
	}
	o.hookAttempted = true
	if o.opts.OpenFile != nil {
		if err := o.opts.OpenFile.EnsureInstalled(); err != nil {
			o.setGlobalError(fmt.Sprintf("Failed to install file-open handler: %v", err))
		}
	}
}

func (o *Orchestrator) setGlobalError(msg string) {
	log.Printf("orchestrator: %s", msg)
	o.globalError = msg
}

func (o *Orchestrator) present() {
	for id, s := range o.sessions {
		o.host.Present(id, s.View(o.globalError))
	}
}

// HandleMenuAction dispatches a main menu command.
func (o *Orchestrator) HandleMenuAction(a menu.Action) {
	switch a {
	case menu.About:
		o.host.ShowAbout()
	case menu.NewWindow:
		o.pick(NewWindowTarget())
	case menu.Open:
		o.pickForFocused()
	case menu.ZoomIn:
		if s := o.sessions[o.focused]; s != nil {
			s.ZoomBy(session.ZoomStep)
		}
	case menu.ZoomOut:
		if s := o.sessions[o.focused]; s != nil {
			s.ZoomBy(-session.ZoomStep)
		}
	}
}

// HandleShortcut applies a key command to the window that produced it.
func (o *Orchestrator) HandleShortcut(id WindowID, sc Shortcut) {
	s, ok := o.sessions[id]
	if !ok {
		return
	}
	switch sc {
	case ShortcutPlayPause:
		s.Playback.PlayPause()
	case ShortcutSeekBack:
		s.Playback.SeekBy(-SeekStep)
	case ShortcutSeekForward:
		s.Playback.SeekBy(SeekStep)
	case ShortcutVolumeUp:
		s.SetVolumePercent(s.VolumePercent + VolumeStep)
	case ShortcutVolumeDown:
		s.SetVolumePercent(s.VolumePercent - VolumeStep)
	case ShortcutNewWindow:
		o.focused = id
		o.pick(NewWindowTarget())
	case ShortcutOpen:
		o.focused = id
		o.pickForFocused()
	case ShortcutClose:
		o.CloseWindow(id)
	case ShortcutZoomIn:
		s.ZoomBy(session.ZoomStep)
	case ShortcutZoomOut:
		s.ZoomBy(-session.ZoomStep)
	}
}

func (o *Orchestrator) pickForFocused() {
	if _, ok := o.sessions[o.focused]; ok {
		o.pick(IntoSession(o.focused))
		return
	}
	o.pick(NewWindowTarget())
}

func (o *Orchestrator) pick(t FilePickTarget) {
	o.target = t
	o.host.PickFile()
}

// FilePicked consumes the pending target. An empty path means the dialog was
// cancelled.
func (o *Orchestrator) FilePicked(path string) {
	t := o.target
	o.target = NewWindowTarget()
	if path == "" {
		return
	}
	if id, ok := t.Session(); ok {
		if s := o.sessions[id]; s != nil && s.IsEmpty() {
			o.load(id, s, path)
			return
		}
	}
	o.Open(path)
}

// handleExternalPath routes a file handed over by the platform: into the
// focused session when it is empty, otherwise into a new window. It also
// cancels a scheduled startup dialog.
func (o *Orchestrator) handleExternalPath(path string) {
	o.startupPending = false
	if s := o.sessions[o.focused]; s != nil && s.IsEmpty() {
		o.load(o.focused, s, path)
		return
	}
	o.Open(path)
}

// SetTimeline applies a timeline slider drag.
func (o *Orchestrator) SetTimeline(id WindowID, percent float64) {
	if s := o.sessions[id]; s != nil {
		s.SetTimelinePercent(percent)
	}
}

// SetVolume applies a volume slider drag.
func (o *Orchestrator) SetVolume(id WindowID, percent float64) {
	if s := o.sessions[id]; s != nil {
		s.SetVolumePercent(percent)
	}
}

// PlayPause toggles playback of id.
func (o *Orchestrator) PlayPause(id WindowID) {
	if s := o.sessions[id]; s != nil {
		s.Playback.PlayPause()
	}
}

// Reset rewinds id.
func (o *Orchestrator) Reset(id WindowID) {
	if s := o.sessions[id]; s != nil {
		s.Playback.Reset()
	}
}

// Shuffle re-rolls the track order of id.
func (o *Orchestrator) Shuffle(id WindowID) {
	if s := o.sessions[id]; s != nil {
		s.Playback.Shuffle()
	}
}

// Boot installs the open-file hook and opens the first window. With no
// initial path, platforms that keep running without windows wait briefly for
// launch files and otherwise show the open dialog; other platforms open an
// empty window.
func (o *Orchestrator) Boot(initialPath string) {
	// the hook must be in place before the platform hands over launch files
	o.ensureOpenFileHook()
	if initialPath != "" {
		o.Open(initialPath)
		return
	}
	if o.opts.ExitOnLastWindowClose {
		o.Open("")
		return
	}
	var queued []string
	if o.opts.OpenFile != nil {
		queued = o.opts.OpenFile.TakeQueued()
	}
	if len(queued) == 0 {
		o.startupDue = o.clock.Now().Add(o.opts.StartupDialogDelay)
		o.startupPending = true
		return
	}
	for _, p := range queued {
		o.handleExternalPath(p)
	}
}

// StartupDialogPending reports whether the startup open dialog is scheduled.
func (o *Orchestrator) StartupDialogPending() bool { return o.startupPending }

func (o *Orchestrator) maybeStartupDialog() {
	if !o.startupPending || o.clock.Now().Before(o.startupDue) {
		return
	}
	o.startupPending = false
	for _, s := range o.sessions {
		if !s.IsEmpty() {
			return
		}
	}
	o.pickForFocused()
}

// Shutdown releases every session. It is used on process exit.
func (o *Orchestrator) Shutdown() {
	for id, s := range o.sessions {
		s.Close()
		delete(o.sessions, id)
	}
	o.focused = 0
}

func (o *Orchestrator) loadedCount() int {
	n := 0
	for _, s := range o.sessions {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

func (o *Orchestrator) logMemory(reason string) {
	if o.opts.Sampler == nil {
		return
	}
	o.opts.Sampler.LogEvent(reason, len(o.sessions), o.loadedCount())
}

func (o *Orchestrator) logMemoryTick() {
	if o.opts.Sampler == nil {
		return
	}
	o.opts.Sampler.MaybeLogPeriodic(len(o.sessions), o.loadedCount())
}
