// Package playerapp is the fyne desktop host of the player: it creates one
// window per session, turns input into orchestrator messages and renders the
// views the orchestrator presents.
package playerapp

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/ncruces/zenity"

	"github.com/edward-ap/miniplayer/internal/config"
	"github.com/edward-ap/miniplayer/internal/diag"
	"github.com/edward-ap/miniplayer/internal/menu"
	"github.com/edward-ap/miniplayer/internal/openfile"
	"github.com/edward-ap/miniplayer/internal/orchestrator"
	"github.com/edward-ap/miniplayer/internal/platform/win/windowpos"
	"github.com/edward-ap/miniplayer/internal/playback"
	"github.com/edward-ap/miniplayer/internal/playback/vlcengine"
	"github.com/edward-ap/miniplayer/internal/session"
	"github.com/edward-ap/miniplayer/internal/ui"
)

const appName = "MiniPlayer"

var errNoDropSupport = errors.New("driver does not deliver dropped files")

// audioFilters is the open dialog filter.
var audioFilters = zenity.FileFilters{
	{Name: "Audio and playlists", Patterns: []string{
		"*.prot", "*.mka", "*.mp3", "*.flac", "*.wav", "*.ogg",
		"*.m4a", "*.aac", "*.opus", "*.m3u", "*.m3u8",
	}},
}

// Options are the command line inputs of the app.
type Options struct {
	InitialPath string
	Env         config.Env
}

// App implements orchestrator.Host on top of fyne.
type App struct {
	fa   fyne.App
	opts Options

	cfgMu sync.Mutex
	cfg   *config.Config

	orch   *orchestrator.Orchestrator
	loop   *orchestrator.Loop
	bridge *openfile.Bridge

	mu      sync.Mutex
	windows map[orchestrator.WindowID]*playerWindow
	opened  int
	native  *menu.Native
	icon    fyne.Resource
	deliver func(string)
	// anchor keeps the driver alive with no player windows open
	anchor fyne.Window

	pickFile func(dir string) (string, error)
}

// NewApp loads the configuration and wires the fyne app, the libVLC engine
// factory and the orchestrator together.
func NewApp(opts Options) *App {
	cfg, err := config.Load()
	if err != nil {
		log.Println("config load error:", err)
		cfg = &config.Config{
			Volume:  config.DefaultVolume,
			Zoom:    config.DefaultZoom,
			WindowW: config.DefaultWidth,
			WindowH: config.DefaultHeight,
		}
	}

	fa := app.NewWithID(config.AppID)
	fa.Settings().SetTheme(theme.DarkTheme())

	a := newApp(fa, cfg, opts, vlcengine.NewFactory())
	if !orchestrator.ExitOnLastWindowClose {
		a.anchor = fa.NewWindow(appName)
	}
	return a
}

func newApp(fa fyne.App, cfg *config.Config, opts Options, factory playback.Factory) *App {
	a := &App{
		fa:       fa,
		opts:     opts,
		cfg:      cfg,
		windows:  make(map[orchestrator.WindowID]*playerWindow),
		pickFile: selectAudioFile,
	}
	// Finder open requests and window drops feed the same queue
	hooks := openfile.Installers(openfile.Platform(), openfile.InstallerFunc(a.installDropHook))
	a.bridge = openfile.New(hooks, openfile.WithLogger(log.Default()))
	a.orch = orchestrator.New(a, orchestrator.Options{
		Factory:               factory,
		ExitOnLastWindowClose: orchestrator.ExitOnLastWindowClose,
		DefaultZoom:           cfg.Zoom,
		InitialVolume:         cfg.InitialVolume(),
		HasInitialVolume:      true,
		InstallMenu:           a.installMenu,
		InstallIcon:           a.installIcon,
		OpenFile:              a.bridge,
		Sampler:               diag.NewMemorySampler(bool(opts.Env.MemTrace)),
	})
	a.loop = orchestrator.NewLoop(a.orch)
	return a
}

// Run opens the first window, starts the orchestrator loop and enters the
// fyne event loop. Everything is released when fyne returns.
func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the loop is not running yet, so Boot may touch the orchestrator here
	a.orch.Boot(a.opts.InitialPath)
	go func() {
		if err := a.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("playerapp: loop stopped: %v", err)
		}
	}()

	a.fa.Run()

	cancel()
	<-a.loop.Done()
	a.orch.Shutdown()
	a.saveConfig()
	vlcengine.ReleaseRuntime()
}

// --- one-shot integrations -------------------------------------------------

func (a *App) installMenu() (orchestrator.MenuSource, error) {
	n, err := menu.Install(a.fa)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.native = n
	ws := a.windowsLocked()
	a.mu.Unlock()
	for _, w := range ws {
		n.Attach(w)
	}
	return n, nil
}

func (a *App) installIcon() error {
	res, err := appIcon()
	if err != nil {
		return err
	}
	a.fa.SetIcon(res)
	a.mu.Lock()
	a.icon = res
	ws := a.windowsLocked()
	a.mu.Unlock()
	for _, w := range ws {
		w.SetIcon(res)
	}
	return nil
}

// installDropHook routes files dropped on any player window to deliver.
func (a *App) installDropHook(deliver func(string)) error {
	if _, ok := a.fa.Driver().(desktop.Driver); !ok {
		return errNoDropSupport
	}
	a.mu.Lock()
	a.deliver = deliver
	ws := a.windowsLocked()
	a.mu.Unlock()
	for _, w := range ws {
		hookDrop(w, deliver)
	}
	return nil
}

func hookDrop(w fyne.Window, deliver func(string)) {
	w.SetOnDropped(func(_ fyne.Position, items []fyne.URI) {
		for _, u := range items {
			if u != nil && u.Scheme() == "file" {
				deliver(u.Path())
			}
		}
	})
}

// windowsLocked lists every fyne window, anchor included. a.mu must be held.
func (a *App) windowsLocked() []fyne.Window {
	out := make([]fyne.Window, 0, len(a.windows)+1)
	for _, pw := range a.windows {
		out = append(out, pw.w)
	}
	if a.anchor != nil {
		out = append(out, a.anchor)
	}
	return out
}

// --- orchestrator.Host -------------------------------------------------------

// OpenWindow builds and shows the window of req.ID.
func (a *App) OpenWindow(req orchestrator.WindowRequest) {
	ui.CallOnMain(func() {
		pw := newPlayerWindow(a.fa, req, a.loop.Post)
		id := req.ID
		pw.onClosed = func() { a.forget(id) }

		a.cfgMu.Lock()
		pw.w.Resize(fyne.NewSize(float32(a.cfg.WindowW), float32(a.cfg.WindowH)))
		a.cfgMu.Unlock()

		a.mu.Lock()
		a.windows[id] = pw
		slot := a.opened
		a.opened++
		native, icon, deliver := a.native, a.icon, a.deliver
		a.mu.Unlock()

		if native != nil {
			native.Attach(pw.w)
		}
		if icon != nil {
			pw.w.SetIcon(icon)
		}
		if deliver != nil {
			hookDrop(pw.w, deliver)
		}
		pw.w.Show()
		pw.focusCatcher()
		a.restorePlacement(pw.w, slot)
		a.loop.Post(orchestrator.Opened{ID: id})
	})
}

// CloseWindow remembers the placement of id and destroys its window.
func (a *App) CloseWindow(id orchestrator.WindowID) {
	pw := a.forget(id)
	if pw == nil {
		return
	}
	ui.CallOnMain(func() {
		a.capturePlacement(pw.w)
		pw.w.Close()
	})
}

// forget drops id from the registry and returns its window, if any.
func (a *App) forget(id orchestrator.WindowID) *playerWindow {
	a.mu.Lock()
	pw := a.windows[id]
	delete(a.windows, id)
	native := a.native
	a.mu.Unlock()
	if pw != nil && native != nil {
		native.Detach(pw.w)
	}
	return pw
}

// Present renders v in the window of id.
func (a *App) Present(id orchestrator.WindowID, v session.View) {
	a.mu.Lock()
	pw := a.windows[id]
	a.mu.Unlock()
	if pw == nil {
		return
	}
	ui.CallOnMain(func() { pw.present(v) })
}

// ShowAbout shows the about box without blocking the caller.
func (a *App) ShowAbout() {
	go func() {
		err := zenity.Info(appName+"\n\nA small multi-window audio player.",
			zenity.Title("About "+appName),
			zenity.InfoIcon,
		)
		if err != nil && !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("playerapp: about dialog: %v", err)
		}
	}()
}

// PickFile runs the open dialog on its own goroutine and posts the result.
func (a *App) PickFile() {
	a.cfgMu.Lock()
	dir := a.cfg.LastDir
	a.cfgMu.Unlock()

	go func() {
		path, err := a.pickFile(dir)
		switch {
		case errors.Is(err, zenity.ErrCanceled):
			path = ""
		case err != nil:
			log.Printf("playerapp: open dialog: %v", err)
			path = ""
		}
		if path != "" {
			a.rememberDir(path)
		}
		a.loop.Post(orchestrator.FilePicked{Path: path})
	}()
}

// Exit saves the configuration and stops the fyne event loop.
func (a *App) Exit() {
	a.saveConfig()
	a.fa.Quit()
}

func selectAudioFile(dir string) (string, error) {
	opts := []zenity.Option{zenity.Title("Open"), audioFilters}
	if dir != "" {
		opts = append(opts, zenity.Filename(dir+string(filepath.Separator)))
	}
	return zenity.SelectFile(opts...)
}

// --- config -------------------------------------------------------------------

func (a *App) rememberDir(path string) {
	a.cfgMu.Lock()
	changed := a.cfg.RememberDir(path)
	a.cfgMu.Unlock()
	if changed {
		a.saveConfig()
	}
}

func (a *App) saveConfig() {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	if err := a.cfg.Save(); err != nil {
		log.Println("config save error:", err)
	}
}

// capturePlacement stores the size and native position of w so the next
// window opens where this one was.
func (a *App) capturePlacement(w fyne.Window) {
	sz := w.Canvas().Size()
	x, y, ok := windowpos.Position(w)

	a.cfgMu.Lock()
	if sz.Width >= config.MinWindowWidth {
		a.cfg.WindowW = int(sz.Width)
	}
	if sz.Height > 0 {
		a.cfg.WindowH = int(sz.Height)
	}
	if ok {
		a.cfg.WindowX, a.cfg.WindowY, a.cfg.WindowPosValid = x, y, true
	}
	a.cfgMu.Unlock()
	a.saveConfig()
}

// restorePlacement cascades w from the saved position. The native handle may
// appear a little after Show, so failed moves are retried for a while.
func (a *App) restorePlacement(w fyne.Window, slot int) {
	a.cfgMu.Lock()
	x, y, valid := a.cfg.WindowX, a.cfg.WindowY, a.cfg.WindowPosValid
	a.cfgMu.Unlock()
	if !valid {
		return
	}
	if windowpos.PlaceCascaded(w, x, y, slot) {
		return
	}
	go func() {
		const attempts = 10
		for i := 0; i < attempts; i++ {
			time.Sleep(150 * time.Millisecond)
			if windowpos.PlaceCascaded(w, x, y, slot) {
				return
			}
		}
	}()
}
