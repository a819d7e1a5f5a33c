package playerapp

import (
	"image/color"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/miniplayer/internal/orchestrator"
	"github.com/edward-ap/miniplayer/internal/session"
	"github.com/edward-ap/miniplayer/internal/ui"
)

const idleTicker = "No file loaded"

var errorText = color.NRGBA{0xFF, 0x6B, 0x6B, 0xFF}

// playerWindow is the fyne side of one session. Its widgets are only touched
// on the UI thread; user input is posted to the loop.
type playerWindow struct {
	id   orchestrator.WindowID
	w    fyne.Window
	post func(orchestrator.Msg)

	zoom      *ui.Zoomable
	ticker    *ui.TickerController
	ind       *ui.PlayIndicator
	timeline  *ui.TransportSlider
	volume    *ui.TransportSlider
	elapsed   *widget.Label
	total     *widget.Label
	playBtn   *widget.Button
	volBtn    *widget.Button
	errLbl    *canvas.Text
	catcher   *shortcutCatcher
	last      session.View
	presented bool
	// volume restored by the speaker button after muting
	unmuteTo float64
	onClosed func()
}

func newPlayerWindow(fa fyne.App, req orchestrator.WindowRequest, post func(orchestrator.Msg)) *playerWindow {
	pw := &playerWindow{
		id:       req.ID,
		w:        fa.NewWindow(req.Title),
		post:     post,
		unmuteTo: 100,
	}
	pw.w.SetPadded(false)
	pw.w.SetContent(pw.build(req.Zoom))

	pw.w.SetCloseIntercept(func() { pw.post(orchestrator.CloseRequested{ID: pw.id}) })
	pw.w.SetOnClosed(func() {
		pw.release()
		if pw.onClosed != nil {
			pw.onClosed()
		}
		pw.post(orchestrator.Closed{ID: pw.id})
	})
	pw.w.Canvas().SetOnTypedKey(pw.typedKey)
	registerCommandKeys(pw.w.Canvas(), pw.shortcut)
	return pw
}

func (pw *playerWindow) build(zoom float64) fyne.CanvasObject {
	pw.catcher = newShortcutCatcher(pw.typedKey)

	// --- now playing -------------------------------------------------

	nowLbl := widget.NewLabel("")
	nowLbl.Truncation = fyne.TextTruncateClip
	nowWrap := container.NewStack(nowLbl)
	pw.ticker = ui.NewTickerController(nowLbl, nowWrap, idleTicker)
	pw.ind = ui.NewPlayIndicator(10)
	nowRow := container.NewBorder(nil, nil, pw.ind.CanvasObject(), nil, nowWrap)

	// --- timeline ----------------------------------------------------

	pw.elapsed = widget.NewLabel(formatClock(0))
	pw.total = widget.NewLabel(formatClock(0))
	pw.timeline = ui.NewTransportSlider(0, 100)
	pw.timeline.Step = 0.1
	pw.timeline.OnChanged = func(v float64) {
		pw.input(orchestrator.TimelineChanged{ID: pw.id, Percent: v})
	}
	timeRow := container.NewBorder(nil, nil, pw.elapsed, pw.total, pw.timeline)

	// --- transport + volume ------------------------------------------

	resetBtn := widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), func() {
		pw.input(orchestrator.ResetPressed{ID: pw.id})
	})
	pw.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		pw.input(orchestrator.PlayPausePressed{ID: pw.id})
	})
	shuffleBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		pw.input(orchestrator.ShufflePressed{ID: pw.id})
	})
	for _, b := range []*widget.Button{resetBtn, pw.playBtn, shuffleBtn} {
		b.Importance = widget.LowImportance
	}

	pw.volume = ui.NewTransportSlider(0, 100)
	pw.volume.Value = 100
	pw.volume.OnChanged = func(v float64) {
		pw.input(orchestrator.VolumeChanged{ID: pw.id, Percent: v})
	}
	pw.volBtn = widget.NewButtonWithIcon("", volumeIcon(100), pw.toggleMute)
	pw.volBtn.Importance = widget.LowImportance
	longVol := container.New(layout.NewGridWrapLayout(fyne.NewSize(110, pw.volume.MinSize().Height)), pw.volume)

	controls := container.NewHBox(
		resetBtn, pw.playBtn, shuffleBtn,
		layout.NewSpacer(),
		pw.volBtn, container.NewCenter(longVol),
	)

	// --- status ------------------------------------------------------

	pw.errLbl = canvas.NewText("", errorText)
	pw.errLbl.TextSize = theme.CaptionTextSize()
	pw.errLbl.Hide()

	rows := []fyne.CanvasObject{nowRow, timeRow, controls, pw.errLbl}
	if runtime.GOOS != "darwin" {
		hint := canvas.NewText("Ctrl+O to open, Ctrl+N for new window", theme.DisabledColor())
		hint.TextSize = theme.CaptionTextSize()
		rows = append(rows, hint)
	}
	body := container.NewPadded(container.NewVBox(rows...))

	// the catcher sits behind the content so it never intercepts the mouse
	pw.zoom = ui.NewZoomable(container.NewStack(pw.catcher, body), theme.DarkTheme(), zoom)
	return pw.zoom
}

// input posts m after marking this window focused.
func (pw *playerWindow) input(m orchestrator.Msg) {
	pw.post(orchestrator.Focused{ID: pw.id})
	pw.post(m)
	pw.focusCatcher()
}

func (pw *playerWindow) shortcut(sc orchestrator.Shortcut) {
	if sc == orchestrator.ShortcutNone {
		return
	}
	pw.input(orchestrator.KeyPressed{ID: pw.id, Shortcut: sc})
}

func (pw *playerWindow) typedKey(ev *fyne.KeyEvent) {
	if ev == nil {
		return
	}
	pw.shortcut(shortcutForKey(ev.Name))
}

func (pw *playerWindow) focusCatcher() {
	if pw.catcher != nil {
		pw.w.Canvas().Focus(pw.catcher)
	}
}

func (pw *playerWindow) toggleMute() {
	if pw.volume.Value > 0 {
		pw.unmuteTo = pw.volume.Value
		pw.volume.SetValue(0)
		return
	}
	pw.volume.SetValue(pw.unmuteTo)
}

// present applies v. Unchanged views are skipped; it runs every tick.
func (pw *playerWindow) present(v session.View) {
	if pw.presented && v == pw.last {
		return
	}
	prev, first := pw.last, !pw.presented
	pw.last, pw.presented = v, true

	if first || v.Title != prev.Title {
		pw.w.SetTitle(v.Title)
	}
	pw.ticker.SetText(v.NowPlaying)
	pw.ind.SetState(indicatorState(v.Loaded, v.Playing))

	pw.timeline.SetValueQuiet(v.TimePercent)
	pw.elapsed.SetText(formatClock(v.CurrentTime))
	if v.HasDuration {
		pw.total.SetText(formatClock(v.Duration))
	} else {
		pw.total.SetText("--:--")
	}
	if first || v.Playing != prev.Playing {
		pw.playBtn.SetIcon(playIcon(v.Playing))
	}

	pw.volume.SetValueQuiet(v.VolumePercent)
	if first || v.VolumePercent != prev.VolumePercent {
		pw.volBtn.SetIcon(volumeIcon(v.VolumePercent))
	}

	if v.Error != prev.Error || first {
		pw.errLbl.Text = v.Error
		if v.Error == "" {
			pw.errLbl.Hide()
		} else {
			pw.errLbl.Show()
		}
		pw.errLbl.Refresh()
	}
	pw.zoom.SetFactor(v.Zoom)
}

func (pw *playerWindow) release() {
	pw.ticker.Close()
	pw.ind.Close()
}
