package ui

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TransportSlider is a thin horizontal slider with a half-size thumb, used for
// the timeline and the volume. User input goes through OnChanged; values
// pushed from playback state use SetValueQuiet and never echo back.
type TransportSlider struct {
	widget.BaseWidget
	Min       float64
	Max       float64
	Step      float64
	Value     float64
	OnChanged func(float64)

	dragging bool
}

// NewTransportSlider creates a slider constrained to [min, max].
func NewTransportSlider(min, max float64) *TransportSlider {
	s := &TransportSlider{Min: min, Max: max, Step: 1}
	s.ExtendBaseWidget(s)
	return s
}

func (s *TransportSlider) CreateRenderer() fyne.WidgetRenderer {
	r := &transportSliderRenderer{
		s:     s,
		track: canvas.NewRectangle(theme.ShadowColor()),
		fill:  canvas.NewRectangle(theme.PrimaryColor()),
		thumb: canvas.NewCircle(theme.ForegroundColor()),
	}
	r.objs = []fyne.CanvasObject{r.track, r.fill, r.thumb}
	return r
}

// SetValue applies a user-originated value and notifies OnChanged.
func (s *TransportSlider) SetValue(v float64) {
	if !s.setValue(v) {
		return
	}
	if s.OnChanged != nil {
		s.OnChanged(s.Value)
	}
}

// SetValueQuiet moves the thumb without calling OnChanged. It is ignored
// while the user is dragging so the thumb stays under the pointer.
func (s *TransportSlider) SetValueQuiet(v float64) {
	if s.dragging {
		return
	}
	s.setValue(v)
}

// Dragging reports whether a drag is in progress.
func (s *TransportSlider) Dragging() bool { return s.dragging }

func (s *TransportSlider) setValue(v float64) bool {
	if s.Max <= s.Min || math.IsNaN(v) {
		return false
	}
	nv := normalizeSliderValue(s.Min, s.Max, s.Step, v)
	if nv == s.Value {
		return false
	}
	s.Value = nv
	s.Refresh()
	return true
}

func normalizeSliderValue(min, max, step, value float64) float64 {
	if max <= min {
		return min
	}
	v := clamp(value, min, max)
	if step > 0 {
		n := math.Round((v - min) / step)
		v = clamp(min+n*step, min, max)
	}
	return v
}

// Dragged follows the pointer.
func (s *TransportSlider) Dragged(e *fyne.DragEvent) {
	s.dragging = true
	s.SetValue(s.valueAt(e.Position.X))
}

func (s *TransportSlider) DragEnd() { s.dragging = false }

// Tapped jumps to the tapped position.
func (s *TransportSlider) Tapped(e *fyne.PointEvent) {
	s.SetValue(s.valueAt(e.Position.X))
}

// Scrolled nudges the value by one step per wheel notch.
func (s *TransportSlider) Scrolled(ev *fyne.ScrollEvent) {
	if ev == nil {
		return
	}
	step := s.Step
	if step <= 0 {
		step = 1
	}
	switch {
	case ev.Scrolled.DY > 0:
		s.SetValue(s.Value + step)
	case ev.Scrolled.DY < 0:
		s.SetValue(s.Value - step)
	}
}

func (s *TransportSlider) valueAt(px float32) float64 {
	w := s.Size().Width
	if w <= 0 {
		return s.Value
	}
	frac := clamp(float64(px/w), 0, 1)
	return s.Min + frac*(s.Max-s.Min)
}

// MinSize keeps the thumb comfortably clickable.
func (s *TransportSlider) MinSize() fyne.Size {
	return fyne.NewSize(80, theme.IconInlineSize())
}

type transportSliderRenderer struct {
	s     *TransportSlider
	track *canvas.Rectangle
	fill  *canvas.Rectangle
	thumb *canvas.Circle
	objs  []fyne.CanvasObject
}

func (r *transportSliderRenderer) Layout(sz fyne.Size) {
	const trackH = float32(4)
	y := (sz.Height - trackH) / 2
	r.track.Move(fyne.NewPos(0, y))
	r.track.Resize(fyne.NewSize(sz.Width, trackH))

	frac := float32(0)
	if span := r.s.Max - r.s.Min; span > 0 {
		frac = float32(clamp((r.s.Value-r.s.Min)/span, 0, 1))
	}
	fillW := sz.Width * frac
	r.fill.Move(fyne.NewPos(0, y))
	r.fill.Resize(fyne.NewSize(fillW, trackH))

	radius := theme.IconInlineSize() / 4
	cx := fillW
	if cx < radius {
		cx = radius
	}
	if cx > sz.Width-radius {
		cx = sz.Width - radius
	}
	r.thumb.Resize(fyne.NewSize(radius*2, radius*2))
	r.thumb.Move(fyne.NewPos(cx-radius, sz.Height/2-radius))
}

func (r *transportSliderRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *transportSliderRenderer) Refresh() {
	r.track.FillColor = theme.ShadowColor()
	r.fill.FillColor = theme.PrimaryColor()
	r.thumb.FillColor = theme.ForegroundColor()
	r.Layout(r.s.Size())
	canvas.Refresh(r.track)
	canvas.Refresh(r.fill)
	canvas.Refresh(r.thumb)
}

func (r *transportSliderRenderer) Destroy() {}

func (r *transportSliderRenderer) Objects() []fyne.CanvasObject { return r.objs }
