package ui

import (
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

// PlayState is what the indicator shows.
type PlayState int

const (
	// Idle means nothing is loaded.
	Idle PlayState = iota
	// Paused means media is loaded but not playing.
	Paused
	// Playing animates the indicator.
	Playing
)

var (
	idleColor   = color.NRGBA{0x80, 0x80, 0x80, 0xFF}
	pausedColor = color.NRGBA{0xE0, 0xA0, 0x30, 0xFF}
)

// PlayIndicator is a small dot that breathes through green hues while
// playing, turns amber when paused and gray when idle.
type PlayIndicator struct {
	wrap   *fyne.Container
	circle *canvas.Circle

	mu    sync.Mutex
	state PlayState
	stop  chan struct{}
}

// NewPlayIndicator builds an indicator with the given diameter.
func NewPlayIndicator(diameter float32) *PlayIndicator {
	c := canvas.NewCircle(idleColor)
	c.StrokeColor = color.NRGBA{}
	inner := container.New(layout.NewGridWrapLayout(fyne.NewSize(diameter, diameter)), c)
	return &PlayIndicator{wrap: container.NewCenter(inner), circle: c}
}

// CanvasObject returns the fyne object suitable for embedding in layouts.
func (p *PlayIndicator) CanvasObject() fyne.CanvasObject { return p.wrap }

// State returns the state last set.
func (p *PlayIndicator) State() PlayState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SetState switches the indicator; repeating the current state does nothing.
func (p *PlayIndicator) SetState(s PlayState) {
	p.mu.Lock()
	if s == p.state {
		p.mu.Unlock()
		return
	}
	p.state = s
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	var stop chan struct{}
	if s == Playing {
		stop = make(chan struct{})
		p.stop = stop
	}
	p.mu.Unlock()

	switch s {
	case Playing:
		go p.animate(stop)
	case Paused:
		p.fill(pausedColor)
	default:
		p.fill(idleColor)
	}
}

// Close stops the animation goroutine.
func (p *PlayIndicator) Close() { p.SetState(Idle) }

func (p *PlayIndicator) fill(c color.Color) {
	CallOnMain(func() {
		p.circle.FillColor = c
		p.circle.Refresh()
	})
}

func (p *PlayIndicator) animate(stop <-chan struct{}) {
	t := time.NewTicker(90 * time.Millisecond)
	defer t.Stop()
	hue := 90.0
	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}
		// sweep back and forth through the greens
		hue += 4
		if hue >= 170 {
			hue = 90
		}
		p.fill(hsvToNRGBA(hue, 0.65, 0.95))
	}
}

// hsvToNRGBA converts HSV (0..360, 0..1, 0..1) to color.NRGBA.
func hsvToNRGBA(h, s, v float64) color.NRGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60.0, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{
		R: uint8((r+m)*255 + 0.5),
		G: uint8((g+m)*255 + 0.5),
		B: uint8((b+m)*255 + 0.5),
		A: 0xFF,
	}
}
