package ui

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

// TickerController shows the "now playing" line in a label and scrolls it
// when it does not fit. SetText is safe to call from any goroutine and cheap
// to repeat with unchanged text.
type TickerController struct {
	lbl    *widget.Label
	parent fyne.CanvasObject // measures the visible width
	bind   binding.String

	mu       sync.Mutex
	cancel   context.CancelFunc
	lastText string
	idleText string

	speed   time.Duration
	padding string
}

// NewTickerController binds lbl and shows idle until SetText is called.
func NewTickerController(lbl *widget.Label, parent fyne.CanvasObject, idle string) *TickerController {
	b := binding.NewString()
	lbl.Bind(b)
	_ = b.Set(idle)
	return &TickerController{
		lbl:      lbl,
		parent:   parent,
		bind:     b,
		idleText: idle,
		speed:    120 * time.Millisecond,
		padding:  "   ",
	}
}

// Text returns the text last passed to SetText, or the idle text.
func (tc *TickerController) Text() string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.lastText == "" {
		return tc.idleText
	}
	return tc.lastText
}

// Close stops any scrolling goroutine.
func (tc *TickerController) Close() {
	tc.mu.Lock()
	tc.stopLocked()
	tc.mu.Unlock()
}

func (tc *TickerController) stopLocked() {
	if tc.cancel != nil {
		tc.cancel()
		tc.cancel = nil
	}
}

// SetText replaces the ticker text. Repeating the current text is a no-op so
// a running scroll is not restarted.
func (tc *TickerController) SetText(text string) {
	if text == "" {
		text = tc.idleText
	}
	tc.mu.Lock()
	if text == tc.lastText {
		tc.mu.Unlock()
		return
	}
	tc.stopLocked()
	tc.lastText = text
	tc.mu.Unlock()

	_ = tc.bind.Set(text)

	textW := measureLabelTextWidth(tc.lbl, text)
	if !tickerNeedsScroll(textW, tc.parent.Size().Width) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	tc.mu.Lock()
	tc.cancel = cancel
	tc.mu.Unlock()
	go tc.scroll(ctx, text, textW)
}

func (tc *TickerController) scroll(ctx context.Context, text string, textW float32) {
	work := []rune(tc.padding + text + tc.padding)
	t := time.NewTicker(tc.speed)
	defer t.Stop()
	offset := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		tc.mu.Lock()
		current := tc.lastText
		tc.mu.Unlock()
		if current != text {
			return
		}
		if !tickerNeedsScroll(textW, tc.parent.Size().Width) {
			// the window grew: settle on the plain text
			_ = tc.bind.Set(text)
			return
		}
		offset = (offset + 1) % len(work)
		_ = tc.bind.Set(string(work[offset:]) + string(work[:offset]))
	}
}

// measureLabelTextWidth estimates the width the label would need for the text.
func measureLabelTextWidth(lbl *widget.Label, text string) float32 {
	if lbl == nil {
		return 0
	}
	tmp := widget.NewLabel(text)
	tmp.Alignment = lbl.Alignment
	tmp.TextStyle = lbl.TextStyle
	tmp.Importance = lbl.Importance
	tmp.Refresh()
	return tmp.MinSize().Width
}

// tickerNeedsScroll reports whether text of textWidth overflows the viewport
// by more than half a pixel.
func tickerNeedsScroll(textWidth, viewportWidth float32) bool {
	const epsilon = 0.5
	if textWidth <= 0 {
		return false
	}
	return textWidth-max(viewportWidth, 0) > epsilon
}
