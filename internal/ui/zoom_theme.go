package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
)

// zoomTheme scales every size of the wrapped theme. The inline icon size,
// which drives the slider thumb, is additionally halved.
type zoomTheme struct {
	fyne.Theme
	factor float32
}

// NewZoomTheme wraps base so all sizes are multiplied by factor. A nil base
// uses the default theme.
func NewZoomTheme(base fyne.Theme, factor float64) fyne.Theme {
	if base == nil {
		base = theme.DefaultTheme()
	}
	if factor <= 0 {
		factor = 1
	}
	return zoomTheme{Theme: base, factor: float32(factor)}
}

func (t zoomTheme) Size(n fyne.ThemeSizeName) float32 {
	sz := t.Theme.Size(n) * t.factor
	if n == theme.SizeNameInlineIcon {
		sz *= 0.5
	}
	return sz
}

// Zoomable hosts content under a zoom theme that can be changed later.
type Zoomable struct {
	*container.ThemeOverride
	base   fyne.Theme
	factor float64
}

// NewZoomable wraps content at the given zoom factor.
func NewZoomable(content fyne.CanvasObject, base fyne.Theme, factor float64) *Zoomable {
	z := &Zoomable{base: base, factor: factor}
	z.ThemeOverride = container.NewThemeOverride(content, NewZoomTheme(base, factor))
	return z
}

// Factor returns the current zoom factor.
func (z *Zoomable) Factor() float64 { return z.factor }

// SetFactor re-themes the content when factor changed. It must run on the UI
// thread.
func (z *Zoomable) SetFactor(factor float64) bool {
	if factor == z.factor {
		return false
	}
	z.factor = factor
	z.ThemeOverride.Theme = NewZoomTheme(z.base, factor)
	z.ThemeOverride.Refresh()
	return true
}
