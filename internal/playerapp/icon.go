package playerapp

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
	"golang.org/x/image/vector"
)

const iconSize = 128

var (
	iconOnce sync.Once
	iconRes  fyne.Resource
	iconErr  error
)

// appIcon returns the application icon, rasterized once.
func appIcon() (fyne.Resource, error) {
	iconOnce.Do(func() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, renderIcon(iconSize)); err != nil {
			iconErr = fmt.Errorf("encode icon: %w", err)
			return
		}
		iconRes = fyne.NewStaticResource("miniplayer.png", buf.Bytes())
	})
	return iconRes, iconErr
}

// renderIcon draws a rounded dark tile with a green play triangle.
func renderIcon(size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float32(size)

	tile := vector.NewRasterizer(size, size)
	roundedRect(tile, 0, 0, s, s, s*0.2)
	tile.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{0x1a, 0x1a, 0x1a, 0xFF}), image.Point{})

	play := vector.NewRasterizer(size, size)
	play.DrawOp = draw.Over
	play.MoveTo(s*0.36, s*0.26)
	play.LineTo(s*0.76, s*0.5)
	play.LineTo(s*0.36, s*0.74)
	play.ClosePath()
	play.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{0x3d, 0xd6, 0x6b, 0xFF}), image.Point{})
	return dst
}

// roundedRect adds a rectangle with quarter-circle corners of radius r.
func roundedRect(z *vector.Rasterizer, x0, y0, x1, y1, r float32) {
	// control point distance approximating a quarter circle
	const k = 0.5523
	z.MoveTo(x0+r, y0)
	z.LineTo(x1-r, y0)
	z.CubeTo(x1-r+r*k, y0, x1, y0+r-r*k, x1, y0+r)
	z.LineTo(x1, y1-r)
	z.CubeTo(x1, y1-r+r*k, x1-r+r*k, y1, x1-r, y1)
	z.LineTo(x0+r, y1)
	z.CubeTo(x0+r-r*k, y1, x0, y1-r+r*k, x0, y1-r)
	z.LineTo(x0, y0+r)
	z.CubeTo(x0, y0+r-r*k, x0+r-r*k, y0, x0+r, y0)
	z.ClosePath()
}
