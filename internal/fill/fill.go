// Package fill implements the bucket tool: a 4-connected flood fill.
package fill

import (
	"image"
	"image/color"

	"github.com/ha1tch/deluxepaint/internal/pixel"
)

// Fill replaces the 4-connected region of pixels that share the color at
// (x, y) with c. It reports whether the buffer changed.
//
// A start point outside the buffer, or a start pixel that already equals c,
// is a no-op. The region is grown with an explicit stack over a flat copy of
// the pixels and written back in one bulk update. Time and auxiliary space
// are O(area); the fill runs to completion once started.
func Fill(buf *pixel.Buffer, x, y int, c color.RGBA) bool {
	old, err := buf.At(x, y)
	if err != nil || old == c {
		return false
	}

	w, h := buf.Width(), buf.Height()
	px := buf.Pixels()
	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			continue
		}
		i := p.Y*w + p.X
		if px[i] != old {
			continue
		}
		px[i] = c
		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}

	// px was taken from buf, so the sizes always agree.
	_ = buf.SetPixels(px)
	return true
}
