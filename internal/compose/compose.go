// Package compose flattens a layer stack into a single buffer.
package compose

import (
	"image/color"

	"github.com/ha1tch/deluxepaint/internal/layer"
	"github.com/ha1tch/deluxepaint/internal/pixel"
)

// Compose draws every visible layer bottom to top with its opacity applied
// as a uniform alpha, using Porter-Duff over. The result is a new buffer;
// the same stack state always yields identical pixels.
func Compose(s *layer.Stack) *pixel.Buffer {
	out := pixel.New(s.Width(), s.Height())
	for _, l := range s.Layers() {
		if !l.Visible {
			continue
		}
		out.DrawOver(l.Buffer, l.Opacity)
	}
	return out
}

// Flatten composes the stack over an opaque background, for formats
// without an alpha channel.
func Flatten(s *layer.Stack, background color.Color) *pixel.Buffer {
	out := pixel.New(s.Width(), s.Height())
	out.Fill(color.RGBAModel.Convert(background).(color.RGBA))
	out.DrawOver(Compose(s), 255)
	return out
}

// Sample returns the composited color at (x, y), as the eyedropper sees it:
// hidden layers never contribute and lower layers show through transparent
// regions above them.
func Sample(s *layer.Stack, x, y int) (color.RGBA, error) {
	return Compose(s).At(x, y)
}
