// Package pixel provides the owned raster buffer every layer paints into.
//
// A Buffer stores alpha-premultiplied RGBA pixels, the same representation
// as image.RGBA, so it can be handed to the standard encoders and to
// golang.org/x/image without conversion. Dimensions are fixed at creation.
package pixel

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Sentinel buffer errors.
var (
	ErrOutOfBounds  = errors.New("pixel: coordinate out of bounds")
	ErrSizeMismatch = errors.New("pixel: pixel count does not match buffer size")
)

// Transparent is the zero pixel every new buffer starts with.
var Transparent = color.RGBA{}

// Buffer is a fixed-size grid of premultiplied RGBA pixels.
type Buffer struct {
	img *image.RGBA
}

// New creates a fully transparent buffer. Negative sizes are treated as zero.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies any decoded image into a new buffer, normalizing it to
// premultiplied RGBA with its origin at (0, 0).
func FromImage(src image.Image) *Buffer {
	r := src.Bounds()
	b := New(r.Dx(), r.Dy())
	draw.Draw(b.img, b.img.Bounds(), src, r.Min, draw.Src)
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Bounds returns the buffer rectangle, always anchored at (0, 0).
func (b *Buffer) Bounds() image.Rectangle { return b.img.Rect }

// Contains reports whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width() && y < b.Height()
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) (color.RGBA, error) {
	if !b.Contains(x, y) {
		return color.RGBA{}, ErrOutOfBounds
	}
	return b.img.RGBAAt(x, y), nil
}

// Set writes the pixel at (x, y). The color must already be premultiplied.
func (b *Buffer) Set(x, y int, c color.RGBA) error {
	if !b.Contains(x, y) {
		return ErrOutOfBounds
	}
	b.img.SetRGBA(x, y, c)
	return nil
}

// Pixels returns a row-major copy of every pixel.
func (b *Buffer) Pixels() []color.RGBA {
	out := make([]color.RGBA, b.Width()*b.Height())
	p := b.img.Pix
	for i := range out {
		j := i * 4
		out[i] = color.RGBA{R: p[j], G: p[j+1], B: p[j+2], A: p[j+3]}
	}
	return out
}

// SetPixels overwrites the whole buffer from a row-major slice.
func (b *Buffer) SetPixels(px []color.RGBA) error {
	if len(px) != b.Width()*b.Height() {
		return ErrSizeMismatch
	}
	p := b.img.Pix
	for i, c := range px {
		j := i * 4
		p[j], p[j+1], p[j+2], p[j+3] = c.R, c.G, c.B, c.A
	}
	return nil
}

// Clear resets every pixel to transparent.
func (b *Buffer) Clear() {
	clear(b.img.Pix)
}

// Copy returns an independent deep copy.
func (b *Buffer) Copy() *Buffer {
	img := image.NewRGBA(b.img.Rect)
	copy(img.Pix, b.img.Pix)
	return &Buffer{img: img}
}

// Scaled returns a resampled copy of the buffer at the requested size.
func (b *Buffer) Scaled(width, height int) *Buffer {
	out := New(width, height)
	if out.Width() == 0 || out.Height() == 0 || b.Width() == 0 || b.Height() == 0 {
		return out
	}
	if width == b.Width() && height == b.Height() {
		return b.Copy()
	}
	xdraw.CatmullRom.Scale(out.img, out.img.Rect, b.img, b.img.Rect, xdraw.Src, nil)
	return out
}

// Thumbnail scales the buffer to fit inside maxW x maxH, keeping the aspect
// ratio. Each side is at least one pixel.
func (b *Buffer) Thumbnail(maxW, maxH int) *Buffer {
	if b.Width() == 0 || b.Height() == 0 || maxW <= 0 || maxH <= 0 {
		return New(0, 0)
	}
	ratio := min(float64(maxW)/float64(b.Width()), float64(maxH)/float64(b.Height()))
	w := max(1, int(float64(b.Width())*ratio))
	h := max(1, int(float64(b.Height())*ratio))
	return b.Scaled(w, h)
}

// DrawOver composites src onto b with Porter-Duff over, scaling src by a
// uniform opacity. Pixels outside the overlap of both buffers are untouched.
func (b *Buffer) DrawOver(src *Buffer, opacity uint8) {
	switch opacity {
	case 0:
		return
	case 255:
		draw.Draw(b.img, b.img.Rect, src.img, image.Point{}, draw.Over)
	default:
		mask := image.NewUniform(color.Alpha{A: opacity})
		draw.DrawMask(b.img, b.img.Rect, src.img, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

// Fill paints every pixel with c.
func (b *Buffer) Fill(c color.RGBA) {
	draw.Draw(b.img, b.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// PaintMask composites c over the buffer through a coverage mask. The mask
// bounds are in buffer coordinates.
func (b *Buffer) PaintMask(mask *image.Alpha, c color.RGBA) {
	r := mask.Rect.Intersect(b.img.Rect)
	if r.Empty() {
		return
	}
	draw.DrawMask(b.img, r, image.NewUniform(c), image.Point{}, mask, r.Min, draw.Over)
}

// ClearMask removes coverage from the buffer: every channel is scaled by
// (1 - mask), so a fully covered pixel becomes transparent.
func (b *Buffer) ClearMask(mask *image.Alpha) {
	r := mask.Rect.Intersect(b.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := uint32(mask.AlphaAt(x, y).A)
			if m == 0 {
				continue
			}
			i := b.img.PixOffset(x, y)
			px := b.img.Pix[i : i+4 : i+4]
			keep := 255 - m
			for k := range px {
				px[k] = uint8((uint32(px[k])*keep + 127) / 255)
			}
		}
	}
}

// RGBA exposes the backing image for encoders and the compositor. Writes
// through it change the buffer; the rectangle must not be modified.
func (b *Buffer) RGBA() *image.RGBA { return b.img }

// NRGBA64 converts the buffer to 16-bit straight alpha. Converting the
// result back with FromImage reproduces every premultiplied pixel exactly,
// which 8-bit straight alpha cannot guarantee for translucent pixels.
func (b *Buffer) NRGBA64() *image.NRGBA64 {
	out := image.NewNRGBA64(b.img.Rect)
	draw.Draw(out, out.Rect, b.img, image.Point{}, draw.Src)
	return out
}

// Equal reports whether both buffers have the same size and identical pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.img.Rect != other.img.Rect {
		return false
	}
	for i, v := range b.img.Pix {
		if other.img.Pix[i] != v {
			return false
		}
	}
	return true
}
