// Package layer holds the ordered stack of raster layers that make up a
// canvas, along with the structural operations on it.
//
// Index 0 is the bottom of the stack. Operations that take an index treat an
// out-of-range value as a silent no-op and report it through their boolean
// result; the stack is never left empty.
package layer

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/ha1tch/deluxepaint/internal/pixel"
)

// ErrInvalidStack is returned when assembling a stack from parts that
// violate its invariants.
var ErrInvalidStack = errors.New("layer: invalid stack")

// Layer is one raster buffer with its compositing attributes.
type Layer struct {
	ID      string
	Buffer  *pixel.Buffer
	Visible bool
	Opacity uint8
}

// New wraps buf in a visible, fully opaque layer with a fresh ID.
func New(buf *pixel.Buffer) *Layer {
	return &Layer{
		ID:      uuid.NewString(),
		Buffer:  buf,
		Visible: true,
		Opacity: 255,
	}
}

// Clone returns a deep copy that keeps the layer ID.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Buffer = l.Buffer.Copy()
	return &c
}

// Stack is the ordered layer collection of one canvas.
type Stack struct {
	width  int
	height int
	layers []*Layer
	active int
}

// NewStack creates a stack with a single transparent layer.
func NewStack(width, height int) *Stack {
	s := &Stack{width: max(width, 0), height: max(height, 0)}
	s.layers = []*Layer{New(pixel.New(s.width, s.height))}
	return s
}

// Assemble builds a stack from existing layers. Every buffer must match the
// canvas size and active must index one of them.
func Assemble(width, height int, layers []*Layer, active int) (*Stack, error) {
	if width <= 0 || height <= 0 || len(layers) == 0 || active < 0 || active >= len(layers) {
		return nil, ErrInvalidStack
	}
	for _, l := range layers {
		if l == nil || l.Buffer == nil || l.Buffer.Width() != width || l.Buffer.Height() != height {
			return nil, ErrInvalidStack
		}
	}
	return &Stack{width: width, height: height, layers: slices.Clone(layers), active: active}, nil
}

// Width returns the canvas width.
func (s *Stack) Width() int { return s.width }

// Height returns the canvas height.
func (s *Stack) Height() int { return s.height }

// Len returns the number of layers.
func (s *Stack) Len() int { return len(s.layers) }

// Active returns the active layer index.
func (s *Stack) Active() int { return s.active }

// ActiveLayer returns the layer strokes and fills operate on.
func (s *Stack) ActiveLayer() *Layer { return s.layers[s.active] }

// Layer returns the layer at index i.
func (s *Stack) Layer(i int) (*Layer, bool) {
	if !s.valid(i) {
		return nil, false
	}
	return s.layers[i], true
}

// Layers returns the layers bottom to top. The slice is a copy; the layers
// are shared.
func (s *Stack) Layers() []*Layer { return slices.Clone(s.layers) }

func (s *Stack) valid(i int) bool { return i >= 0 && i < len(s.layers) }

// Add appends a transparent canvas-sized layer on top and activates it.
func (s *Stack) Add() *Layer {
	return s.AddBuffer(pixel.New(s.width, s.height))
}

// AddBuffer appends buf as a new top layer and activates it. The buffer is
// resampled when its size differs from the canvas.
func (s *Stack) AddBuffer(buf *pixel.Buffer) *Layer {
	if buf.Width() != s.width || buf.Height() != s.height {
		buf = buf.Scaled(s.width, s.height)
	}
	l := New(buf)
	s.layers = append(s.layers, l)
	s.active = len(s.layers) - 1
	return l
}

// Delete removes layer i. It refuses to remove the last remaining layer.
func (s *Stack) Delete(i int) bool {
	if len(s.layers) <= 1 || !s.valid(i) {
		return false
	}
	s.layers = slices.Delete(s.layers, i, i+1)
	s.active = max(0, min(s.active, len(s.layers)-1))
	return true
}

// MergeInto draws source over target with source's opacity applied, then
// removes source. The active index follows the surviving layers.
func (s *Stack) MergeInto(target, source int) bool {
	if !s.valid(target) || !s.valid(source) || target == source {
		return false
	}
	src := s.layers[source]
	s.layers[target].Buffer.DrawOver(src.Buffer, src.Opacity)
	s.layers = slices.Delete(s.layers, source, source+1)

	if target > source {
		target--
	}
	switch {
	case s.active == source:
		s.active = target
	case s.active > source:
		s.active--
	}
	return true
}

// Move relocates layer from to index to, where to is the final position.
// The active index keeps pointing at the same logical layer.
func (s *Stack) Move(from, to int) bool {
	if from == to || !s.valid(from) || !s.valid(to) {
		return false
	}
	l := s.layers[from]
	s.layers = slices.Delete(s.layers, from, from+1)
	s.layers = slices.Insert(s.layers, to, l)

	switch {
	case s.active == from:
		s.active = to
	case from < s.active && to >= s.active:
		s.active--
	case from > s.active && to <= s.active:
		s.active++
	}
	return true
}

// SetVisible sets the visibility of layer i.
func (s *Stack) SetVisible(i int, visible bool) bool {
	if !s.valid(i) {
		return false
	}
	s.layers[i].Visible = visible
	return true
}

// SetOpacity sets the opacity of layer i, clamped to 0..255.
func (s *Stack) SetOpacity(i, opacity int) bool {
	if !s.valid(i) {
		return false
	}
	s.layers[i].Opacity = uint8(min(max(opacity, 0), 255))
	return true
}

// SetActive selects the layer strokes and fills operate on.
func (s *Stack) SetActive(i int) bool {
	if !s.valid(i) {
		return false
	}
	s.active = i
	return true
}

// Reset drops every layer and starts over with one transparent layer.
func (s *Stack) Reset() {
	*s = *NewStack(s.width, s.height)
}

// Clone returns a deep copy of the whole stack.
func (s *Stack) Clone() *Stack {
	c := &Stack{
		width:  s.width,
		height: s.height,
		layers: make([]*Layer, len(s.layers)),
		active: s.active,
	}
	for i, l := range s.layers {
		c.layers[i] = l.Clone()
	}
	return c
}

// Restore replaces the contents of s with a deep copy of from.
func (s *Stack) Restore(from *Stack) {
	*s = *from.Clone()
}
