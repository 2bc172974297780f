package canvas

import (
	"image/color"

	"go.uber.org/zap"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default is zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryLimit caps the number of undo entries.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.historyLimit = n }
}

// WithBrushWidth sets the full width of draw strokes in pixels.
func WithBrushWidth(w float32) Option {
	return func(s *Session) { s.brushWidth = w }
}

// WithEraserWidth sets the full width of erase strokes in pixels.
func WithEraserWidth(w float32) Option {
	return func(s *Session) { s.eraserWidth = w }
}

// WithDeadband sets the minimum per-axis pointer movement that extends a
// stroke.
func WithDeadband(d float32) Option {
	return func(s *Session) { s.deadband = d }
}

// WithColor sets the initial paint color (premultiplied).
func WithColor(c color.RGBA) Option {
	return func(s *Session) { s.color = c }
}

// WithColorPicked registers the callback the eyedropper reports to.
func WithColorPicked(fn func(color.RGBA)) Option {
	return func(s *Session) { s.onPick = fn }
}
