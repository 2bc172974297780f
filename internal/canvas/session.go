// Package canvas is the boundary between a host UI and the drawing engine.
//
// A Session owns one layer stack and its history. Hosts feed it pointer
// events in canvas pixel space and discrete layer commands; the session
// dispatches them to the active tool and brackets every state change with
// a history entry. A Session is not safe for concurrent use: it belongs to
// the goroutine that handles input.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/ha1tch/deluxepaint/internal/compose"
	"github.com/ha1tch/deluxepaint/internal/export"
	"github.com/ha1tch/deluxepaint/internal/fill"
	"github.com/ha1tch/deluxepaint/internal/history"
	"github.com/ha1tch/deluxepaint/internal/layer"
	"github.com/ha1tch/deluxepaint/internal/pixel"
	"github.com/ha1tch/deluxepaint/internal/project"
	"github.com/ha1tch/deluxepaint/internal/stroke"
)

// Tool is the active pointer tool.
type Tool int

const (
	ToolDraw Tool = iota
	ToolErase
	ToolFill
	ToolEyedropper
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolErase:
		return "erase"
	case ToolFill:
		return "fill"
	case ToolEyedropper:
		return "eyedropper"
	default:
		return "unknown"
	}
}

// InitialState describes the first history entry of every session.
const InitialState = "Initial state"

// Session is one open drawing.
type Session struct {
	stack *layer.Stack
	hist  *history.Manager
	log   *zap.Logger

	tool   Tool
	color  color.RGBA
	onPick func(color.RGBA)

	brushWidth   float32
	eraserWidth  float32
	deadband     float32
	historyLimit int

	stroke       *stroke.Renderer
	strokeTarget *pixel.Buffer
	strokeBefore *pixel.Buffer // target pixels at pointer-down
	revision     uint64
}

// NewSession creates a session with a single transparent layer of the
// given size and records the initial history entry.
func NewSession(width, height int, opts ...Option) *Session {
	s := &Session{
		log:          zap.L(),
		color:        color.RGBA{A: 255},
		brushWidth:   stroke.DefaultBrushWidth,
		eraserWidth:  stroke.DefaultEraserWidth,
		deadband:     stroke.DefaultDeadband,
		historyLimit: history.DefaultLimit,
	}
	for _, o := range opts {
		o(s)
	}
	s.stack = layer.NewStack(width, height)
	s.hist = history.New(s.historyLimit)
	s.hist.Record(s.stack, InitialState, history.General)
	s.log.Debug("session created",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("historyLimit", s.hist.Limit()))
	return s
}

func (s *Session) record(desc string, kind history.ActionKind) {
	s.hist.Record(s.stack, desc, kind)
	s.revision++
	s.log.Debug("recorded", zap.String("action", desc), zap.Stringer("kind", kind))
}

// abortStroke drops an in-progress gesture without recording it and wipes
// the segments it already drew, so the live canvas matches the newest
// history entry again.
func (s *Session) abortStroke() {
	if s.stroke == nil {
		return
	}
	s.log.Debug("stroke aborted", zap.Int("segments", s.stroke.Segments()))
	if s.stroke.Segments() > 0 {
		_ = s.strokeTarget.SetPixels(s.strokeBefore.Pixels())
		s.revision++
	}
	s.stroke, s.strokeTarget, s.strokeBefore = nil, nil, nil
}

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool switches tools. A stroke in progress is finished first.
func (s *Session) SetTool(t Tool) {
	if s.stroke != nil {
		s.finishStroke(s.stroke.Last())
	}
	s.tool = t
}

// ToggleEraseMode flips between the brush and the eraser and records the
// switch.
func (s *Session) ToggleEraseMode() {
	desc := "Erase mode on"
	if s.tool == ToolErase {
		s.SetTool(ToolDraw)
		desc = "Erase mode off"
	} else {
		s.SetTool(ToolErase)
	}
	s.record(desc, history.EraseModeToggle)
}

// Color returns the paint color.
func (s *Session) Color() color.RGBA { return s.color }

// SetColor changes the paint color. When record is set and the color
// actually changed, a history entry is added.
func (s *Session) SetColor(c color.RGBA, record bool) {
	if c == s.color {
		return
	}
	s.color = c
	if record {
		s.record("Color changed", history.ColorChange)
	}
}

// PointerDown starts a gesture at (x, y) with the active tool.
func (s *Session) PointerDown(x, y float32) {
	switch s.tool {
	case ToolDraw, ToolErase:
		s.abortStroke()
		mode, width := stroke.Draw, s.brushWidth
		if s.tool == ToolErase {
			mode, width = stroke.Erase, s.eraserWidth
		}
		s.strokeTarget = s.stack.ActiveLayer().Buffer
		s.strokeBefore = s.strokeTarget.Copy()
		s.stroke = stroke.New(s.strokeTarget, mode, s.color, width, s.deadband)
		s.stroke.Begin(x, y)
	case ToolFill:
		if fill.Fill(s.stack.ActiveLayer().Buffer, int(x), int(y), s.color) {
			s.record("Fill", history.General)
		}
	case ToolEyedropper:
		s.pick(int(x), int(y))
	}
}

// PointerMove extends the current stroke, if any.
func (s *Session) PointerMove(x, y float32) {
	if s.stroke != nil && s.stroke.MoveTo(x, y) {
		s.revision++
	}
}

// PointerUp ends the current stroke at (x, y) and records it.
func (s *Session) PointerUp(x, y float32) {
	if s.stroke != nil {
		s.finishStroke(stroke.Point{X: x, Y: y})
	}
}

func (s *Session) finishStroke(p stroke.Point) {
	r := s.stroke
	s.stroke, s.strokeTarget, s.strokeBefore = nil, nil, nil
	r.End(p.X, p.Y)
	s.log.Debug("stroke finished", zap.Stringer("mode", r.Mode()), zap.Int("segments", r.Segments()))
	s.record("Stroke finished", history.General)
}

// Drawing reports whether a stroke is in progress.
func (s *Session) Drawing() bool { return s.stroke != nil }

// pick samples the composite, reports the color and returns to the brush.
func (s *Session) pick(x, y int) {
	c, err := compose.Sample(s.stack, x, y)
	if err != nil {
		s.log.Debug("eyedropper outside canvas", zap.Int("x", x), zap.Int("y", y))
		return
	}
	if s.onPick != nil {
		s.onPick(c)
	}
	s.SetColor(c, false)
	s.tool = ToolDraw
	s.revision++
}

// AddLayer appends a transparent layer on top and selects it.
func (s *Session) AddLayer() {
	s.abortStroke()
	s.stack.Add()
	s.record("Layer added", history.AddLayer)
}

// DeleteLayer removes layer i. The last layer cannot be deleted.
func (s *Session) DeleteLayer(i int) bool {
	s.abortStroke()
	if !s.stack.Delete(i) {
		return false
	}
	s.record(fmt.Sprintf("Layer %d deleted", i), history.DeleteLayer)
	return true
}

// MergeLayerInto draws layer source onto layer target and removes source.
func (s *Session) MergeLayerInto(target, source int) bool {
	s.abortStroke()
	if !s.stack.MergeInto(target, source) {
		return false
	}
	s.record(fmt.Sprintf("Layer %d merged into %d", source, target), history.MergeLayer)
	return true
}

// MoveLayer reorders layers so that layer from ends up at index to. Moves
// are not recorded in history.
func (s *Session) MoveLayer(from, to int) bool {
	s.abortStroke()
	if !s.stack.Move(from, to) {
		return false
	}
	s.revision++
	return true
}

// SetVisibility shows or hides layer i.
func (s *Session) SetVisibility(i int, visible bool) bool {
	s.abortStroke()
	l, ok := s.stack.Layer(i)
	if !ok || l.Visible == visible {
		return false
	}
	s.stack.SetVisible(i, visible)
	s.record(fmt.Sprintf("Layer %d visibility", i), history.ChangeVisibility)
	return true
}

// SetOpacity sets the opacity of layer i, clamped to 0..255.
func (s *Session) SetOpacity(i, opacity int) bool {
	s.abortStroke()
	l, ok := s.stack.Layer(i)
	if !ok {
		return false
	}
	before := l.Opacity
	s.stack.SetOpacity(i, opacity)
	if l.Opacity == before {
		return false
	}
	s.record(fmt.Sprintf("Layer %d opacity", i), history.ChangeOpacity)
	return true
}

// SetActiveLayer selects the layer strokes and fills operate on.
func (s *Session) SetActiveLayer(i int) bool {
	if i == s.stack.Active() {
		return false
	}
	s.abortStroke()
	if !s.stack.SetActive(i) {
		return false
	}
	s.record(fmt.Sprintf("Layer %d selected", i), history.SelectLayer)
	return true
}

// ImportImage adds img as a new top layer, scaled to the canvas size.
func (s *Session) ImportImage(img image.Image) {
	s.abortStroke()
	s.stack.AddBuffer(pixel.FromImage(img))
	s.record("Image imported", history.AddLayer)
}

// Clear replaces every layer with a single transparent one.
func (s *Session) Clear() {
	s.abortStroke()
	s.stack.Reset()
	s.record("Canvas cleared", history.General)
}

// Undo reverts the last recorded action and returns its description.
// At the initial state it returns an error wrapping
// history.ErrHistoryExhausted and changes nothing.
func (s *Session) Undo() (string, error) {
	s.abortStroke()
	desc, err := s.hist.Undo(s.stack)
	if err != nil {
		s.log.Debug("undo", zap.Error(err))
		return "", err
	}
	s.revision++
	s.log.Debug("undo", zap.String("action", desc))
	return desc, nil
}

// Redo re-applies the last undone action.
func (s *Session) Redo() (string, error) {
	s.abortStroke()
	desc, err := s.hist.Redo(s.stack)
	if err != nil {
		s.log.Debug("redo", zap.Error(err))
		return "", err
	}
	s.revision++
	s.log.Debug("redo", zap.String("action", desc))
	return desc, nil
}

// CanUndo reports whether an action beyond the initial state can be undone.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether an undone action can be re-applied.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// UndoStatus formats the result of Undo for a status line.
func UndoStatus(desc string, err error) string {
	if err != nil {
		return "Cannot undo"
	}
	return "Undo: " + desc
}

// RedoStatus formats the result of Redo for a status line.
func RedoStatus(desc string, err error) string {
	if err != nil {
		return "Cannot redo"
	}
	return "Redo: " + desc
}

// Composite flattens the visible layers into a new buffer.
func (s *Session) Composite() *pixel.Buffer { return compose.Compose(s.stack) }

// Sample returns the composited color at (x, y).
func (s *Session) Sample(x, y int) (color.RGBA, error) {
	return compose.Sample(s.stack, x, y)
}

// Thumbnail returns layer i scaled to fit maxW x maxH.
func (s *Session) Thumbnail(i, maxW, maxH int) (*pixel.Buffer, bool) {
	l, ok := s.stack.Layer(i)
	if !ok {
		return nil, false
	}
	return l.Buffer.Thumbnail(maxW, maxH), true
}

// Stack exposes the live layer stack for reading. Mutating it bypasses
// history.
func (s *Session) Stack() *layer.Stack { return s.stack }

// LayerCount returns the number of layers.
func (s *Session) LayerCount() int { return s.stack.Len() }

// ActiveLayer returns the index strokes and fills operate on.
func (s *Session) ActiveLayer() int { return s.stack.Active() }

// Width returns the canvas width in pixels.
func (s *Session) Width() int { return s.stack.Width() }

// Height returns the canvas height in pixels.
func (s *Session) Height() int { return s.stack.Height() }

// Revision increases whenever the visible canvas may have changed. Hosts
// compare it between frames to decide when to recomposite.
func (s *Session) Revision() uint64 { return s.revision }

// SaveProject writes the drawing to dir.
func (s *Session) SaveProject(dir string) error {
	if err := project.Save(s.stack, dir); err != nil {
		s.log.Error("save project", zap.String("dir", dir), zap.Error(err))
		return err
	}
	s.log.Info("project saved", zap.String("dir", dir), zap.Int("layers", s.stack.Len()))
	return nil
}

// LoadProject replaces the drawing with the project in dir. On failure the
// session is left exactly as it was.
func (s *Session) LoadProject(dir string) error {
	st, err := project.Load(dir)
	if err != nil {
		lvl := s.log.Error
		if errors.Is(err, project.ErrCorruptProject) {
			lvl = s.log.Warn
		}
		lvl("load project", zap.String("dir", dir), zap.Error(err))
		return err
	}
	s.abortStroke()
	s.stack.Restore(st)
	s.record("Project loaded", history.General)
	s.log.Info("project loaded",
		zap.String("dir", dir),
		zap.Int("layers", st.Len()),
		zap.Int("width", st.Width()),
		zap.Int("height", st.Height()))
	return nil
}

// Export writes the composite to path; the extension picks the format.
func (s *Session) Export(path string) error {
	if err := export.File(path, s.stack); err != nil {
		s.log.Error("export", zap.String("path", path), zap.Error(err))
		return err
	}
	s.log.Info("exported", zap.String("path", path))
	return nil
}
