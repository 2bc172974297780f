// Package stroke turns freehand pointer input into antialiased raster marks.
//
// Points are smoothed with quadratic segments between successive midpoints
// and each segment is rasterized onto the target buffer as soon as it is
// appended, so a stroke is visible while the gesture is still in progress.
package stroke

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/ha1tch/deluxepaint/internal/pixel"
)

// Mode selects how a stroke affects the buffer.
type Mode int

const (
	// Draw paints with the stroke color.
	Draw Mode = iota
	// Erase cuts the stroke out of the buffer, leaving transparency.
	Erase
)

func (m Mode) String() string {
	switch m {
	case Draw:
		return "draw"
	case Erase:
		return "erase"
	default:
		return "unknown"
	}
}

// Default stroke parameters.
const (
	DefaultBrushWidth  = 10
	DefaultEraserWidth = 40
	DefaultDeadband    = 4
)

// Point is a position in canvas pixel space.
type Point struct {
	X, Y float32
}

func mid(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Renderer rasterizes one gesture. Create one per stroke.
type Renderer struct {
	dst      *pixel.Buffer
	mode     Mode
	color    color.RGBA
	radius   float32
	deadband float32

	pen    Point // end of the last rasterized segment
	last   Point // last recorded pointer position
	active bool
	count  int
}

// New returns a renderer targeting dst. Width is the full stroke width;
// deadband is the minimum per-axis movement that appends a segment.
func New(dst *pixel.Buffer, mode Mode, c color.RGBA, width, deadband float32) *Renderer {
	if width <= 0 {
		width = 1
	}
	if deadband < 0 {
		deadband = 0
	}
	return &Renderer{
		dst:      dst,
		mode:     mode,
		color:    c,
		radius:   width / 2,
		deadband: deadband,
	}
}

// Mode returns the stroke mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Segments returns how many segments have been rasterized so far.
func (r *Renderer) Segments() int { return r.count }

// Last returns the most recent pointer position the stroke accepted.
func (r *Renderer) Last() Point { return r.last }

// Active reports whether Begin has been called without a matching End.
func (r *Renderer) Active() bool { return r.active }

// Begin starts the stroke at (x, y). Nothing is drawn yet.
func (r *Renderer) Begin(x, y float32) {
	r.pen = Point{x, y}
	r.last = r.pen
	r.active = true
	r.count = 0
}

// MoveTo records a pointer movement. It returns true when the movement
// cleared the deadband and a new segment was drawn.
func (r *Renderer) MoveTo(x, y float32) bool {
	if !r.active {
		return false
	}
	p := Point{x, y}
	dx := math.Abs(float64(p.X - r.last.X))
	dy := math.Abs(float64(p.Y - r.last.Y))
	if dx < float64(r.deadband) && dy < float64(r.deadband) {
		return false
	}
	end := mid(r.last, p)
	r.render(flattenQuad(r.pen, r.last, end))
	r.pen = end
	r.last = p
	return true
}

// End closes the stroke with a straight segment to (x, y).
func (r *Renderer) End(x, y float32) {
	if !r.active {
		return
	}
	r.render([]Point{r.pen, {x, y}})
	r.pen = Point{x, y}
	r.last = r.pen
	r.active = false
}

// render rasterizes a polyline with round joins and caps and applies it to
// the destination in the renderer's mode.
func (r *Renderer) render(pts []Point) {
	bounds := polylineBounds(pts, r.radius).Intersect(r.dst.Bounds())
	r.count++
	if bounds.Empty() {
		return
	}
	mask := coverage(pts, r.radius, bounds)
	switch r.mode {
	case Erase:
		r.dst.ClearMask(mask)
	default:
		r.dst.PaintMask(mask, r.color)
	}
}

// coverage builds an antialiased coverage mask for the stroked polyline.
// All sub-shapes share one winding direction so overlaps union rather than
// cancel in the rasterizer's accumulation.
func coverage(pts []Point, radius float32, bounds image.Rectangle) *image.Alpha {
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	for i, p := range pts {
		addCircle(z, p.X-ox, p.Y-oy, radius)
		if i == 0 {
			continue
		}
		q := pts[i-1]
		addSegment(z, q.X-ox, q.Y-oy, p.X-ox, p.Y-oy, radius)
	}
	mask := image.NewAlpha(bounds)
	z.Draw(mask, bounds, image.Opaque, image.Point{})
	return mask
}

func addSegment(z *vector.Rasterizer, x0, y0, x1, y1, radius float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*radius, dx/l*radius
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// addCircle approximates a disc with a polygon traversed in decreasing
// angle, matching the orientation of addSegment.
func addCircle(z *vector.Rasterizer, cx, cy, radius float32) {
	n := int(radius * 2)
	n = min(max(n, 8), 64)
	z.MoveTo(cx+radius, cy)
	for k := 1; k < n; k++ {
		a := -2 * math.Pi * float64(k) / float64(n)
		z.LineTo(cx+radius*float32(math.Cos(a)), cy+radius*float32(math.Sin(a)))
	}
	z.ClosePath()
}

// flattenQuad approximates the quadratic Bézier p0-c-p1 with line segments
// no longer than about two pixels.
func flattenQuad(p0, c, p1 Point) []Point {
	chord := math.Hypot(float64(c.X-p0.X), float64(c.Y-p0.Y)) +
		math.Hypot(float64(p1.X-c.X), float64(p1.Y-c.Y))
	n := min(max(int(math.Ceil(chord/2)), 1), 64)
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(n)
		u := 1 - t
		pts = append(pts, Point{
			X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
			Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
		})
	}
	return pts
}

func polylineBounds(pts []Point, radius float32) image.Rectangle {
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	pad := radius + 1
	return image.Rect(
		int(math.Floor(float64(minX-pad))),
		int(math.Floor(float64(minY-pad))),
		int(math.Ceil(float64(maxX+pad))),
		int(math.Ceil(float64(maxY+pad))),
	)
}
