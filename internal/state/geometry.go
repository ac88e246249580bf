package state

// Rect is an axis-aligned box in world space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Bounds returns the bounding box of points. The zero Rect is returned for no points.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Pad grows r by pad on every side.
func (r Rect) Pad(pad float64) Rect {
	return Rect{MinX: r.MinX - pad, MinY: r.MinY - pad, MaxX: r.MaxX + pad, MaxY: r.MaxY + pad}
}

// Corner returns the position of the given corner handle. Non-corner handles yield
// the top-left corner.
func (r Rect) Corner(h Handle) Point {
	switch h {
	case HandleTopRight:
		return Point{X: r.MaxX, Y: r.MinY}
	case HandleBottomRight:
		return Point{X: r.MaxX, Y: r.MaxY}
	case HandleBottomLeft:
		return Point{X: r.MinX, Y: r.MaxY}
	default:
		return Point{X: r.MinX, Y: r.MinY}
	}
}

// Corners returns the corners in tl, tr, br, bl order.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		r.Corner(HandleTopLeft),
		r.Corner(HandleTopRight),
		r.Corner(HandleBottomRight),
		r.Corner(HandleBottomLeft),
	}
}

// WithCorner returns r with the edges adjacent to corner h moved to p. The opposite
// edges stay fixed. The result is not normalized, so dragging past the opposite
// edge yields a negative extent.
func (r Rect) WithCorner(h Handle, p Point) Rect {
	switch h {
	case HandleTopLeft:
		r.MinX, r.MinY = p.X, p.Y
	case HandleTopRight:
		r.MaxX, r.MinY = p.X, p.Y
	case HandleBottomRight:
		r.MaxX, r.MaxY = p.X, p.Y
	case HandleBottomLeft:
		r.MinX, r.MaxY = p.X, p.Y
	}
	return r
}

// MapPoints rescales points from box `from` into box `to`. A zero extent in `from`
// is treated as 1 to avoid dividing by zero.
func MapPoints(points []Point, from, to Rect) []Point {
	sx := to.Width() / nonZero(from.Width())
	sy := to.Height() / nonZero(from.Height())
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{
			X: to.MinX + (p.X-from.MinX)*sx,
			Y: to.MinY + (p.Y-from.MinY)*sy,
		}
	}
	return out
}

// Translate returns points shifted by d.
func Translate(points []Point, d Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Add(d)
	}
	return out
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
