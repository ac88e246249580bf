package state

// Default hit-test radii, in world units.
const (
	StrokeTolerance    = 12
	EndpointTolerance  = 14
	BoxPadding         = 12
	BoxHandleTolerance = 16
)

// Handle names a resize control on a selected stroke.
type Handle int

const (
	HandleNone Handle = iota
	HandleStart
	HandleEnd
	HandleTopLeft
	HandleTopRight
	HandleBottomRight
	HandleBottomLeft
)

var handleNames = [...]string{"none", "start", "end", "tl", "tr", "br", "bl"}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return "invalid"
	}
	return handleNames[h]
}

// IsCorner reports whether h is a bounding-box corner.
func (h Handle) IsCorner() bool { return h >= HandleTopLeft && h <= HandleBottomLeft }

// IsEndpoint reports whether h is the start or end handle.
func (h Handle) IsEndpoint() bool { return h == HandleStart || h == HandleEnd }

// HitTolerances groups the radii used by the hit tester.
type HitTolerances struct {
	Stroke     float64 `toml:"stroke_tolerance"`
	Endpoint   float64 `toml:"endpoint_tolerance"`
	BoxPadding float64 `toml:"box_padding"`
	BoxHandle  float64 `toml:"box_handle_tolerance"`
}

// DefaultHitTolerances returns the built-in radii.
func DefaultHitTolerances() HitTolerances {
	return HitTolerances{
		Stroke:     StrokeTolerance,
		Endpoint:   EndpointTolerance,
		BoxPadding: BoxPadding,
		BoxHandle:  BoxHandleTolerance,
	}
}

// DistanceToSegmentSquared returns the squared distance from p to the segment a-b.
// A zero-length segment degenerates to the distance from p to a.
func DistanceToSegmentSquared(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.DistanceSquared(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = max(0, min(1, t))
	return p.DistanceSquared(Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// HitStroke reports whether p lies strictly within tol of any segment of the
// polyline. Point-stubs with fewer than two points have no segments and never hit.
func HitStroke(points []Point, p Point, tol float64) bool {
	tol2 := tol * tol
	for i := 0; i+1 < len(points); i++ {
		if DistanceToSegmentSquared(p, points[i], points[i+1]) < tol2 {
			return true
		}
	}
	return false
}

// EndpointHandleAt returns HandleStart or HandleEnd if p is within tol of the first or
// last point, checking the start first.
func EndpointHandleAt(points []Point, p Point, tol float64) Handle {
	if len(points) == 0 {
		return HandleNone
	}
	tol2 := tol * tol
	if p.DistanceSquared(points[0]) < tol2 {
		return HandleStart
	}
	if p.DistanceSquared(points[len(points)-1]) < tol2 {
		return HandleEnd
	}
	return HandleNone
}

// BoxHandleAt returns the corner of box (grown by pad) that p falls within tol of,
// checking tl, tr, br, bl in that order.
func BoxHandleAt(box Rect, p Point, pad, tol float64) Handle {
	padded := box.Pad(pad)
	tol2 := tol * tol
	for _, h := range []Handle{HandleTopLeft, HandleTopRight, HandleBottomRight, HandleBottomLeft} {
		if p.DistanceSquared(padded.Corner(h)) < tol2 {
			return h
		}
	}
	return HandleNone
}

// HandleAt runs the box corner test and then the endpoint test. Corners win when
// both could match.
func HandleAt(points []Point, p Point, tol HitTolerances) Handle {
	if len(points) == 0 {
		return HandleNone
	}
	if h := BoxHandleAt(Bounds(points), p, tol.BoxPadding, tol.BoxHandle); h != HandleNone {
		return h
	}
	return EndpointHandleAt(points, p, tol.Endpoint)
}

// TopmostHit scans strokes from last to first and returns the index of the first one
// whose body is within tol of p, or -1.
func TopmostHit(strokes []Stroke, p Point, tol float64) int {
	for i := len(strokes) - 1; i >= 0; i-- {
		if HitStroke(strokes[i].Points, p, tol) {
			return i
		}
	}
	return -1
}
