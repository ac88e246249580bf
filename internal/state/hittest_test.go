package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitStrokeStraightLine(t *testing.T) {
	line := []Point{{0, 0}, {100, 0}}
	tests := []struct {
		p    Point
		tol  float64
		want bool
	}{
		{Pt(50, 0), 12, true},
		{Pt(50, 20), 12, false},
		{Pt(50, 20), 25, true},
		{Pt(-11, 0), 12, true},
		{Pt(-12, 0), 12, false}, // strict comparison
		{Pt(108, 8), 12, true},  // past the end, clamped to the endpoint
		{Pt(110, 10), 12, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HitStroke(line, tt.p, tt.tol), "point %v tol %v", tt.p, tt.tol)
	}
}

func TestHitStrokePolyline(t *testing.T) {
	zigzag := []Point{{0, 0}, {50, 50}, {100, 0}}
	assert.True(t, HitStroke(zigzag, Pt(75, 25), 2))
	assert.False(t, HitStroke(zigzag, Pt(50, 0), 12))
}

func TestHitStrokePointStubNeverHits(t *testing.T) {
	assert.False(t, HitStroke([]Point{{5, 5}}, Pt(5, 5), 12))
	assert.False(t, HitStroke(nil, Pt(0, 0), 12))
}

func TestDistanceToSegmentSquaredDegenerate(t *testing.T) {
	a := Pt(3, 4)
	assert.Equal(t, 25.0, DistanceToSegmentSquared(Pt(0, 0), a, a))
	assert.True(t, HitStroke([]Point{a, a}, Pt(3, 10), 7))
}

func TestEndpointHandleAt(t *testing.T) {
	pts := []Point{{0, 0}, {50, 50}, {100, 0}}
	assert.Equal(t, HandleStart, EndpointHandleAt(pts, Pt(5, 5), EndpointTolerance))
	assert.Equal(t, HandleEnd, EndpointHandleAt(pts, Pt(95, -5), EndpointTolerance))
	assert.Equal(t, HandleNone, EndpointHandleAt(pts, Pt(50, 50), EndpointTolerance))
	// A single point is both ends; the start wins.
	assert.Equal(t, HandleStart, EndpointHandleAt([]Point{{1, 1}}, Pt(1, 1), EndpointTolerance))
}

func TestBoxHandleAt(t *testing.T) {
	box := Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}
	tests := map[Point]Handle{
		Pt(-12, -12): HandleTopLeft,
		Pt(112, -12): HandleTopRight,
		Pt(112, 62):  HandleBottomRight,
		Pt(-12, 62):  HandleBottomLeft,
		Pt(-2, -2):   HandleTopLeft,
		Pt(50, 25):   HandleNone,
		Pt(0, 40):    HandleNone,
	}
	for p, want := range tests {
		assert.Equal(t, want, BoxHandleAt(box, p, BoxPadding, BoxHandleTolerance), "point %v", p)
	}
}

func TestHandleAtPrefersCorners(t *testing.T) {
	// The start point sits on the box corner; both tests match and the corner wins.
	pts := []Point{{0, 0}, {100, 100}}
	assert.Equal(t, HandleTopLeft, HandleAt(pts, Pt(-4, -4), DefaultHitTolerances()))

	// Away from every corner only the endpoint matches.
	curve := []Point{{0, 50}, {50, 0}, {100, 50}, {50, 100}}
	assert.Equal(t, HandleEnd, HandleAt(curve, Pt(50, 95), DefaultHitTolerances()))
	assert.Equal(t, HandleNone, HandleAt(nil, Pt(0, 0), DefaultHitTolerances()))
}

func TestTopmostHit(t *testing.T) {
	strokes := []Stroke{
		{Points: []Point{{0, 0}, {100, 0}}},
		{Points: []Point{{0, 2}, {100, 2}}},
		{Points: []Point{{500, 500}, {600, 600}}},
	}
	assert.Equal(t, 1, TopmostHit(strokes, Pt(50, 1), StrokeTolerance))
	assert.Equal(t, 2, TopmostHit(strokes, Pt(550, 550), StrokeTolerance))
	assert.Equal(t, -1, TopmostHit(strokes, Pt(300, 300), StrokeTolerance))
}

func TestHandleString(t *testing.T) {
	assert.Equal(t, "tl", HandleTopLeft.String())
	assert.True(t, HandleBottomLeft.IsCorner())
	assert.False(t, HandleEnd.IsCorner())
	assert.True(t, HandleEnd.IsEndpoint())
}
