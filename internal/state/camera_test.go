package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertPointNear(t *testing.T, want, got Point, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
}

func TestCameraDefaultCentresWorld(t *testing.T) {
	c := NewCamera(DefaultWorldSize, DefaultZoomStep, Size{Width: 1024, Height: 768})
	assert.Equal(t, 1.0, c.Scale)
	assert.Equal(t, Pt(512-50_000, 384-50_000), c.Offset)
	// The viewport centre looks at the world centre.
	assertPointNear(t, Pt(50_000, 50_000), c.ToWorld(Pt(512, 384)), eps)
}

func TestCameraToScreenInvertsToWorld(t *testing.T) {
	c := NewCamera(1000, 1.05, Size{Width: 800, Height: 600})
	c.Pan(Pt(13, -7))
	c.Zoom(Pt(100, 100), ZoomIn)
	c.Zoom(Pt(400, 20), ZoomIn)
	for _, s := range []Point{{0, 0}, {123.5, 99}, {-40, 800}} {
		assertPointNear(t, s, c.ToScreen(c.ToWorld(s)), 1e-6)
	}
}

func TestCameraZoomKeepsAnchor(t *testing.T) {
	anchors := []Point{{0, 0}, {512, 384}, {17.25, 900}, {-300, 42}}
	for _, dir := range []ZoomDirection{ZoomIn, ZoomOut} {
		for _, a := range anchors {
			c := NewCamera(DefaultWorldSize, DefaultZoomStep, Size{Width: 1024, Height: 768})
			c.Pan(Pt(31, -12))
			for range 7 {
				before := c.ToWorld(a)
				c.Zoom(a, dir)
				assertPointNear(t, before, c.ToWorld(a), 1e-6)
			}
		}
	}
}

func TestCameraZoomStep(t *testing.T) {
	c := NewCamera(1000, 1.05, Size{Width: 1000, Height: 1000})
	c.ZoomWheel(Pt(10, 10), -120)
	assert.InDelta(t, 1.05, c.Scale, eps)
	c.ZoomWheel(Pt(10, 10), 120)
	c.ZoomWheel(Pt(10, 10), 120)
	assert.InDelta(t, 1/1.05, c.Scale, eps)
	assert.Greater(t, c.Scale, 0.0)
}

func TestCameraPanIsAdditiveAndUnscaled(t *testing.T) {
	a, b := Pt(30, -20), Pt(-5, 45)

	c1 := NewCamera(1000, 1.05, Size{Width: 1000, Height: 1000})
	c1.Zoom(Pt(0, 0), ZoomIn)
	c2 := *c1

	c1.Pan(a)
	c1.Pan(b)
	c2.Pan(a.Add(b))
	assert.Equal(t, c2.Offset, c1.Offset)

	// A pan moves screen pixels 1:1 regardless of scale.
	start := c2.Offset
	c2.Pan(Pt(10, 0))
	assert.Equal(t, start.X+10, c2.Offset.X)
}

func TestCameraResizeRecentresUntilPanned(t *testing.T) {
	c := NewCamera(1000, 1.05, Size{Width: 1000, Height: 1000})
	c.Resize(Size{Width: 800, Height: 600})
	assert.Equal(t, Pt(-100, -200), c.Offset)

	c.Pan(Pt(5, 5))
	c.Resize(Size{Width: 1200, Height: 900})
	assert.Equal(t, Pt(-95, -195), c.Offset)
	assert.Equal(t, Size{Width: 1200, Height: 900}, c.Viewport())

	c.Reset()
	assert.False(t, c.Panned)
	assert.Equal(t, Pt(100, -50), c.Offset)
	assert.Equal(t, 1.0, c.Scale)
}
