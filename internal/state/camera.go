package state

// DefaultWorldSize is the side of the square world centred in the viewport.
const DefaultWorldSize = 100_000

// DefaultZoomStep is the scale factor applied per wheel notch.
const DefaultZoomStep = 1.05

// Size is a viewport extent in screen pixels.
type Size struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ZoomDirection selects zoom in or out.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// Camera maps between screen and world space with a translation and uniform scale.
type Camera struct {
	// Offset is the world origin in screen pixels.
	Offset Point
	// Scale is always positive.
	Scale float64

	// Panned is set once the user moves the view by panning or zooming; viewport
	// resizes stop recentring from then on.
	Panned bool

	worldSize float64
	zoomStep  float64
	viewport  Size
}

// NewCamera returns a camera that centres a worldSize square in viewport.
func NewCamera(worldSize, zoomStep float64, viewport Size) *Camera {
	if worldSize <= 0 {
		worldSize = DefaultWorldSize
	}
	if zoomStep <= 1 {
		zoomStep = DefaultZoomStep
	}
	c := &Camera{worldSize: worldSize, zoomStep: zoomStep, viewport: viewport}
	c.Reset()
	return c
}

func (c *Camera) Viewport() Size     { return c.viewport }
func (c *Camera) WorldSize() float64 { return c.worldSize }

// ToWorld converts a screen point to world space.
func (c *Camera) ToWorld(s Point) Point {
	return Point{X: (s.X - c.Offset.X) / c.Scale, Y: (s.Y - c.Offset.Y) / c.Scale}
}

// ToScreen converts a world point to screen space.
func (c *Camera) ToScreen(w Point) Point {
	return Point{X: w.X*c.Scale + c.Offset.X, Y: w.Y*c.Scale + c.Offset.Y}
}

// Pan moves the world by a raw screen delta, independent of scale.
func (c *Camera) Pan(delta Point) {
	c.Offset = c.Offset.Add(delta)
	c.Panned = true
}

// Zoom rescales by one step around anchor, keeping the world point under anchor fixed.
func (c *Camera) Zoom(anchor Point, dir ZoomDirection) {
	under := c.ToWorld(anchor)
	if dir == ZoomIn {
		c.Scale *= c.zoomStep
	} else {
		c.Scale /= c.zoomStep
	}
	c.Offset = Point{X: anchor.X - under.X*c.Scale, Y: anchor.Y - under.Y*c.Scale}
	c.Panned = true
}

// ZoomWheel zooms out for a positive wheel delta and in otherwise.
func (c *Camera) ZoomWheel(anchor Point, deltaY float64) {
	if deltaY > 0 {
		c.Zoom(anchor, ZoomOut)
		return
	}
	c.Zoom(anchor, ZoomIn)
}

// Reset recentres the world in the current viewport at scale 1.
func (c *Camera) Reset() {
	c.Scale = 1
	c.Offset = c.centred()
	c.Panned = false
}

// Resize records a new viewport. The camera recentres only if it has not been panned.
func (c *Camera) Resize(viewport Size) {
	c.viewport = viewport
	if !c.Panned {
		c.Offset = c.centred()
	}
}

func (c *Camera) centred() Point {
	return Point{
		X: c.viewport.Width/2 - c.worldSize/2,
		Y: c.viewport.Height/2 - c.worldSize/2,
	}
}
