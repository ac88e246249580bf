package board

import "InfiniteBoard/internal/state"

// Event is one input command consumed by Session.Dispatch. Positions are in screen
// pixels.
type Event interface {
	event()
}

// PointerDown starts a gesture. Aux marks the auxiliary (pan) button.
type PointerDown struct {
	Pos state.Point
	Aux bool
}

// PointerMove continues the active gesture, if any.
type PointerMove struct {
	Pos state.Point
}

// PointerUp ends the active gesture. It also stands for a lost pointer capture.
type PointerUp struct{}

// Wheel zooms around Pos. A positive DeltaY zooms out.
type Wheel struct {
	Pos    state.Point
	DeltaY float64
}

// Resize reports new viewport dimensions.
type Resize struct {
	Viewport state.Size
}

type SetTool struct {
	Tool state.Tool
}

type SetColor struct {
	Color string
}

// SetStyle sets width/opacity overrides for new strokes. Zero fields clear them.
type SetStyle struct {
	Style state.Style
}

type DeleteSelection struct{}

// Reset clears the canvas and restores the default camera, tool and color.
type Reset struct{}

func (PointerDown) event()     {}
func (PointerMove) event()     {}
func (PointerUp) event()       {}
func (Wheel) event()           {}
func (Resize) event()          {}
func (SetTool) event()         {}
func (SetColor) event()        {}
func (SetStyle) event()        {}
func (DeleteSelection) event() {}
func (Reset) event()           {}
