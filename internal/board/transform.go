package board

import (
	"InfiniteBoard/internal/state"
)

// DefaultMinBoxSize is the smallest width and height box-resize may produce.
const DefaultMinBoxSize = 10

// Mode is the manipulation a gesture performs on the selection.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrag
	ModeEndpoint
	ModeBox
)

func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeEndpoint:
		return "endpoint"
	case ModeBox:
		return "box"
	default:
		return "idle"
	}
}

// Transformer drags and resizes one stroke of a store.
type Transformer struct {
	store  *state.Store
	tol    state.HitTolerances
	minBox float64

	mode   Mode
	handle state.Handle
	anchor state.Point // world point where box-resize started
	last   state.Point // drag reference, updated every move
}

func NewTransformer(store *state.Store, tol state.HitTolerances, minBox float64) *Transformer {
	if minBox <= 0 {
		minBox = DefaultMinBoxSize
	}
	return &Transformer{store: store, tol: tol, minBox: minBox}
}

func (t *Transformer) Mode() Mode           { return t.mode }
func (t *Transformer) Handle() state.Handle { return t.handle }
func (t *Transformer) Anchor() state.Point  { return t.anchor }
func (t *Transformer) Active() bool         { return t.mode != ModeIdle }

// Begin evaluates, in order, the box corners, the endpoints and the body of stroke
// i at world point p, and enters the first matching mode. An invalid index starts
// nothing.
func (t *Transformer) Begin(i int, p state.Point) Mode {
	t.End()
	s, ok := t.store.At(i)
	if !ok {
		return ModeIdle
	}
	if h := state.BoxHandleAt(state.Bounds(s.Points), p, t.tol.BoxPadding, t.tol.BoxHandle); h != state.HandleNone {
		t.mode, t.handle, t.anchor = ModeBox, h, p
	} else if h := state.EndpointHandleAt(s.Points, p, t.tol.Endpoint); h != state.HandleNone {
		t.mode, t.handle = ModeEndpoint, h
	} else if state.HitStroke(s.Points, p, t.tol.Stroke) {
		t.mode, t.last = ModeDrag, p
	}
	if t.mode != ModeIdle {
		logger().Debug("transform started", "mode", t.mode, "handle", t.handle, "index", i)
	}
	return t.mode
}

// Move applies the active mode to stroke i with the pointer at world point p. It
// reports whether the stroke changed. A box-resize that would shrink either side
// below the minimum is dropped.
func (t *Transformer) Move(i int, p state.Point) bool {
	if t.mode == ModeIdle {
		return false
	}
	s, ok := t.store.At(i)
	if !ok {
		t.End()
		return false
	}

	var pts []state.Point
	switch t.mode {
	case ModeBox:
		old := state.Bounds(s.Points)
		next := old.WithCorner(t.handle, p)
		if next.Width() < t.minBox || next.Height() < t.minBox {
			return false
		}
		pts = state.MapPoints(s.Points, old, next)
	case ModeEndpoint:
		pts = s.Points
		if t.handle == state.HandleStart {
			pts[0] = p
		} else {
			pts[len(pts)-1] = p
		}
	case ModeDrag:
		pts = state.Translate(s.Points, p.Sub(t.last))
		t.last = p
	}

	if err := t.store.MutatePoints(i, pts); err != nil {
		logger().Warn("transform dropped", "mode", t.mode, "err", err)
		return false
	}
	return true
}

// End leaves the active mode.
func (t *Transformer) End() {
	t.mode = ModeIdle
	t.handle = state.HandleNone
	t.anchor = state.Point{}
	t.last = state.Point{}
}
