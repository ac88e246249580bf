// Package board is the interactive core of an infinite drawing canvas. A Session
// owns the camera, the stroke store, the active tool and the selection, and applies
// input events to them one at a time.
package board

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"InfiniteBoard/internal/state"
)

// Options configures a new Session.
type Options struct {
	WorldSize    float64
	ZoomStep     float64
	Viewport     state.Size
	Background   string
	DefaultColor string
	DefaultTool  state.Tool
	Tolerances   state.HitTolerances
	MinBoxSize   float64
	Tools        state.ToolTable
}

// DefaultOptions returns the built-in canvas settings.
func DefaultOptions() Options {
	return Options{
		WorldSize:    state.DefaultWorldSize,
		ZoomStep:     state.DefaultZoomStep,
		Viewport:     state.Size{Width: 1024, Height: 768},
		Background:   "#fffcf9",
		DefaultColor: "#000000",
		DefaultTool:  state.ToolSelect,
		Tolerances:   state.DefaultHitTolerances(),
		MinBoxSize:   DefaultMinBoxSize,
		Tools:        state.DefaultToolTable(),
	}
}

// Gesture is what the current pointer-down..up sequence is doing.
type Gesture int

const (
	GestureNone Gesture = iota
	GesturePan
	GestureDraw
	GestureTransform
)

// Session is one open canvas. All methods are safe to call from multiple
// goroutines; events are applied strictly in call order.
type Session struct {
	camera *state.Camera
	store  *state.Store
	tools  *ToolState
	xform  *Transformer
	opts   Options

	selected  int // -1 when nothing is selected
	panning   bool
	lastPan   state.Point
	drawing   bool
	drawIndex int

	mu sync.Mutex
}

// NewSession builds a session from opts.
func NewSession(opts Options) (*Session, error) {
	bg, err := state.ParseColor(opts.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	fg, err := state.ParseColor(opts.DefaultColor)
	if err != nil {
		return nil, fmt.Errorf("default color: %w", err)
	}
	if opts.Tools == nil {
		opts.Tools = state.DefaultToolTable()
	}
	if _, ok := opts.Tools[opts.DefaultTool]; !ok {
		return nil, fmt.Errorf("default tool: %w: %s", state.ErrUnknownTool, opts.DefaultTool)
	}
	opts.Background, opts.DefaultColor = bg, fg

	store := state.NewStore()
	return &Session{
		camera:   state.NewCamera(opts.WorldSize, opts.ZoomStep, opts.Viewport),
		store:    store,
		tools:    NewToolState(opts.DefaultTool, fg, bg, opts.Tools),
		xform:    NewTransformer(store, opts.Tolerances, opts.MinBoxSize),
		opts:     opts,
		selected: -1,
	}, nil
}

// Dispatch applies one event.
func (s *Session) Dispatch(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ev)
}

// Replay applies events in order and returns every error joined. A failing event
// does not stop the ones after it.
func (s *Session) Replay(evs ...Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for i, ev := range evs {
		if err := s.apply(ev); err != nil {
			errs = append(errs, fmt.Errorf("event %d (%T): %w", i, ev, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) apply(ev Event) error {
	switch ev := ev.(type) {
	case PointerDown:
		return s.pointerDown(ev)
	case PointerMove:
		return s.pointerMove(ev)
	case PointerUp:
		s.pointerUp()
	case Wheel:
		s.camera.ZoomWheel(ev.Pos, ev.DeltaY)
	case Resize:
		s.camera.Resize(ev.Viewport)
	case SetTool:
		s.pointerUp()
		return s.tools.SetTool(ev.Tool)
	case SetColor:
		return s.tools.SetColor(ev.Color)
	case SetStyle:
		s.tools.SetStyle(ev.Style)
	case DeleteSelection:
		return s.deleteSelection()
	case Reset:
		s.reset()
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
	return nil
}

func (s *Session) pointerDown(ev PointerDown) error {
	if ev.Aux {
		s.pointerUp()
		s.panning, s.lastPan = true, ev.Pos
		return nil
	}
	w := s.camera.ToWorld(ev.Pos)

	if !s.tools.Draws() {
		s.validateSelection()
		// Handles sit outside the stroke body, so the current selection gets
		// first look before the selection query can discard it.
		if s.selected >= 0 {
			if st, ok := s.store.At(s.selected); ok && state.HandleAt(st.Points, w, s.opts.Tolerances) != state.HandleNone {
				s.xform.Begin(s.selected, w)
				return nil
			}
		}
		s.selected = s.store.TopmostAt(w, s.opts.Tolerances.Stroke)
		if s.selected >= 0 {
			s.xform.Begin(s.selected, w)
		}
		return nil
	}

	i, err := s.store.Append(s.tools.NewStroke(w))
	if err != nil {
		return fmt.Errorf("start stroke: %w", err)
	}
	s.selected = -1
	s.drawing, s.drawIndex = true, i
	return nil
}

func (s *Session) pointerMove(ev PointerMove) error {
	switch {
	case s.panning:
		s.camera.Pan(ev.Pos.Sub(s.lastPan))
		s.lastPan = ev.Pos
	case s.drawing:
		if err := s.store.AppendPoint(s.drawIndex, s.camera.ToWorld(ev.Pos)); err != nil {
			s.drawing = false
			return fmt.Errorf("extend stroke: %w", err)
		}
	case s.xform.Active():
		if !s.validateSelection() {
			s.xform.End()
			return nil
		}
		s.xform.Move(s.selected, s.camera.ToWorld(ev.Pos))
	}
	return nil
}

// pointerUp clears every gesture substate. The store keeps whatever the last move
// produced.
func (s *Session) pointerUp() {
	if s.drawing {
		s.store.Seal()
		s.drawing = false
	}
	s.panning = false
	s.xform.End()
}

func (s *Session) deleteSelection() error {
	if !s.validateSelection() {
		return nil
	}
	s.pointerUp()
	if err := s.store.Remove(s.selected); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	logger().Info("stroke deleted", "index", s.selected)
	s.selected = -1
	return nil
}

func (s *Session) reset() {
	s.pointerUp()
	s.store.Clear()
	s.selected = -1
	s.camera.Reset()
	s.tools.Reset()
	logger().Info("canvas reset")
}

// validateSelection clears a selection that no longer points at a stroke.
func (s *Session) validateSelection() bool {
	if s.selected >= s.store.Len() {
		s.selected = -1
	}
	return s.selected >= 0
}

// Load replaces every stroke, for example with a saved drawing, and clears the
// selection.
func (s *Session) Load(strokes []state.Stroke) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointerUp()
	if err := s.store.Load(strokes); err != nil {
		return err
	}
	s.selected = -1
	return nil
}

// Selection returns the selected index.
func (s *Session) Selection() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validateSelection() {
		return -1, false
	}
	return s.selected, true
}

// Select sets the selection directly; an out-of-range index clears it.
func (s *Session) Select(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xform.End()
	if i < 0 || i >= s.store.Len() {
		i = -1
	}
	s.selected = i
}

func (s *Session) Tool() state.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tools.Tool()
}

func (s *Session) Color() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tools.Color()
}

// Camera returns a copy of the camera.
func (s *Session) Camera() state.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.camera
}

// Strokes returns a copy of the strokes in z-order.
func (s *Session) Strokes() []state.Stroke {
	return s.store.Strokes()
}

// Gesture reports the gesture in progress.
func (s *Session) Gesture() Gesture {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.panning:
		return GesturePan
	case s.drawing:
		return GestureDraw
	case s.xform.Active():
		return GestureTransform
	default:
		return GestureNone
	}
}

// TransformMode reports the active manipulation of the selection.
func (s *Session) TransformMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xform.Mode()
}

// Snapshot copies the canvas for export and upload.
func (s *Session) Snapshot() state.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state.Snapshot{
		Strokes:    s.store.Strokes(),
		Background: s.opts.Background,
		WorldSize:  s.camera.WorldSize(),
		Tools:      s.tools.Table(),
		TakenAt:    time.Now(),
	}
}
