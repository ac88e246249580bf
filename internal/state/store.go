package state

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange = errors.New("stroke index out of range")
	ErrEmptyPoints     = errors.New("stroke has no points")
	ErrStrokeSealed    = errors.New("stroke is not open for drawing")
)

// Store is the ordered stroke list. Order is z-order: later strokes draw on top and
// are hit-tested first. Indices are only valid until the next mutation.
type Store struct {
	strokes []Stroke
	open    int // index of the stroke accepting AppendPoint, or -1
	rev     uint64
	mu      sync.RWMutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{open: -1}
}

// Append adds s on top and opens it for AppendPoint until Seal is called. A stroke
// without an ID gets a fresh one. Strokes of non-drawing tools are rejected.
func (st *Store) Append(s Stroke) (int, error) {
	if len(s.Points) == 0 {
		return -1, ErrEmptyPoints
	}
	if !s.Tool.Draws() {
		return -1, fmt.Errorf("append %s stroke: %w", s.Tool, ErrNonDrawingTool)
	}
	s = s.Clone()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.strokes = append(st.strokes, s)
	st.open = len(st.strokes) - 1
	st.rev++
	logger().Debug("stroke appended", "id", s.ID, "tool", s.Tool, "index", st.open)
	return st.open, nil
}

// AppendPoint extends the open stroke at index i.
func (st *Store) AppendPoint(i int, p Point) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if i < 0 || i >= len(st.strokes) {
		return fmt.Errorf("append point at %d: %w", i, ErrIndexOutOfRange)
	}
	if i != st.open {
		return fmt.Errorf("append point at %d: %w", i, ErrStrokeSealed)
	}
	st.strokes[i].Points = append(st.strokes[i].Points, p)
	st.rev++
	return nil
}

// Seal closes the open stroke, if any.
func (st *Store) Seal() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.open = -1
}

// MutatePoints replaces the points of stroke i.
func (st *Store) MutatePoints(i int, pts []Point) error {
	if len(pts) == 0 {
		return fmt.Errorf("mutate points at %d: %w", i, ErrEmptyPoints)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if i < 0 || i >= len(st.strokes) {
		return fmt.Errorf("mutate points at %d: %w", i, ErrIndexOutOfRange)
	}
	st.strokes[i].Points = slices.Clone(pts)
	st.rev++
	return nil
}

// Remove deletes stroke i, shifting later strokes down by one.
func (st *Store) Remove(i int) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if i < 0 || i >= len(st.strokes) {
		return fmt.Errorf("remove %d: %w", i, ErrIndexOutOfRange)
	}
	id := st.strokes[i].ID
	st.strokes = slices.Delete(st.strokes, i, i+1)
	switch {
	case st.open == i:
		st.open = -1
	case st.open > i:
		st.open--
	}
	st.rev++
	logger().Debug("stroke removed", "id", id, "index", i)
	return nil
}

// Clear drops every stroke.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.strokes = nil
	st.open = -1
	st.rev++
}

// Load replaces the contents with strokes, all sealed. Strokes without points or
// made by a non-drawing tool are rejected and leave the store untouched.
func (st *Store) Load(strokes []Stroke) error {
	loaded := make([]Stroke, 0, len(strokes))
	for i, s := range strokes {
		if len(s.Points) == 0 {
			return fmt.Errorf("load stroke %d: %w", i, ErrEmptyPoints)
		}
		if !s.Tool.Draws() {
			return fmt.Errorf("load stroke %d (%s): %w", i, s.Tool, ErrNonDrawingTool)
		}
		s = s.Clone()
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		loaded = append(loaded, s)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.strokes = loaded
	st.open = -1
	st.rev++
	logger().Info("strokes loaded", "count", len(loaded))
	return nil
}

// Len returns the number of strokes.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.strokes)
}

// At returns a copy of stroke i.
func (st *Store) At(i int) (Stroke, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if i < 0 || i >= len(st.strokes) {
		return Stroke{}, false
	}
	return st.strokes[i].Clone(), true
}

// Strokes returns a copy of every stroke in z-order.
func (st *Store) Strokes() []Stroke {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]Stroke, len(st.strokes))
	for i, s := range st.strokes {
		out[i] = s.Clone()
	}
	return out
}

// Open returns the index of the stroke being drawn, or -1.
func (st *Store) Open() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.open
}

// Revision increases with every mutation.
func (st *Store) Revision() uint64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.rev
}

// TopmostAt returns the index of the highest stroke whose body lies within tol of p,
// or -1.
func (st *Store) TopmostAt(p Point, tol float64) int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return TopmostHit(st.strokes, p, tol)
}
