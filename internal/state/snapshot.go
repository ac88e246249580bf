package state

import "time"

// Snapshot is an immutable copy of a canvas handed to export and persistence.
type Snapshot struct {
	Strokes    []Stroke
	Background string
	WorldSize  float64
	Tools      ToolTable
	TakenAt    time.Time
}

// Bounds returns the box enclosing every stroke point, and false for an empty canvas.
func (s Snapshot) Bounds() (Rect, bool) {
	var all []Point
	for _, st := range s.Strokes {
		all = append(all, st.Points...)
	}
	if len(all) == 0 {
		return Rect{}, false
	}
	return Bounds(all), true
}
