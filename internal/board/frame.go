package board

import "InfiniteBoard/internal/state"

// Frame is everything a renderer needs for one redraw. It is derived from the
// session on demand and never stored.
type Frame struct {
	Camera     state.Camera
	Strokes    []state.Stroke
	Tools      state.ToolTable
	Background string
	Selection  *Overlay
}

// Overlay decorates the selected stroke. Box is the padded bounding box and Corners
// its handles in tl, tr, br, bl order.
type Overlay struct {
	Index   int
	Box     state.Rect
	Corners [4]state.Point
	Start   state.Point
	End     state.Point
}

// Frame snapshots the current view.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := Frame{
		Camera:     *s.camera,
		Strokes:    s.store.Strokes(),
		Tools:      s.tools.Table(),
		Background: s.opts.Background,
	}
	if s.validateSelection() {
		st := f.Strokes[s.selected]
		box := state.Bounds(st.Points).Pad(s.opts.Tolerances.BoxPadding)
		f.Selection = &Overlay{
			Index:   s.selected,
			Box:     box,
			Corners: box.Corners(),
			Start:   st.Start(),
			End:     st.End(),
		}
	}
	return f
}
