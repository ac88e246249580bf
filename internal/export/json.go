package export

import (
	"encoding/json"
	"fmt"
	"time"

	"InfiniteBoard/internal/state"
)

// wireStroke stores points flattened as [x0, y0, x1, y1, ...].
type wireStroke struct {
	ID          string     `json:"id,omitempty"`
	Tool        state.Tool `json:"tool"`
	Points      []float64  `json:"points"`
	Color       string     `json:"color"`
	Opacity     float64    `json:"opacity,omitempty"`
	StrokeWidth float64    `json:"strokeWidth,omitempty"`
}

type wireDrawing struct {
	Background string       `json:"background"`
	WorldSize  float64      `json:"worldSize"`
	TakenAt    time.Time    `json:"takenAt"`
	Lines      []wireStroke `json:"lines"`
}

// JSON encodes the snapshot as an indented document.
func JSON(snap state.Snapshot) ([]byte, error) {
	d := wireDrawing{
		Background: snap.Background,
		WorldSize:  snap.WorldSize,
		TakenAt:    snap.TakenAt.UTC(),
		Lines:      make([]wireStroke, 0, len(snap.Strokes)),
	}
	for _, st := range snap.Strokes {
		flat := make([]float64, 0, 2*len(st.Points))
		for _, p := range st.Points {
			flat = append(flat, p.X, p.Y)
		}
		d.Lines = append(d.Lines, wireStroke{
			ID:          st.ID,
			Tool:        st.Tool,
			Points:      flat,
			Color:       st.Color,
			Opacity:     st.Opacity,
			StrokeWidth: st.Width,
		})
	}
	return json.MarshalIndent(d, "", "  ")
}

// DecodeJSON parses a document written by JSON. Lines with an odd number of
// coordinates or none at all, lines of a non-drawing tool and lines with an invalid
// color are rejected. Colors come back normalized.
func DecodeJSON(data []byte) ([]state.Stroke, error) {
	var d wireDrawing
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode drawing: %w", err)
	}
	strokes := make([]state.Stroke, 0, len(d.Lines))
	for i, l := range d.Lines {
		if len(l.Points) == 0 || len(l.Points)%2 != 0 {
			return nil, fmt.Errorf("line %d: %d coordinates: %w", i, len(l.Points), state.ErrEmptyPoints)
		}
		if !l.Tool.Draws() {
			return nil, fmt.Errorf("line %d: %w: %s", i, state.ErrNonDrawingTool, l.Tool)
		}
		color, err := state.ParseColor(l.Color)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		pts := make([]state.Point, 0, len(l.Points)/2)
		for j := 0; j < len(l.Points); j += 2 {
			pts = append(pts, state.Pt(l.Points[j], l.Points[j+1]))
		}
		strokes = append(strokes, state.Stroke{
			ID:     l.ID,
			Tool:   l.Tool,
			Points: pts,
			Color:  color,
			Style:  state.Style{Width: l.StrokeWidth, Opacity: l.Opacity},
		})
	}
	return strokes, nil
}
