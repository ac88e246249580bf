package export

import (
	"bytes"
	"math"

	"github.com/gogpu/gg"

	"InfiniteBoard/internal/state"
)

// PNG rasterizes the strokes in z-order on the background color, scaled down so
// that neither side exceeds opts.MaxSide.
func PNG(snap state.Snapshot, opts Options) ([]byte, error) {
	area := frame(snap, opts.Margin)
	maxSide := float64(opts.MaxSide)
	if maxSide <= 0 {
		maxSide = float64(DefaultOptions().MaxSide)
	}
	k := fit(area.Width(), area.Height(), maxSide, maxSide)
	w := max(1, int(math.Ceil(area.Width()*k)))
	h := max(1, int(math.Ceil(area.Height()*k)))

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(snap.Background))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	toImage := func(p state.Point) (float64, float64) {
		return (p.X - area.MinX) * k, (p.Y - area.MinY) * k
	}
	for _, st := range snap.Strokes {
		style := st.Effective(snap.Tools)
		c := gg.Hex(st.Color)
		dc.SetRGBA(c.R, c.G, c.B, style.Opacity)
		width := max(style.Width*k, 1)

		if len(st.Points) == 1 {
			x, y := toImage(st.Points[0])
			dc.DrawCircle(x, y, width/2)
			if err := dc.Fill(); err != nil {
				return nil, err
			}
			continue
		}
		dc.SetLineWidth(width)
		dc.MoveTo(toImage(st.Points[0]))
		for _, p := range st.Points[1:] {
			dc.LineTo(toImage(p))
		}
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
