package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
	colorful "github.com/lucasb-eyer/go-colorful"

	"InfiniteBoard/internal/state"
)

// PDF draws the strokes onto one page, fitted inside the page margins.
func PDF(snap state.Snapshot, opts Options) ([]byte, error) {
	size := opts.PageSize
	if size == "" {
		size = DefaultOptions().PageSize
	}
	area := frame(snap, opts.Margin)
	orientation := "P"
	if area.Width() > area.Height() {
		orientation = "L"
	}

	p := gofpdf.New(orientation, "mm", size, "")
	p.SetMargins(10, 10, 10)
	p.AddPage()
	pageW, pageH := p.GetPageSize()
	left, top, right, bottom := p.GetMargins()
	usableW, usableH := pageW-left-right, pageH-top-bottom

	// Pages are never enlarged past 1 world unit per mm; small drawings stay small.
	k := fit(area.Width(), area.Height(), usableW, usableH)
	toPage := func(pt state.Point) (float64, float64) {
		return left + (pt.X-area.MinX)*k, top + (pt.Y-area.MinY)*k
	}

	bg := rgb(snap.Background)
	p.SetFillColor(bg[0], bg[1], bg[2])
	p.Rect(left, top, area.Width()*k, area.Height()*k, "F")
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, st := range snap.Strokes {
		style := st.Effective(snap.Tools)
		c := rgb(st.Color)
		p.SetAlpha(style.Opacity, "Normal")
		p.SetDrawColor(c[0], c[1], c[2])
		p.SetFillColor(c[0], c[1], c[2])
		p.SetLineWidth(max(style.Width*k, 0.1))

		if len(st.Points) == 1 {
			x, y := toPage(st.Points[0])
			p.Circle(x, y, max(style.Width*k, 0.1)/2, "F")
			continue
		}
		for i := 1; i < len(st.Points); i++ {
			x1, y1 := toPage(st.Points[i-1])
			x2, y2 := toPage(st.Points[i])
			p.Line(x1, y1, x2, y2)
		}
	}
	p.SetAlpha(1, "Normal")

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rgb converts a hex color to 0-255 components, falling back to black.
func rgb(hex string) [3]int {
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]int{}
	}
	r, g, b := c.RGB255()
	return [3]int{int(r), int(g), int(b)}
}
