package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	colorful "github.com/lucasb-eyer/go-colorful"

	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/state"
)

var (
	selectionColor = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	handleFill     = color.White
)

const handleRadius = 5

// BoardWidget feeds fyne pointer and scroll events into a board.Session and draws
// its frames.
type BoardWidget struct {
	widget.BaseWidget
	session    *board.Session
	buttonDown bool

	// OnChange runs after every dispatched event, e.g. to refresh the toolbar.
	OnChange func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(s *board.Session) *BoardWidget {
	b := &BoardWidget{session: s}
	b.ExtendBaseWidget(b)
	return b
}

// Session returns the session the widget drives.
func (b *BoardWidget) Session() *board.Session { return b.session }

// Dispatch applies ev and redraws.
func (b *BoardWidget) Dispatch(ev board.Event) {
	if err := b.session.Dispatch(ev); err != nil {
		logger().Warn("event rejected", "event", ev, "err", err)
	}
	b.Refresh()
	if b.OnChange != nil {
		b.OnChange()
	}
}

func toPoint(p fyne.Position) state.Point {
	return state.Pt(float64(p.X), float64(p.Y))
}

func toPos(p state.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonSecondary {
		return
	}
	b.buttonDown = true
	b.Dispatch(board.PointerDown{
		Pos: toPoint(e.Position),
		Aux: e.Button == desktop.MouseButtonTertiary,
	})
}

func (b *BoardWidget) MouseUp(*desktop.MouseEvent) {
	if !b.buttonDown {
		return
	}
	b.buttonDown = false
	b.Dispatch(board.PointerUp{})
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.Dispatch(board.PointerMove{Pos: toPoint(e.Position)})
}

func (b *BoardWidget) DragEnd() {
	b.buttonDown = false
	b.Dispatch(board.PointerUp{})
}

// MouseMoved covers buttons the driver does not report as drags.
func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.buttonDown {
		b.Dispatch(board.PointerMove{Pos: toPoint(e.Position)})
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}

// Scrolled zooms. Fyne reports wheel-up as a positive DY, which zooms in.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.Dispatch(board.Wheel{Pos: toPoint(e.Position), DeltaY: -float64(e.Scrolled.DY)})
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	size       fyne.Size
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	f := r.board.session.Frame()
	r.background.FillColor = toColor(f.Background, 1)
	objects := []fyne.CanvasObject{r.background}

	cam := f.Camera
	for _, st := range f.Strokes {
		style := st.Effective(f.Tools)
		c := toColor(st.Color, style.Opacity)
		w := float32(style.Width * cam.Scale)

		if len(st.Points) == 1 {
			objects = append(objects, dot(cam.ToScreen(st.Points[0]), w/2, c))
			continue
		}
		for i := 1; i < len(st.Points); i++ {
			segment := canvas.NewLine(c)
			segment.StrokeWidth = w
			segment.Position1 = toPos(cam.ToScreen(st.Points[i-1]))
			segment.Position2 = toPos(cam.ToScreen(st.Points[i]))
			objects = append(objects, segment)
		}
	}

	if sel := f.Selection; sel != nil {
		tl := cam.ToScreen(state.Pt(sel.Box.MinX, sel.Box.MinY))
		br := cam.ToScreen(state.Pt(sel.Box.MaxX, sel.Box.MaxY))
		box := canvas.NewRectangle(color.Transparent)
		box.StrokeColor = selectionColor
		box.StrokeWidth = 1
		box.Move(toPos(tl))
		box.Resize(fyne.NewSize(float32(br.X-tl.X), float32(br.Y-tl.Y)))
		objects = append(objects, box)

		for _, p := range append(sel.Corners[:], sel.Start, sel.End) {
			h := dot(cam.ToScreen(p), handleRadius, handleFill)
			h.StrokeColor = selectionColor
			h.StrokeWidth = 1.5
			objects = append(objects, h)
		}
	}
	return objects
}

func dot(center state.Point, radius float32, c color.Color) *canvas.Circle {
	d := canvas.NewCircle(c)
	pos := toPos(center)
	d.Position1 = pos.SubtractXY(radius, radius)
	d.Position2 = pos.AddXY(radius, radius)
	return d
}

// toColor converts a hex color with opacity in [0,1]. Unparseable colors draw black.
func toColor(hex string, opacity float64) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{A: uint8(opacity * 255)}
	}
	rr, gg, bb := c.RGB255()
	return color.NRGBA{R: rr, G: gg, B: bb, A: uint8(opacity * 255)}
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	if size == r.size {
		return
	}
	r.size = size
	if err := r.board.session.Dispatch(board.Resize{Viewport: state.Size{
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}}); err != nil {
		logger().Warn("resize rejected", "err", err)
	}
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
