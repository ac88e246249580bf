package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(toColor(s.Hex, 1))
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// Toolbar holds the tool picker, palette, width slider and canvas commands.
type Toolbar struct {
	board     *BoardWidget
	tools     *widget.Select
	deleteBtn *widget.Button
	content   fyne.CanvasObject
}

// NewToolbar builds the toolbar for board. onSave and onOpen may be nil.
func NewToolbar(b *BoardWidget, palette []string, onSave, onOpen func()) *Toolbar {
	tb := &Toolbar{board: b}

	names := make([]string, 0, len(state.Tools()))
	for _, t := range state.Tools() {
		names = append(names, t.String())
	}
	tb.tools = widget.NewSelect(names, func(name string) {
		t, err := state.ParseTool(name)
		if err != nil || t == b.Session().Tool() {
			return
		}
		b.Dispatch(board.SetTool{Tool: t})
	})
	tb.tools.SetSelected(b.Session().Tool().String())

	swatches := container.NewHBox()
	for _, hex := range palette {
		swatches.Add(newColorSwatch(hex, func(hex string) {
			b.Dispatch(board.SetColor{Color: hex})
		}))
	}

	// Zero leaves the width to the tool default.
	width := widget.NewSlider(0, 50)
	width.OnChanged = func(v float64) {
		b.Dispatch(board.SetStyle{Style: state.Style{Width: v}})
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), width)

	tb.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		b.Dispatch(board.DeleteSelection{})
	})
	reset := widget.NewButtonWithIcon("", theme.ContentClearIcon(), func() {
		b.Dispatch(board.Reset{})
		width.SetValue(0)
	})

	actions := container.NewHBox(tb.deleteBtn, reset)
	if onSave != nil {
		actions.Add(widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), onSave))
	}
	if onOpen != nil {
		actions.Add(widget.NewButtonWithIcon("", theme.FolderOpenIcon(), onOpen))
	}

	tb.content = container.NewHBox(
		widget.NewLabel("Tool:"),
		tb.tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		actions,
		layout.NewSpacer(),
	)
	tb.Sync()
	return tb
}

// Object returns the toolbar's canvas object.
func (tb *Toolbar) Object() fyne.CanvasObject { return tb.content }

// Sync mirrors session state that can change without the toolbar, such as a reset
// restoring the default tool.
func (tb *Toolbar) Sync() {
	s := tb.board.Session()
	if name := s.Tool().String(); tb.tools.Selected != name {
		tb.tools.SetSelected(name)
	}
	if _, ok := s.Selection(); ok {
		tb.deleteBtn.Enable()
	} else {
		tb.deleteBtn.Disable()
	}
}
