package state

import (
	"errors"
	"fmt"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	ErrUnknownTool    = errors.New("unknown tool")
	ErrInvalidColor   = errors.New("invalid color")
	ErrNonDrawingTool = errors.New("tool does not draw strokes")
)

// Point is a position in world or screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// DistanceSquared returns the squared euclidean distance between p and o.
func (p Point) DistanceSquared(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}

// Tool identifies what a pointer gesture does and which tool produced a stroke.
type Tool int

const (
	ToolSelect Tool = iota
	ToolBrush
	ToolHardBrush
	ToolHighlighter
	ToolEraser
)

var toolNames = [...]string{
	ToolSelect:      "select",
	ToolBrush:       "brush",
	ToolHardBrush:   "hardBrush",
	ToolHighlighter: "highlighter",
	ToolEraser:      "eraser",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool maps a tool name back to its Tool.
func ParseTool(name string) (Tool, error) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

func (t Tool) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(toolNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTool, int(t))
	}
	return []byte(toolNames[t]), nil
}

func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Draws reports whether strokes may carry t. Select and unknown tools never do.
func (t Tool) Draws() bool {
	return t > ToolSelect && int(t) < len(toolNames)
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolSelect, ToolBrush, ToolHardBrush, ToolHighlighter, ToolEraser}
}

// Style is the stroke width and opacity. Zero fields mean "not set".
type Style struct {
	Width   float64 `json:"strokeWidth,omitempty" toml:"width"`
	Opacity float64 `json:"opacity,omitempty" toml:"opacity"`
}

// Merge returns s with every unset field filled from fallback.
func (s Style) Merge(fallback Style) Style {
	if s.Width <= 0 {
		s.Width = fallback.Width
	}
	if s.Opacity <= 0 || s.Opacity > 1 {
		s.Opacity = fallback.Opacity
	}
	return s
}

// ToolSpec holds the per-tool behaviour looked up when a stroke is created or rendered.
type ToolSpec struct {
	// Draws reports whether pointer-down starts a stroke.
	Draws bool
	// UsesBackground makes the stroke take the canvas background color.
	UsesBackground bool
	// Render is the width/opacity used when a stroke carries none.
	Render Style
	// Seed is written into new strokes explicitly.
	Seed Style
}

// ToolTable maps every tool to its spec.
type ToolTable map[Tool]ToolSpec

// DefaultToolTable returns the built-in tool styles.
func DefaultToolTable() ToolTable {
	return ToolTable{
		ToolSelect:      {},
		ToolBrush:       {Draws: true, Render: Style{Width: 4, Opacity: 1}},
		ToolHardBrush:   {Draws: true, Render: Style{Width: 6, Opacity: 1}, Seed: Style{Width: 6}},
		ToolHighlighter: {Draws: true, Render: Style{Width: 16, Opacity: 0.3}, Seed: Style{Width: 16, Opacity: 0.3}},
		ToolEraser:      {Draws: true, UsesBackground: true, Render: Style{Width: 24, Opacity: 1}},
	}
}

// Stroke is one freehand polyline.
type Stroke struct {
	ID     string  `json:"id"`
	Tool   Tool    `json:"tool"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Style
}

// Clone returns a deep copy of s.
func (s Stroke) Clone() Stroke {
	s.Points = slices.Clone(s.Points)
	return s
}

// Effective resolves the stroke's style against the tool table.
func (s Stroke) Effective(table ToolTable) Style {
	return s.Style.Merge(table[s.Tool].Render)
}

// Start and End return the first and last point. Both panic on an empty stroke.
func (s Stroke) Start() Point { return s.Points[0] }
func (s Stroke) End() Point   { return s.Points[len(s.Points)-1] }

// ParseColor validates a "#rgb" or "#rrggbb" color and returns it normalized to "#rrggbb".
func ParseColor(hex string) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return c.Hex(), nil
}
