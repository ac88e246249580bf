package board

import (
	"fmt"

	"InfiniteBoard/internal/state"
)

// ToolState holds the active tool, color and style overrides, and builds new
// strokes from them.
type ToolState struct {
	tool     state.Tool
	color    string
	override state.Style

	defaultTool  state.Tool
	defaultColor string
	background   string
	table        state.ToolTable
}

// NewToolState returns a tool state in its default configuration. Colors must
// already be normalized.
func NewToolState(defaultTool state.Tool, defaultColor, background string, table state.ToolTable) *ToolState {
	ts := &ToolState{
		defaultTool:  defaultTool,
		defaultColor: defaultColor,
		background:   background,
		table:        table,
	}
	ts.Reset()
	return ts
}

func (ts *ToolState) Tool() state.Tool       { return ts.tool }
func (ts *ToolState) Color() string          { return ts.color }
func (ts *ToolState) Style() state.Style     { return ts.override }
func (ts *ToolState) Table() state.ToolTable { return ts.table }

// Draws reports whether the active tool creates strokes.
func (ts *ToolState) Draws() bool { return ts.table[ts.tool].Draws }

// SetTool switches tools. Any tool may follow any other.
func (ts *ToolState) SetTool(t state.Tool) error {
	if _, ok := ts.table[t]; !ok {
		return fmt.Errorf("set tool: %w: %s", state.ErrUnknownTool, t)
	}
	ts.tool = t
	return nil
}

// SetColor changes the brush color.
func (ts *ToolState) SetColor(hex string) error {
	c, err := state.ParseColor(hex)
	if err != nil {
		return fmt.Errorf("set color: %w", err)
	}
	ts.color = c
	return nil
}

// SetStyle sets explicit overrides that win over tool defaults.
func (ts *ToolState) SetStyle(s state.Style) { ts.override = s }

// Reset restores the default tool and color and drops overrides.
func (ts *ToolState) Reset() {
	ts.tool = ts.defaultTool
	ts.color = ts.defaultColor
	ts.override = state.Style{}
}

// NewStroke seeds a stroke for the active tool at world point p.
func (ts *ToolState) NewStroke(p state.Point) state.Stroke {
	spec := ts.table[ts.tool]
	color := ts.color
	if spec.UsesBackground {
		color = ts.background
	}
	return state.Stroke{
		Tool:   ts.tool,
		Points: []state.Point{p},
		Color:  color,
		Style:  ts.override.Merge(spec.Seed),
	}
}
