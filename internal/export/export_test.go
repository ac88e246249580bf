package export

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InfiniteBoard/internal/state"
)

func testSnapshot() state.Snapshot {
	return state.Snapshot{
		Background: "#fffcf9",
		WorldSize:  state.DefaultWorldSize,
		Tools:      state.DefaultToolTable(),
		TakenAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Strokes: []state.Stroke{
			{ID: "a", Tool: state.ToolBrush, Color: "#000000", Points: []state.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}},
			{ID: "b", Tool: state.ToolHighlighter, Color: "#eab308", Points: []state.Point{{X: 20, Y: -10}}, Style: state.Style{Width: 16, Opacity: 0.3}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": FormatPNG, ".PDF": FormatPDF, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, ".png", FormatPNG.Ext())
}

func TestDecodeJSONFlatPoints(t *testing.T) {
	doc := `{
		"background": "#fffcf9",
		"lines": [
			{"tool": "brush", "points": [1, 2, 3, 4, 5, 6], "color": "#ff0000"},
			{"tool": "highlighter", "points": [7, 8], "color": "#00ff00", "opacity": 0.3, "strokeWidth": 16}
		]
	}`
	strokes, err := DecodeJSON([]byte(doc))
	require.NoError(t, err)
	require.Len(t, strokes, 2)
	assert.Equal(t, []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}, strokes[0].Points)
	assert.Equal(t, state.ToolBrush, strokes[0].Tool)
	assert.Equal(t, state.Style{Width: 16, Opacity: 0.3}, strokes[1].Style)
	assert.Equal(t, []state.Point{{X: 7, Y: 8}}, strokes[1].Points)
}

func TestDecodeJSONRejects(t *testing.T) {
	tests := map[string]string{
		"odd coordinates": `{"lines": [{"tool": "brush", "points": [1, 2, 3], "color": "#000"}]}`,
		"no coordinates":  `{"lines": [{"tool": "brush", "points": [], "color": "#000"}]}`,
		"unknown tool":    `{"lines": [{"tool": "lasso", "points": [1, 2], "color": "#000"}]}`,
		"not json":        `lines: []`,
		"select tool":     `{"lines": [{"tool": "select", "points": [0, 0, 100, 0], "color": "#000"}]}`,
		"bad color":       `{"lines": [{"tool": "brush", "points": [1, 2], "color": "chartreuse-ish"}]}`,
		"missing color":   `{"lines": [{"tool": "brush", "points": [1, 2]}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(doc))
			assert.Error(t, err)
		})
	}
	_, err := DecodeJSON([]byte(tests["odd coordinates"]))
	assert.ErrorIs(t, err, state.ErrEmptyPoints)
	_, err = DecodeJSON([]byte(tests["select tool"]))
	assert.ErrorIs(t, err, state.ErrNonDrawingTool)
	_, err = DecodeJSON([]byte(tests["bad color"]))
	assert.ErrorIs(t, err, state.ErrInvalidColor)
}

func TestDecodeJSONNormalizesColor(t *testing.T) {
	strokes, err := DecodeJSON([]byte(`{"lines": [{"tool": "eraser", "points": [1, 2], "color": "#FFF"}]}`))
	require.NoError(t, err)
	require.Len(t, strokes, 1)
	assert.Equal(t, "#ffffff", strokes[0].Color)
}

func TestJSONRoundTrip(t *testing.T) {
	snap := testSnapshot()
	data, err := Encode(snap, FormatJSON, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"points": [`)
	assert.Contains(t, string(data), `"tool": "highlighter"`)

	strokes, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Strokes, strokes)
}

func TestPNG(t *testing.T) {
	data, err := Encode(testSnapshot(), FormatPNG, DefaultOptions())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	// Bounds (0,-10)-(100,0) plus a 32 unit margin.
	assert.Equal(t, 164, img.Bounds().Dx())
	assert.Equal(t, 74, img.Bounds().Dy())

	corner := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	assert.InDelta(t, 255, int(corner.R), 2)
	assert.InDelta(t, 252, int(corner.G), 2)
	assert.InDelta(t, 249, int(corner.B), 2)

	// The brush stroke runs along y=0, which is image row 42.
	ink := color.NRGBAModel.Convert(img.At(82, 42)).(color.NRGBA)
	assert.Less(t, int(ink.R), 128)
}

func TestPNGScalesDown(t *testing.T) {
	snap := state.Snapshot{
		Background: "#ffffff",
		Strokes:    []state.Stroke{{Tool: state.ToolBrush, Color: "#000", Points: []state.Point{{X: 0, Y: 0}, {X: 936, Y: 0}}}},
	}
	data, err := PNG(snap, Options{MaxSide: 500, Margin: 32})
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestPNGEmptyCanvas(t *testing.T) {
	data, err := PNG(state.Snapshot{Background: "#fffcf9"}, DefaultOptions())
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 66, img.Bounds().Dx())
}

func TestPDF(t *testing.T) {
	data, err := Encode(testSnapshot(), FormatPDF, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = PDF(state.Snapshot{Background: "#fffcf9"}, Options{PageSize: "Letter"})
	require.NoError(t, err)
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(testSnapshot(), Format("bmp"), DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
