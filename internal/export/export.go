// Package export encodes canvas snapshots into uploadable payloads.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"InfiniteBoard/internal/logx"
	"InfiniteBoard/internal/state"
)

var ErrUnknownFormat = errors.New("unknown export format")

var log = logx.NewRef("export")

// SetLogger installs the logger used by the encoders.
func SetLogger(l *slog.Logger) { log.Set(l) }

func logger() *slog.Logger { return log.Get() }

// Format selects a payload encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// DefaultFormats is what a save writes when nothing else is configured.
func DefaultFormats() []Format {
	return []Format{FormatPNG, FormatJSON, FormatPDF}
}

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case FormatPNG, FormatPDF, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Options tunes the raster and page encoders.
type Options struct {
	// MaxSide caps the longer PNG side in pixels.
	MaxSide int
	// Margin is added around the drawing in world units.
	Margin float64
	// PageSize is a gofpdf page size name such as "A4".
	PageSize string
}

func DefaultOptions() Options {
	return Options{MaxSide: 2048, Margin: 32, PageSize: "A4"}
}

// Encode renders snap in format f.
func Encode(snap state.Snapshot, f Format, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatPNG:
		data, err = PNG(snap, opts)
	case FormatPDF:
		data, err = PDF(snap, opts)
	case FormatJSON:
		data, err = JSON(snap)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	logger().Debug("snapshot encoded", "format", f, "strokes", len(snap.Strokes), "bytes", len(data))
	return data, nil
}

// frame is the world region an export covers, with the drawing centred inside a
// margin. An empty canvas yields a small blank area around the origin.
func frame(snap state.Snapshot, margin float64) state.Rect {
	r, ok := snap.Bounds()
	if !ok {
		return state.Rect{MaxX: 2 * margin, MaxY: 2 * margin}.Pad(1)
	}
	return r.Pad(max(margin, 1))
}

// fit returns the scale mapping a w×h area into at most maxW×maxH, never enlarging.
func fit(w, h, maxW, maxH float64) float64 {
	return math.Min(1, math.Min(maxW/w, maxH/h))
}
