// Package logx holds the swappable slog loggers used across the board packages.
// Every package logs nothing until a logger is installed.
package logx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Discard returns a logger that drops all output.
func Discard() *slog.Logger { return slog.New(nopHandler{}) }

// Ref is an atomically replaceable logger tagged with a component name.
type Ref struct {
	component string
	ptr       atomic.Pointer[slog.Logger]
}

// NewRef returns a silent Ref for component.
func NewRef(component string) *Ref {
	r := &Ref{component: component}
	r.ptr.Store(Discard())
	return r
}

// Set installs l. Nil restores the silent default.
func (r *Ref) Set(l *slog.Logger) {
	if l == nil {
		r.ptr.Store(Discard())
		return
	}
	r.ptr.Store(l.With("component", r.component))
}

// Get returns the current logger.
func (r *Ref) Get() *slog.Logger { return r.ptr.Load() }
