package state

import (
	"log/slog"

	"InfiniteBoard/internal/logx"
)

var log = logx.NewRef("state")

// SetLogger installs the logger used by the state package.
func SetLogger(l *slog.Logger) { log.Set(l) }

func logger() *slog.Logger { return log.Get() }
