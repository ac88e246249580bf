package board

import (
	"log/slog"

	"InfiniteBoard/internal/logx"
)

var log = logx.NewRef("board")

// SetLogger installs the logger used by sessions.
func SetLogger(l *slog.Logger) { log.Set(l) }

func logger() *slog.Logger { return log.Get() }
