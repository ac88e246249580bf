package logx

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefDefaultsToDiscard(t *testing.T) {
	r := NewRef("state")
	assert.False(t, r.Get().Enabled(context.Background(), slog.LevelError))
}

func TestRefSetTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	r := NewRef("board")
	r.Set(slog.New(slog.NewTextHandler(&buf, nil)))
	r.Get().Info("hello", "n", 1)
	assert.Contains(t, buf.String(), "component=board")
	assert.Contains(t, buf.String(), "n=1")

	r.Set(nil)
	buf.Reset()
	r.Get().Error("dropped")
	assert.Empty(t, buf.String())
}
