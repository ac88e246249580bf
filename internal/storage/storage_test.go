package storage

import (
	"context"
	"testing"
	"time"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InfiniteBoard/internal/export"
	"InfiniteBoard/internal/state"
)

func newMemStore(t *testing.T, root string) *FSStore {
	t.Helper()
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	s := NewFSStore(fsys, root)
	clock := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return s
}

func TestUploadPathAndDownload(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, "boards")

	p, err := s.Upload(ctx, "user-1", "sketch.png", []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, "user-1/1700000000001-sketch.png", p)

	data, err := s.Download(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestUploadStripsDirectories(t *testing.T) {
	s := newMemStore(t, "")
	p, err := s.Upload(context.Background(), "u", `..\..\etc/passwd`, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "u/1700000000001-passwd", p)
}

func TestUploadRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, "")

	for _, id := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := s.Upload(ctx, id, "x.png", nil)
		assert.ErrorIs(t, err, ErrInvalidUser, "user %q", id)
	}
	_, err := s.Upload(ctx, "u", "..", nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Upload(cancelled, "u", "x.png", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListIsOldestFirst(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, "boards")

	paths, err := s.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, paths)

	var want []string
	for _, name := range []string{"c.json", "a.json", "b.png"} {
		p, err := s.Upload(ctx, "u", name, []byte(name))
		require.NoError(t, err)
		want = append(want, p)
	}
	_, err = s.Upload(ctx, "other", "z.json", nil)
	require.NoError(t, err)

	paths, err = s.List(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, want, paths)
}

func TestDownloadRejectsEscapes(t *testing.T) {
	s := newMemStore(t, "boards")
	_, err := s.Download(context.Background(), "../secret")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestPublishJSON(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, "")
	snap := state.Snapshot{
		Background: "#fffcf9",
		Strokes: []state.Stroke{
			{ID: "a", Tool: state.ToolBrush, Color: "#000000", Points: []state.Point{{X: 0, Y: 0}, {X: 10, Y: 5}}},
		},
	}

	pub := Publisher{Uploader: s, Format: export.FormatJSON, Options: export.DefaultOptions()}
	p, err := pub.Publish(ctx, "u", "drawing", snap)
	require.NoError(t, err)
	assert.Equal(t, "u/1700000000001-drawing.json", p)

	data, err := s.Download(ctx, p)
	require.NoError(t, err)
	strokes, err := export.DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Strokes, strokes)
}

func TestPublishUnknownFormat(t *testing.T) {
	pub := Publisher{Uploader: newMemStore(t, ""), Format: export.Format("svg")}
	_, err := pub.Publish(context.Background(), "u", "drawing", state.Snapshot{})
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestUploadSameMillisecond(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, "boards")
	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	first, err := s.Upload(ctx, "u", "drawing.json", []byte("one"))
	require.NoError(t, err)
	second, err := s.Upload(ctx, "u", "drawing.json", []byte("two"))
	require.NoError(t, err)
	third, err := s.Upload(ctx, "u", "drawing.png", []byte("three"))
	require.NoError(t, err)

	assert.Equal(t, "u/1700000000000-drawing.json", first)
	assert.Equal(t, "u/1700000000001-drawing.json", second)
	assert.Equal(t, "u/1700000000000-drawing.png", third)

	data, err := s.Download(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
	data, err = s.Download(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestPathIsUnderRoot(t *testing.T) {
	s := newMemStore(t, "boards")
	assert.Equal(t, "boards/accounts.json", s.Path("accounts.json"))
	assert.NotNil(t, s.FS())
}
