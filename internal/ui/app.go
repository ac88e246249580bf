package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"InfiniteBoard/internal/auth"
	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/export"
	"InfiniteBoard/internal/logx"
	"InfiniteBoard/internal/storage"
)

var log = logx.NewRef("ui")

// SetLogger installs the logger used by the window and widgets.
func SetLogger(l *slog.Logger) { log.Set(l) }

func logger() *slog.Logger { return log.Get() }

// Library is where the window saves and reopens drawings.
type Library struct {
	Store   *storage.FSStore
	User    auth.User
	Options export.Options
	// Formats are written by every save. Empty means export.DefaultFormats.
	Formats []export.Format
}

// RunApp opens the canvas window and blocks until it closes.
func RunApp(s *board.Session, palette []string, lib *Library) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Infinite Board")
	cam := s.Camera()
	vp := cam.Viewport()
	myWindow.Resize(fyne.NewSize(float32(vp.Width), float32(vp.Height)))

	b := NewBoardWidget(s)
	status := widget.NewLabel("Ready")
	setStatus := func(text string) {
		fyne.Do(func() { status.SetText(text) })
	}

	var onSave, onOpen func()
	if lib != nil {
		onSave = func() { go lib.save(s, setStatus) }
		onOpen = func() { go lib.openLatest(b, setStatus) }
	}
	toolbar := NewToolbar(b, palette, onSave, onOpen)
	b.OnChange = toolbar.Sync

	content := container.NewBorder(toolbar.Object(), status, nil, nil, b)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}

// save publishes the snapshot once per configured format. Only the JSON copy can be
// reopened. Failures only reach the status bar; the canvas keeps working.
func (l *Library) save(s *board.Session, setStatus func(string)) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	formats := l.Formats
	if len(formats) == 0 {
		formats = export.DefaultFormats()
	}
	snap := s.Snapshot()
	var saved []string
	for _, f := range formats {
		p := storage.Publisher{Uploader: l.Store, Format: f, Options: l.Options}
		stored, err := p.Publish(ctx, l.User.ID, "drawing", snap)
		if err != nil {
			logger().Error("save failed", "format", f, "err", err)
			setStatus(fmt.Sprintf("Save failed: %v", err))
			return
		}
		saved = append(saved, stored)
	}
	setStatus(fmt.Sprintf("Saved %d strokes to %s", len(snap.Strokes), strings.Join(saved, ", ")))
}

// openLatest loads the newest JSON drawing of the user.
func (l *Library) openLatest(b *BoardWidget, setStatus func(string)) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	paths, err := l.Store.List(ctx, l.User.ID)
	if err != nil {
		setStatus(fmt.Sprintf("Open failed: %v", err))
		return
	}
	var latest string
	for _, p := range paths {
		if path.Ext(p) == export.FormatJSON.Ext() {
			latest = p
		}
	}
	if latest == "" {
		setStatus("No saved drawings")
		return
	}
	data, err := l.Store.Download(ctx, latest)
	if err != nil {
		setStatus(fmt.Sprintf("Open failed: %v", err))
		return
	}
	strokes, err := export.DecodeJSON(data)
	if err != nil {
		setStatus(fmt.Sprintf("Open failed: %v", err))
		return
	}
	if err := b.Session().Load(strokes); err != nil {
		setStatus(fmt.Sprintf("Open failed: %v", err))
		return
	}
	fyne.Do(func() {
		b.Refresh()
		if b.OnChange != nil {
			b.OnChange()
		}
	})
	setStatus(fmt.Sprintf("Loaded %d strokes from %s", len(strokes), latest))
}
