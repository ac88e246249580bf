// Package storage keeps finished drawings, namespaced per user, on a hackpadfs
// filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"InfiniteBoard/internal/logx"
)

var (
	ErrInvalidUser = errors.New("invalid user id")
	ErrInvalidName = errors.New("invalid file name")
)

var log = logx.NewRef("storage")

// maxStampAttempts bounds how far Upload moves past a taken millisecond stamp.
const maxStampAttempts = 100

// SetLogger installs the logger used by stores.
func SetLogger(l *slog.Logger) { log.Set(l) }

func logger() *slog.Logger { return log.Get() }

// Uploader accepts a finished drawing and returns where it was stored.
type Uploader interface {
	Upload(ctx context.Context, userID, name string, payload []byte) (string, error)
}

// FSStore writes uploads to "<root>/<userID>/<unix millis>-<name>". Returned paths
// are relative to root.
type FSStore struct {
	fs   hackpadfs.FS
	root string
	now  func() time.Time
}

var _ Uploader = (*FSStore)(nil)

// NewFSStore stores uploads under root inside fsys. An empty root means the top of
// fsys.
func NewFSStore(fsys hackpadfs.FS, root string) *FSStore {
	return &FSStore{fs: fsys, root: root, now: time.Now}
}

// OpenDir returns a store rooted at the OS directory root, creating it if needed.
func OpenDir(root string) (*FSStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	rel := strings.TrimPrefix(filepath.ToSlash(abs), "/")
	base := osfs.NewFS()
	if err := hackpadfs.MkdirAll(base, rel, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", abs, err)
	}
	logger().Info("storage opened", "root", abs)
	return NewFSStore(base, rel), nil
}

// Upload writes payload and returns its path relative to the store root.
func (s *FSStore) Upload(ctx context.Context, userID, name string, payload []byte) (string, error) {
	if err := validUser(userID); err != nil {
		return "", err
	}
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := hackpadfs.MkdirAll(s.fs, s.abs(userID), 0o755); err != nil {
		return "", fmt.Errorf("create user dir: %w", err)
	}
	p, f, err := s.create(userID, name)
	if err != nil {
		logger().Error("upload failed", "user", userID, "name", name, "err", err)
		return "", err
	}
	var werr error
	if w, ok := f.(io.Writer); ok {
		_, werr = w.Write(payload)
	} else {
		werr = hackpadfs.ErrNotImplemented
	}
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		logger().Error("upload failed", "path", p, "err", err)
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	logger().Info("drawing uploaded", "path", p, "bytes", len(payload))
	return p, nil
}

// create opens a new file for name, stamped with the current time in milliseconds.
// A taken stamp moves on to the next millisecond.
func (s *FSStore) create(userID, name string) (string, hackpadfs.File, error) {
	stamp := s.now().UnixMilli()
	for attempt := range maxStampAttempts {
		p := path.Join(userID, fmt.Sprintf("%d-%s", stamp+int64(attempt), name))
		if _, err := hackpadfs.Stat(s.fs, s.abs(p)); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		f, err := hackpadfs.OpenFile(s.fs, s.abs(p), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("create %s: %w", p, err)
		}
		return p, f, nil
	}
	return "", nil, fmt.Errorf("create %s/%d-%s: %w: no free name after %d attempts",
		userID, stamp, name, fs.ErrExist, maxStampAttempts)
}

// List returns the stored paths of a user, oldest first.
func (s *FSStore) List(ctx context.Context, userID string) ([]string, error) {
	if err := validUser(userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := hackpadfs.ReadDir(s.fs, s.abs(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", userID, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, path.Join(userID, e.Name()))
		}
	}
	// Millisecond prefixes have equal width for any date after 2001.
	slices.Sort(out)
	return out, nil
}

// Download reads a path returned by Upload.
func (s *FSStore) Download(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(p) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, p)
	}
	return fs.ReadFile(s.fs, s.abs(p))
}

// FS returns the filesystem the store writes to, for files kept next to the uploads.
func (s *FSStore) FS() hackpadfs.FS { return s.fs }

// Path maps a name relative to the store root to its path inside FS.
func (s *FSStore) Path(name string) string { return s.abs(name) }

func (s *FSStore) abs(p string) string { return path.Join(s.root, p) }

func validUser(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("%w: %q", ErrInvalidUser, id)
	}
	return nil
}
