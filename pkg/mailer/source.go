package mailer

import (
	"context"
	"io/fs"
	"os"
	"path"
)

// Source reads named documents (templates and content) from a backing store.
// Implementations must not cache: every call observes the current document.
// A missing document is reported with an error matching fs.ErrNotExist.
//
// pkg/storage (S3) and pkg/redis provide implementations besides FSSource.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, name string) ([]byte, error)

// Read implements Source.
func (f SourceFunc) Read(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// FSSource reads documents from an fs.FS, e.g. an embed.FS or os.DirFS.
type FSSource struct {
	fs  fs.FS
	dir string
}

// NewFSSource creates a source reading from dir inside filesystem.
// An empty dir reads from the filesystem root.
func NewFSSource(filesystem fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fs: filesystem, dir: dir}
}

// NewDirSource creates a source reading from a directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), ".")
}

// Read implements Source.
func (s *FSSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.fs, path.Join(s.dir, name))
}
