package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

var ErrOutsideRoot = errors.New("path escapes storage root")

// File is an opened stored file; *os.File satisfies it.
type File interface {
	io.ReadSeekCloser
	Stat() (fs.FileInfo, error)
}

// Storage is the filesystem the catalog assets live in. Paths are slash
// separated and relative to the storage root ("bottles/kab_sov.png").
type Storage interface {
	// Save writes reader to path, replacing an existing file only once the write completed
	Save(ctx context.Context, path string, reader io.Reader) error

	Open(ctx context.Context, path string) (File, error)

	// Delete removes path; a missing file is not an error
	Delete(ctx context.Context, path string) error

	Exists(ctx context.Context, path string) (bool, error)

	// DirExists reports whether dir exists and is a directory
	DirExists(ctx context.Context, dir string) bool

	// List returns the names of regular files directly inside dir, sorted
	List(ctx context.Context, dir string) ([]string, error)
}

type Config struct {
	Type     string // local
	BasePath string
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
