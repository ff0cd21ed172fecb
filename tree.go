package pyroxy

import (
	"context"
	"io"
	"time"
)

// FileInfo describes a file or directory in the mirror tree.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// FileTree is a read-only directory tree served by the mirror. Paths are
// slash-separated and relative to the tree's root.
type FileTree interface {
	// Stat describes the file at path.
	// Returns ENOTFOUND if it does not exist and EFORBIDDEN if the path
	// resolves outside the root.
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Open opens a regular file for reading.
	// Returns ENOTFOUND if it does not exist and EFORBIDDEN if the path
	// resolves outside the root.
	Open(ctx context.Context, path string) (io.ReadSeekCloser, *FileInfo, error)

	// List returns the entries of a directory sorted by name.
	// Returns ENOTFOUND if it does not exist and EFORBIDDEN if the path
	// resolves outside the root.
	List(ctx context.Context, path string) ([]*FileInfo, error)
}
