package mock

import (
	"context"
	"io"

	"github.com/fwojciec/pyroxy"
)

var _ pyroxy.FileTree = (*FileTree)(nil)

// FileTree is a mock implementation of pyroxy.FileTree.
type FileTree struct {
	StatFn func(ctx context.Context, path string) (*pyroxy.FileInfo, error)
	OpenFn func(ctx context.Context, path string) (io.ReadSeekCloser, *pyroxy.FileInfo, error)
	ListFn func(ctx context.Context, path string) ([]*pyroxy.FileInfo, error)
}

func (t *FileTree) Stat(ctx context.Context, path string) (*pyroxy.FileInfo, error) {
	return t.StatFn(ctx, path)
}

func (t *FileTree) Open(ctx context.Context, path string) (io.ReadSeekCloser, *pyroxy.FileInfo, error) {
	return t.OpenFn(ctx, path)
}

func (t *FileTree) List(ctx context.Context, path string) ([]*pyroxy.FileInfo, error) {
	return t.ListFn(ctx, path)
}
