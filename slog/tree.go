package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pyroxy"
)

// Ensure LoggingFileTree implements pyroxy.FileTree.
var _ pyroxy.FileTree = (*LoggingFileTree)(nil)

// LoggingFileTree wraps a FileTree with debug logging.
type LoggingFileTree struct {
	next   pyroxy.FileTree
	logger *slog.Logger
}

// NewLoggingFileTree creates a new LoggingFileTree.
func NewLoggingFileTree(next pyroxy.FileTree, logger *slog.Logger) *LoggingFileTree {
	return &LoggingFileTree{next: next, logger: logger}
}

// Stat delegates to the wrapped tree and logs the operation.
func (t *LoggingFileTree) Stat(ctx context.Context, path string) (fi *pyroxy.FileInfo, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("stat",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Stat(ctx, path)
}

// Open delegates to the wrapped tree and logs the operation.
func (t *LoggingFileTree) Open(ctx context.Context, path string) (f io.ReadSeekCloser, fi *pyroxy.FileInfo, err error) {
	defer func(begin time.Time) {
		var size int64
		if fi != nil {
			size = fi.Size
		}
		t.logger.Debug("open",
			"path", path,
			"size", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Open(ctx, path)
}

// List delegates to the wrapped tree and logs the operation.
func (t *LoggingFileTree) List(ctx context.Context, path string) (entries []*pyroxy.FileInfo, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("list",
			"path", path,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.List(ctx, path)
}
