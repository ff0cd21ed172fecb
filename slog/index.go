// Package slog provides logging decorators for the index pipeline and the
// mirror tree.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pyroxy"
)

// Ensure LoggingIndexSource implements pyroxy.IndexSource.
var _ pyroxy.IndexSource = (*LoggingIndexSource)(nil)

// LoggingIndexSource wraps an IndexSource with debug logging.
type LoggingIndexSource struct {
	next   pyroxy.IndexSource
	logger *slog.Logger
}

// NewLoggingIndexSource creates a new LoggingIndexSource.
func NewLoggingIndexSource(next pyroxy.IndexSource, logger *slog.Logger) *LoggingIndexSource {
	return &LoggingIndexSource{next: next, logger: logger}
}

// ReadIndex delegates to the wrapped source and logs the operation.
func (s *LoggingIndexSource) ReadIndex(ctx context.Context, packageName string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read index",
			"package", packageName,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadIndex(ctx, packageName)
}

// Ensure LoggingIndexFilter implements pyroxy.IndexFilter.
var _ pyroxy.IndexFilter = (*LoggingIndexFilter)(nil)

// LoggingIndexFilter wraps an IndexFilter and logs how many links each pass
// saw and removed.
type LoggingIndexFilter struct {
	next   pyroxy.IndexFilter
	logger *slog.Logger
}

// NewLoggingIndexFilter creates a new LoggingIndexFilter.
func NewLoggingIndexFilter(next pyroxy.IndexFilter, logger *slog.Logger) *LoggingIndexFilter {
	return &LoggingIndexFilter{next: next, logger: logger}
}

// FilterIndex delegates to the wrapped filter and logs the operation.
func (f *LoggingIndexFilter) FilterIndex(ctx context.Context, packageName string, raw []byte) (idx *pyroxy.FilteredIndex, err error) {
	defer func(begin time.Time) {
		var links, removed int
		if idx != nil {
			links = idx.Links.Len()
			removed = idx.RemovedCount()
		}
		f.logger.Info("filter index",
			"package", packageName,
			"links", links,
			"removed", removed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FilterIndex(ctx, packageName, raw)
}
