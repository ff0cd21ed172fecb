package mock

import (
	"context"

	"github.com/fwojciec/pyroxy"
)

var _ pyroxy.IndexParser = (*IndexParser)(nil)

// IndexParser is a mock implementation of pyroxy.IndexParser.
type IndexParser struct {
	ParseFn func(raw []byte) (pyroxy.IndexDocument, error)
}

func (p *IndexParser) Parse(raw []byte) (pyroxy.IndexDocument, error) {
	return p.ParseFn(raw)
}

var _ pyroxy.IndexDocument = (*IndexDocument)(nil)

// IndexDocument is a mock implementation of pyroxy.IndexDocument.
type IndexDocument struct {
	LinksFn  func() []pyroxy.Link
	RemoveFn func(link pyroxy.Link)
	RenderFn func() ([]byte, error)
}

func (d *IndexDocument) Links() []pyroxy.Link {
	return d.LinksFn()
}

func (d *IndexDocument) Remove(link pyroxy.Link) {
	d.RemoveFn(link)
}

func (d *IndexDocument) Render() ([]byte, error) {
	return d.RenderFn()
}

var _ pyroxy.IndexFilter = (*IndexFilter)(nil)

// IndexFilter is a mock implementation of pyroxy.IndexFilter.
type IndexFilter struct {
	FilterIndexFn func(ctx context.Context, packageName string, raw []byte) (*pyroxy.FilteredIndex, error)
}

func (f *IndexFilter) FilterIndex(ctx context.Context, packageName string, raw []byte) (*pyroxy.FilteredIndex, error) {
	return f.FilterIndexFn(ctx, packageName, raw)
}

var _ pyroxy.IndexSource = (*IndexSource)(nil)

// IndexSource is a mock implementation of pyroxy.IndexSource.
type IndexSource struct {
	ReadIndexFn func(ctx context.Context, packageName string) ([]byte, error)
}

func (s *IndexSource) ReadIndex(ctx context.Context, packageName string) ([]byte, error) {
	return s.ReadIndexFn(ctx, packageName)
}

var _ pyroxy.PackageIndexService = (*PackageIndexService)(nil)

// PackageIndexService is a mock implementation of pyroxy.PackageIndexService.
type PackageIndexService struct {
	PackageIndexFn func(ctx context.Context, packageName string) (*pyroxy.PackageIndex, error)
}

func (s *PackageIndexService) PackageIndex(ctx context.Context, packageName string) (*pyroxy.PackageIndex, error) {
	return s.PackageIndexFn(ctx, packageName)
}
