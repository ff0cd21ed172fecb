// Package index filters simple index pages and serves them per package.
package index

import (
	"context"

	"github.com/fwojciec/pyroxy"
)

var _ pyroxy.IndexFilter = (*Filter)(nil)

// Filter drops redundant links from index pages according to the
// configured allowed extensions and the category preference order.
type Filter struct {
	Config *pyroxy.Config
	Parser pyroxy.IndexParser
}

// FilterIndex parses raw, classifies each anchor for packageName, removes
// the dropped categories with their trailing separators and renders the
// result. Nothing is returned if ctx is canceled before rendering.
func (f *Filter) FilterIndex(ctx context.Context, packageName string, raw []byte) (*pyroxy.FilteredIndex, error) {
	doc, err := f.Parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	classified := pyroxy.ClassifyLinks(f.Config, packageName, doc.Links())
	for _, link := range pyroxy.LinksToRemove(classified) {
		doc.Remove(link)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := doc.Render()
	if err != nil {
		return nil, err
	}

	return &pyroxy.FilteredIndex{
		Body:    body,
		Links:   classified,
		Removed: pyroxy.CategoriesToRemove(classified),
	}, nil
}
