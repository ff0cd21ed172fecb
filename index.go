package pyroxy

import "context"

// IndexDocument is a parsed simple index page that can be edited in place.
// Each instance belongs to a single filtering pass.
type IndexDocument interface {
	// Links returns every anchor in document order. Link.ID is the
	// anchor's position in that order.
	Links() []Link

	// Remove deletes the link's anchor together with the node immediately
	// following it, which on index pages is the separator after each link.
	// Removing a link whose anchor is already gone is a no-op.
	Remove(link Link)

	// Render serializes the document.
	Render() ([]byte, error)
}

// IndexParser parses raw index pages.
type IndexParser interface {
	// Parse returns a private, editable copy of the page. The raw bytes
	// are never modified. Returns EINTERNAL if the page cannot be parsed.
	Parse(raw []byte) (IndexDocument, error)
}

// FilteredIndex is the result of filtering one index page.
type FilteredIndex struct {
	Body    []byte
	Links   ClassifiedLinks
	Removed []LinkCategory
}

// RemovedCount returns the number of links that were removed.
func (f *FilteredIndex) RemovedCount() int {
	n := 0
	for _, c := range f.Removed {
		n += len(f.Links[c])
	}
	return n
}

// IndexFilter removes redundant links from simple index pages.
type IndexFilter interface {
	// FilterIndex classifies the links of a package's index page and
	// returns the page without the dropped categories.
	FilterIndex(ctx context.Context, packageName string, raw []byte) (*FilteredIndex, error)
}

// IndexSource provides raw simple index pages.
type IndexSource interface {
	// ReadIndex returns the index page of a package.
	// Returns ENOTFOUND if the package has no index.
	ReadIndex(ctx context.Context, packageName string) ([]byte, error)
}

// PackageIndex is the index page served for a package.
type PackageIndex struct {
	Name     string
	Body     []byte
	Filtered bool // false for whitelisted packages served verbatim
}

// PackageIndexService returns the index pages served to clients.
type PackageIndexService interface {
	// PackageIndex returns the index page of a package, filtered unless the
	// package is whitelisted. Returns ENOTFOUND if the package has no index.
	PackageIndex(ctx context.Context, packageName string) (*PackageIndex, error)
}
