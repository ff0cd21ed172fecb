package pyroxy

import "strings"

// Link represents one anchor on a simple index page.
type Link struct {
	// ID is the anchor's position among the document's anchors. It
	// identifies the node to remove when the link is filtered out.
	ID    int
	Href  string
	Title string // text content; may carry "home_page" or "download_url"
}

// Extension returns the part of the title after its last dot,
// or "" if the title has no dot.
func (l Link) Extension() string {
	i := strings.LastIndexByte(l.Title, '.')
	if i < 0 {
		return ""
	}
	return l.Title[i+1:]
}

// LinkCategory classifies a link on a simple index page.
type LinkCategory int

// Link categories, from most to least preferred.
const (
	InternalDownload LinkCategory = iota
	ExternalDownload
	HomePage
	Unknown
)

// LinkCategories lists every category.
var LinkCategories = []LinkCategory{InternalDownload, ExternalDownload, HomePage, Unknown}

func (c LinkCategory) String() string {
	switch c {
	case InternalDownload:
		return "internal_download"
	case ExternalDownload:
		return "external_download"
	case HomePage:
		return "home_page"
	default:
		return "unknown"
	}
}

// ClassifiedLinks groups links by category, each group in document order.
type ClassifiedLinks map[LinkCategory][]Link

// Len returns the number of links across all categories.
func (c ClassifiedLinks) Len() int {
	n := 0
	for _, links := range c {
		n += len(links)
	}
	return n
}

// Classify returns the category of a link on a package's index page.
// The first matching predicate wins; Unknown is the fallback.
func Classify(cfg *Config, packageName string, link Link) LinkCategory {
	switch {
	case IsInternalDownload(cfg, packageName, link):
		return InternalDownload
	case IsHomePage(link):
		return HomePage
	case IsExternalDownload(link):
		return ExternalDownload
	default:
		return Unknown
	}
}

// ClassifyLinks classifies every link, preserving order within categories.
func ClassifyLinks(cfg *Config, packageName string, links []Link) ClassifiedLinks {
	classified := make(ClassifiedLinks, len(LinkCategories))
	for _, link := range links {
		c := Classify(cfg, packageName, link)
		classified[c] = append(classified[c], link)
	}
	return classified
}

// IsInternalDownload reports whether a link points at a file on the mirror.
// Without an allowed_extensions option every link qualifies; otherwise the
// title must end in one of the listed extensions, compared case-sensitively.
// A multi-part entry such as "tar.gz" matches the title's last two
// dot-separated parts; a single-part entry matches Extension exactly.
func IsInternalDownload(cfg *Config, packageName string, link Link) bool {
	allowed, ok := cfg.LookupList(packageName, OptionAllowedExtensions)
	if !ok {
		return true
	}
	for _, ext := range allowed {
		if strings.Contains(ext, ".") {
			if strings.HasSuffix(link.Title, "."+ext) {
				return true
			}
			continue
		}
		if link.Extension() == ext {
			return true
		}
	}
	return false
}

// IsHomePage reports whether a link is a package's home page.
func IsHomePage(link Link) bool {
	return strings.HasPrefix(link.Href, "http") && strings.Contains(link.Title, "home_page")
}

// IsExternalDownload reports whether a link is a download on a third-party site.
func IsExternalDownload(link Link) bool {
	return strings.Contains(link.Title, "download_url")
}
