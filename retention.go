package pyroxy

// CategoriesToRemove decides which categories are dropped from an index page.
// The most preferred non-empty category wins and every less preferred
// category is dropped with it: internal downloads make external downloads,
// home pages and unknown links redundant; external downloads make home
// pages and unknown links redundant; home pages make unknown links
// redundant. A page with only unknown links keeps them all.
func CategoriesToRemove(c ClassifiedLinks) []LinkCategory {
	switch {
	case len(c[InternalDownload]) > 0:
		return []LinkCategory{ExternalDownload, HomePage, Unknown}
	case len(c[ExternalDownload]) > 0:
		return []LinkCategory{HomePage, Unknown}
	case len(c[HomePage]) > 0:
		return []LinkCategory{Unknown}
	default:
		return nil
	}
}

// LinksToRemove returns the links of every dropped category, grouped by
// category in the order CategoriesToRemove returns them.
func LinksToRemove(c ClassifiedLinks) []Link {
	var links []Link
	for _, category := range CategoriesToRemove(c) {
		links = append(links, c[category]...)
	}
	return links
}
