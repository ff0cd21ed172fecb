package pyroxy_test

import (
	"testing"

	"github.com/fwojciec/pyroxy"
	"github.com/stretchr/testify/assert"
)

func TestCategoriesToRemove(t *testing.T) {
	t.Parallel()

	internal := []pyroxy.Link{{ID: 0, Title: "a.tar.gz"}}
	external := []pyroxy.Link{{ID: 1, Title: "download_url"}}
	home := []pyroxy.Link{{ID: 2, Href: "http://x", Title: "home_page"}}
	unknown := []pyroxy.Link{{ID: 3, Title: "docs"}}

	tests := []struct {
		name       string
		classified pyroxy.ClassifiedLinks
		want       []pyroxy.LinkCategory
	}{
		{
			name: "internal downloads drop everything else",
			classified: pyroxy.ClassifiedLinks{
				pyroxy.InternalDownload: internal,
				pyroxy.ExternalDownload: external,
				pyroxy.HomePage:         home,
				pyroxy.Unknown:          unknown,
			},
			want: []pyroxy.LinkCategory{pyroxy.ExternalDownload, pyroxy.HomePage, pyroxy.Unknown},
		},
		{
			name: "internal downloads drop home pages",
			classified: pyroxy.ClassifiedLinks{
				pyroxy.InternalDownload: internal,
				pyroxy.HomePage:         home,
			},
			want: []pyroxy.LinkCategory{pyroxy.ExternalDownload, pyroxy.HomePage, pyroxy.Unknown},
		},
		{
			name: "external downloads drop home pages and unknown links",
			classified: pyroxy.ClassifiedLinks{
				pyroxy.ExternalDownload: external,
				pyroxy.HomePage:         home,
				pyroxy.Unknown:          unknown,
			},
			want: []pyroxy.LinkCategory{pyroxy.HomePage, pyroxy.Unknown},
		},
		{
			name: "home pages drop unknown links",
			classified: pyroxy.ClassifiedLinks{
				pyroxy.HomePage: home,
				pyroxy.Unknown:  unknown,
			},
			want: []pyroxy.LinkCategory{pyroxy.Unknown},
		},
		{
			name:       "unknown links alone are kept",
			classified: pyroxy.ClassifiedLinks{pyroxy.Unknown: unknown},
			want:       nil,
		},
		{
			name:       "empty page removes nothing",
			classified: pyroxy.ClassifiedLinks{},
			want:       nil,
		},
		{
			name: "empty slices count as absent",
			classified: pyroxy.ClassifiedLinks{
				pyroxy.InternalDownload: {},
				pyroxy.ExternalDownload: {},
				pyroxy.HomePage:         home,
			},
			want: []pyroxy.LinkCategory{pyroxy.Unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, pyroxy.CategoriesToRemove(tt.classified))
		})
	}
}

func TestLinksToRemove(t *testing.T) {
	t.Parallel()

	t.Run("concatenates external, home page and unknown links", func(t *testing.T) {
		t.Parallel()

		classified := pyroxy.ClassifiedLinks{
			pyroxy.InternalDownload: {{ID: 0}, {ID: 4}},
			pyroxy.ExternalDownload: {{ID: 5}},
			pyroxy.HomePage:         {{ID: 1}, {ID: 3}},
			pyroxy.Unknown:          {{ID: 2}},
		}

		got := pyroxy.LinksToRemove(classified)

		assert.Equal(t, []pyroxy.Link{{ID: 5}, {ID: 1}, {ID: 3}, {ID: 2}}, got)
	})

	t.Run("returns nothing when no category is dropped", func(t *testing.T) {
		t.Parallel()

		classified := pyroxy.ClassifiedLinks{pyroxy.Unknown: {{ID: 0}}}

		assert.Empty(t, pyroxy.LinksToRemove(classified))
	})
}

func TestFilteredIndex_RemovedCount(t *testing.T) {
	t.Parallel()

	f := &pyroxy.FilteredIndex{
		Links: pyroxy.ClassifiedLinks{
			pyroxy.InternalDownload: {{ID: 0}},
			pyroxy.HomePage:         {{ID: 1}, {ID: 2}},
			pyroxy.Unknown:          {{ID: 3}},
		},
		Removed: []pyroxy.LinkCategory{pyroxy.ExternalDownload, pyroxy.HomePage, pyroxy.Unknown},
	}

	assert.Equal(t, 3, f.RemovedCount())
}
