package http

import (
	"cmp"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/pyroxy"
)

// IndexFile is served in place of a listing for directories that have one.
const IndexFile = "index.html"

// serveTree serves rel from tree. Files are sent as downloads, directories
// are redirected to their slash-terminated URL and then either served
// through their index file or listed. prefix is the URL path tree is
// mounted at.
func (s *Server) serveTree(w http.ResponseWriter, r *http.Request, tree pyroxy.FileTree, prefix, rel string) {
	ctx := r.Context()

	fi, err := tree.Stat(ctx, rel)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if !fi.IsDir {
		s.logger().Info("serving static file", "path", prefix+rel)
		s.serveFile(w, r, tree, rel, true)
		return
	}

	if rel != "" && !strings.HasSuffix(rel, "/") {
		location := prefix + rel + "/"
		s.logger().Info("redirecting", "location", location)
		http.Redirect(w, r, location, http.StatusMovedPermanently)
		return
	}

	index := path.Join(rel, IndexFile)
	if ifi, err := tree.Stat(ctx, index); err == nil && !ifi.IsDir {
		s.logger().Info("serving index", "path", prefix+index)
		s.serveFile(w, r, tree, index, false)
		return
	}

	entries, err := tree.List(ctx, rel)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.logger().Info("serving directory", "path", prefix+rel)
	if err := renderListing(w, prefix+rel, rel != "" || prefix != "/", entries); err != nil {
		s.logger().Error("failed to render listing", "path", prefix+rel, "err", err)
	}
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, tree pyroxy.FileTree, rel string, download bool) {
	f, fi, err := tree.Open(r.Context(), rel)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", ContentType(fi.Name))
	if download {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fi.Name}))
	}
	http.ServeContent(w, r, fi.Name, fi.ModTime, f)
}

// ContentType guesses a file's media type from its extension.
func ContentType(name string) string {
	if ctype := mime.TypeByExtension(path.Ext(name)); ctype != "" {
		return ctype
	}
	return "application/octet-stream"
}

// Entry is one row of a directory listing.
type Entry struct {
	Name     string
	Href     string
	Modified string
	Size     string
}

// ListingTimeFormat is the modification time layout of listings.
const ListingTimeFormat = "02-Jan-2006 15:04"

// FormatEntry formats fi for a directory listing. Directories get a slash
// after their name and "-" as their size.
func FormatEntry(fi *pyroxy.FileInfo) Entry {
	e := Entry{
		Name:     fi.Name,
		Modified: fi.ModTime.UTC().Format(ListingTimeFormat),
		Size:     strconv.FormatInt(fi.Size, 10),
	}
	if fi.IsDir {
		e.Name += "/"
		e.Size = "-"
	}
	e.Href = (&url.URL{Path: e.Name}).String()
	return e
}

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head><title>Index of {{.Path}}</title></head>
<body>
<h1>Index of {{.Path}}</h1>
<table>
<tr><th>Name</th><th>Last modified</th><th>Size</th></tr>
{{- if .Parent}}
<tr><td><a href="../">../</a></td><td></td><td></td></tr>
{{- end}}
{{- range .Entries}}
<tr><td><a href="{{.Href}}">{{.Name}}</a></td><td>{{.Modified}}</td><td>{{.Size}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

func renderListing(w http.ResponseWriter, dir string, parent bool, infos []*pyroxy.FileInfo) error {
	infos = slices.Clone(infos)
	slices.SortFunc(infos, func(a, b *pyroxy.FileInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})
	entries := make([]Entry, len(infos))
	for i, fi := range infos {
		entries[i] = FormatEntry(fi)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return listingTemplate.Execute(w, struct {
		Path    string
		Parent  bool
		Entries []Entry
	}{dir, parent, entries})
}
