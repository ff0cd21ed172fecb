// Package goquery implements index page parsing and editing on top of
// goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pyroxy"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ pyroxy.IndexParser   = (*Parser)(nil)
	_ pyroxy.IndexDocument = (*Document)(nil)
)

// Parser parses simple index pages into editable documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw HTML into a Document. The HTML5 parsing algorithm
// recovers from malformed markup, so errors only come from reading.
func (p *Parser) Parse(raw []byte) (pyroxy.IndexDocument, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, pyroxy.Errorf(pyroxy.EINTERNAL, "failed to parse index: %v", err)
	}

	d := &Document{root: doc.Get(0)}
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		d.links = append(d.links, pyroxy.Link{
			ID:    len(d.anchors),
			Href:  href,
			Title: sel.Text(),
		})
		d.anchors = append(d.anchors, sel.Get(0))
	})
	return d, nil
}

// Document is a parsed index page. Anchors are kept in an arena indexed by
// Link.ID so removals address nodes by identity rather than by position in
// a changing tree.
type Document struct {
	root    *html.Node
	anchors []*html.Node
	links   []pyroxy.Link
}

// Links returns every anchor in document order.
func (d *Document) Links() []pyroxy.Link {
	links := make([]pyroxy.Link, len(d.links))
	copy(links, d.links)
	return links
}

// Remove detaches the link's anchor and the sibling node right after it.
// Whitespace between the anchor and a following element does not count as
// that sibling: the whitespace goes along with the element. Anchors already
// detached, for example as the sibling of a previously removed anchor, are
// left alone.
func (d *Document) Remove(link pyroxy.Link) {
	if link.ID < 0 || link.ID >= len(d.anchors) {
		return
	}
	n := d.anchors[link.ID]
	if n.Parent == nil {
		return
	}

	last := n.NextSibling
	for s := last; s != nil && isBlank(s); s = s.NextSibling {
		if s.NextSibling != nil && s.NextSibling.Type == html.ElementNode {
			last = s.NextSibling
			break
		}
	}

	parent := n.Parent
	for {
		next := n.NextSibling
		parent.RemoveChild(n)
		if n == last || next == nil || last == nil {
			return
		}
		n = next
	}
}

func isBlank(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// Render serializes the document as HTML.
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return nil, pyroxy.Errorf(pyroxy.EINTERNAL, "failed to render index: %v", err)
	}
	return buf.Bytes(), nil
}
