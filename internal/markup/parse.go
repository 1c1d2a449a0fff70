package markup

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is a parsed markup file: the element tree plus the goquery
// document used for selector queries.
type Document struct {
	doc   *goquery.Document
	root  *Node
	nodes map[*html.Node]*Node
}

// Parse reads an HTML document from r and builds its element tree.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	d := &Document{doc: doc, nodes: make(map[*html.Node]*Node)}
	for _, top := range doc.Nodes {
		for c := top.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				d.root = d.convert(c, nil)
				break
			}
		}
	}
	if d.root == nil {
		return nil, fmt.Errorf("markup has no root element")
	}
	return d, nil
}

func (d *Document) convert(hn *html.Node, parent *Node) *Node {
	n := &Node{tag: hn.Data}
	for _, a := range hn.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		n.attrs = append(n.attrs, Attribute{Name: name, Value: a.Val})
	}
	if parent != nil {
		parent.Append(n)
	}
	d.nodes[hn] = n

	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			d.convert(c, n)
		}
	}
	return n
}

// Root returns the document element.
func (d *Document) Root() *Node {
	return d.root
}

// Select returns the elements matching the CSS selector, in document order.
// Matches nested inside another match are dropped, so every returned
// element roots a disjoint subtree.
func (d *Document) Select(selector string) ([]*Node, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	var roots []*Node
	selected := make(map[*html.Node]bool)
	d.doc.FindMatcher(matcher).Each(func(_ int, s *goquery.Selection) {
		for _, hn := range s.Nodes {
			selected[hn] = true
			if hasSelectedAncestor(hn, selected) {
				continue
			}
			if n, ok := d.nodes[hn]; ok {
				roots = append(roots, n)
			}
		}
	})
	return roots, nil
}

func hasSelectedAncestor(hn *html.Node, selected map[*html.Node]bool) bool {
	for p := hn.Parent; p != nil; p = p.Parent {
		if selected[p] {
			return true
		}
	}
	return false
}
