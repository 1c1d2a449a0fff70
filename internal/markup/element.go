package markup

import (
	"fmt"
	"strings"
)

// Attribute is a single name/value pair, kept verbatim as written in the
// markup (`mx:tooltip:show-delay` keeps its colons and dashes).
type Attribute struct {
	Name  string
	Value string
}

// Element is the read-only view of a markup element the parser needs.
// Implementations must be comparable, since elements are used as storage
// owners.
type Element interface {
	Tag() string
	Path() string
	Attributes() []Attribute
	Children() []Element
}

// Node is the in-memory Element implementation, produced by Parse or
// built directly with NewElement.
type Node struct {
	tag      string
	attrs    []Attribute
	children []*Node
	parent   *Node
}

var _ Element = (*Node)(nil)

// NewElement builds a detached element with the given children attached.
// Attribute order is preserved.
func NewElement(tag string, attrs []Attribute, children ...*Node) *Node {
	n := &Node{tag: tag, attrs: append([]Attribute(nil), attrs...)}
	for _, child := range children {
		n.Append(child)
	}
	return n
}

// Attr is shorthand for building an Attribute.
func Attr(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}

// Append attaches child as the last child of n.
func (n *Node) Append(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) Tag() string { return n.tag }

// Attributes returns a copy of the element's attributes, in document order.
func (n *Node) Attributes() []Attribute {
	return append([]Attribute(nil), n.attrs...)
}

func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Attribute returns the value of the named attribute.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Path returns a slash-separated address of the element from its root, with
// an index suffix when siblings share the tag, e.g. `html/body/div[1]`.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.segment())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

func (n *Node) segment() string {
	if n.parent == nil {
		return n.tag
	}

	index, same := 0, 0
	for _, sibling := range n.parent.children {
		if sibling == n {
			index = same
		}
		if sibling.tag == n.tag {
			same++
		}
	}
	if same == 1 {
		return n.tag
	}
	return fmt.Sprintf("%s[%d]", n.tag, index)
}

func (n *Node) String() string {
	return n.Path()
}
