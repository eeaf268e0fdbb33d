package parser

import (
	"encoding/xml"
	"strings"
)

// QName is a namespace-qualified XML name. Space holds the namespace URI,
// not a prefix.
type QName struct {
	Space string
	Local string
}

// String renders the name in Clark notation, {uri}local.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return "{" + q.Space + "}" + q.Local
}

// Namespace builds qualified names inside one namespace URI.
type Namespace string

// DrugBank is the namespace of DrugBank full database exports.
const DrugBank Namespace = "http://www.drugbank.ca"

// Name returns the qualified name of local within ns.
func (ns Namespace) Name(local string) QName {
	return QName{Space: string(ns), Local: local}
}

// Path splits a slash separated list of local names into qualified steps.
func (ns Namespace) Path(path string) []QName {
	parts := strings.Split(path, "/")
	steps := make([]QName, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			steps = append(steps, ns.Name(p))
		}
	}
	return steps
}

// Node is one element of a parsed document. All methods are safe to call
// on a nil *Node and behave as if the element had no content.
type Node struct {
	Name     QName
	Attrs    []xml.Attr
	Text     string // character data directly inside the element
	Children []*Node
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name QName) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Elements returns all direct children with the given name in document order.
func (n *Node) Elements(name QName) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FindAll follows path one child step at a time and returns every element
// reached, in document order. An empty path returns n itself.
func (n *Node) FindAll(path ...QName) []*Node {
	if n == nil {
		return nil
	}
	current := []*Node{n}
	for _, step := range path {
		var next []*Node
		for _, c := range current {
			next = append(next, c.Elements(step)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// Find returns the first element reached by path, or nil.
func (n *Node) Find(path ...QName) *Node {
	if n == nil {
		return nil
	}
	if len(path) == 0 {
		return n
	}
	for _, c := range n.Elements(path[0]) {
		if found := c.Find(path[1:]...); found != nil {
			return found
		}
	}
	return nil
}

// FindText returns the trimmed text of the first element reached by path.
// It returns nil when no element matches and a pointer to "" when the
// element exists but is empty.
func (n *Node) FindText(path ...QName) *string {
	found := n.Find(path...)
	if found == nil {
		return nil
	}
	text := found.TextContent()
	return &text
}

// ChildText is FindText for a single step.
func (n *Node) ChildText(name QName) *string {
	return n.FindText(name)
}

// TextContent returns the element's direct character data, trimmed.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

// Attr looks up an attribute without a namespace by its local name.
func (n *Node) Attr(local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrPtr is Attr returning nil when the attribute is absent.
func (n *Node) AttrPtr(local string) *string {
	v, ok := n.Attr(local)
	if !ok {
		return nil
	}
	return &v
}

// ChildWithAttr returns the first direct child named name whose attribute
// attr equals value.
func (n *Node) ChildWithAttr(name QName, attr, value string) *Node {
	for _, c := range n.Elements(name) {
		if v, ok := c.Attr(attr); ok && v == value {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Name: n.Name,
		Text: n.Text,
	}
	if n.Attrs != nil {
		out.Attrs = make([]xml.Attr, len(n.Attrs))
		copy(out.Attrs, n.Attrs)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// SetAttr sets or adds an attribute without a namespace.
func (n *Node) SetAttr(local, value string) {
	for i, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}
