package schema

import (
	"encoding/xml"
	"sort"
	"strings"
)

// Node is the generic XML element that records are converted to and from.
// Name.Space holds the namespace URI, never a prefix.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string
}

// NewNode creates an element in namespace space.
func NewNode(space, local string) *Node {
	return &Node{Name: xml.Name{Space: space, Local: local}}
}

// Tag returns the local name.
func (n *Node) Tag() string {
	return n.Name.Local
}

// Attr returns the value of the un-namespaced attribute local.
func (n *Node) Attr(local string) (string, bool) {
	return n.AttrNS("", local)
}

// AttrNS returns the value of attribute local in namespace space.
func (n *Node) AttrNS(space, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local && attrSpaceMatches(a.Name.Space, space) {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value or "" when absent.
func (n *Node) AttrValue(local string) string {
	v, _ := n.Attr(local)
	return v
}

// SetAttr sets or replaces an attribute, keeping first-set position.
func (n *Node) SetAttr(space, local, value string) {
	for i, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Space: space, Local: local}, Value: value})
}

// Append adds children in order and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Find returns the first direct child with the given local name.
func (n *Node) Find(local string) *Node {
	for _, c := range n.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child with the given local name.
func (n *Node) FindAll(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// FindPath walks nested children by local name, e.g. FindPath("plotArea", "valAx").
func (n *Node) FindPath(path ...string) *Node {
	cur := n
	for _, p := range path {
		if cur == nil {
			return nil
		}
		cur = cur.Find(p)
	}
	return cur
}

// Walk visits n and all descendants depth first. Returning false from fn
// skips the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		b.WriteString(c.Text)
		return true
	})
	return b.String()
}

// Equivalent reports whether two trees carry the same information:
// names, attribute sets (order ignored), text and ordered children.
func Equivalent(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.Text != b.Text || len(a.Children) != len(b.Children) {
		return false
	}
	if !sameAttrs(a.Attrs, b.Attrs) {
		return false
	}
	for i := range a.Children {
		if !Equivalent(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func sameAttrs(a, b []xml.Attr) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(x xml.Attr) string { return x.Name.Space + "\x00" + x.Name.Local + "\x00" + x.Value }
	ka := make([]string, len(a))
	kb := make([]string, len(b))
	for i := range a {
		ka[i], kb[i] = key(a[i]), key(b[i])
	}
	sort.Strings(ka)
	sort.Strings(kb)
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}
	return true
}

// attrSpaceMatches tolerates undeclared prefixes, which encoding/xml leaves
// in Name.Space verbatim.
func attrSpaceMatches(got, want string) bool {
	if got == want {
		return true
	}
	if want == "" || got == "" {
		return false
	}
	return PrefixFor(want) == got
}
