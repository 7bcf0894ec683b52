package schema

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Encodable is implemented by anything that can render itself as a Node.
type Encodable interface {
	ToTree(opts ...TreeOption) *Node
}

// Decodable builds records from parsed nodes. *Type implements it.
type Decodable interface {
	FromTree(n *Node) (*Record, error)
}

var (
	_ Encodable = (*Record)(nil)
	_ Decodable = (*Type)(nil)
)

type treeConfig struct {
	tag      string
	space    string
	spaceSet bool
	index    *int
}

// TreeOption adjusts a single ToTree call.
type TreeOption func(*treeConfig)

// WithTag overrides the element name.
func WithTag(tag string) TreeOption {
	return func(c *treeConfig) { c.tag = tag }
}

// WithNamespace overrides the element namespace.
func WithNamespace(ns string) TreeOption {
	return func(c *treeConfig) {
		c.space = ns
		c.spaceSet = true
	}
}

// WithIndex fills an unset idx attribute, for records emitted as list members.
func WithIndex(i int) TreeOption {
	return func(c *treeConfig) { c.index = &i }
}

// ToTree converts the record to a Node: attributes in declaration order,
// then child elements in the type's element order.
func (r *Record) ToTree(opts ...TreeOption) *Node {
	cfg := treeConfig{tag: r.typ.tag, space: r.typ.namespace}
	for _, opt := range opts {
		opt(&cfg)
	}
	return r.toNode(cfg.tag, cfg.space, cfg.index)
}

func (r *Record) toNode(tag, space string, idx *int) *Node {
	t := r.typ
	n := NewNode(space, tag)
	for _, i := range t.attrs {
		f := t.fields[i]
		v := r.vals[f.Name]
		if v == nil || f.isDefault(v) {
			continue
		}
		n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Space: f.Namespace, Local: f.XMLName}, Value: format(v)})
	}
	if idx != nil {
		if f, ok := t.Field("idx"); ok && f.Kind.isAttribute() && !r.Has("idx") {
			n.SetAttr(f.Namespace, f.XMLName, fmt.Sprint(*idx))
		}
	}
	if t.text >= 0 {
		n.Text = format(r.vals[t.fields[t.text].Name])
	}
	for _, i := range t.elements {
		f := t.fields[i]
		v := r.vals[f.Name]
		if v == nil {
			continue
		}
		childSpace := space
		if f.Namespace != "" {
			childSpace = f.Namespace
		}
		switch f.Kind {
		case KindNestedText:
			c := NewNode(childSpace, f.XMLName)
			c.Text = format(v)
			n.Append(c)
		case KindNestedValue:
			c := NewNode(childSpace, f.XMLName)
			c.SetAttr("", "val", format(v))
			n.Append(c)
		case KindTextList:
			for _, s := range v.([]string) {
				c := NewNode(childSpace, f.XMLName)
				c.Text = s
				n.Append(c)
			}
		case KindTyped:
			n.Append(v.(*Record).toNode(f.XMLName, f.childSpace(space), nil))
		case KindSequence:
			for _, c := range v.([]*Record) {
				n.Append(c.toNode(f.XMLName, f.childSpace(space), nil))
			}
		}
	}
	return n
}

// childSpace picks a nested record's namespace: the field's own, then the
// nested type's, then the parent's.
func (f Field) childSpace(parent string) string {
	switch {
	case f.Namespace != "":
		return f.Namespace
	case f.Type != nil && f.Type.namespace != "":
		return f.Type.namespace
	}
	return parent
}

// FromTree decodes n into a record of type t. Unknown attributes and child
// elements are ignored.
func (t *Type) FromTree(n *Node) (*Record, error) {
	if n == nil {
		return nil, fmt.Errorf("<%s>: nil node", t.tag)
	}
	r := &Record{typ: t, vals: make(map[string]any, len(t.fields))}
	for _, a := range n.Attrs {
		f, ok := t.attrField(a.Name.Space, a.Name.Local)
		if !ok {
			continue
		}
		if err := r.decodeScalar(f, a.Value); err != nil {
			return nil, err
		}
	}
	if t.text >= 0 {
		f := t.fields[t.text]
		if n.Text != "" || (f.scalar == KindString && !f.Optional) {
			if err := r.decodeScalar(f, n.Text); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range n.Children {
		i, ok := t.byElem[c.Name.Local]
		if !ok {
			continue
		}
		f := t.fields[i]
		switch f.Kind {
		case KindNestedText:
			if c.Text == "" && f.scalar != KindString {
				continue
			}
			if err := r.decodeScalar(f, c.Text); err != nil {
				return nil, err
			}
		case KindNestedValue:
			val, ok := c.Attr("val")
			if !ok {
				continue
			}
			if err := r.decodeScalar(f, val); err != nil {
				return nil, err
			}
		case KindTextList:
			r.vals[f.Name] = append(r.Strings(f.Name), c.Text)
		case KindTyped:
			child, err := f.Type.FromTree(c)
			if err != nil {
				return nil, err
			}
			r.vals[f.Name] = child
		case KindSequence:
			child, err := f.Type.FromTree(c)
			if err != nil {
				return nil, err
			}
			r.vals[f.Name] = append(r.Children(f.Name), child)
		}
	}
	for _, f := range t.fields {
		if r.vals[f.Name] != nil {
			continue
		}
		switch {
		case f.hasDef:
			r.vals[f.Name] = f.def
		case f.Optional:
		default:
			return nil, &StructuralError{Type: t.tag, Field: f.Name, XMLName: f.XMLName}
		}
	}
	return r, nil
}

func (r *Record) decodeScalar(f Field, raw string) error {
	v, err := f.Validate(raw)
	if err != nil {
		return &ValidationError{Type: r.typ.tag, Field: f.Name, Value: raw, Reason: err.Error()}
	}
	if v != nil {
		r.vals[f.Name] = v
	}
	return nil
}

// Header is the declaration written before every serialised part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Marshal serialises e as a standalone XML document.
func Marshal(e Encodable) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	if err := WriteNode(&buf, e.ToTree()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses data and decodes the root element with d.
func Unmarshal(data []byte, d Decodable) (*Record, error) {
	n, err := ParseNode(data)
	if err != nil {
		return nil, err
	}
	return d.FromTree(n)
}
