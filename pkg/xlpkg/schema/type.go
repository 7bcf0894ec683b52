package schema

import (
	"fmt"
	"slices"
)

// Type is a record type: an element tag and its ordered field table.
// Types are built once, usually in package-level variables, and are
// immutable after definition.
type Type struct {
	tag       string
	namespace string
	fields    []Field
	index     map[string]int
	attrs     []int
	elements  []int
	text      int
	byAttr    map[attrKey]int
	byElem    map[string]int
}

type attrKey struct {
	space, local string
}

// Define builds a record type from its fields. Attribute fields are emitted
// in declaration order; child elements in declaration order unless Order is
// called.
func Define(tag string, fields ...Field) (*Type, error) {
	t := &Type{
		tag:    tag,
		fields: fields,
		index:  make(map[string]int, len(fields)),
		text:   -1,
		byAttr: make(map[attrKey]int),
		byElem: make(map[string]int),
	}
	for i := range t.fields {
		f := &t.fields[i]
		if _, dup := t.index[f.Name]; dup {
			return nil, fmt.Errorf("<%s>: duplicate field %q", tag, f.Name)
		}
		t.index[f.Name] = i
		if (f.Kind == KindTyped || f.Kind == KindSequence) && f.Type == nil {
			return nil, fmt.Errorf("<%s>.%s: %s field without record type", tag, f.Name, f.Kind)
		}
		if f.hasDef {
			def, err := f.Validate(f.def)
			if err != nil {
				return nil, fmt.Errorf("<%s>.%s: bad default: %w", tag, f.Name, err)
			}
			f.def = def
		}
		switch {
		case f.Kind.isAttribute():
			t.attrs = append(t.attrs, i)
			t.byAttr[attrKey{f.Namespace, f.XMLName}] = i
		case f.Kind == KindText:
			if t.text >= 0 {
				return nil, fmt.Errorf("<%s>: more than one text field", tag)
			}
			t.text = i
		default:
			t.elements = append(t.elements, i)
			t.byElem[f.XMLName] = i
		}
	}
	return t, nil
}

// MustDefine is Define for package-level declarations; it panics on error.
func MustDefine(tag string, fields ...Field) *Type {
	t, err := Define(tag, fields...)
	if err != nil {
		panic("schema: " + err.Error())
	}
	return t
}

// InNamespace sets the namespace emitted on the element when the record is
// serialised on its own or as a document root.
func (t *Type) InNamespace(ns string) *Type {
	t.namespace = ns
	return t
}

// Order sets the child element order. Element fields not named keep their
// declaration order after the named ones.
func (t *Type) Order(names ...string) *Type {
	order := make([]int, 0, len(t.elements))
	for _, name := range names {
		i, ok := t.index[name]
		if !ok || !t.fields[i].Kind.isElement() {
			panic(fmt.Sprintf("schema: <%s>: %q is not an element field", t.tag, name))
		}
		order = append(order, i)
	}
	for _, i := range t.elements {
		if !slices.Contains(order, i) {
			order = append(order, i)
		}
	}
	t.elements = order
	return t
}

// Tag returns the default element name.
func (t *Type) Tag() string { return t.tag }

// Namespace returns the type's own namespace, if any.
func (t *Type) Namespace() string { return t.namespace }

// Fields returns the field table in declaration order.
func (t *Type) Fields() []Field { return slices.Clone(t.fields) }

// Field looks up a field by name.
func (t *Type) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// ElementOrder returns the field names of child elements in emission order.
func (t *Type) ElementOrder() []string {
	out := make([]string, len(t.elements))
	for i, fi := range t.elements {
		out[i] = t.fields[fi].Name
	}
	return out
}

func (t *Type) attrField(space, local string) (Field, bool) {
	if i, ok := t.byAttr[attrKey{space, local}]; ok {
		return t.fields[i], true
	}
	if uri := URIFor(space); uri != "" {
		if i, ok := t.byAttr[attrKey{uri, local}]; ok {
			return t.fields[i], true
		}
	}
	return Field{}, false
}
