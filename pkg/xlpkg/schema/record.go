package schema

import (
	"fmt"
	"slices"

	"github.com/tiendc/go-deepcopy"
)

// Values holds field assignments for Type.New.
type Values map[string]any

// Record is an instance of a Type. Every stored value has passed the field's
// validation.
type Record struct {
	typ  *Type
	vals map[string]any
}

// New constructs a record, applying declared defaults and then vals. It
// fails if a value is out of domain or a required field is left unset.
func (t *Type) New(vals Values) (*Record, error) {
	r := t.zero()
	for name := range vals {
		if _, ok := t.index[name]; !ok {
			return nil, fmt.Errorf("<%s>.%s: %w", t.tag, name, ErrUnknownField)
		}
	}
	for _, f := range t.fields {
		v, ok := vals[f.Name]
		if !ok {
			continue
		}
		if err := r.Set(f.Name, v); err != nil {
			return nil, err
		}
	}
	for _, f := range t.fields {
		if r.vals[f.Name] == nil && !f.Optional {
			return nil, &ValidationError{Type: t.tag, Field: f.Name, Reason: "value required"}
		}
	}
	return r, nil
}

// MustNew is New for statically known values; it panics on error.
func (t *Type) MustNew(vals Values) *Record {
	r, err := t.New(vals)
	if err != nil {
		panic("schema: " + err.Error())
	}
	return r
}

func (t *Type) zero() *Record {
	r := &Record{typ: t, vals: make(map[string]any, len(t.fields))}
	for _, f := range t.fields {
		if f.hasDef {
			r.vals[f.Name] = f.def
		}
	}
	return r
}

// Type returns the record's type.
func (r *Record) Type() *Type { return r.typ }

// Set validates v and assigns it. Assigning nil unsets an optional field.
func (r *Record) Set(name string, v any) error {
	f, ok := r.typ.Field(name)
	if !ok {
		return fmt.Errorf("<%s>.%s: %w", r.typ.tag, name, ErrUnknownField)
	}
	nv, err := f.Validate(v)
	if err != nil {
		return &ValidationError{Type: r.typ.tag, Field: name, Value: v, Reason: err.Error()}
	}
	if nv == nil {
		delete(r.vals, name)
		return nil
	}
	r.vals[name] = nv
	return nil
}

// Get returns the stored value or nil when unset. The accessors below are
// safe on a nil record, so optional children can be chained.
func (r *Record) Get(name string) any {
	if r == nil {
		return nil
	}
	return r.vals[name]
}

// Has reports whether a field holds a value.
func (r *Record) Has(name string) bool {
	return r.Get(name) != nil
}

// Str returns a field rendered as text, or "" when unset.
func (r *Record) Str(name string) string {
	return format(r.Get(name))
}

// Int returns an integer field, or 0.
func (r *Record) Int(name string) int64 {
	i, _ := r.Get(name).(int64)
	return i
}

// Float returns a numeric field as float64, or 0.
func (r *Record) Float(name string) float64 {
	switch x := r.Get(name).(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	}
	return 0
}

// Bool returns a boolean field, or false.
func (r *Record) Bool(name string) bool {
	b, _ := r.Get(name).(bool)
	return b
}

// Strings returns a text list field.
func (r *Record) Strings(name string) []string {
	ss, _ := r.Get(name).([]string)
	return ss
}

// Child returns a typed sub-record, or nil.
func (r *Record) Child(name string) *Record {
	c, _ := r.Get(name).(*Record)
	return c
}

// Children returns a sequence field.
func (r *Record) Children(name string) []*Record {
	cs, _ := r.Get(name).([]*Record)
	return cs
}

// Append adds child to a sequence field.
func (r *Record) Append(name string, child *Record) error {
	return r.Set(name, append(slices.Clone(r.Children(name)), child))
}

// Equal reports whether every declared field of r and o compares equal.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.typ != o.typ {
		return false
	}
	for _, f := range r.typ.fields {
		if !valuesEqual(r.vals[f.Name], o.vals[f.Name]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no mutable state with r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{typ: r.typ, vals: make(map[string]any, len(r.vals))}
	for name, v := range r.vals {
		switch x := v.(type) {
		case *Record:
			out.vals[name] = x.Clone()
		case []*Record:
			cs := make([]*Record, len(x))
			for i, c := range x {
				cs[i] = c.Clone()
			}
			out.vals[name] = cs
		case []string:
			var ss []string
			if err := deepcopy.Copy(&ss, &x); err != nil {
				ss = slices.Clone(x)
			}
			out.vals[name] = ss
		default:
			out.vals[name] = v
		}
	}
	return out
}

func (r *Record) String() string {
	return r.ToTree().String()
}
