package schema

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies how a field is validated and where it lives in XML.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindSet
	KindNoneSet
	// KindText stores the value as the element's own character data.
	KindText
	// KindNestedText stores the value as the text of a child element.
	KindNestedText
	// KindNestedValue stores the value in the val attribute of a child element.
	KindNestedValue
	// KindTextList stores an ordered list of child elements carrying text.
	KindTextList
	KindTyped
	KindSequence
)

var kindNames = [...]string{
	"string", "integer", "float", "bool", "set", "noneset",
	"text", "nested-text", "nested-value", "text-list", "typed", "sequence",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) isAttribute() bool {
	return k <= KindNoneSet
}

func (k Kind) isElement() bool {
	return k >= KindNestedText
}

// Field is a declared field of a record type.
type Field struct {
	Name      string
	XMLName   string
	Kind      Kind
	Namespace string
	Optional  bool
	// Values is the closed domain of a Set or NoneSet, or an optional
	// constraint on nested and text fields.
	Values []string
	// Type is the record type held by Typed and Sequence fields.
	Type *Type

	scalar   Kind
	def      any
	hasDef   bool
	keepDef  bool
	min, max *float64
}

// Option customises a field declaration.
type Option func(*Field)

// Optional allows the field to be unset.
func Optional() Option {
	return func(f *Field) { f.Optional = true }
}

// Default declares the value a field takes at construction and when absent on decode.
func Default(v any) Option {
	return func(f *Field) {
		f.def = v
		f.hasDef = true
	}
}

// KeepDefault emits the attribute even while it holds its default.
func KeepDefault() Option {
	return func(f *Field) { f.keepDef = true }
}

// Namespace places the attribute or child element in namespace ns.
func Namespace(ns string) Option {
	return func(f *Field) { f.Namespace = ns }
}

// XMLName sets the wire name when it differs from the field name.
func XMLName(name string) Option {
	return func(f *Field) { f.XMLName = name }
}

// Range constrains numeric values to [min, max].
func Range(min, max float64) Option {
	return func(f *Field) {
		f.min, f.max = &min, &max
	}
}

// As sets the scalar kind of a text, nested or list field.
func As(k Kind) Option {
	return func(f *Field) { f.scalar = k }
}

// Enum restricts a text or nested field to a closed list of values.
func Enum(values ...string) Option {
	return func(f *Field) { f.Values = values }
}

func newField(name string, kind Kind, opts []Option) Field {
	f := Field{Name: name, XMLName: name, Kind: kind, scalar: KindString}
	switch kind {
	case KindInteger, KindFloat, KindBool:
		f.scalar = kind
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func String(name string, opts ...Option) Field  { return newField(name, KindString, opts) }
func Integer(name string, opts ...Option) Field { return newField(name, KindInteger, opts) }
func Float(name string, opts ...Option) Field   { return newField(name, KindFloat, opts) }
func Bool(name string, opts ...Option) Field    { return newField(name, KindBool, opts) }

// Set declares an attribute restricted to values.
func Set(name string, values []string, opts ...Option) Field {
	f := newField(name, KindSet, opts)
	f.Values = values
	return f
}

// NoneSet declares an attribute restricted to values or unset.
func NoneSet(name string, values []string, opts ...Option) Field {
	f := newField(name, KindNoneSet, opts)
	f.Values = values
	f.Optional = true
	return f
}

func Text(name string, opts ...Option) Field        { return newField(name, KindText, opts) }
func NestedText(name string, opts ...Option) Field  { return newField(name, KindNestedText, opts) }
func NestedValue(name string, opts ...Option) Field { return newField(name, KindNestedValue, opts) }

// TextList declares a repeated child element holding text, e.g. comment authors.
func TextList(name string, opts ...Option) Field {
	f := newField(name, KindTextList, opts)
	f.Optional = true
	return f
}

// Typed declares a single nested record of type t.
func Typed(name string, t *Type, opts ...Option) Field {
	f := newField(name, KindTyped, opts)
	f.Type = t
	return f
}

// Sequence declares an ordered list of nested records of type t.
func Sequence(name string, t *Type, opts ...Option) Field {
	f := newField(name, KindSequence, opts)
	f.Type = t
	f.Optional = true
	return f
}

// Default returns the declared default and whether one exists.
func (f Field) Default() (any, bool) {
	return f.def, f.hasDef
}

// Validate checks v against the field's domain and returns the normalised
// value stored in a record. A nil result means unset.
func (f Field) Validate(v any) (any, error) {
	if v == nil {
		switch {
		case f.Kind == KindSequence:
			return []*Record{}, nil
		case f.Kind == KindTextList:
			return []string{}, nil
		case f.Optional:
			return nil, nil
		}
		return nil, fmt.Errorf("value required")
	}
	switch f.Kind {
	case KindSet, KindNoneSet:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if f.Kind == KindNoneSet && strings.EqualFold(s, "none") {
			return nil, nil
		}
		if !slices.Contains(f.Values, s) {
			return nil, fmt.Errorf("must be one of %s", strings.Join(f.Values, ", "))
		}
		return s, nil
	case KindTyped:
		r, ok := v.(*Record)
		if !ok {
			return nil, fmt.Errorf("expected *Record, got %T", v)
		}
		if r == nil {
			return f.Validate(nil)
		}
		if r.typ != f.Type {
			return nil, fmt.Errorf("expected <%s> record, got <%s>", f.Type.tag, r.typ.tag)
		}
		return r, nil
	case KindSequence:
		rs, ok := v.([]*Record)
		if !ok {
			return nil, fmt.Errorf("expected []*Record, got %T", v)
		}
		for i, r := range rs {
			if r == nil || r.typ != f.Type {
				return nil, fmt.Errorf("item %d is not a <%s> record", i, f.Type.tag)
			}
		}
		return slices.Clone(rs), nil
	case KindTextList:
		ss, ok := v.([]string)
		if !ok {
			return nil, fmt.Errorf("expected []string, got %T", v)
		}
		return slices.Clone(ss), nil
	}
	out, err := coerce(f.scalar, v)
	if err != nil {
		return nil, err
	}
	if err := f.checkRange(out); err != nil {
		return nil, err
	}
	if len(f.Values) > 0 && !slices.Contains(f.Values, format(out)) {
		return nil, fmt.Errorf("must be one of %s", strings.Join(f.Values, ", "))
	}
	return out, nil
}

func (f Field) checkRange(v any) error {
	if f.min == nil {
		return nil
	}
	var x float64
	switch n := v.(type) {
	case int64:
		x = float64(n)
	case float64:
		x = n
	default:
		return nil
	}
	if x < *f.min || x > *f.max {
		return fmt.Errorf("out of range [%v, %v]", *f.min, *f.max)
	}
	return nil
}

// isDefault reports whether v equals the declared default.
func (f Field) isDefault(v any) bool {
	return f.hasDef && !f.keepDef && valuesEqual(f.def, v)
}

func coerce(k Kind, v any) (any, error) {
	switch k {
	case KindInteger:
		return toInt(v)
	case KindFloat:
		return toFloat(v)
	case KindBool:
		return toBool(v)
	default:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	}
}

func toInt(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case float64:
		return floatToInt(n)
	case string:
		s := strings.TrimSpace(n)
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%q overflows int64", n)
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", n)
		}
		return floatToInt(x)
	}
	return nil, fmt.Errorf("expected integer, got %T", v)
}

// floatToInt converts a whole float to int64. 2^63 itself is out of range:
// it is the first float64 above MaxInt64.
func floatToInt(x float64) (any, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
		return nil, fmt.Errorf("%v is not an integer", x)
	}
	if x < math.MinInt64 || x >= math.MaxInt64 {
		return nil, fmt.Errorf("%v overflows int64", x)
	}
	return int64(x), nil
}

func toFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) {
			return nil, fmt.Errorf("NaN is not a number")
		}
		return n, nil
	case float32:
		return toFloat(float64(n))
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(x) {
			return nil, fmt.Errorf("%q is not a number", n)
		}
		return x, nil
	}
	i, err := toInt(v)
	if err != nil {
		return nil, fmt.Errorf("expected number, got %T", v)
	}
	return float64(i.(int64)), nil
}

func toBool(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true", "on":
			return true, nil
		case "0", "false", "off":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean", b)
	}
	return nil, fmt.Errorf("expected bool, got %#v", v)
}

// format renders a scalar value as it appears in XML.
func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func valuesEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		switch y := b.(type) {
		case nil:
			return true
		case []*Record:
			return len(y) == 0
		case []string:
			return len(y) == 0
		}
		return false
	case *Record:
		y, ok := b.(*Record)
		return ok && x.Equal(y)
	case []*Record:
		y, _ := b.([]*Record)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !x[i].Equal(y[i]) {
				return false
			}
		}
		return true
	case []string:
		y, _ := b.([]string)
		return slices.Equal(x, y)
	}
	if b == nil {
		return valuesEqual(b, a)
	}
	return a == b
}
