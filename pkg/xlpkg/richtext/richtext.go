// Package richtext models the rich string shared by the shared string table,
// inline cell strings and cell comments.
package richtext

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const (
	PartPath    = packaging.SharedStringPath
	ContentType = packaging.ContentTypeSharedStrings
)

var (
	// Flag is an on/off run property such as <b/>; a bare element means on.
	Flag = schema.MustDefine("b",
		schema.Bool("val", schema.Default(true)),
	)
	Color = schema.MustDefine("color",
		schema.Bool("auto", schema.Optional()),
		schema.String("rgb", schema.Optional()),
		schema.Integer("indexed", schema.Optional()),
		schema.Integer("theme", schema.Optional()),
		schema.Float("tint", schema.Default(0.0)),
	)
	RunProperties = schema.MustDefine("rPr",
		schema.NestedValue("rFont", schema.Optional()),
		schema.NestedValue("charset", schema.As(schema.KindInteger), schema.Optional()),
		schema.NestedValue("family", schema.As(schema.KindInteger), schema.Optional()),
		schema.Typed("b", Flag, schema.Optional()),
		schema.Typed("i", Flag, schema.Optional()),
		schema.Typed("strike", Flag, schema.Optional()),
		schema.Typed("color", Color, schema.Optional()),
		schema.NestedValue("sz", schema.As(schema.KindFloat), schema.Optional()),
		schema.NestedValue("u", schema.Enum("single", "double", "singleAccounting", "doubleAccounting", "none"), schema.Optional()),
		schema.NestedValue("vertAlign", schema.Enum("superscript", "subscript", "baseline"), schema.Optional()),
		schema.NestedValue("scheme", schema.Enum("major", "minor", "none"), schema.Optional()),
	)
	// Run is a span of text with its own formatting.
	Run = schema.MustDefine("r",
		schema.Typed("rPr", RunProperties, schema.Optional()),
		schema.NestedText("t"),
	)
	PhoneticRun = schema.MustDefine("rPh",
		schema.Integer("sb"),
		schema.Integer("eb"),
		schema.NestedText("t"),
	)
	PhoneticProperties = schema.MustDefine("phoneticPr",
		schema.Integer("fontId"),
		schema.NoneSet("type", []string{"halfwidthKatakana", "fullwidthKatakana", "Hiragana", "noConversion"}),
		schema.NoneSet("alignment", []string{"noControl", "left", "center", "distributed"}),
	)
	// Text is either plain (t) or a list of runs (r).
	Text = schema.MustDefine("si",
		schema.NestedText("t", schema.Optional()),
		schema.Sequence("r", Run),
		schema.Sequence("rPh", PhoneticRun),
		schema.Typed("phoneticPr", PhoneticProperties, schema.Optional()),
	)
	SharedStrings = schema.MustDefine("sst",
		schema.Integer("count", schema.Optional()),
		schema.Integer("uniqueCount", schema.Optional()),
		schema.Sequence("si", Text),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)
)

// Plain returns the text of a rich string without formatting. Phonetic runs
// are not part of the value.
func Plain(si *schema.Record) string {
	if si == nil {
		return ""
	}
	runs := si.Children("r")
	if len(runs) == 0 {
		return si.Str("t")
	}
	var b strings.Builder
	b.WriteString(si.Str("t"))
	for _, r := range runs {
		b.WriteString(r.Str("t"))
	}
	return b.String()
}

// Bold reports whether a run is formatted bold.
func Bold(run *schema.Record) bool {
	b := run.Child("rPr").Child("b")
	return b != nil && b.Bool("val")
}

// NewText builds a plain rich string.
func NewText(s string) *schema.Record {
	return Text.MustNew(schema.Values{"t": s})
}

// ParseSharedStrings decodes xl/sharedStrings.xml into its plain values,
// indexed as cells reference them.
func ParseSharedStrings(data []byte) ([]string, error) {
	sst, err := schema.Unmarshal(data, SharedStrings)
	if err != nil {
		return nil, fmt.Errorf("shared strings: %w", err)
	}
	items := sst.Children("si")
	out := make([]string, len(items))
	for i, si := range items {
		out[i] = Plain(si)
	}
	return out, nil
}

// NewSharedStrings builds a table holding values in order.
func NewSharedStrings(values []string) *schema.Record {
	items := make([]*schema.Record, len(values))
	for i, v := range values {
		items[i] = NewText(v)
	}
	return SharedStrings.MustNew(schema.Values{
		"count":       len(values),
		"uniqueCount": len(values),
		"si":          items,
	})
}
