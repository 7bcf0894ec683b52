// Package styles models the parts of xl/styles.xml the reader needs to turn
// cell values into dates: number formats and cell formats.
package styles

import (
	"fmt"
	"strings"

	"github.com/xuri/nfp"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const (
	PartPath    = packaging.StylesPath
	ContentType = packaging.ContentTypeStyles
)

var (
	NumberFormat = schema.MustDefine("numFmt",
		schema.Integer("numFmtId"),
		schema.String("formatCode"),
	)
	NumberFormatList = schema.MustDefine("numFmts",
		schema.Integer("count", schema.Optional()),
		schema.Sequence("numFmt", NumberFormat),
	)
	Alignment = schema.MustDefine("alignment",
		schema.NoneSet("horizontal", []string{"general", "left", "center", "right", "fill", "justify", "centerContinuous", "distributed"}),
		schema.NoneSet("vertical", []string{"top", "center", "bottom", "justify", "distributed"}),
		schema.Integer("textRotation", schema.Optional(), schema.Range(0, 255)),
		schema.Bool("wrapText", schema.Optional()),
		schema.Integer("indent", schema.Optional()),
	)
	Protection = schema.MustDefine("protection",
		schema.Bool("locked", schema.Optional()),
		schema.Bool("hidden", schema.Optional()),
	)
	// CellFormat is one xf entry; cells point at it through their s attribute.
	CellFormat = schema.MustDefine("xf",
		schema.Integer("numFmtId", schema.Default(0)),
		schema.Integer("fontId", schema.Default(0)),
		schema.Integer("fillId", schema.Default(0)),
		schema.Integer("borderId", schema.Default(0)),
		schema.Integer("xfId", schema.Optional()),
		schema.Bool("quotePrefix", schema.Optional()),
		schema.Bool("applyNumberFormat", schema.Optional()),
		schema.Bool("applyFont", schema.Optional()),
		schema.Bool("applyFill", schema.Optional()),
		schema.Bool("applyBorder", schema.Optional()),
		schema.Bool("applyAlignment", schema.Optional()),
		schema.Bool("applyProtection", schema.Optional()),
		schema.Typed("alignment", Alignment, schema.Optional()),
		schema.Typed("protection", Protection, schema.Optional()),
	)
	CellFormatList = schema.MustDefine("cellXfs",
		schema.Integer("count", schema.Optional()),
		schema.Sequence("xf", CellFormat),
	)
	// CountedList stands in for the font, fill and border tables, which the
	// reader only counts.
	CountedList = schema.MustDefine("fonts",
		schema.Integer("count", schema.Optional()),
	)
	NamedStyle = schema.MustDefine("cellStyle",
		schema.String("name", schema.Optional()),
		schema.Integer("xfId"),
		schema.Integer("builtinId", schema.Optional()),
	)
	NamedStyleList = schema.MustDefine("cellStyles",
		schema.Integer("count", schema.Optional()),
		schema.Sequence("cellStyle", NamedStyle),
	)
	Stylesheet = schema.MustDefine("styleSheet",
		schema.Typed("numFmts", NumberFormatList, schema.Optional()),
		schema.Typed("fonts", CountedList, schema.Optional()),
		schema.Typed("fills", CountedList, schema.Optional()),
		schema.Typed("borders", CountedList, schema.Optional()),
		schema.Typed("cellStyleXfs", CellFormatList, schema.Optional()),
		schema.Typed("cellXfs", CellFormatList, schema.Optional()),
		schema.Typed("cellStyles", NamedStyleList, schema.Optional()),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)
)

// builtinFormats holds the predefined number formats that are not
// stored in the part.
var builtinFormats = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// localisedDateIDs are ids Excel reserves for locale specific date and time
// formats; they may appear without a numFmt entry.
var localisedDateIDs = map[int]bool{
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// BuiltinFormat returns the format code of a predefined number format.
func BuiltinFormat(id int) (string, bool) {
	code, ok := builtinFormats[id]
	return code, ok
}

// IsDateFormat reports whether a number format code renders dates or times.
func IsDateFormat(code string) bool {
	if code == "" || strings.EqualFold(code, "General") || code == "@" {
		return false
	}
	p := nfp.NumberFormatParser()
	for _, section := range p.Parse(code) {
		for _, tok := range section.Items {
			switch tok.TType {
			case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
				return true
			}
		}
	}
	return false
}

// Styles is a decoded stylesheet with cell format lookups.
type Styles struct {
	Record  *schema.Record
	formats map[int]string
	xfs     []*schema.Record
}

// Parse decodes xl/styles.xml.
func Parse(data []byte) (*Styles, error) {
	rec, err := schema.Unmarshal(data, Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("styles: %w", err)
	}
	return New(rec), nil
}

// New wraps a styleSheet record.
func New(rec *schema.Record) *Styles {
	s := &Styles{Record: rec, formats: map[int]string{}}
	for _, nf := range rec.Child("numFmts").Children("numFmt") {
		s.formats[int(nf.Int("numFmtId"))] = nf.Str("formatCode")
	}
	s.xfs = rec.Child("cellXfs").Children("xf")
	return s
}

// FormatCode returns the number format code for a format id, custom formats
// first.
func (s *Styles) FormatCode(id int) string {
	if code, ok := s.formats[id]; ok {
		return code
	}
	return builtinFormats[id]
}

// NumberFormatID returns the number format id of a cell style index.
func (s *Styles) NumberFormatID(style int) int {
	if s == nil || style < 0 || style >= len(s.xfs) {
		return 0
	}
	return int(s.xfs[style].Int("numFmtId"))
}

// IsDate reports whether cells with the given style index hold dates.
func (s *Styles) IsDate(style int) bool {
	id := s.NumberFormatID(style)
	if id == 0 {
		return false
	}
	if _, custom := s.formats[id]; !custom && localisedDateIDs[id] {
		return true
	}
	return IsDateFormat(s.FormatCode(id))
}

// Len returns the number of cell formats.
func (s *Styles) Len() int {
	if s == nil {
		return 0
	}
	return len(s.xfs)
}

// Count returns the count attribute of a counted table such as "fonts".
func (s *Styles) Count(table string) int {
	if s == nil {
		return 0
	}
	return int(s.Record.Child(table).Int("count"))
}
