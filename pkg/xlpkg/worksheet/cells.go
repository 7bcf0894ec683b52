package worksheet

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/refs"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/richtext"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/styles"
)

// CellValue is a decoded cell.
type CellValue struct {
	Ref   string
	Row   int
	Col   int
	Type  string
	Style int
	// Value is nil, string, int64, float64, bool or time.Time.
	Value   any
	Formula string
}

// RowValues is a decoded row.
type RowValues struct {
	Index  int
	Hidden bool
	Cells  []CellValue
}

// Values holds what cell conversion needs from the rest of the workbook.
type Values struct {
	SharedStrings []string
	Styles        *styles.Styles
	Date1904      bool
}

// Convert decodes the value of a c record.
func (v Values) Convert(c *schema.Record) (any, error) {
	raw := c.Str("v")
	switch c.Str("t") {
	case "s":
		if !c.Has("v") {
			return nil, nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || i < 0 || i >= len(v.SharedStrings) {
			return nil, fmt.Errorf("cell %s: shared string %q: %w", c.Str("r"), raw, schema.ErrInvalidValue)
		}
		return v.SharedStrings[i], nil
	case "inlineStr":
		if is := c.Child("is"); is != nil {
			return richtext.Plain(is), nil
		}
		return nil, nil
	case "str", "e":
		if !c.Has("v") {
			return nil, nil
		}
		return raw, nil
	case "b":
		if !c.Has("v") {
			return nil, nil
		}
		return strings.TrimSpace(raw) == "1" || strings.EqualFold(raw, "true"), nil
	case "d":
		if !c.Has("v") {
			return nil, nil
		}
		return parseISODate(raw), nil
	}
	if !c.Has("v") || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	num := parseNumber(raw)
	if v.Styles.IsDate(int(c.Int("s"))) {
		f, ok := num.(float64)
		if i, isInt := num.(int64); isInt {
			f, ok = float64(i), true
		}
		if ok {
			t, err := excelize.ExcelDateToTime(f, v.Date1904)
			if err == nil {
				return t, nil
			}
		}
	}
	return num, nil
}

// parseNumber returns int64 for integers, float64 for decimals, or the
// original string.
func parseNumber(s string) any {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"15:04:05",
}

func parseISODate(s string) any {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return s
}

// rowCursor tracks implicit row and column positions. Both r attributes
// are optional; a missing one means "the next".
type rowCursor struct {
	row int
}

func (rc *rowCursor) decode(row *schema.Record, vals Values) (RowValues, error) {
	if row.Has("r") {
		rc.row = int(row.Int("r"))
	} else {
		rc.row++
	}
	out := RowValues{Index: rc.row, Hidden: row.Bool("hidden")}
	col := 0
	for _, c := range row.Children("c") {
		ref := c.Str("r")
		if ref != "" {
			r, cc, err := refs.CoordinateToTuple(ref)
			if err != nil {
				return RowValues{}, fmt.Errorf("row %d: %w", rc.row, err)
			}
			if r != rc.row {
				return RowValues{}, fmt.Errorf("row %d: cell %s: %w", rc.row, ref, refs.ErrInvalidReference)
			}
			col = cc
		} else {
			col++
			name, err := refs.CellName(rc.row, col)
			if err != nil {
				return RowValues{}, err
			}
			ref = name
		}
		value, err := vals.Convert(c)
		if err != nil {
			return RowValues{}, err
		}
		out.Cells = append(out.Cells, CellValue{
			Ref:     ref,
			Row:     rc.row,
			Col:     col,
			Type:    c.Str("t"),
			Style:   int(c.Int("s")),
			Value:   value,
			Formula: c.Child("f").Str("value"),
		})
	}
	return out, nil
}

// Rows decodes every row of a worksheet record.
func Rows(ws *schema.Record, vals Values) ([]RowValues, error) {
	var (
		cur rowCursor
		out []RowValues
	)
	for _, row := range ws.Child("sheetData").Children("row") {
		rv, err := cur.decode(row, vals)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, nil
}

// RowReader streams rows from a worksheet part without holding the whole
// part in memory. It is not safe for concurrent use.
type RowReader struct {
	rc   io.ReadCloser
	dec  *xml.Decoder
	vals Values
	cur  rowCursor
	row  RowValues
	err  error
	done bool
}

// NewRowReader reads rows from a worksheet part stream. The reader takes
// ownership of r.
func NewRowReader(r io.ReadCloser, vals Values) *RowReader {
	return &RowReader{rc: r, dec: schema.NewDecoder(r), vals: vals}
}

// Next advances to the next row. It returns false at the end of sheetData
// or on error.
func (rr *RowReader) Next() bool {
	if rr.done {
		return false
	}
	for {
		tok, err := rr.dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				rr.err = fmt.Errorf("stream rows: %w", err)
			}
			rr.done = true
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "row" {
				continue
			}
			n, err := schema.ReadElement(rr.dec, t)
			if err != nil {
				rr.err, rr.done = err, true
				return false
			}
			rec, err := Row.FromTree(n)
			if err != nil {
				rr.err, rr.done = err, true
				return false
			}
			rr.row, err = rr.cur.decode(rec, rr.vals)
			if err != nil {
				rr.err, rr.done = err, true
				return false
			}
			return true
		case xml.EndElement:
			if t.Name.Local == "sheetData" {
				rr.done = true
				return false
			}
		}
	}
}

// Row returns the row read by the last successful Next.
func (rr *RowReader) Row() RowValues {
	return rr.row
}

// Err returns the first error met while streaming.
func (rr *RowReader) Err() error {
	return rr.err
}

// Close releases the underlying stream.
func (rr *RowReader) Close() error {
	rr.done = true
	return rr.rc.Close()
}
