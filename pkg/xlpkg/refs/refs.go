// Package refs converts between A1-style cell references and numeric
// coordinates.
package refs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrInvalidReference is returned for text that is not a cell or range reference.
	ErrInvalidReference = errors.New("invalid cell reference")
	// ErrAmbiguousReference is returned when a sheet-qualified reference could
	// be read more than one way.
	ErrAmbiguousReference = errors.New("ambiguous sheet reference")
)

var (
	coordRE = regexp.MustCompile(`^[$]?([A-Za-z]{1,3})[$]?(\d+)$`)
	rangeRE = regexp.MustCompile(`^[$]?([A-Za-z]{1,3})?[$]?(\d+)?(:[$]?([A-Za-z]{1,3})?[$]?(\d+)?)?$`)
)

// ColumnLetter converts a 1-based column index to letters.
func ColumnLetter(idx int) (string, error) {
	name, err := excelize.ColumnNumberToName(idx)
	if err != nil {
		return "", fmt.Errorf("%w: column %d: %w", ErrInvalidReference, idx, err)
	}
	return name, nil
}

// ColumnIndex converts column letters to a 1-based index.
func ColumnIndex(col string) (int, error) {
	if len(col) == 0 || len(col) > 3 {
		return 0, fmt.Errorf("%w: column %q", ErrInvalidReference, col)
	}
	idx, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q: %w", ErrInvalidReference, col, err)
	}
	return idx, nil
}

// SplitCoordinate splits "B12" or "$B$12" into "B" and 12.
func SplitCoordinate(coord string) (string, int, error) {
	m := coordRE.FindStringSubmatch(coord)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidReference, coord)
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row == 0 {
		return "", 0, fmt.Errorf("%w: %q: there is no row 0", ErrInvalidReference, coord)
	}
	return strings.ToUpper(m[1]), row, nil
}

// CoordinateToTuple converts "C5" to row 5, column 3.
func CoordinateToTuple(coord string) (row, col int, err error) {
	letters, row, err := SplitCoordinate(coord)
	if err != nil {
		return 0, 0, err
	}
	col, err = ColumnIndex(letters)
	return row, col, err
}

// CellName converts a row and column back to "C5".
func CellName(row, col int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}
	return name, nil
}

// AbsoluteCoordinate converts "A1" to "$A$1" and "A1:B2" to "$A$1:$B$2".
func AbsoluteCoordinate(ref string) (string, error) {
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	for i, p := range parts {
		col, row, err := SplitCoordinate(p)
		if err != nil {
			return "", err
		}
		parts[i] = "$" + col + "$" + strconv.Itoa(row)
	}
	return strings.Join(parts, ":"), nil
}

// Bounds is the rectangle a range covers. A zero bound is open, as in whole
// column ("A:C") or whole row ("2:4") ranges.
type Bounds struct {
	MinCol, MinRow, MaxCol, MaxRow int
}

// Boundaries parses "A1:C4", "A:C", "2:4" or "B3".
func Boundaries(rng string) (Bounds, error) {
	m := rangeRE.FindStringSubmatch(rng)
	if m == nil || rng == "" {
		return Bounds{}, fmt.Errorf("%w: %q", ErrInvalidReference, rng)
	}
	minCol, minRow, sep, maxCol, maxRow := m[1], m[2], m[3], m[4], m[5]
	if sep != "" {
		all := minCol != "" && minRow != "" && maxCol != "" && maxRow != ""
		colsOnly := minCol != "" && maxCol != "" && minRow == "" && maxRow == ""
		rowsOnly := minRow != "" && maxRow != "" && minCol == "" && maxCol == ""
		if !all && !colsOnly && !rowsOnly {
			return Bounds{}, fmt.Errorf("%w: %q must be a cell, row or column range", ErrInvalidReference, rng)
		}
	} else if minCol == "" && minRow == "" {
		return Bounds{}, fmt.Errorf("%w: %q", ErrInvalidReference, rng)
	}
	var b Bounds
	var err error
	if minCol != "" {
		if b.MinCol, err = ColumnIndex(minCol); err != nil {
			return Bounds{}, err
		}
	}
	if minRow != "" {
		b.MinRow, _ = strconv.Atoi(minRow)
	}
	b.MaxCol, b.MaxRow = b.MinCol, b.MinRow
	if maxCol != "" {
		if b.MaxCol, err = ColumnIndex(maxCol); err != nil {
			return Bounds{}, err
		}
	}
	if maxRow != "" {
		b.MaxRow, _ = strconv.Atoi(maxRow)
	}
	if (minRow != "" && b.MinRow == 0) || (maxRow != "" && b.MaxRow == 0) {
		return Bounds{}, fmt.Errorf("%w: %q: there is no row 0", ErrInvalidReference, rng)
	}
	return b, nil
}

// Contains reports whether the cell at row, col lies inside b.
func (b Bounds) Contains(row, col int) bool {
	inCols := b.MinCol == 0 || (col >= b.MinCol && col <= b.MaxCol)
	inRows := b.MinRow == 0 || (row >= b.MinRow && row <= b.MaxRow)
	return inCols && inRows
}

// String renders b as an A1 range.
func (b Bounds) String() string {
	col := func(i int) string {
		if i == 0 {
			return ""
		}
		s, _ := ColumnLetter(i)
		return s
	}
	row := func(i int) string {
		if i == 0 {
			return ""
		}
		return strconv.Itoa(i)
	}
	start := col(b.MinCol) + row(b.MinRow)
	end := col(b.MaxCol) + row(b.MaxRow)
	if start == end && b.MinCol != 0 && b.MinRow != 0 {
		return start
	}
	return start + ":" + end
}

// RowsFromRange returns the cell names of a bounded range, row by row.
func RowsFromRange(rng string) ([][]string, error) {
	b, err := bounded(rng)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, b.MaxRow-b.MinRow+1)
	for r := b.MinRow; r <= b.MaxRow; r++ {
		row := make([]string, 0, b.MaxCol-b.MinCol+1)
		for c := b.MinCol; c <= b.MaxCol; c++ {
			name, err := CellName(r, c)
			if err != nil {
				return nil, err
			}
			row = append(row, name)
		}
		out = append(out, row)
	}
	return out, nil
}

// ColsFromRange returns the cell names of a bounded range, column by column.
func ColsFromRange(rng string) ([][]string, error) {
	b, err := bounded(rng)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, b.MaxCol-b.MinCol+1)
	for c := b.MinCol; c <= b.MaxCol; c++ {
		col := make([]string, 0, b.MaxRow-b.MinRow+1)
		for r := b.MinRow; r <= b.MaxRow; r++ {
			name, err := CellName(r, c)
			if err != nil {
				return nil, err
			}
			col = append(col, name)
		}
		out = append(out, col)
	}
	return out, nil
}

func bounded(rng string) (Bounds, error) {
	b, err := Boundaries(rng)
	if err != nil {
		return Bounds{}, err
	}
	if b.MinCol == 0 || b.MinRow == 0 {
		return Bounds{}, fmt.Errorf("%w: %q is not bounded", ErrInvalidReference, rng)
	}
	return b, nil
}
