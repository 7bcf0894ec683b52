package xlpkg

import (
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/refs"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/worksheet"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	// DensityMin is the minimum share of filled cells in the bounding box.
	DensityMin float64
	// CoverageMin is the minimum share of rows in the box holding data.
	CoverageMin      float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		CoverageMin:      0.2,
		MinNonemptyCells: 3,
	}
}

// tableScanner accumulates the bounding box of non-empty cells row by row,
// so it works for both loaded and streamed rows.
type tableScanner struct {
	bounds   refs.Bounds
	filled   int
	dataRows int
}

func (s *tableScanner) add(row worksheet.RowValues) {
	seen := false
	for _, c := range row.Cells {
		if isEmpty(c.Value) {
			continue
		}
		seen = true
		s.filled++
		if s.filled == 1 {
			s.bounds = refs.Bounds{MinCol: c.Col, MinRow: c.Row, MaxCol: c.Col, MaxRow: c.Row}
			continue
		}
		s.bounds.MinCol = min(s.bounds.MinCol, c.Col)
		s.bounds.MaxCol = max(s.bounds.MaxCol, c.Col)
		s.bounds.MinRow = min(s.bounds.MinRow, c.Row)
		s.bounds.MaxRow = max(s.bounds.MaxRow, c.Row)
	}
	if seen {
		s.dataRows++
	}
}

// candidates returns the bounding range when it is dense enough to be a
// table, or nil.
func (s *tableScanner) candidates(params TableDetectionParams) []string {
	if s.filled == 0 || s.filled < params.MinNonemptyCells {
		return nil
	}
	height := s.bounds.MaxRow - s.bounds.MinRow + 1
	width := s.bounds.MaxCol - s.bounds.MinCol + 1
	if float64(s.filled)/float64(height*width) < params.DensityMin {
		return nil
	}
	if float64(s.dataRows)/float64(height) < params.CoverageMin {
		return nil
	}
	return []string{s.bounds.String()}
}

// DetectTables detects table-like regions in decoded rows.
// Returns a list of cell ranges (e.g., "A1:D10") that likely represent tables.
func DetectTables(rows []worksheet.RowValues, params TableDetectionParams) []string {
	var s tableScanner
	for _, r := range rows {
		s.add(r)
	}
	return s.candidates(params)
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	str, ok := v.(string)
	return ok && str == ""
}
