// Package output serialises workbook summaries to JSON.
package output

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/refs"
)

// ToJSON serialises a workbook summary.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return encode(wb, pretty)
}

// SheetToJSON serialises one sheet summary.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return encode(sheet, pretty)
}

// PrintAreaViewToJSON serialises a print area view.
func PrintAreaViewToJSON(view *models.PrintAreaView, pretty bool) ([]byte, error) {
	return encode(view, pretty)
}

// encode writes v without HTML escaping; cell text and link targets often
// carry & and <.
func encode(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// NewPrintAreaView restricts a sheet summary to one print area. Cells,
// comments and anchored drawing objects must lie inside it; table candidates
// need only intersect it.
func NewPrintAreaView(bookName, sheetName string, sheet models.SheetData, area models.PrintArea) models.PrintAreaView {
	view := models.PrintAreaView{
		BookName:  bookName,
		SheetName: sheetName,
		Area:      area,
	}
	for _, row := range sheet.Rows {
		if row.R < area.R1 || row.R > area.R2 {
			continue
		}
		clipped := models.CellRow{R: row.R, C: map[string]any{}}
		for key, v := range row.C {
			col, err := strconv.Atoi(key)
			if err != nil || !area.Contains(row.R, col) {
				continue
			}
			clipped.C[key] = v
			if target, ok := row.Links[key]; ok {
				if clipped.Links == nil {
					clipped.Links = map[string]string{}
				}
				clipped.Links[key] = target
			}
		}
		if len(clipped.C) > 0 {
			view.Rows = append(view.Rows, clipped)
		}
	}
	for _, c := range sheet.Comments {
		if inArea(area, c.Ref) {
			view.Comments = append(view.Comments, c)
		}
	}
	for _, s := range sheet.Shapes {
		if inArea(area, s.Anchor) {
			view.Shapes = append(view.Shapes, s)
		}
	}
	for _, c := range sheet.Charts {
		if inArea(area, c.Anchor) {
			view.Charts = append(view.Charts, c)
		}
	}
	for _, img := range sheet.Images {
		if inArea(area, img.Anchor) {
			view.Images = append(view.Images, img)
		}
	}
	for _, tc := range sheet.TableCandidates {
		b, err := refs.Boundaries(tc)
		if err != nil {
			continue
		}
		if b.MinRow <= area.R2 && b.MaxRow >= area.R1 && b.MinCol <= area.C2 && b.MaxCol >= area.C1 {
			view.TableCandidates = append(view.TableCandidates, tc)
		}
	}
	return view
}

func inArea(area models.PrintArea, ref string) bool {
	if ref == "" {
		return false
	}
	row, col, err := refs.CoordinateToTuple(ref)
	return err == nil && area.Contains(row, col)
}
