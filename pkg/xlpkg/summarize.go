package xlpkg

import (
	"strconv"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/worksheet"
)

// Extract loads the workbook at path and returns its summary.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	wb, err := LoadWorkbook(path, opts)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.Summary()
}

// Summary builds the JSON summary of the workbook using the options it was
// loaded with. Read-only workbooks stream their rows from the archive, so
// they must not be closed yet.
func (w *Workbook) Summary() (*models.WorkbookData, error) {
	mode := w.opts.mode()
	out := &models.WorkbookData{
		BookName:    w.Name,
		ContentType: w.ContentType,
		Date1904:    w.Date1904(),
		SheetOrder:  w.SheetNames(),
		Sheets:      make(map[string]models.SheetData, len(w.Sheets)),
		HasVBA:      w.HasVBA(),
		Volatile:    w.VolatileSubscriptions(),
	}
	for _, n := range w.Names {
		if n.LocalSheet >= 0 || n.Builtin() {
			continue
		}
		if out.DefinedNames == nil {
			out.DefinedNames = make(map[string]string)
		}
		out.DefinedNames[n.Name] = n.Value
	}
	if mode == models.ModeVerbose {
		out.VBAModules = w.vbaModules()
	}
	for _, l := range w.Links {
		if l.Target != "" {
			out.ExternalLinks = append(out.ExternalLinks, l.Target)
		}
	}

	for _, s := range w.Sheets {
		data := models.SheetData{State: s.State}
		switch {
		case s.Worksheet != nil:
			if err := w.summarizeWorksheet(s.Worksheet, mode, &data); err != nil {
				return nil, newLoadError(StageSheets, s.Path, err)
			}
		case s.Chartsheet != nil:
			data.Charts = drawing.ChartSummaries(s.Chartsheet.Drawing, mode)
		}
		if w.opts.ShouldIncludePrintAreas() {
			data.PrintAreas = w.PrintAreas[s.Name]
		}
		out.Sheets[s.Name] = data
	}
	return out, nil
}

func (w *Workbook) summarizeWorksheet(ws *worksheet.Sheet, mode models.Mode, data *models.SheetData) error {
	var links map[string]string
	if w.opts.ShouldIncludeLinks() {
		links = ws.Links
	}
	var scan tableScanner
	emit := func(row worksheet.RowValues) {
		scan.add(row)
		if cr, ok := cellRow(row, links); ok {
			data.Rows = append(data.Rows, cr)
		}
	}

	if ws.Rows != nil || !w.readOnly {
		for _, row := range ws.Rows {
			emit(row)
		}
	} else {
		rr, err := ws.StreamRows()
		if err != nil {
			return err
		}
		for rr.Next() {
			emit(rr.Row())
		}
		if err := rr.Err(); err != nil {
			rr.Close()
			return err
		}
		if err := rr.Close(); err != nil {
			return err
		}
	}

	data.Dimension = ws.Dimension()
	data.TableCandidates = scan.candidates(DefaultTableParams())
	for _, c := range ws.Comments {
		data.Comments = append(data.Comments, models.Comment{Ref: c.Ref, Author: c.Author, Text: c.Text})
	}
	data.Controls = len(ws.Controls)
	data.OLEObjects = len(ws.OLEObjects)
	if mode == models.ModeVerbose {
		data.Embedded = w.embeddedObjects(ws.OLEObjects)
		data.ActiveX = w.activeXBinaries(ws.Controls)
	}
	if ws.Legacy != nil {
		data.LegacyDrawing = ws.Legacy.Path
	}
	data.Shapes = drawing.ShapeSummaries(ws.Drawing, mode)
	data.Charts = drawing.ChartSummaries(ws.Drawing, mode)
	if mode != models.ModeLight {
		data.Images = drawing.ImageSummaries(ws.Drawing)
	}
	return nil
}

// cellRow converts a decoded row to its summary form, keyed by 1-based
// column index. Rows without values are dropped.
func cellRow(row worksheet.RowValues, links map[string]string) (models.CellRow, bool) {
	out := models.CellRow{R: row.Index, C: make(map[string]any)}
	for _, c := range row.Cells {
		if isEmpty(c.Value) {
			continue
		}
		col := strconv.Itoa(c.Col)
		out.C[col] = c.Value
		if target, ok := links[c.Ref]; ok && target != "" {
			if out.Links == nil {
				out.Links = make(map[string]string)
			}
			out.Links[col] = target
		}
	}
	return out, len(out.C) > 0
}
