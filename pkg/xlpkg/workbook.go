package xlpkg

import (
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/book"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/styles"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/volatile"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/worksheet"
)

// Workbook is a loaded spreadsheet package.
type Workbook struct {
	// Name is the file name for path loads, empty otherwise.
	Name        string
	PartPath    string
	ContentType string
	Record      *schema.Record
	Rels        packaging.Relationships
	Manifest    *packaging.Manifest

	SharedStrings []string
	Styles        *styles.Styles
	// Theme is the raw theme part, kept undecoded.
	Theme []byte

	// Sheets holds the sheets that loaded, in workbook order. Sheets whose
	// part is missing are left out.
	Sheets     []*Sheet
	Links      []book.Link
	Names      []book.DefinedName
	PrintAreas map[string][]models.PrintArea
	Volatile   *schema.Record
	// VBA is set only with Options.KeepVBA.
	VBA packaging.PartRef

	sheetInfo []book.SheetInfo
	archive   *packaging.Archive
	readOnly  bool
	opts      Options
}

// Sheet is one entry of the workbook's sheet list. Exactly one of
// Worksheet and Chartsheet is set.
type Sheet struct {
	book.SheetInfo
	Worksheet  *worksheet.Sheet
	Chartsheet *worksheet.ChartSheet
}

// SheetNames returns the names of the loaded sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}

// allSheetNames includes sheets that were declared but not loaded, so
// localSheetId indexes stay aligned.
func (w *Workbook) allSheetNames() []string {
	names := make([]string, 0, len(w.sheetInfo))
	for _, s := range w.sheetInfo {
		names = append(names, s.Name)
	}
	return names
}

// Sheet looks a sheet up by name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

func (w *Workbook) Date1904() bool {
	return book.Date1904(w.Record)
}

// ReadOnly reports whether the archive stays open for row streaming.
func (w *Workbook) ReadOnly() bool {
	return w.readOnly
}

func (w *Workbook) HasVBA() bool {
	return w.VBA.Valid()
}

// VolatileSubscriptions lists the RTD and cube subscriptions of the
// workbook's volatile dependencies part.
func (w *Workbook) VolatileSubscriptions() []volatile.Subscription {
	if w.Volatile == nil {
		return nil
	}
	return volatile.Subscriptions(w.Volatile)
}

// Close releases the archive. It is a no-op unless the workbook is
// read-only, and safe to call more than once.
func (w *Workbook) Close() error {
	if w.archive == nil {
		return nil
	}
	return w.archive.Close()
}
