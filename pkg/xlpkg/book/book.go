// Package book models the workbook part (xl/workbook.xml): its sheet list,
// defined names and workbook properties, plus the external link parts it
// refers to.
package book

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const nsR = schema.NSRelationships

// Sheet visibility states.
const (
	StateVisible    = "visible"
	StateHidden     = "hidden"
	StateVeryHidden = "veryHidden"
)

var (
	FileVersion = schema.MustDefine("fileVersion",
		schema.String("appName", schema.Optional()),
		schema.String("lastEdited", schema.Optional()),
		schema.String("lowestEdited", schema.Optional()),
		schema.String("rupBuild", schema.Optional()),
		schema.String("codeName", schema.Optional()),
	)
	WorkbookProperties = schema.MustDefine("workbookPr",
		schema.Bool("date1904", schema.Optional()),
		schema.Bool("filterPrivacy", schema.Optional()),
		schema.String("codeName", schema.Optional()),
		schema.Integer("defaultThemeVersion", schema.Optional()),
	)
	WorkbookView = schema.MustDefine("workbookView",
		schema.Integer("xWindow", schema.Optional()),
		schema.Integer("yWindow", schema.Optional()),
		schema.Integer("windowWidth", schema.Optional()),
		schema.Integer("windowHeight", schema.Optional()),
		schema.Integer("firstSheet", schema.Default(0)),
		schema.Integer("activeTab", schema.Default(0)),
	)
	BookViews = schema.MustDefine("bookViews",
		schema.Sequence("workbookView", WorkbookView),
	)
	SheetEntry = schema.MustDefine("sheet",
		schema.String("name"),
		schema.Integer("sheetId"),
		schema.Set("state", []string{StateVisible, StateHidden, StateVeryHidden}, schema.Default(StateVisible)),
		schema.String("id", schema.Namespace(nsR)),
	)
	Sheets = schema.MustDefine("sheets",
		schema.Sequence("sheet", SheetEntry),
	)
	DefinedNameRecord = schema.MustDefine("definedName",
		schema.String("name"),
		schema.String("comment", schema.Optional()),
		schema.Integer("localSheetId", schema.Optional()),
		schema.Bool("hidden", schema.Optional()),
		schema.Bool("function", schema.Optional()),
		schema.Text("value", schema.Optional()),
	)
	DefinedNames = schema.MustDefine("definedNames",
		schema.Sequence("definedName", DefinedNameRecord),
	)
	ExternalReference = schema.MustDefine("externalReference",
		schema.String("id", schema.Namespace(nsR)),
	)
	ExternalReferences = schema.MustDefine("externalReferences",
		schema.Sequence("externalReference", ExternalReference),
	)
	CalcProperties = schema.MustDefine("calcPr",
		schema.Integer("calcId", schema.Optional()),
		schema.Bool("fullCalcOnLoad", schema.Optional()),
	)
	// Workbook is the root of the workbook part.
	Workbook = schema.MustDefine("workbook",
		schema.Typed("fileVersion", FileVersion, schema.Optional()),
		schema.Typed("workbookPr", WorkbookProperties, schema.Optional()),
		schema.Typed("bookViews", BookViews, schema.Optional()),
		schema.Typed("sheets", Sheets),
		schema.Typed("externalReferences", ExternalReferences, schema.Optional()),
		schema.Typed("definedNames", DefinedNames, schema.Optional()),
		schema.Typed("calcPr", CalcProperties, schema.Optional()),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)
)

// Parse decodes a workbook part.
func Parse(data []byte) (*schema.Record, error) {
	n, err := schema.ParseNode(data)
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	wb, err := Workbook.FromTree(schema.ResolveAlternateContent(n))
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	return wb, nil
}

// Date1904 reports whether the workbook uses the 1904 date system.
func Date1904(wb *schema.Record) bool {
	return wb.Child("workbookPr").Bool("date1904")
}

// CodeName returns the VBA code name of the workbook, if any.
func CodeName(wb *schema.Record) string {
	return wb.Child("workbookPr").Str("codeName")
}

// ActiveTab returns the index of the sheet selected when the file was saved.
func ActiveTab(wb *schema.Record) int {
	views := wb.Child("bookViews").Children("workbookView")
	if len(views) == 0 {
		return 0
	}
	return int(views[0].Int("activeTab"))
}

// SheetInfo is a sheet entry with its part resolved.
type SheetInfo struct {
	Name  string
	ID    int
	State string
	RelID string
	// Kind is the last segment of the relationship type: "worksheet",
	// "chartsheet", "dialogsheet" or "macrosheet".
	Kind string
	Path string
}

// Visible reports whether the sheet is shown in the tab bar.
func (s SheetInfo) Visible() bool {
	return s.State == StateVisible
}

// ResolveSheets pairs every sheet entry with the part its relationship
// points at. wbPath is the workbook part the relationships belong to.
func ResolveSheets(wb *schema.Record, rels packaging.Relationships, wbPath string) ([]SheetInfo, error) {
	entries := wb.Child("sheets").Children("sheet")
	out := make([]SheetInfo, 0, len(entries))
	for _, e := range entries {
		rel, ok := rels.ByID(e.Str("id"))
		if !ok {
			return nil, &packaging.MissingPartError{
				Part:   e.Str("name"),
				Reason: fmt.Sprintf("sheet relationship %s not found", e.Str("id")),
			}
		}
		out = append(out, SheetInfo{
			Name:  e.Str("name"),
			ID:    int(e.Int("sheetId")),
			State: e.Str("state"),
			RelID: rel.ID,
			Kind:  rel.Kind(),
			Path:  packaging.ResolveTarget(wbPath, rel.Target),
		})
	}
	return out, nil
}

// DefinedName is a workbook or sheet scoped name.
type DefinedName struct {
	Name  string
	Value string
	// LocalSheet is the index of the owning sheet, or -1 for workbook scope.
	LocalSheet int
	Hidden     bool
}

// Builtin reports whether the name is reserved, such as _xlnm.Print_Area.
func (d DefinedName) Builtin() bool {
	return strings.HasPrefix(strings.ToLower(d.Name), "_xlnm.")
}

// Names lists the defined names in document order.
func Names(wb *schema.Record) []DefinedName {
	var out []DefinedName
	for _, dn := range wb.Child("definedNames").Children("definedName") {
		d := DefinedName{
			Name:       dn.Str("name"),
			Value:      dn.Str("value"),
			LocalSheet: -1,
			Hidden:     dn.Bool("hidden"),
		}
		if dn.Has("localSheetId") {
			d.LocalSheet = int(dn.Int("localSheetId"))
		}
		out = append(out, d)
	}
	return out
}
