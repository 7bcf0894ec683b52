// Package worksheet models worksheet and chartsheet parts and the parts a
// worksheet links to: comments, legacy VML drawings, form and ActiveX
// controls, and embedded OLE objects.
package worksheet

import (
	"io"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/richtext"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

var cellTypes = []string{"b", "d", "e", "inlineStr", "n", "s", "str"}

var (
	SheetProperties = schema.MustDefine("sheetPr",
		schema.String("codeName", schema.Optional()),
		schema.Bool("filterMode", schema.Optional()),
		schema.Bool("published", schema.Optional()),
	)
	Dimension = schema.MustDefine("dimension",
		schema.String("ref"),
	)
	CellFormula = schema.MustDefine("f",
		schema.Set("t", []string{"normal", "array", "dataTable", "shared"}, schema.Optional()),
		schema.String("ref", schema.Optional()),
		schema.Integer("si", schema.Optional()),
		schema.Bool("aca", schema.Optional()),
		schema.Text("value", schema.Optional()),
	)
	Cell = schema.MustDefine("c",
		schema.String("r", schema.Optional()),
		schema.Integer("s", schema.Default(0)),
		schema.Set("t", cellTypes, schema.Default("n")),
		schema.Integer("cm", schema.Optional()),
		schema.Integer("vm", schema.Optional()),
		schema.Bool("ph", schema.Optional()),
		schema.Typed("f", CellFormula, schema.Optional()),
		schema.NestedText("v", schema.Optional()),
		schema.Typed("is", richtext.Text, schema.Optional()),
	)
	Row = schema.MustDefine("row",
		schema.Integer("r", schema.Optional()),
		schema.String("spans", schema.Optional()),
		schema.Integer("s", schema.Optional()),
		schema.Bool("customFormat", schema.Optional()),
		schema.Float("ht", schema.Optional()),
		schema.Bool("hidden", schema.Optional()),
		schema.Bool("customHeight", schema.Optional()),
		schema.Integer("outlineLevel", schema.Optional()),
		schema.Bool("collapsed", schema.Optional()),
		schema.Sequence("c", Cell),
	)
	SheetData = schema.MustDefine("sheetData",
		schema.Sequence("row", Row),
	)
	MergeCell = schema.MustDefine("mergeCell",
		schema.String("ref"),
	)
	MergeCells = schema.MustDefine("mergeCells",
		schema.Integer("count", schema.Optional()),
		schema.Sequence("mergeCell", MergeCell),
	)
	HyperlinkRecord = schema.MustDefine("hyperlink",
		schema.String("ref"),
		schema.String("id", schema.Namespace(nsR), schema.Optional()),
		schema.String("location", schema.Optional()),
		schema.String("tooltip", schema.Optional()),
		schema.String("display", schema.Optional()),
	)
	Hyperlinks = schema.MustDefine("hyperlinks",
		schema.Sequence("hyperlink", HyperlinkRecord),
	)
	// PartLink is an element whose only content is a relationship id, such
	// as <drawing r:id="rId1"/>.
	PartLink = schema.MustDefine("drawing",
		schema.String("id", schema.Namespace(nsR)),
	)
	TablePart = schema.MustDefine("tablePart",
		schema.String("id", schema.Namespace(nsR)),
	)
	TableParts = schema.MustDefine("tableParts",
		schema.Integer("count", schema.Optional()),
		schema.Sequence("tablePart", TablePart),
	)
	// Worksheet is the root of a worksheet part. Elements the reader does not
	// use (views, column widths, page setup) are not modelled and are
	// dropped on decode.
	Worksheet = schema.MustDefine("worksheet",
		schema.Typed("sheetPr", SheetProperties, schema.Optional()),
		schema.Typed("dimension", Dimension, schema.Optional()),
		schema.Typed("sheetData", SheetData),
		schema.Typed("mergeCells", MergeCells, schema.Optional()),
		schema.Typed("hyperlinks", Hyperlinks, schema.Optional()),
		schema.Typed("drawing", PartLink, schema.Optional()),
		schema.Typed("legacyDrawing", PartLink, schema.Optional()),
		schema.Typed("oleObjects", OleObjects, schema.Optional()),
		schema.Typed("controls", Controls, schema.Optional()),
		schema.Typed("tableParts", TableParts, schema.Optional()),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)

	// Chartsheet is the root of a chartsheet part: a sheet holding a single
	// drawing with one chart.
	Chartsheet = schema.MustDefine("chartsheet",
		schema.Typed("sheetPr", SheetProperties, schema.Optional()),
		schema.Typed("drawing", PartLink, schema.Optional()),
		schema.Typed("legacyDrawing", PartLink, schema.Optional()),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)
)

// ParseWorksheet decodes a worksheet part, rows included.
func ParseWorksheet(data []byte) (*schema.Record, error) {
	n, err := schema.ParseNode(data)
	if err != nil {
		return nil, err
	}
	return Worksheet.FromTree(schema.ResolveAlternateContent(n))
}

// ParseSkeleton decodes a worksheet part from a stream, leaving sheetData
// empty. Rows are then read with a RowReader.
func ParseSkeleton(r io.Reader) (*schema.Record, error) {
	n, err := schema.ParseReaderSkipping(r, "sheetData")
	if err != nil {
		return nil, err
	}
	return Worksheet.FromTree(schema.ResolveAlternateContent(n))
}

// ParseChartsheet decodes a chartsheet part.
func ParseChartsheet(data []byte) (*schema.Record, error) {
	n, err := schema.ParseNode(data)
	if err != nil {
		return nil, err
	}
	return Chartsheet.FromTree(schema.ResolveAlternateContent(n))
}
