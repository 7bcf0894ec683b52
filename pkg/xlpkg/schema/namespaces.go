package schema

import (
	"encoding/xml"

	"github.com/xuri/excelize/v2"
)

// Namespace URIs used by spreadsheet package parts.
const (
	NSSpreadsheetMain    = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	NSDrawingMain        = excelize.NameSpaceDrawingMLMain
	NSSpreadsheetDrawing = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
	NSChart              = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	NSRelationships      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSPackageRels        = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes       = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSMarkupCompat       = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	NSVML                = "urn:schemas-microsoft-com:vml"
	NSOffice             = "urn:schemas-microsoft-com:office:office"
	NSExcel              = "urn:schemas-microsoft-com:office:excel"
	NSXML                = excelize.NameSpaceXML
	NSActiveX            = "http://schemas.microsoft.com/office/2006/activeX"
)

// wellKnown maps namespace URIs to the prefixes spreadsheet applications
// conventionally use for them.
var wellKnown = map[string]string{}

func init() {
	for _, a := range []xml.Attr{
		excelize.NameSpaceDrawingML,
		excelize.NameSpaceDrawingMLA14,
		excelize.NameSpaceDrawingMLChart,
		excelize.NameSpaceDrawingMLSpreadSheet,
		excelize.NameSpaceSpreadSheetExcel2006Main,
		excelize.NameSpaceSpreadSheetX14,
		excelize.NameSpaceSpreadSheetX15,
		excelize.NameSpaceSpreadSheetXR10,
		excelize.SourceRelationship,
		excelize.SourceRelationshipCompatibility,
	} {
		wellKnown[a.Value] = a.Name.Local
	}
	wellKnown[NSVML] = "v"
	wellKnown[NSOffice] = "o"
	wellKnown[NSExcel] = "x"
	wellKnown[NSXML] = "xml"
	wellKnown[NSActiveX] = "ax"
}

// PrefixFor returns the conventional prefix for a namespace, or "" when the
// namespace has none.
func PrefixFor(space string) string {
	return wellKnown[space]
}

// URIFor returns the namespace conventionally bound to prefix, or "".
func URIFor(prefix string) string {
	if prefix == "" {
		return ""
	}
	for uri, p := range wellKnown {
		if p == prefix {
			return uri
		}
	}
	return ""
}
