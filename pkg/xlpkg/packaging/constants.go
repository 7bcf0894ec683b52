// Package packaging reads and writes the container layer of a spreadsheet
// package: the ZIP archive, its content-type manifest and the relationship
// parts that link one part to another.
package packaging

import "github.com/xuri/excelize/v2"

// Well-known part locations.
const (
	ManifestPath     = "[Content_Types].xml"
	RootRelsPath     = "_rels/.rels"
	WorkbookPath     = "xl/workbook.xml"
	SharedStringPath = "xl/sharedStrings.xml"
	StylesPath       = "xl/styles.xml"
	ThemePath        = "xl/theme/theme1.xml"
	VBAProjectPath   = "xl/vbaProject.bin"
)

// Workbook content types, in lookup priority order.
const (
	ContentTypeXLTM = excelize.ContentTypeTemplateMacro
	ContentTypeXLTX = excelize.ContentTypeTemplate
	ContentTypeXLSM = excelize.ContentTypeMacro
	ContentTypeXLSX = excelize.ContentTypeSheetML
)

// WorkbookContentTypes lists the content types a workbook part may carry.
var WorkbookContentTypes = []string{ContentTypeXLTM, ContentTypeXLTX, ContentTypeXLSM, ContentTypeXLSX}

// Other part content types.
const (
	ContentTypeRelationships = excelize.ContentTypeRelationships
	ContentTypeXML           = "application/xml"
	ContentTypeWorksheet     = excelize.ContentTypeSpreadSheetMLWorksheet
	ContentTypeChartsheet    = excelize.ContentTypeSpreadSheetMLChartsheet
	ContentTypeSharedStrings = excelize.ContentTypeSpreadSheetMLSharedStrings
	ContentTypeComments      = excelize.ContentTypeSpreadSheetMLComments
	ContentTypeDrawing       = excelize.ContentTypeDrawing
	ContentTypeChart         = excelize.ContentTypeDrawingML
	ContentTypeVML           = excelize.ContentTypeVML
	ContentTypeVBA           = excelize.ContentTypeVBA
	ContentTypeStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ContentTypeTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ContentTypeCtrlProp      = "application/vnd.ms-excel.controlproperties+xml"
	ContentTypeActiveX       = "application/vnd.ms-office.activeX+xml"
	ContentTypeActiveXBin    = "application/vnd.ms-office.activeX"
	ContentTypeOLEObject     = "application/vnd.openxmlformats-officedocument.oleObject"
	ContentTypeExternalLink  = "application/vnd.openxmlformats-officedocument.spreadsheetml.externalLink+xml"
	ContentTypeVolatileDeps  = "application/vnd.openxmlformats-officedocument.spreadsheetml.volatileDependencies+xml"
)

// Relationship type URIs.
const (
	RelOfficeDocument = excelize.SourceRelationshipOfficeDocument
	RelWorksheet      = excelize.SourceRelationshipWorkSheet
	RelChartsheet     = excelize.SourceRelationshipChartsheet
	RelSharedStrings  = excelize.SourceRelationshipSharedStrings
	RelComments       = excelize.SourceRelationshipComments
	RelDrawing        = excelize.SourceRelationshipDrawingML
	RelVMLDrawing     = excelize.SourceRelationshipDrawingVML
	RelHyperlink      = excelize.SourceRelationshipHyperLink
	RelImage          = excelize.SourceRelationshipImage
	RelChart          = excelize.SourceRelationshipChart
	RelVBAProject     = excelize.SourceRelationshipVBAProject
	RelStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	RelCtrlProp       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/ctrlProp"
	RelControl        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/control"
	RelActiveXBinary  = "http://schemas.microsoft.com/office/2006/relationships/activeXControlBinary"
	RelOLEObject      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/oleObject"
	RelPackage        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
	RelExternalLink   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/externalLink"
	RelVolatileDeps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/volatileDependencies"
)

// mediaTypes maps file extensions of binary and media parts to the content
// type registered as a manifest Default.
var mediaTypes = map[string]string{
	"rels": ContentTypeRelationships,
	"xml":  ContentTypeXML,
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"emf":  "image/x-emf",
	"wmf":  "image/x-wmf",
	"vml":  ContentTypeVML,
	"bin":  ContentTypeOLEObject,
}

// MediaType returns the Default content type for an extension.
func MediaType(ext string) (string, bool) {
	ct, ok := mediaTypes[ext]
	return ct, ok
}
