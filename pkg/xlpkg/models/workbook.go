package models

import "github.com/ukaji3/xlpkg-go/pkg/xlpkg/volatile"

// WorkbookData is the JSON summary of a loaded workbook. Sheets is keyed by
// sheet name; SheetOrder keeps the workbook order.
type WorkbookData struct {
	BookName    string `json:"book_name"`
	ContentType string `json:"content_type,omitempty"`
	Date1904    bool   `json:"date1904,omitempty"`

	SheetOrder []string             `json:"sheet_order"`
	Sheets     map[string]SheetData `json:"sheets"`

	// DefinedNames holds workbook-scoped names other than the built-in
	// _xlnm ones, mapped to their formulas.
	DefinedNames  map[string]string       `json:"defined_names,omitempty"`
	ExternalLinks []string                `json:"external_links,omitempty"`
	HasVBA        bool                    `json:"has_vba,omitempty"`
	VBAModules    []string                `json:"vba_modules,omitempty"`
	Volatile      []volatile.Subscription `json:"volatile,omitempty"`
}
