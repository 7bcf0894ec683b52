package models

// SheetData is the summary of one sheet. Chartsheets only fill State and
// Charts.
//
// Shapes, Charts and Images are empty in light mode. Dimension is copied
// from the sheet's own dimension element and is not recomputed from the
// rows. TableCandidates are A1 ranges of dense rectangular cell blocks.
type SheetData struct {
	State           string      `json:"state,omitempty"`
	Dimension       string      `json:"dimension,omitempty"`
	Rows            []CellRow   `json:"rows,omitempty"`
	Comments        []Comment   `json:"comments,omitempty"`
	TableCandidates []string    `json:"table_candidates,omitempty"`
	PrintAreas      []PrintArea `json:"print_areas,omitempty"`

	Shapes []Shape `json:"shapes,omitempty"`
	Charts []Chart `json:"charts,omitempty"`
	Images []Image `json:"images,omitempty"`

	// Controls and OLEObjects count the entries of the sheet's controls
	// and oleObjects lists; LegacyDrawing is the VML part behind them.
	Controls      int    `json:"controls,omitempty"`
	OLEObjects    int    `json:"ole_objects,omitempty"`
	LegacyDrawing string `json:"legacy_drawing,omitempty"`

	// Embedded and ActiveX describe OLE objects and ActiveX control
	// binaries in verbose mode.
	Embedded []EmbeddedObject `json:"embedded,omitempty"`
	ActiveX  []EmbeddedObject `json:"activex,omitempty"`
}

// EmbeddedObject is a binary payload placed on a sheet: an OLE object, or
// the persisted state of an ActiveX control, whose ProgID is then the
// control's class id. Streams and Properties are only filled when the
// payload is a compound file; embedded packages such as Excel.Sheet.12
// objects report their path alone.
type EmbeddedObject struct {
	ProgID     string            `json:"prog_id,omitempty"`
	Path       string            `json:"path,omitempty"`
	Anchor     string            `json:"anchor,omitempty"`
	Streams    []string          `json:"streams,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}
