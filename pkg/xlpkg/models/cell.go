package models

// CellRow holds the non-empty cells of row R keyed by 1-based column
// number, so column C is "3". Links uses the same keys and is only filled
// when hyperlinks are kept.
type CellRow struct {
	R     int               `json:"r"`
	C     map[string]any    `json:"c"`
	Links map[string]string `json:"links,omitempty"`
}

// Comment is a cell note with its author resolved.
type Comment struct {
	Ref    string `json:"ref"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}
