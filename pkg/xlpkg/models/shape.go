package models

// Shape is a drawing shape or connector.
//
// ID numbers the kept non-connector shapes of a sheet from 1; connector ends (BeginID,
// EndID) refer to those numbers rather than to drawing ids. Arrow styles use
// the spreadsheet line-end enumeration and Direction is a compass heading
// derived from the connector's extent and flips.
type Shape struct {
	ID        *int     `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Type      string   `json:"type,omitempty"`
	Text      string   `json:"text"`
	Anchor    string   `json:"anchor,omitempty"`
	L         int      `json:"l"`
	T         int      `json:"t"`
	W         *int     `json:"w,omitempty"`
	H         *int     `json:"h,omitempty"`
	Rotation  *float64 `json:"rotation,omitempty"`
	Hyperlink string   `json:"hyperlink,omitempty"`

	BeginArrowStyle *int   `json:"begin_arrow_style,omitempty"`
	EndArrowStyle   *int   `json:"end_arrow_style,omitempty"`
	BeginID         *int   `json:"begin_id,omitempty"`
	EndID           *int   `json:"end_id,omitempty"`
	Direction       string `json:"direction,omitempty"`
}

// Image is a picture anchored on a sheet. Width and Height are the decoded
// pixel size of the media part.
type Image struct {
	Name   string `json:"name,omitempty"`
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Anchor string `json:"anchor,omitempty"`
	L      int    `json:"l"`
	T      int    `json:"t"`
}
