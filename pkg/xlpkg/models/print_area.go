package models

// PrintArea is an inclusive block of 1-based rows R1..R2 and columns C1..C2.
type PrintArea struct {
	R1 int `json:"r1"`
	C1 int `json:"c1"`
	R2 int `json:"r2"`
	C2 int `json:"c2"`
}

// Contains reports whether the 1-based cell (row, col) lies in the area.
func (a PrintArea) Contains(row, col int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}

// PrintAreaView is a sheet summary cut down to one print area. Drawing
// objects are kept when their anchor cell lies inside the area; objects with
// no anchor cell are left out.
type PrintAreaView struct {
	BookName        string    `json:"book_name"`
	SheetName       string    `json:"sheet_name"`
	Area            PrintArea `json:"area"`
	Rows            []CellRow `json:"rows,omitempty"`
	Comments        []Comment `json:"comments,omitempty"`
	TableCandidates []string  `json:"table_candidates,omitempty"`
	Shapes          []Shape   `json:"shapes,omitempty"`
	Charts          []Chart   `json:"charts,omitempty"`
	Images          []Image   `json:"images,omitempty"`
}
