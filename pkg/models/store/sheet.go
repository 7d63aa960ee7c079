package store

// Policy declares how a backend wants derived cells maintained: as live
// formula expressions it evaluates itself, or as values precomputed by
// the engine. A backend picks exactly one and the engine applies it
// uniformly across durations and totals.
type Policy int

const (
	PolicyFormula Policy = iota
	PolicyValue
)

// Style is presentation metadata only; backends without cell styling
// ignore it.
type Style struct {
	Bold     bool
	Shaded   bool
	Bordered bool
	Centered bool
}

// CellRange is an inclusive 1-based rectangle of cells.
type CellRange struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

type StyledRange struct {
	Range CellRange
	Style Style
}

type HeaderCell struct {
	Row   int
	Col   int
	Value string
}

type ColumnWidth struct {
	StartCol int
	EndCol   int
	Width    float64
}

// SheetLayout is the complete header shape of a period sheet. A backend
// must apply it atomically: either the whole layout lands or none of it.
type SheetLayout struct {
	Cells   []HeaderCell
	Merges  []CellRange
	Styles  []StyledRange
	Widths  []ColumnWidth
	Columns int
}
