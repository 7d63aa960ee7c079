package layout

import (
	"github.com/xuri/excelize/v2"

	"github.com/hr-tools/punchbook/pkg/models/domain"
)

// Field is one of the three per-day cells of a day-slot.
type Field int

const (
	FieldCheckIn Field = iota
	FieldCheckOut
	FieldDuration
)

// SubHeaders are the row-2 labels, one per Field, repeated for every
// day-slot in the sheet.
var SubHeaders = [...]string{"Check-in", "Check-out", "Duration"}

// Mapper converts (day-slot, field) pairs into 1-based sheet columns.
// The mapping is a bijection within one sheet: no two day-slots ever
// share a column range.
type Mapper struct {
	cfg     domain.LayoutConfig
	leading int
}

// NewMapper builds a mapper for a sheet with one identity column plus
// one aggregate column per bucket.
func NewMapper(cfg domain.LayoutConfig, buckets int) Mapper {
	return Mapper{cfg: cfg, leading: 1 + buckets}
}

func (m Mapper) LeadingColumns() int { return m.leading }

func (m Mapper) IdentityColumn() int { return 1 }

// TotalColumn returns the aggregate column for the given bucket index.
func (m Mapper) TotalColumn(bucket int) int { return 2 + bucket }

// Column returns the column of the given field within the given
// zero-based day-slot.
func (m Mapper) Column(slot int, field Field) int {
	return m.leading + slot*m.cfg.FieldsPerDay + int(field) + 1
}

// SlotField is the inverse of Column. ok is false for leading columns.
func (m Mapper) SlotField(col int) (slot int, field Field, ok bool) {
	off := col - m.leading - 1
	if off < 0 {
		return 0, 0, false
	}
	return off / m.cfg.FieldsPerDay, Field(off % m.cfg.FieldsPerDay), true
}

// DataStartRow is the first row below the two header rows.
func (m Mapper) DataStartRow() int { return m.cfg.HeaderRows + 1 }

// CellAddr renders a (row, column) pair as an A1-style address for
// formula expressions and display. Coordinates are 1-based by
// construction, so the conversion cannot fail.
func (m Mapper) CellAddr(row, col int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
