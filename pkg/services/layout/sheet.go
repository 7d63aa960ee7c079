package layout

import (
	"github.com/hr-tools/punchbook/pkg/models/domain"
	model "github.com/hr-tools/punchbook/pkg/models/store"
)

const (
	identityHeader  = "Username"
	leadingColWidth = 15
)

// BuildSheetLayout produces the complete header shape for a period's
// sheet: row 1 holds the identity header, one aggregate header per
// bucket, and a merged group header per day-slot; row 2 repeats the
// field sub-headers under every day-slot. Day-slot columns carry
// alternating banding, keyed off the 1-based day so the second, fourth,
// ... slots are shaded.
func BuildSheetLayout(p domain.Period, cfg domain.LayoutConfig) model.SheetLayout {
	buckets := Buckets(cfg, len(p.Slots))
	m := NewMapper(cfg, len(buckets))

	var layout model.SheetLayout

	layout.Cells = append(layout.Cells, model.HeaderCell{Row: 1, Col: m.IdentityColumn(), Value: identityHeader})
	for i, b := range buckets {
		layout.Cells = append(layout.Cells, model.HeaderCell{Row: 1, Col: m.TotalColumn(i), Value: b.Label})
	}

	layout.Styles = append(layout.Styles, model.StyledRange{
		Range: model.CellRange{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: m.LeadingColumns()},
		Style: model.Style{Bold: true, Bordered: true, Centered: true},
	})
	layout.Widths = append(layout.Widths, model.ColumnWidth{
		StartCol: 1,
		EndCol:   m.LeadingColumns(),
		Width:    leadingColWidth,
	})

	for _, slot := range p.Slots {
		start := m.Column(slot.Index, FieldCheckIn)
		end := m.Column(slot.Index, FieldDuration)

		layout.Cells = append(layout.Cells, model.HeaderCell{Row: 1, Col: start, Value: slot.Label})
		for f, label := range SubHeaders {
			layout.Cells = append(layout.Cells, model.HeaderCell{Row: 2, Col: m.Column(slot.Index, Field(f)), Value: label})
		}

		layout.Merges = append(layout.Merges, model.CellRange{StartRow: 1, StartCol: start, EndRow: 1, EndCol: end})
		layout.Styles = append(layout.Styles, model.StyledRange{
			Range: model.CellRange{StartRow: 1, StartCol: start, EndRow: 2, EndCol: end},
			Style: model.Style{Bold: true, Shaded: slotShaded(slot), Bordered: true, Centered: true},
		})
	}

	layout.Columns = m.Column(len(p.Slots)-1, FieldDuration)
	return layout
}

// UserRowStyles returns the banding applied to a freshly provisioned
// user row: bold leading cells plus the per-day alternating shading.
func UserRowStyles(m Mapper, p domain.Period, row int) []model.StyledRange {
	styles := []model.StyledRange{{
		Range: model.CellRange{StartRow: row, StartCol: 1, EndRow: row, EndCol: m.LeadingColumns()},
		Style: model.Style{Bold: true, Bordered: true, Centered: true},
	}}
	for _, slot := range p.Slots {
		styles = append(styles, model.StyledRange{
			Range: model.CellRange{
				StartRow: row,
				StartCol: m.Column(slot.Index, FieldCheckIn),
				EndRow:   row,
				EndCol:   m.Column(slot.Index, FieldDuration),
			},
			Style: model.Style{Shaded: slotShaded(slot), Bordered: true, Centered: true},
		})
	}
	return styles
}

func slotShaded(s domain.DaySlot) bool {
	return (s.Index+1)%2 == 0
}
