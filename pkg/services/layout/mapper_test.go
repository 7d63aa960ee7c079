package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hr-tools/punchbook/pkg/models/domain"
)

func monthlyMapper() Mapper {
	cfg := domain.LayoutFor(domain.ModeMonthly)
	return NewMapper(cfg, len(Buckets(cfg, 31)))
}

func TestMapper_Column(t *testing.T) {
	m := monthlyMapper()

	// Three leading columns, then triples: day 1 starts at column 4.
	assert.Equal(t, 4, m.Column(0, FieldCheckIn))
	assert.Equal(t, 5, m.Column(0, FieldCheckOut))
	assert.Equal(t, 6, m.Column(0, FieldDuration))
	assert.Equal(t, 7, m.Column(1, FieldCheckIn))
	assert.Equal(t, 6+14*3, m.Column(14, FieldDuration))
}

func TestMapper_Injectivity(t *testing.T) {
	m := monthlyMapper()

	seen := make(map[int]struct{})
	for slot := 0; slot < 31; slot++ {
		for _, f := range []Field{FieldCheckIn, FieldCheckOut, FieldDuration} {
			col := m.Column(slot, f)
			_, dup := seen[col]
			require.Falsef(t, dup, "column %d assigned twice", col)
			seen[col] = struct{}{}
			require.Greater(t, col, m.LeadingColumns())
		}
	}
	assert.Len(t, seen, 31*3)
}

func TestMapper_SlotFieldRoundTrip(t *testing.T) {
	m := monthlyMapper()

	for slot := 0; slot < 31; slot++ {
		for _, f := range []Field{FieldCheckIn, FieldCheckOut, FieldDuration} {
			gotSlot, gotField, ok := m.SlotField(m.Column(slot, f))
			require.True(t, ok)
			assert.Equal(t, slot, gotSlot)
			assert.Equal(t, f, gotField)
		}
	}

	_, _, ok := m.SlotField(m.IdentityColumn())
	assert.False(t, ok)
	_, _, ok = m.SlotField(m.LeadingColumns())
	assert.False(t, ok)
}

func TestMapper_CellAddr(t *testing.T) {
	m := monthlyMapper()

	assert.Equal(t, "A1", m.CellAddr(1, 1))
	assert.Equal(t, "D3", m.CellAddr(3, 4))
	assert.Equal(t, "AA10", m.CellAddr(10, 27))
}

func TestMapper_WeeklyLeadingColumns(t *testing.T) {
	cfg := domain.LayoutFor(domain.ModeWeekly)
	m := NewMapper(cfg, len(Buckets(cfg, 7)))

	// Identity plus a single total column.
	assert.Equal(t, 2, m.LeadingColumns())
	assert.Equal(t, 3, m.Column(0, FieldCheckIn))
	assert.Equal(t, 3, m.DataStartRow())
}
