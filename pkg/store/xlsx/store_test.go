package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/hr-tools/punchbook/pkg/models/store"
	"github.com/hr-tools/punchbook/pkg/store"
)

func setupStore(t *testing.T) (*Store, string) {
	path := filepath.Join(t.TempDir(), "attendance.xlsx")
	st, err := NewStore(Settings{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		st.Close()
	})
	return st, path
}

func headerLayout() model.SheetLayout {
	return model.SheetLayout{
		Cells: []model.HeaderCell{
			{Row: 1, Col: 1, Value: "Username"},
			{Row: 1, Col: 2, Value: "Total"},
			{Row: 1, Col: 3, Value: "1"},
			{Row: 2, Col: 3, Value: "Check-in"},
			{Row: 2, Col: 4, Value: "Check-out"},
			{Row: 2, Col: 5, Value: "Duration"},
		},
		Merges: []model.CellRange{
			{StartRow: 1, StartCol: 3, EndRow: 1, EndCol: 5},
		},
		Styles: []model.StyledRange{
			{
				Range: model.CellRange{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: 5},
				Style: model.Style{Bold: true, Bordered: true, Centered: true},
			},
		},
		Widths: []model.ColumnWidth{
			{StartCol: 1, EndCol: 2, Width: 15},
		},
		Columns: 5,
	}
}

func TestStore_RequiresPath(t *testing.T) {
	_, err := NewStore(Settings{})
	assert.Error(t, err)
}

func TestStore_CreateAndFindSheet(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()

	found, err := st.FindSheet(ctx, "09-2025")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, st.CreateSheet(ctx, "09-2025", headerLayout()))

	found, err = st.FindSheet(ctx, "09-2025")
	require.NoError(t, err)
	assert.True(t, found)

	v, err := st.ReadCell(ctx, "09-2025", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Username", v)

	err = st.CreateSheet(ctx, "09-2025", headerLayout())
	require.Error(t, err)
	assert.True(t, store.IsPersistence(err))
}

func TestStore_ClockValuesRoundTrip(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, st.CreateSheet(ctx, "09-2025", headerLayout()))

	// Clock values are stored as time serials but must read back in
	// the same HH:MM shape the engine wrote.
	require.NoError(t, st.WriteCell(ctx, "09-2025", 3, 3, "09:00"))
	v, err := st.ReadCell(ctx, "09-2025", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	require.NoError(t, st.WriteCell(ctx, "09-2025", 3, 1, "alice"))
	v, err = st.ReadCell(ctx, "09-2025", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestStore_AppendRow(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, st.CreateSheet(ctx, "09-2025", headerLayout()))

	next, err := st.AppendRow(ctx, "09-2025")
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	require.NoError(t, st.WriteCell(ctx, "09-2025", next, 1, "alice"))
	next, err = st.AppendRow(ctx, "09-2025")
	require.NoError(t, err)
	assert.Equal(t, 4, next)
}

func TestStore_ColumnValues(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, st.CreateSheet(ctx, "09-2025", headerLayout()))
	require.NoError(t, st.WriteCell(ctx, "09-2025", 3, 1, "alice"))
	require.NoError(t, st.WriteCell(ctx, "09-2025", 4, 1, "bob"))

	values, err := st.ColumnValues(ctx, "09-2025", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Username", "", "alice", "bob"}, values)

	values, err = st.ColumnValues(ctx, "09-2025", 99)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestStore_SetFormula(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, st.CreateSheet(ctx, "09-2025", headerLayout()))

	require.NoError(t, st.SetFormula(ctx, "09-2025", 3, 5, "=D3-C3"))
	// No evaluation happens outside a spreadsheet application, so the
	// cell reads back without a cached value.
	v, err := st.ReadCell(ctx, "09-2025", 3, 5)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	st, path := setupStore(t)
	ctx := context.Background()
	require.NoError(t, st.CreateSheet(ctx, "09-2025", headerLayout()))
	require.NoError(t, st.WriteCell(ctx, "09-2025", 3, 1, "alice"))
	require.NoError(t, st.WriteCell(ctx, "09-2025", 3, 3, "08:30"))
	require.NoError(t, st.Close())

	reopened, err := NewStore(Settings{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.FindSheet(ctx, "09-2025")
	require.NoError(t, err)
	assert.True(t, found)

	v, err := reopened.ReadCell(ctx, "09-2025", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	v, err = reopened.ReadCell(ctx, "09-2025", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "08:30", v)
}

func TestStore_CancelledContext(t *testing.T) {
	st, _ := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := st.WriteCell(ctx, "09-2025", 3, 1, "alice")
	assert.True(t, store.IsPersistence(err))
}

func TestStore_Policy(t *testing.T) {
	st, _ := setupStore(t)
	assert.Equal(t, model.PolicyFormula, st.Policy())
}

func TestClockSerial(t *testing.T) {
	serial, ok := clockSerial("09:00")
	require.True(t, ok)
	assert.InDelta(t, 0.375, serial, 1e-9)

	_, ok = clockSerial("alice")
	assert.False(t, ok)

	_, ok = clockSerial("25:00")
	assert.False(t, ok)
}
