package xlsx

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	model "github.com/hr-tools/punchbook/pkg/models/store"
	"github.com/hr-tools/punchbook/pkg/store"
)

const (
	shadeColor    = "F2F2F2"
	clockFormat   = "hh:mm"
	elapsedFormat = "[h]:mm"
)

type Settings struct {
	Path string
}

// Store persists the ledger in an xlsx workbook via excelize. It runs
// live formulas, so duration and total cells are installed as
// expressions the workbook evaluates itself (PolicyFormula).
//
// Clock values ("HH:MM") are coerced to Excel time serials with an
// hh:mm number format; without that the subtraction and sum formulas
// would operate on text and silently produce nothing.
type Store struct {
	mu     sync.Mutex
	file   *excelize.File
	styles map[model.Style]int
	// style IDs are lazily created per workbook
	clockStyle   int
	elapsedStyle int
}

func NewStore(settings Settings) (*Store, error) {
	if settings.Path == "" {
		return nil, fmt.Errorf("workbook path is required")
	}

	var f *excelize.File
	if _, err := os.Stat(settings.Path); err == nil {
		f, err = excelize.OpenFile(settings.Path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
	} else {
		f = excelize.NewFile()
		if err := f.SaveAs(settings.Path); err != nil {
			return nil, fmt.Errorf("create workbook: %w", err)
		}
	}

	s := &Store{
		file:         f,
		styles:       make(map[model.Style]int),
		clockStyle:   -1,
		elapsedStyle: -1,
	}
	return s, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func (s *Store) Policy() model.Policy { return model.PolicyFormula }

func (s *Store) FindSheet(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, store.Failure("find sheet", name, err)
	}

	idx, err := s.file.GetSheetIndex(name)
	if err != nil {
		return false, store.Failure("find sheet", name, err)
	}
	return idx != -1, nil
}

// CreateSheet adds the sheet and applies the whole header layout. On
// any failure the sheet is removed again before the error surfaces, so
// a half-written header never outlives the call.
func (s *Store) CreateSheet(ctx context.Context, name string, layout model.SheetLayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return store.Failure("create sheet", name, err)
	}

	idx, err := s.file.GetSheetIndex(name)
	if err != nil {
		return store.Failure("create sheet", name, err)
	}
	if idx != -1 {
		return store.Failure("create sheet", name, fmt.Errorf("sheet already exists"))
	}
	if _, err := s.file.NewSheet(name); err != nil {
		return store.Failure("create sheet", name, err)
	}

	if err := s.applyLayout(name, layout); err != nil {
		_ = s.file.DeleteSheet(name)
		return store.Failure("create sheet", name, err)
	}
	if err := s.file.Save(); err != nil {
		_ = s.file.DeleteSheet(name)
		return store.Failure("create sheet", name, err)
	}
	return nil
}

func (s *Store) applyLayout(name string, layout model.SheetLayout) error {
	for _, c := range layout.Cells {
		addr, err := excelize.CoordinatesToCellName(c.Col, c.Row)
		if err != nil {
			return err
		}
		if err := s.file.SetCellValue(name, addr, c.Value); err != nil {
			return err
		}
	}
	for _, mr := range layout.Merges {
		start, err := excelize.CoordinatesToCellName(mr.StartCol, mr.StartRow)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(mr.EndCol, mr.EndRow)
		if err != nil {
			return err
		}
		if err := s.file.MergeCell(name, start, end); err != nil {
			return err
		}
	}
	for _, sr := range layout.Styles {
		if err := s.applyStyle(name, sr); err != nil {
			return err
		}
	}
	for _, w := range layout.Widths {
		start, err := excelize.ColumnNumberToName(w.StartCol)
		if err != nil {
			return err
		}
		end, err := excelize.ColumnNumberToName(w.EndCol)
		if err != nil {
			return err
		}
		if err := s.file.SetColWidth(name, start, end, w.Width); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ReadCell(ctx context.Context, sheet string, row, col int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", store.Failure("read cell", sheet, err)
	}

	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", store.Failure("read cell", sheet, err)
	}
	v, err := s.file.GetCellValue(sheet, addr)
	if err != nil {
		return "", store.Failure("read cell", sheet, err)
	}
	return v, nil
}

func (s *Store) WriteCell(ctx context.Context, sheet string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return store.Failure("write cell", sheet, err)
	}

	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return store.Failure("write cell", sheet, err)
	}

	if serial, ok := clockSerial(value); ok {
		if err := s.file.SetCellValue(sheet, addr, serial); err != nil {
			return store.Failure("write cell", sheet, err)
		}
		styleID, err := s.numFmtStyle(&s.clockStyle, clockFormat)
		if err != nil {
			return store.Failure("write cell", sheet, err)
		}
		if err := s.file.SetCellStyle(sheet, addr, addr, styleID); err != nil {
			return store.Failure("write cell", sheet, err)
		}
	} else if err := s.file.SetCellValue(sheet, addr, value); err != nil {
		return store.Failure("write cell", sheet, err)
	}

	if err := s.file.Save(); err != nil {
		return store.Failure("write cell", sheet, err)
	}
	return nil
}

func (s *Store) AppendRow(ctx context.Context, sheet string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, store.Failure("append row", sheet, err)
	}

	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return 0, store.Failure("append row", sheet, err)
	}
	return len(rows) + 1, nil
}

func (s *Store) ColumnValues(ctx context.Context, sheet string, col int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, store.Failure("column values", sheet, err)
	}

	cols, err := s.file.GetCols(sheet)
	if err != nil {
		return nil, store.Failure("column values", sheet, err)
	}
	if col-1 >= len(cols) {
		return nil, nil
	}
	return cols[col-1], nil
}

func (s *Store) SetFormula(ctx context.Context, sheet string, row, col int, expr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return store.Failure("set formula", sheet, err)
	}

	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return store.Failure("set formula", sheet, err)
	}
	if err := s.file.SetCellFormula(sheet, addr, expr); err != nil {
		return store.Failure("set formula", sheet, err)
	}

	// Duration and total formulas subtract or sum time serials; an
	// elapsed-time format keeps sums past 24h readable.
	styleID, err := s.numFmtStyle(&s.elapsedStyle, elapsedFormat)
	if err != nil {
		return store.Failure("set formula", sheet, err)
	}
	if err := s.file.SetCellStyle(sheet, addr, addr, styleID); err != nil {
		return store.Failure("set formula", sheet, err)
	}

	if err := s.file.Save(); err != nil {
		return store.Failure("set formula", sheet, err)
	}
	return nil
}

func (s *Store) SetStyle(ctx context.Context, sheet string, rng model.StyledRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return store.Failure("set style", sheet, err)
	}

	if err := s.applyStyle(sheet, rng); err != nil {
		return store.Failure("set style", sheet, err)
	}
	if err := s.file.Save(); err != nil {
		return store.Failure("set style", sheet, err)
	}
	return nil
}

func (s *Store) applyStyle(sheet string, rng model.StyledRange) error {
	start, err := excelize.CoordinatesToCellName(rng.Range.StartCol, rng.Range.StartRow)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(rng.Range.EndCol, rng.Range.EndRow)
	if err != nil {
		return err
	}
	styleID, err := s.styleFor(rng.Style)
	if err != nil {
		return err
	}
	return s.file.SetCellStyle(sheet, start, end, styleID)
}

func (s *Store) styleFor(st model.Style) (int, error) {
	if id, ok := s.styles[st]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if st.Bold {
		style.Font = &excelize.Font{Bold: true}
	}
	if st.Centered {
		style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	}
	if st.Bordered {
		style.Border = []excelize.Border{
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
		}
	}
	if st.Shaded {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{shadeColor}}
	}

	id, err := s.file.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.styles[st] = id
	return id, nil
}

func (s *Store) numFmtStyle(cached *int, format string) (int, error) {
	if *cached != -1 {
		return *cached, nil
	}
	fmtCopy := format
	id, err := s.file.NewStyle(&excelize.Style{CustomNumFmt: &fmtCopy})
	if err != nil {
		return 0, err
	}
	*cached = id
	return id, nil
}

// clockSerial converts an "HH:MM" value into the Excel day-fraction
// serial. Non-clock values report ok=false and are stored verbatim.
func clockSerial(v string) (float64, bool) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, false
	}
	return (float64(t.Hour())*60 + float64(t.Minute())) / (24 * 60), true
}
