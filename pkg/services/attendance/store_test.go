package attendance

import (
	"context"
	"fmt"
	"sync"

	model "github.com/hr-tools/punchbook/pkg/models/store"
	"github.com/hr-tools/punchbook/pkg/store"
)

// memStore is a threadsafe in-memory Store used across the service
// tests. It counts mutations so tests can assert the no-op guarantees
// of the warning paths.
type memStore struct {
	mu     sync.Mutex
	policy model.Policy
	sheets map[string]*memSheet
	writes int
	err    error
}

type memSheet struct {
	cells    map[[2]int]string
	formulas map[[2]int]string
	styled   int
}

func newMemStore(policy model.Policy) *memStore {
	return &memStore{
		policy: policy,
		sheets: make(map[string]*memSheet),
	}
}

func (m *memStore) Policy() model.Policy { return m.policy }

func (m *memStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *memStore) sheet(name string) *memSheet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sheets[name]
}

func (m *memStore) cell(name string, row, col int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.sheets[name]; s != nil {
		return s.cells[[2]int{row, col}]
	}
	return ""
}

func (m *memStore) formula(name string, row, col int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.sheets[name]; s != nil {
		return s.formulas[[2]int{row, col}]
	}
	return ""
}

func (m *memStore) FindSheet(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, store.Failure("find sheet", name, m.err)
	}
	_, ok := m.sheets[name]
	return ok, nil
}

func (m *memStore) CreateSheet(_ context.Context, name string, layout model.SheetLayout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return store.Failure("create sheet", name, m.err)
	}
	if _, ok := m.sheets[name]; ok {
		return store.Failure("create sheet", name, fmt.Errorf("sheet already exists"))
	}

	s := &memSheet{
		cells:    make(map[[2]int]string),
		formulas: make(map[[2]int]string),
	}
	for _, c := range layout.Cells {
		s.cells[[2]int{c.Row, c.Col}] = c.Value
	}
	m.sheets[name] = s
	return nil
}

func (m *memStore) ReadCell(_ context.Context, sheet string, row, col int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", store.Failure("read cell", sheet, m.err)
	}
	s, ok := m.sheets[sheet]
	if !ok {
		return "", store.Failure("read cell", sheet, fmt.Errorf("no such sheet"))
	}
	return s.cells[[2]int{row, col}], nil
}

func (m *memStore) WriteCell(_ context.Context, sheet string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return store.Failure("write cell", sheet, m.err)
	}
	s, ok := m.sheets[sheet]
	if !ok {
		return store.Failure("write cell", sheet, fmt.Errorf("no such sheet"))
	}
	s.cells[[2]int{row, col}] = value
	m.writes++
	return nil
}

func (m *memStore) AppendRow(_ context.Context, sheet string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, store.Failure("append row", sheet, m.err)
	}
	s, ok := m.sheets[sheet]
	if !ok {
		return 0, store.Failure("append row", sheet, fmt.Errorf("no such sheet"))
	}

	max := 0
	for k := range s.cells {
		if k[0] > max {
			max = k[0]
		}
	}
	return max + 1, nil
}

func (m *memStore) ColumnValues(_ context.Context, sheet string, col int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, store.Failure("column values", sheet, m.err)
	}
	s, ok := m.sheets[sheet]
	if !ok {
		return nil, store.Failure("column values", sheet, fmt.Errorf("no such sheet"))
	}

	max := 0
	for k := range s.cells {
		if k[1] == col && k[0] > max {
			max = k[0]
		}
	}
	values := make([]string, max)
	for k, v := range s.cells {
		if k[1] == col {
			values[k[0]-1] = v
		}
	}
	return values, nil
}

func (m *memStore) SetFormula(_ context.Context, sheet string, row, col int, expr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return store.Failure("set formula", sheet, m.err)
	}
	s, ok := m.sheets[sheet]
	if !ok {
		return store.Failure("set formula", sheet, fmt.Errorf("no such sheet"))
	}
	s.formulas[[2]int{row, col}] = expr
	m.writes++
	return nil
}

func (m *memStore) SetStyle(_ context.Context, sheet string, _ model.StyledRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return store.Failure("set style", sheet, m.err)
	}
	if s, ok := m.sheets[sheet]; ok {
		s.styled++
	}
	return nil
}
