package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	model "github.com/hr-tools/punchbook/pkg/models/store"
	"github.com/hr-tools/punchbook/pkg/store"
)

const sheetsSchema = `
	CREATE TABLE IF NOT EXISTS sheets (
		name TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`
const cellsSchema = `
	CREATE TABLE IF NOT EXISTS cells (
		sheet TEXT NOT NULL,
		row_num INTEGER NOT NULL,
		col_num INTEGER NOT NULL,
		value TEXT NOT NULL DEFAULT '',
		formula TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (sheet, row_num, col_num)
	);
`

var bootQueries = []string{
	sheetsSchema,
	cellsSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the ledger database and runs the boot schema.
func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return db, nil
}

// Store persists the ledger as a cell table in an embedded sqlite
// database. It runs no live formulas, so the engine precomputes
// durations and keeps totals current itself (PolicyValue).
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

func (s *Store) Policy() model.Policy { return model.PolicyValue }

func (s *Store) FindSheet(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheets WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, store.Failure("find sheet", name, err)
	}
	return count > 0, nil
}

// CreateSheet registers the sheet and writes its header cells in one
// transaction, so a rejected write leaves no partial layout behind.
func (s *Store) CreateSheet(ctx context.Context, name string, layout model.SheetLayout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Failure("create sheet", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `INSERT INTO sheets (name) VALUES (?)`, name); err != nil {
		return store.Failure("create sheet", name, err)
	}
	for _, c := range layout.Cells {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cells (sheet, row_num, col_num, value) VALUES (?, ?, ?, ?)`,
			name, c.Row, c.Col, c.Value,
		)
		if err != nil {
			return store.Failure("create sheet", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.Failure("create sheet", name, err)
	}
	return nil
}

func (s *Store) ReadCell(ctx context.Context, sheet string, row, col int) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM cells WHERE sheet = ? AND row_num = ? AND col_num = ?`,
		sheet, row, col,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", store.Failure("read cell", sheet, err)
	}
	return value, nil
}

func (s *Store) WriteCell(ctx context.Context, sheet string, row, col int, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cells (sheet, row_num, col_num, value) VALUES (?, ?, ?, ?)
		ON CONFLICT (sheet, row_num, col_num) DO UPDATE SET value = excluded.value`,
		sheet, row, col, value,
	)
	if err != nil {
		return store.Failure("write cell", sheet, err)
	}
	return nil
}

func (s *Store) AppendRow(ctx context.Context, sheet string) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_num), 0) + 1 FROM cells WHERE sheet = ?`, sheet,
	).Scan(&next)
	if err != nil {
		return 0, store.Failure("append row", sheet, err)
	}
	return next, nil
}

func (s *Store) ColumnValues(ctx context.Context, sheet string, col int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row_num, value FROM cells WHERE sheet = ? AND col_num = ? ORDER BY row_num`,
		sheet, col,
	)
	if err != nil {
		return nil, store.Failure("column values", sheet, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var (
			row   int
			value string
		)
		if err := rows.Scan(&row, &value); err != nil {
			return nil, store.Failure("column values", sheet, err)
		}
		for len(values) < row-1 {
			values = append(values, "")
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Failure("column values", sheet, err)
	}
	return values, nil
}

// SetFormula keeps the expression text alongside the cell. Nothing in
// sqlite evaluates it; value-policy callers never rely on it.
func (s *Store) SetFormula(ctx context.Context, sheet string, row, col int, expr string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cells (sheet, row_num, col_num, formula) VALUES (?, ?, ?, ?)
		ON CONFLICT (sheet, row_num, col_num) DO UPDATE SET formula = excluded.formula`,
		sheet, row, col, expr,
	)
	if err != nil {
		return store.Failure("set formula", sheet, err)
	}
	return nil
}

// SetStyle is presentation metadata with no renderer here.
func (s *Store) SetStyle(_ context.Context, _ string, _ model.StyledRange) error {
	return nil
}
