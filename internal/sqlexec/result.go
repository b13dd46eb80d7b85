package sqlexec

import (
	"database/sql"
	"fmt"
)

// Result is a fully materialised result set. All rows are fetched before the
// executor returns, so a Result stays valid after later statements run on the
// same session.
type Result struct {
	columns []string
	rows    [][]Value
}

func readResult(rows *sql.Rows) (*Result, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{columns: columns}
	raw := make([]sql.RawBytes, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]Value, len(columns))
		for i, cell := range raw {
			if cell == nil {
				row[i] = Value{null: true}
			} else {
				// RawBytes is reused between scans; copy.
				row[i] = Value{raw: string(cell)}
			}
		}
		res.rows = append(res.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Result) RowCount() int { return len(r.rows) }

// Columns returns the result's column names in statement order.
func (r *Result) Columns() []string { return r.columns }

// First is shorthand for Value(0, 0).
func (r *Result) First() (Value, error) { return r.Value(0, 0) }

func (r *Result) Value(row, col int) (Value, error) {
	if row < 0 || row >= len(r.rows) {
		return Value{}, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, len(r.rows))
	}
	if col < 0 || col >= len(r.columns) {
		return Value{}, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, col, len(r.columns))
	}
	return r.rows[row][col], nil
}

// ValueByName resolves the column by name, then behaves like Value.
func (r *Result) ValueByName(row int, column string) (Value, error) {
	for i, name := range r.columns {
		if name == column {
			return r.Value(row, i)
		}
	}
	return Value{}, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}
