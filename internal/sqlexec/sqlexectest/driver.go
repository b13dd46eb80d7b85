package sqlexectest

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
)

type connector struct{ script *Script }

func (c connector) Connect(context.Context) (driver.Conn, error) { return conn{c.script}, nil }
func (c connector) Driver() driver.Driver                        { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("sqlexectest: open by DSN not supported")
}

type conn struct{ script *Script }

func (c conn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("sqlexectest: prepared statements not supported")
}

func (c conn) Close() error { return nil }

func (c conn) Begin() (driver.Tx, error) {
	return nil, errors.New("sqlexectest: transactions not supported")
}

func (c conn) QueryContext(_ context.Context, stmt string, args []driver.NamedValue) (driver.Rows, error) {
	step, err := c.script.begin(stmt, args)
	defer c.script.end()
	if err != nil {
		return nil, err
	}
	return &rows{step: step}, nil
}

func (c conn) ExecContext(_ context.Context, stmt string, args []driver.NamedValue) (driver.Result, error) {
	step, err := c.script.begin(stmt, args)
	defer c.script.end()
	if err != nil {
		return nil, err
	}
	return result{step}, nil
}

type result struct{ step Step }

func (r result) LastInsertId() (int64, error) { return r.step.LastInsertID, nil }
func (r result) RowsAffected() (int64, error) { return r.step.RowsAffected, nil }

type rows struct {
	step Step
	next int
}

func (r *rows) Columns() []string { return r.step.Columns }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.next >= len(r.step.Rows) {
		return io.EOF
	}
	row := r.step.Rows[r.next]
	r.next++
	for i := range dest {
		if i >= len(row) {
			return fmt.Errorf("sqlexectest: row %d has %d cells, want %d", r.next-1, len(row), len(dest))
		}
		dest[i] = toDriverValue(row[i])
	}
	return nil
}

// toDriverValue renders cells the way the MySQL text protocol does: NULL or
// bytes.
func toDriverValue(cell any) driver.Value {
	switch v := cell.(type) {
	case nil:
		return nil
	case []byte:
		return v
	case string:
		return []byte(v)
	case bool:
		if v {
			return []byte("1")
		}
		return []byte("0")
	default:
		return []byte(fmt.Sprint(v))
	}
}
