package sqlexec

import (
	"fmt"
	"strconv"
)

// Value is one cell of a materialised result: either NULL or the server's
// textual rendering of the column value.
type Value struct {
	raw  string
	null bool
}

func (v Value) IsNull() bool { return v.null }

func (v Value) AsString() (string, error) {
	if v.null {
		return "", fmt.Errorf("%w (string)", ErrNullValue)
	}
	return v.raw, nil
}

func (v Value) AsInt() (int, error) {
	if v.null {
		return 0, fmt.Errorf("%w (int)", ErrNullValue)
	}
	n, err := strconv.Atoi(v.raw)
	if err != nil {
		return 0, fmt.Errorf("sqlexec: cell %q is not an int: %w", v.raw, err)
	}
	return n, nil
}

func (v Value) AsInt64() (int64, error) {
	if v.null {
		return 0, fmt.Errorf("%w (int64)", ErrNullValue)
	}
	n, err := strconv.ParseInt(v.raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sqlexec: cell %q is not an int64: %w", v.raw, err)
	}
	return n, nil
}

// AsBool reads the cell as an integer and reports whether it is non-zero.
func (v Value) AsBool() (bool, error) {
	n, err := v.AsInt()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
