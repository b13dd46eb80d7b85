package spdb

import "fmt"

// ConnectError reports a failed session open.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("spdb: unable to connect to MySQL server at %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// QueryError is the single failure kind surfaced by the data-access
// operations. It carries the offending statement text and chains the
// underlying cause.
type QueryError struct {
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("spdb: an error occurred when processing a query: %v (query: %s)", e.Err, e.Statement)
}

func (e *QueryError) Unwrap() error { return e.Err }

func queryErr(stmt string, err error) error {
	return &QueryError{Statement: stmt, Err: err}
}
