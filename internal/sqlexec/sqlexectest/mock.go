// Package sqlexectest provides a scriptable database/sql driver so executor
// and wrapper behaviour can be tested without a MySQL server.
package sqlexectest

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// Step is one expected statement and its canned outcome.
type Step struct {
	// Match must be a substring of the incoming statement; empty matches
	// anything.
	Match string

	// Columns and Rows script a result set. A nil cell is NULL.
	Columns []string
	Rows    [][]any

	// LastInsertID and RowsAffected script an exec outcome.
	LastInsertID int64
	RowsAffected int64

	// Err fails the statement instead.
	Err error

	// Delay holds the statement open; serialisation tests use it to try to
	// provoke overlap.
	Delay time.Duration
}

// Call records one statement as the driver saw it.
type Call struct {
	Stmt string
	Args []any
}

// Script is a FIFO of expected steps shared by every connection opened from
// its DB.
type Script struct {
	mu          sync.Mutex
	steps       []Step
	calls       []Call
	inFlight    int
	maxInFlight int
}

func New() *Script { return &Script{} }

// Expect appends a step. Chainable.
func (s *Script) Expect(step Step) *Script {
	s.mu.Lock()
	s.steps = append(s.steps, step)
	s.mu.Unlock()
	return s
}

// Calls returns every statement executed so far, in order.
func (s *Script) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// MaxInFlight reports the highest number of statements ever open at once.
func (s *Script) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}

// Remaining reports how many scripted steps were never consumed.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// DB opens a sqlx handle backed by this script.
func (s *Script) DB() *sqlx.DB {
	return sqlx.NewDb(sql.OpenDB(connector{s}), "mysql")
}

func (s *Script) begin(stmt string, args []driver.NamedValue) (Step, error) {
	s.mu.Lock()
	rec := Call{Stmt: stmt}
	for _, a := range args {
		rec.Args = append(rec.Args, a.Value)
	}
	s.calls = append(s.calls, rec)
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	if len(s.steps) == 0 {
		s.mu.Unlock()
		return Step{}, fmt.Errorf("sqlexectest: no scripted step for statement %q", stmt)
	}
	// Match against the head without consuming it, so a stray statement
	// fails alone instead of shifting the queue under later calls.
	step := s.steps[0]
	if step.Match != "" && !strings.Contains(stmt, step.Match) {
		s.mu.Unlock()
		return Step{}, fmt.Errorf("sqlexectest: statement %q does not match scripted %q", stmt, step.Match)
	}
	s.steps = s.steps[1:]
	s.mu.Unlock()

	if step.Delay > 0 {
		time.Sleep(step.Delay)
	}
	return step, step.Err
}

func (s *Script) end() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}
