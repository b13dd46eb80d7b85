package sqlexec

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"spdb/internal/sqlexec/sqlexectest"
)

func newTestExecutor(s *sqlexectest.Script) *Executor {
	return New(s.DB())
}

func TestQueryMaterialisesResult(t *testing.T) {
	s := sqlexectest.New().Expect(sqlexectest.Step{
		Match:   "SELECT",
		Columns: []string{"id", "creation_ip"},
		Rows:    [][]any{{1, nil}, {2, "10.0.0.2"}},
	})
	e := newTestExecutor(s)
	defer e.Close()

	res, err := e.Query(context.Background(), "SELECT id, creation_ip FROM user")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if res.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", res.RowCount())
	}
	v, err := res.Value(0, 1)
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if !v.IsNull() {
		t.Error("row 0 creation_ip: want NULL")
	}
	ip, err := res.ValueByName(1, "creation_ip")
	if err != nil {
		t.Fatalf("ValueByName error: %v", err)
	}
	if s, _ := ip.AsString(); s != "10.0.0.2" {
		t.Errorf("row 1 creation_ip = %q", s)
	}
}

func TestExecReportsInsertID(t *testing.T) {
	s := sqlexectest.New().Expect(sqlexectest.Step{
		Match:        "INSERT",
		LastInsertID: 7,
		RowsAffected: 1,
	})
	e := newTestExecutor(s)
	defer e.Close()

	res, err := e.Exec(context.Background(), "INSERT INTO user (name) VALUES (?)", "alice")
	if err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	if res.LastInsertID != 7 || res.RowsAffected != 1 {
		t.Fatalf("ExecResult = %+v, want id 7, affected 1", res)
	}
}

func TestStatementErrorLeavesSessionUsable(t *testing.T) {
	boom := errors.New("syntax error")
	s := sqlexectest.New().
		Expect(sqlexectest.Step{Err: boom}).
		Expect(sqlexectest.Step{Columns: []string{"id"}, Rows: [][]any{{1}}})
	e := newTestExecutor(s)
	defer e.Close()

	if _, err := e.Query(context.Background(), "SELECT broken"); err == nil {
		t.Fatal("first Query: want error")
	}
	res, err := e.Query(context.Background(), "SELECT id FROM user")
	if err != nil {
		t.Fatalf("second Query error: %v", err)
	}
	if res.RowCount() != 1 {
		t.Fatalf("RowCount = %d, want 1", res.RowCount())
	}
}

func TestExecutionsAreSerialised(t *testing.T) {
	const n = 16
	s := sqlexectest.New()
	for i := 0; i < n; i++ {
		s.Expect(sqlexectest.Step{Columns: []string{"id"}, Rows: [][]any{{i}}, Delay: 2 * time.Millisecond})
	}
	e := newTestExecutor(s)
	defer e.Close()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Query(context.Background(), "SELECT id FROM user"); err != nil {
				t.Errorf("Query error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := s.MaxInFlight(); got != 1 {
		t.Fatalf("MaxInFlight = %d, want 1", got)
	}
}

func TestInsertIDAttributedToOwnInsert(t *testing.T) {
	const n = 24
	s := sqlexectest.New()
	for i := 0; i < n; i++ {
		// The script assigns ids in arrival order, like AUTO_INCREMENT.
		s.Expect(sqlexectest.Step{Match: "INSERT", LastInsertID: int64(i + 1), RowsAffected: 1})
	}
	e := newTestExecutor(s)
	defer e.Close()

	got := make(map[string]int64)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stmt := fmt.Sprintf("INSERT INTO user (name) VALUES ('g%d')", i)
			res, err := e.Exec(context.Background(), stmt)
			if err != nil {
				t.Errorf("Exec error: %v", err)
				return
			}
			mu.Lock()
			got[stmt] = res.LastInsertID
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, id := range got {
		if seen[id] {
			t.Fatalf("insert id %d returned twice", id)
		}
		seen[id] = true
	}
	// Ids were scripted in arrival order, so the k-th recorded call must
	// have received id k+1.
	for i, call := range s.Calls() {
		want := int64(i + 1)
		if got[call.Stmt] != want {
			t.Fatalf("call %d (%s) got id %d, want %d", i, call.Stmt, got[call.Stmt], want)
		}
	}
}
