package spdb

import (
	"context"
	"strings"
	"testing"

	"spdb/internal/sqlexec"
	"spdb/internal/sqlexec/sqlexectest"
)

func newTestWrapper(s *sqlexectest.Script) *Wrapper {
	return newWrapper(sqlexec.New(s.DB()))
}

func TestCreateUserReturnsGeneratedID(t *testing.T) {
	s := sqlexectest.New().Expect(sqlexectest.Step{Match: "INSERT INTO user", LastInsertID: 1, RowsAffected: 1})
	w := newTestWrapper(s)
	defer w.Close()

	id, err := w.CreateUser(context.Background(), "alice", "H", true, "")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
	call := s.Calls()[0]
	if strings.Contains(call.Stmt, "creation_ip") {
		t.Errorf("empty creation ip must not be stored: %s", call.Stmt)
	}
	if len(call.Args) != 3 {
		t.Errorf("args = %v, want 3", call.Args)
	}
}

func TestCreateUserStoresCreationIP(t *testing.T) {
	s := sqlexectest.New().Expect(sqlexectest.Step{Match: "creation_ip", LastInsertID: 2, RowsAffected: 1})
	w := newTestWrapper(s)
	defer w.Close()

	if _, err := w.CreateUser(context.Background(), "bob", "H", false, "10.0.0.2"); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	call := s.Calls()[0]
	if len(call.Args) != 4 {
		t.Fatalf("args = %v, want 4 (creation_ip bound)", call.Args)
	}
}

func TestGetUserIDRoundTrip(t *testing.T) {
	s := sqlexectest.New().Expect(sqlexectest.Step{
		Match:   "SELECT id FROM user WHERE name",
		Columns: []string{"id"},
		Rows:    [][]any{{1}},
	})
	w := newTestWrapper(s)
	defer w.Close()

	id, err := w.GetUserID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserID error: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
}

func TestGetUserIDUnknownNameReturnsZero(t *testing.T) {
	s := sqlexectest.New().Expect(sqlexectest.Step{Columns: []string{"id"}})
	w := newTestWrapper(s)
	defer w.Close()

	id, err := w.GetUserID(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetUserID error: %v", err)
	}
	if id != 0 {
		t.Fatalf("id = %d, want 0", id)
	}
}

func TestGetUserLoginInfoCleanAccount(t *testing.T) {
	s := sqlexectest.New().
		Expect(sqlexectest.Step{
			Match:   "SELECT password, is_deleted FROM user",
			Columns: []string{"password", "is_deleted"},
			Rows:    [][]any{{"H", 0}},
		}).
		Expect(sqlexectest.Step{
			Match:   "FROM userban",
			Columns: []string{"expiration_date_unix"},
		})
	w := newTestWrapper(s)
	defer w.Close()

	info, err := w.GetUserLoginInfo(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUserLoginInfo error: %v", err)
	}
	want := UserLoginInfo{PasswordHash: "H", IsDeleted: false, BanExpiration: BanNone}
	if info != want {
		t.Fatalf("info = %+v, want %+v", info, want)
	}
}

func TestGetUserLoginInfoDeletedAccount(t *testing.T) {
	s := sqlexectest.New().
		Expect(sqlexectest.Step{
			Columns: []string{"password", "is_deleted"},
			Rows:    [][]any{{"H", 1}},
		}).
		Expect(sqlexectest.Step{Columns: []string{"expiration_date_unix"}})
	w := newTestWrapper(s)
	defer w.Close()

	info, err := w.GetUserLoginInfo(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetUserLoginInfo error: %v", err)
	}
	if !info.IsDeleted {
		t.Fatal("IsDeleted = false, want true")
	}
}

func TestGetUserPostLoginInfoProjection(t *testing.T) {
	s := sqlexectest.New().Expect(sqlexectest.Step{
		Match:   "FROM user WHERE id",
		Columns: []string{"is_male", "auth", "default_character", "rank", "rank_record", "points", "code"},
		Rows:    [][]any{{0, 5, 7, 2, 9, 100, 42}},
	})
	w := newTestWrapper(s)
	defer w.Close()

	info, err := w.GetUserPostLoginInfo(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetUserPostLoginInfo error: %v", err)
	}
	want := UserPostLoginInfo{IsMale: false, Auth: 5, DefaultCharacter: 7, Rank: 2, RankRecord: 9, Points: 100, Code: 42}
	if info != want {
		t.Fatalf("info = %+v, want %+v", info, want)
	}
}

func TestUpdateTimestampsUnknownUserIsNoOp(t *testing.T) {
	ops := []struct {
		name string
		call func(w *Wrapper) error
		want string
	}{
		{"last_login", func(w *Wrapper) error { return w.UpdateLastLoginDate(context.Background(), 99) }, "last_login_date"},
		{"loginserver", func(w *Wrapper) error { return w.UpdateLastLoginServerOnlineDate(context.Background(), 99) }, "last_loginserver_online_date"},
		{"gameserver", func(w *Wrapper) error { return w.UpdateLastGameServerOnlineDate(context.Background(), 99) }, "last_gameserver_online_date"},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			// Zero rows affected: the user id does not exist.
			s := sqlexectest.New().Expect(sqlexectest.Step{Match: op.want, RowsAffected: 0})
			w := newTestWrapper(s)
			defer w.Close()

			if err := op.call(w); err != nil {
				t.Fatalf("update error: %v", err)
			}
			if !strings.Contains(s.Calls()[0].Stmt, "NOW()") {
				t.Errorf("statement does not stamp NOW(): %s", s.Calls()[0].Stmt)
			}
		})
	}
}
