package spdb

import (
	"context"

	"spdb/internal/sqlexec"
)

const (
	stmtInsertUser       = "INSERT INTO user (name, password, is_male) VALUES (?, ?, ?)"
	stmtInsertUserWithIP = "INSERT INTO user (name, password, is_male, creation_ip) VALUES (?, ?, ?, ?)"
	stmtSelectUserID     = "SELECT id FROM user WHERE name = ?"
	stmtSelectLoginInfo  = "SELECT password, is_deleted FROM user WHERE id = ?"
	stmtSelectPostLogin  = "SELECT is_male, auth, default_character, `rank`, rank_record, points, code FROM user WHERE id = ?"

	stmtTouchLastLogin       = "UPDATE user SET last_login_date = NOW() WHERE id = ?"
	stmtTouchLoginServerSeen = "UPDATE user SET last_loginserver_online_date = NOW() WHERE id = ?"
	stmtTouchGameServerSeen  = "UPDATE user SET last_gameserver_online_date = NOW() WHERE id = ?"
)

// CreateUser inserts one user row and returns its generated id. An empty
// creationIP leaves the column at its default.
func (w *Wrapper) CreateUser(ctx context.Context, name, password string, isMale bool, creationIP string) (int64, error) {
	stmt := stmtInsertUser
	args := []any{name, password, isMale}
	if creationIP != "" {
		stmt = stmtInsertUserWithIP
		args = append(args, creationIP)
	}
	res, err := w.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, queryErr(stmt, err)
	}
	return res.LastInsertID, nil
}

// GetUserID resolves a user name to its id, or 0 when no such user exists.
func (w *Wrapper) GetUserID(ctx context.Context, name string) (int64, error) {
	res, err := w.exec.Query(ctx, stmtSelectUserID, name)
	if err != nil {
		return 0, queryErr(stmtSelectUserID, err)
	}
	if res.RowCount() == 0 {
		return 0, nil
	}
	v, err := res.First()
	if err != nil {
		return 0, queryErr(stmtSelectUserID, err)
	}
	id, err := v.AsInt64()
	if err != nil {
		return 0, queryErr(stmtSelectUserID, err)
	}
	return id, nil
}

// GetUserLoginInfo reads the credentials and ban status needed to decide
// whether a login is permitted.
func (w *Wrapper) GetUserLoginInfo(ctx context.Context, userID int64) (UserLoginInfo, error) {
	res, err := w.exec.Query(ctx, stmtSelectLoginInfo, userID)
	if err != nil {
		return UserLoginInfo{}, queryErr(stmtSelectLoginInfo, err)
	}
	hash, err := stringByName(res, "password")
	if err != nil {
		return UserLoginInfo{}, queryErr(stmtSelectLoginInfo, err)
	}
	deleted, err := boolByName(res, "is_deleted")
	if err != nil {
		return UserLoginInfo{}, queryErr(stmtSelectLoginInfo, err)
	}

	ban, err := w.resolveBan(ctx, stmtSelectUserBan, userID, userID)
	if err != nil {
		return UserLoginInfo{}, err
	}
	return UserLoginInfo{
		PasswordHash:  hash,
		IsDeleted:     deleted,
		BanExpiration: ban.expiration(),
	}, nil
}

// GetUserPostLoginInfo reads the profile state handed to the game server.
func (w *Wrapper) GetUserPostLoginInfo(ctx context.Context, userID int64) (UserPostLoginInfo, error) {
	res, err := w.exec.Query(ctx, stmtSelectPostLogin, userID)
	if err != nil {
		return UserPostLoginInfo{}, queryErr(stmtSelectPostLogin, err)
	}
	var info UserPostLoginInfo
	reads := []struct {
		column string
		assign func(int)
	}{
		{"auth", func(n int) { info.Auth = n }},
		{"default_character", func(n int) { info.DefaultCharacter = n }},
		{"rank", func(n int) { info.Rank = n }},
		{"rank_record", func(n int) { info.RankRecord = n }},
		{"points", func(n int) { info.Points = n }},
		{"code", func(n int) { info.Code = n }},
	}
	if info.IsMale, err = boolByName(res, "is_male"); err != nil {
		return UserPostLoginInfo{}, queryErr(stmtSelectPostLogin, err)
	}
	for _, r := range reads {
		n, err := intByName(res, r.column)
		if err != nil {
			return UserPostLoginInfo{}, queryErr(stmtSelectPostLogin, err)
		}
		r.assign(n)
	}
	return info, nil
}

// UpdateLastLoginDate stamps the user's last successful login. A user id
// that does not exist is silently a no-op.
func (w *Wrapper) UpdateLastLoginDate(ctx context.Context, userID int64) error {
	return w.touch(ctx, stmtTouchLastLogin, userID)
}

// UpdateLastLoginServerOnlineDate stamps the login-server heartbeat.
func (w *Wrapper) UpdateLastLoginServerOnlineDate(ctx context.Context, userID int64) error {
	return w.touch(ctx, stmtTouchLoginServerSeen, userID)
}

// UpdateLastGameServerOnlineDate stamps the game-server heartbeat.
func (w *Wrapper) UpdateLastGameServerOnlineDate(ctx context.Context, userID int64) error {
	return w.touch(ctx, stmtTouchGameServerSeen, userID)
}

func (w *Wrapper) touch(ctx context.Context, stmt string, userID int64) error {
	// Zero rows affected is not an error here.
	if _, err := w.exec.Exec(ctx, stmt, userID); err != nil {
		return queryErr(stmt, err)
	}
	return nil
}

func stringByName(res *sqlexec.Result, column string) (string, error) {
	v, err := res.ValueByName(0, column)
	if err != nil {
		return "", err
	}
	return v.AsString()
}

func boolByName(res *sqlexec.Result, column string) (bool, error) {
	v, err := res.ValueByName(0, column)
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

func intByName(res *sqlexec.Result, column string) (int, error) {
	v, err := res.ValueByName(0, column)
	if err != nil {
		return 0, err
	}
	return v.AsInt()
}
