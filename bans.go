package spdb

import (
	"context"

	"spdb/internal/sqlexec"
)

// Ban resolution projects a single sentinel-bearing column. The ordering
// must sit at the union level: MySQL discards an ORDER BY inside a
// parenthesized UNION branch and unions are otherwise unordered, so a
// branch-level sort would let LIMIT pick an arbitrary row. NULL (permanent)
// sorts first and wins over every timed ban regardless of dates; otherwise
// the furthest timed expiration survives the LIMIT.
const (
	stmtSelectUserBan = "(SELECT NULL AS expiration_date_unix FROM userban" +
		" WHERE user_id = ? AND expiration_date IS NULL)" +
		" UNION" +
		" (SELECT UNIX_TIMESTAMP(expiration_date) AS expiration_date_unix FROM userban" +
		" WHERE user_id = ? AND expiration_date IS NOT NULL)" +
		" ORDER BY expiration_date_unix IS NOT NULL, expiration_date_unix DESC" +
		" LIMIT 1"
	stmtSelectIPBan = "(SELECT NULL AS expiration_date_unix FROM ipban" +
		" WHERE ip = ? AND expiration_date IS NULL)" +
		" UNION" +
		" (SELECT UNIX_TIMESTAMP(expiration_date) AS expiration_date_unix FROM ipban" +
		" WHERE ip = ? AND expiration_date IS NOT NULL)" +
		" ORDER BY expiration_date_unix IS NOT NULL, expiration_date_unix DESC" +
		" LIMIT 1"

	stmtInsertUserBan      = "INSERT INTO userban (user_id) VALUES (?)"
	stmtInsertUserBanTimed = "INSERT INTO userban (user_id, expiration_date) VALUES (?, FROM_UNIXTIME(?))"
	stmtInsertIPBan        = "INSERT INTO ipban (ip) VALUES (?)"
	stmtInsertIPBanTimed   = "INSERT INTO ipban (ip, expiration_date) VALUES (?, FROM_UNIXTIME(?))"
)

// GetIPBanInfo reports the ban status of an address.
func (w *Wrapper) GetIPBanInfo(ctx context.Context, ip string) (IPBanInfo, error) {
	ban, err := w.resolveBan(ctx, stmtSelectIPBan, ip, ip)
	if err != nil {
		return IPBanInfo{}, err
	}
	return IPBanInfo{BanExpiration: ban.expiration()}, nil
}

// CreateUserBan appends a ban row for the user and returns its id.
// expiration is the Unix epoch second the ban runs until; BanPermanent
// stores a NULL expiration.
func (w *Wrapper) CreateUserBan(ctx context.Context, userID int64, expiration int64) (int64, error) {
	stmt := stmtInsertUserBan
	args := []any{userID}
	if expiration != BanPermanent {
		stmt = stmtInsertUserBanTimed
		args = append(args, expiration)
	}
	res, err := w.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, queryErr(stmt, err)
	}
	return res.LastInsertID, nil
}

// CreateIPBan appends a ban row for the address and returns its id.
func (w *Wrapper) CreateIPBan(ctx context.Context, ip string, expiration int64) (int64, error) {
	stmt := stmtInsertIPBan
	args := []any{ip}
	if expiration != BanPermanent {
		stmt = stmtInsertIPBanTimed
		args = append(args, expiration)
	}
	res, err := w.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, queryErr(stmt, err)
	}
	return res.LastInsertID, nil
}

func (w *Wrapper) resolveBan(ctx context.Context, stmt string, args ...any) (banState, error) {
	res, err := w.exec.Query(ctx, stmt, args...)
	if err != nil {
		return banState{}, queryErr(stmt, err)
	}
	ban, err := banStateFromResult(res)
	if err != nil {
		return banState{}, queryErr(stmt, err)
	}
	return ban, nil
}

func banStateFromResult(res *sqlexec.Result) (banState, error) {
	if res.RowCount() == 0 {
		return banState{}, nil
	}
	v, err := res.First()
	if err != nil {
		return banState{}, err
	}
	if v.IsNull() {
		return banState{permanent: true}, nil
	}
	until, err := v.AsInt64()
	if err != nil {
		return banState{}, err
	}
	return banState{until: until}, nil
}
