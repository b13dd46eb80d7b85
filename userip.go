package spdb

import "context"

const stmtUpsertUserIP = "INSERT INTO userip (user_id, ip) VALUES (?, ?)" +
	" ON DUPLICATE KEY UPDATE last_show_up_date = NOW()"

// CreateOrUpdateUserIP records that the user was seen from the address. The
// first sighting of a (user, ip) pair inserts a row at the column's default
// timestamp; every later sighting touches last_show_up_date.
func (w *Wrapper) CreateOrUpdateUserIP(ctx context.Context, userID int64, ip string) error {
	if _, err := w.exec.Exec(ctx, stmtUpsertUserIP, userID, ip); err != nil {
		return queryErr(stmtUpsertUserIP, err)
	}
	return nil
}
