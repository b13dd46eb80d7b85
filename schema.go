package spdb

import "context"

// Schema is the authoritative DDL for the five tables the wrapper touches.
// Statements are idempotent so EnsureSchema can run on every start.
var Schema = []string{
	"CREATE TABLE IF NOT EXISTS user (" +
		" id INT UNSIGNED NOT NULL AUTO_INCREMENT," +
		" name VARCHAR(64) NOT NULL," +
		" password VARCHAR(64) NOT NULL," +
		" is_male TINYINT(1) NOT NULL DEFAULT 0," +
		" is_deleted TINYINT(1) NOT NULL DEFAULT 0," +
		" creation_ip VARCHAR(45) DEFAULT NULL," +
		" last_login_date DATETIME DEFAULT NULL," +
		" last_loginserver_online_date DATETIME DEFAULT NULL," +
		" last_gameserver_online_date DATETIME DEFAULT NULL," +
		" auth INT NOT NULL DEFAULT 0," +
		" default_character INT NOT NULL DEFAULT 0," +
		" `rank` INT NOT NULL DEFAULT 0," +
		" rank_record INT NOT NULL DEFAULT 0," +
		" points INT NOT NULL DEFAULT 0," +
		" code INT NOT NULL DEFAULT 0," +
		" PRIMARY KEY (id)," +
		" UNIQUE KEY uq_user_name (name)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",

	"CREATE TABLE IF NOT EXISTS userban (" +
		" id INT UNSIGNED NOT NULL AUTO_INCREMENT," +
		" user_id INT UNSIGNED NOT NULL," +
		" expiration_date DATETIME DEFAULT NULL," +
		" PRIMARY KEY (id)," +
		" KEY idx_userban_user_id (user_id)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",

	"CREATE TABLE IF NOT EXISTS ipban (" +
		" id INT UNSIGNED NOT NULL AUTO_INCREMENT," +
		" ip VARCHAR(45) NOT NULL," +
		" expiration_date DATETIME DEFAULT NULL," +
		" PRIMARY KEY (id)," +
		" KEY idx_ipban_ip (ip)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",

	"CREATE TABLE IF NOT EXISTS userip (" +
		" user_id INT UNSIGNED NOT NULL," +
		" ip VARCHAR(45) NOT NULL," +
		" last_show_up_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP," +
		" UNIQUE KEY uq_userip (user_id, ip)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

// EnsureSchema creates any of the five tables that do not exist yet.
func (w *Wrapper) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := w.exec.Exec(ctx, stmt); err != nil {
			return queryErr(stmt, err)
		}
	}
	return nil
}
