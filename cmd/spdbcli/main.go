// Command spdbcli is a small operator console for the sp authentication
// database: account creation, lookups and ban management over the same
// data-access layer the login and game servers use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"spdb"
	"spdb/config"
	"spdb/internal/logging"
	"spdb/pkg/crypto"
)

const usage = `usage: spdbcli [-config path] <command> [args]

commands:
  init-schema                         create missing tables
  create-user <name> <password>       register an account (-male, -ip addr)
  user-id <name>                      resolve a name to its id
  login-info <user-id>                credentials and ban status
  post-login-info <user-id>           profile state after login
  ban-user <user-id>                  ban an account (-until epoch, default permanent)
  ban-ip <ip>                         ban an address (-until epoch, default permanent)
  ip-ban-info <ip>                    ban status of an address
  record-ip <user-id> <ip>            record a sighting of the user from ip
  touch-login <user-id>               stamp last_login_date
  touch-loginserver <user-id>         stamp last_loginserver_online_date
  touch-gameserver <user-id>          stamp last_gameserver_online_date
`

func main() {
	cfgPath := flag.String("config", "", "config file (default $CONFIG_PATH or configs/config.yaml)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Local overrides, same bootstrap order as the servers.
	_ = godotenv.Load()

	path := *cfgPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config %s: %v", path, err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	spdb.SetDefaultConnectionSettings(cfg.ConnectionSettings())
	w, err := spdb.NewDefault(spdb.WithLogger(logger))
	if err != nil {
		logger.Fatal("connect", zap.Error(err))
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, w, logger, flag.Args()); err != nil {
		logger.Fatal("command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}

func run(ctx context.Context, w *spdb.Wrapper, logger *zap.Logger, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "init-schema":
		if err := w.EnsureSchema(ctx); err != nil {
			return err
		}
		logger.Info("schema ensured")
		return nil

	case "create-user":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		male := fs.Bool("male", false, "set is_male")
		ip := fs.String("ip", "", "creation ip")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 2 {
			return fmt.Errorf("usage: create-user [-male] [-ip addr] <name> <password>")
		}
		hash, err := crypto.HashPassword(fs.Arg(1))
		if err != nil {
			return err
		}
		id, err := w.CreateUser(ctx, fs.Arg(0), hash, *male, *ip)
		if err != nil {
			return err
		}
		logger.Info("user created", zap.String("name", fs.Arg(0)), zap.Int64("id", id))
		fmt.Println(id)
		return nil

	case "user-id":
		if len(rest) != 1 {
			return fmt.Errorf("usage: user-id <name>")
		}
		id, err := w.GetUserID(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil

	case "login-info":
		id, err := userIDArg(rest)
		if err != nil {
			return err
		}
		info, err := w.GetUserLoginInfo(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("deleted=%v ban=%s hash=%s\n", info.IsDeleted, banString(info.BanExpiration), info.PasswordHash)
		return nil

	case "post-login-info":
		id, err := userIDArg(rest)
		if err != nil {
			return err
		}
		info, err := w.GetUserPostLoginInfo(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%+v\n", info)
		return nil

	case "ban-user", "ban-ip":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		until := fs.Int64("until", spdb.BanPermanent, "expiration as unix epoch seconds (default permanent)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: %s [-until epoch] <subject>", cmd)
		}
		var banID int64
		var err error
		if cmd == "ban-user" {
			var id int64
			if id, err = strconv.ParseInt(fs.Arg(0), 10, 64); err != nil {
				return fmt.Errorf("bad user id %q: %w", fs.Arg(0), err)
			}
			banID, err = w.CreateUserBan(ctx, id, *until)
		} else {
			banID, err = w.CreateIPBan(ctx, fs.Arg(0), *until)
		}
		if err != nil {
			return err
		}
		logger.Info("ban created", zap.String("subject", fs.Arg(0)), zap.Int64("ban_id", banID), zap.String("until", banString(*until)))
		fmt.Println(banID)
		return nil

	case "ip-ban-info":
		if len(rest) != 1 {
			return fmt.Errorf("usage: ip-ban-info <ip>")
		}
		info, err := w.GetIPBanInfo(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Println(banString(info.BanExpiration))
		return nil

	case "record-ip":
		if len(rest) != 2 {
			return fmt.Errorf("usage: record-ip <user-id> <ip>")
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad user id %q: %w", rest[0], err)
		}
		return w.CreateOrUpdateUserIP(ctx, id, rest[1])

	case "touch-login", "touch-loginserver", "touch-gameserver":
		id, err := userIDArg(rest)
		if err != nil {
			return err
		}
		switch cmd {
		case "touch-login":
			return w.UpdateLastLoginDate(ctx, id)
		case "touch-loginserver":
			return w.UpdateLastLoginServerOnlineDate(ctx, id)
		default:
			return w.UpdateLastGameServerOnlineDate(ctx, id)
		}

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func userIDArg(rest []string) (int64, error) {
	if len(rest) != 1 {
		return 0, fmt.Errorf("expected exactly one user id argument")
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad user id %q: %w", rest[0], err)
	}
	return id, nil
}

func banString(expiration int64) string {
	switch {
	case expiration == spdb.BanPermanent:
		return "permanent"
	case expiration == spdb.BanNone:
		return "none"
	default:
		return time.Unix(expiration, 0).UTC().Format(time.RFC3339)
	}
}
