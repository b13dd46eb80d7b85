package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "mysql:\n  user: login\n  password: secret\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.MySQL.Host != "127.0.0.1" || c.MySQL.Port != 3306 {
		t.Errorf("mysql defaults = %s:%d", c.MySQL.Host, c.MySQL.Port)
	}
	if c.Log.Level != "info" || c.Log.Format != "console" {
		t.Errorf("log defaults = %s/%s", c.Log.Level, c.Log.Format)
	}
	s := c.ConnectionSettings()
	if s.User != "login" || s.Password != "secret" {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadRejectsMissingUser(t *testing.T) {
	path := writeConfig(t, "mysql:\n  host: db1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("want error for missing mysql.user")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "mysql:\n  user: login\n  port: 99999\n")
	if _, err := Load(path); err == nil {
		t.Fatal("want error for out-of-range port")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}
