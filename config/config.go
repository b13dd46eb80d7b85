package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"spdb"
)

// Config is the file-backed configuration for processes embedding the
// wrapper (the CLI, service bootstraps).
type Config struct {
	MySQL struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
	} `mapstructure:"mysql"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	v.SetDefault("mysql.host", "127.0.0.1")
	v.SetDefault("mysql.port", 3306)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.MySQL.User == "" {
		return nil, errors.New("mysql.user required")
	}
	if c.MySQL.Port <= 0 || c.MySQL.Port > 65535 {
		return nil, fmt.Errorf("mysql.port out of range: %d", c.MySQL.Port)
	}
	return &c, nil
}

// ConnectionSettings converts the MySQL section into wrapper settings.
func (c *Config) ConnectionSettings() spdb.ConnectionSettings {
	return spdb.ConnectionSettings{
		Host:     c.MySQL.Host,
		Port:     c.MySQL.Port,
		User:     c.MySQL.User,
		Password: c.MySQL.Password,
	}
}
