// Package config loads the TOML configuration file, writing a default
// one on first run.
package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "taskboard.toml"

	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDBName is the default SQLite database file.
	DefaultDBName = "taskboard.db"

	// Demo credential the board ships with.
	DefaultEmail    = "intern@demo.com"
	DefaultPassword = "intern123"
)

// Credentials is the single accepted login pair.
type Credentials struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// Config holds the application settings.
type Config struct {
	Port        string      `toml:"port"`
	DBPath      string      `toml:"db_path"`
	LogLevel    string      `toml:"log_level"`
	Credentials Credentials `toml:"credentials"`
}

// Default returns the configuration the board ships with.
func Default() Config {
	return Config{
		Port:     DefaultPort,
		DBPath:   DefaultDBName,
		LogLevel: "info",
		Credentials: Credentials{
			Email:    DefaultEmail,
			Password: DefaultPassword,
		},
	}
}

// LoadOrCreate reads the config at path, writing the defaults there
// first if no file exists yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.Credentials.Email == "" {
		cfg.Credentials.Email = DefaultEmail
	}
	if cfg.Credentials.Password == "" {
		cfg.Credentials.Password = DefaultPassword
	}

	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
