package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	DefaultPort       = 3000
	DefaultSQLitePath = "tmp/app.db"
)

type Config struct {
	Port        int
	Driver      string
	SQLitePath  string
	DatabaseURL string
	HTMXSrc     string
	StylesPath  string
	Seed        bool
}

// Error names the offending variable so main can log it the same way for
// every setting.
type Error struct {
	Var   string
	Input string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s configuration %q: %v", e.Var, e.Input, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var errMissing = errors.New("missing")

// Load reads the configuration through getenv, normally os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		Driver:      DriverSQLite,
		SQLitePath:  DefaultSQLitePath,
		DatabaseURL: getenv("DATABASE_URL"),
		HTMXSrc:     getenv("HTMX_SRC"),
		StylesPath:  getenv("STYLES_PATH"),
	}

	if portStr := getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, &Error{Var: "PORT", Input: portStr, Err: err}
		}
		if port < 1 || port > 65535 {
			return Config{}, &Error{Var: "PORT", Input: portStr, Err: errors.New("out of range")}
		}
		cfg.Port = port
	}

	switch driver := getenv("DB_DRIVER"); driver {
	case "", DriverSQLite:
	case DriverPostgres:
		cfg.Driver = DriverPostgres
		if cfg.DatabaseURL == "" {
			return Config{}, &Error{Var: "DATABASE_URL", Input: "", Err: errMissing}
		}
	default:
		return Config{}, &Error{Var: "DB_DRIVER", Input: driver, Err: errors.New("want sqlite3 or postgres")}
	}

	if p := getenv("SQLITE_PATH"); p != "" {
		cfg.SQLitePath = p
	}

	for name, path := range map[string]string{"HTMX_SRC": cfg.HTMXSrc, "STYLES_PATH": cfg.StylesPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return Config{}, &Error{Var: name, Input: path, Err: err}
		}
	}

	if s := getenv("SEED"); s != "" {
		seed, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, &Error{Var: "SEED", Input: s, Err: err}
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
