// Package config provides configuration for the application.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/starquake/quizapp/internal/logging"
)

var (
	// ErrStorePathNotSetInProduction is returned when STORE_PATH is not set in production. We need this to prevent
	// a production install from silently writing quizzes into whatever the working directory happens to be.
	ErrStorePathNotSetInProduction = errors.New("STORE_PATH must be set in production")
	// ErrUnsupportedStoreDriver is returned when STORE_DRIVER names a backend we do not have.
	ErrUnsupportedStoreDriver = errors.New("unsupported store driver")
)

const (
	// StoreDriverSQLite keeps quizzes in a SQLite database file.
	StoreDriverSQLite = "sqlite"
	// StoreDriverYAML keeps quizzes in a single YAML document.
	StoreDriverYAML = "yaml"
)

const (
	// AppEnvironmentDefault is the default application environment.
	AppEnvironmentDefault = "development"

	// StoreDriverDefault is the default storage backend.
	StoreDriverDefault = StoreDriverSQLite
	// SQLitePathDefault is the default database file, relative to the working directory.
	SQLitePathDefault = "quizzes.sqlite"
	// YAMLPathDefault is the default YAML file, relative to the working directory.
	YAMLPathDefault = "quizzes.yaml"

	// DBMaxOpenConnsDefault is the default maximum number of open database connections.
	// The application is single user, one connection is all it ever needs.
	DBMaxOpenConnsDefault = 1
	// DBMaxIdleConnsDefault is the default maximum number of idle database connections.
	DBMaxIdleConnsDefault = 1
	// DBConnMaxLifetimeDefault is the default maximum lifetime of a database connection. Zero means no limit.
	DBConnMaxLifetimeDefault time.Duration = 0

	// LogLevelDefault is the default logging level.
	LogLevelDefault = logging.LevelInfo
)

// Config represents the application configuration.
type Config struct {
	AppEnvironment string

	StoreDriver string
	StorePath   string

	DBURI             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	LogLevel logging.Level
	NoColor  bool
}

// SQLiteURI builds the URI for a SQLite database file. DB_URI, when set, is used verbatim instead.
func SQLiteURI(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Parse parses environment variables into the config.
func Parse(getenv func(string) string) (*Config, error) {
	c := Config{
		AppEnvironment:    AppEnvironmentDefault,
		StoreDriver:       StoreDriverDefault,
		DBMaxOpenConns:    DBMaxOpenConnsDefault,
		DBMaxIdleConns:    DBMaxIdleConnsDefault,
		DBConnMaxLifetime: DBConnMaxLifetimeDefault,
		LogLevel:          LogLevelDefault,
	}
	// Overwrite defaults with environment variables.
	if val := getenv("APP_ENV"); val != "" {
		c.AppEnvironment = val
	}
	if val := getenv("STORE_DRIVER"); val != "" {
		c.StoreDriver = val
	}
	switch c.StoreDriver {
	case StoreDriverSQLite:
		c.StorePath = SQLitePathDefault
	case StoreDriverYAML:
		c.StorePath = YAMLPathDefault
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStoreDriver, c.StoreDriver)
	}
	if val := getenv("STORE_PATH"); val != "" {
		c.StorePath = val
	}
	c.DBURI = SQLiteURI(c.StorePath)
	if val := getenv("DB_URI"); val != "" {
		c.DBURI = val
	}
	if val := getenv("NO_COLOR"); val != "" {
		c.NoColor = true
	}

	// Strict validation for types
	if val := getenv("DB_MAX_OPEN_CONNS"); val != "" {
		var err error
		c.DBMaxOpenConns, err = strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %q, err: %w", val, err)
		}
	}

	if val := getenv("DB_MAX_IDLE_CONNS"); val != "" {
		var err error
		c.DBMaxIdleConns, err = strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %q, err: %w", val, err)
		}
	}

	if val := getenv("DB_CONN_MAX_LIFETIME"); val != "" {
		var err error
		c.DBConnMaxLifetime, err = time.ParseDuration(val)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %q, err: %w", val, err)
		}
	}

	if val := getenv("LOG_LEVEL"); val != "" {
		var err error
		c.LogLevel, err = logging.ParseLevel(val)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %q, err: %w", val, err)
		}
	}

	// Mandatory fields
	if c.AppEnvironment == "production" && getenv("STORE_PATH") == "" && getenv("DB_URI") == "" {
		return nil, ErrStorePathNotSetInProduction
	}

	return &c, nil
}
