package config_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/starquake/quizapp/internal/config"
	"github.com/starquake/quizapp/internal/logging"
)

func getenvFailure(failureKey, value string) func(string) string {
	envs := map[string]string{
		"APP_ENV":              "test",
		"STORE_DRIVER":         "sqlite",
		"STORE_PATH":           "/var/lib/quizapp/quizzes.sqlite",
		"DB_MAX_OPEN_CONNS":    "2",
		"DB_MAX_IDLE_CONNS":    "2",
		"DB_CONN_MAX_LIFETIME": "10m",
		"LOG_LEVEL":            "debug",
	}

	return func(key string) string {
		if key == failureKey {
			return value
		}

		return envs[key]
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parse config", func(t *testing.T) {
		t.Parallel()

		envs := map[string]string{
			"APP_ENV":              "test",
			"STORE_DRIVER":         "yaml",
			"STORE_PATH":           "/tmp/quizzes.yaml",
			"DB_MAX_OPEN_CONNS":    "2",
			"DB_MAX_IDLE_CONNS":    "3",
			"DB_CONN_MAX_LIFETIME": "10m",
			"LOG_LEVEL":            "warn",
			"NO_COLOR":             "1",
		}

		getenv := func(key string) string {
			return envs[key]
		}
		c, err := Parse(getenv)
		if err != nil {
			t.Fatalf("error parsing config: %v", err)
		}
		if c.AppEnvironment != envs["APP_ENV"] {
			t.Errorf("got %v, want %v", c.AppEnvironment, envs["APP_ENV"])
		}
		if c.StoreDriver != StoreDriverYAML {
			t.Errorf("got %v, want %v", c.StoreDriver, StoreDriverYAML)
		}
		if c.StorePath != envs["STORE_PATH"] {
			t.Errorf("got %v, want %v", c.StorePath, envs["STORE_PATH"])
		}
		if got, want := c.DBMaxOpenConns, 2; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := c.DBMaxIdleConns, 3; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := c.DBConnMaxLifetime, 10*time.Minute; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := c.LogLevel, logging.LevelWarn; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if !c.NoColor {
			t.Error("got NoColor false, want true")
		}
	})

	t.Run("sqlite uri follows store path", func(t *testing.T) {
		t.Parallel()

		c, err := Parse(getenvFailure("", ""))
		if err != nil {
			t.Fatalf("error parsing config: %v", err)
		}
		if got, want := c.DBURI, SQLiteURI("/var/lib/quizapp/quizzes.sqlite"); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("DB_URI overrides store path", func(t *testing.T) {
		t.Parallel()

		c, err := Parse(getenvFailure("DB_URI", "file::memory:"))
		if err != nil {
			t.Fatalf("error parsing config: %v", err)
		}
		if got, want := c.DBURI, "file::memory:"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("fallback values", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			key    string
			wantFn func(c Config) bool
		}{
			{
				name:   "fallback App Environment",
				key:    "APP_ENV",
				wantFn: func(c Config) bool { return c.AppEnvironment == AppEnvironmentDefault },
			},
			{
				name:   "fallback Store Driver",
				key:    "STORE_DRIVER",
				wantFn: func(c Config) bool { return c.StoreDriver == StoreDriverDefault },
			},
			{
				name:   "fallback Store Path",
				key:    "STORE_PATH",
				wantFn: func(c Config) bool { return c.StorePath == SQLitePathDefault },
			},
			{
				name:   "fallback Max Open Connections",
				key:    "DB_MAX_OPEN_CONNS",
				wantFn: func(c Config) bool { return c.DBMaxOpenConns == DBMaxOpenConnsDefault },
			},
			{
				name:   "fallback Max Idle Connections",
				key:    "DB_MAX_IDLE_CONNS",
				wantFn: func(c Config) bool { return c.DBMaxIdleConns == DBMaxIdleConnsDefault },
			},
			{
				name:   "fallback Connection Max Connection Lifetime",
				key:    "DB_CONN_MAX_LIFETIME",
				wantFn: func(c Config) bool { return c.DBConnMaxLifetime == DBConnMaxLifetimeDefault },
			},
			{
				name:   "fallback Log Level",
				key:    "LOG_LEVEL",
				wantFn: func(c Config) bool { return c.LogLevel == LogLevelDefault },
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				getenv := getenvFailure(tt.key, "")
				c, err := Parse(getenv)
				if err != nil {
					t.Fatalf("error parsing config: %v", err)
				}
				if want := tt.wantFn(*c); !want {
					t.Errorf("got %+v, want fallback for %s", c, tt.key)
				}
			})
		}
	})

	t.Run("yaml driver default path", func(t *testing.T) {
		t.Parallel()

		getenv := func(key string) string {
			return map[string]string{"STORE_DRIVER": "yaml"}[key]
		}
		c, err := Parse(getenv)
		if err != nil {
			t.Fatalf("error parsing config: %v", err)
		}
		if got, want := c.StorePath, YAMLPathDefault; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			getenv func(string) string
		}{
			{"DB_MAX_OPEN_CONNS is not an int", getenvFailure("DB_MAX_OPEN_CONNS", "One")},
			{"DB_MAX_IDLE_CONNS is not an int", getenvFailure("DB_MAX_IDLE_CONNS", "Two")},
			{"DB_CONN_MAX_LIFETIME is not a duration", getenvFailure("DB_CONN_MAX_LIFETIME", "Three")},
			{"LOG_LEVEL is unknown", getenvFailure("LOG_LEVEL", "Four")},
			{"STORE_DRIVER is unknown", getenvFailure("STORE_DRIVER", "postgres")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := Parse(tt.getenv)
				if err == nil {
					t.Fatal("expected error parsing config")
				}
			})
		}
	})

	t.Run("unsupported store driver", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(getenvFailure("STORE_DRIVER", "postgres"))
		if got, want := err, ErrUnsupportedStoreDriver; !errors.Is(got, want) {
			t.Fatalf("got error %v, want %v", got, want)
		}
	})

	t.Run("empty store path in production", func(t *testing.T) {
		t.Parallel()

		getenv := func(key string) string {
			envs := map[string]string{
				"APP_ENV":    "production", // Notice: testing for production
				"STORE_PATH": "",           // Notice: empty store path
			}

			return envs[key]
		}

		_, err := Parse(getenv)
		if err == nil {
			t.Fatal("expected error parsing config")
		}
		if got, want := err, ErrStorePathNotSetInProduction; !errors.Is(got, want) {
			t.Fatalf("got error %v, want %v", got, want)
		}
	})
}
