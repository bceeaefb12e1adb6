package utils

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	port string

	databaseBackend string
	databasePath    string

	location *time.Location
	logLevel slog.Level

	metricCollectionInterval time.Duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		databaseBackend: func() string {
			backend := os.Getenv("DATABASE_BACKEND")
			switch backend {
			case "":
				backend = "sqlite"
			case "sqlite", "memory":
			default:
				slog.Warn("unknown DATABASE_BACKEND, using sqlite", "value", backend)
				backend = "sqlite"
			}
			slog.Debug("env", "DATABASE_BACKEND", backend)
			return backend
		}(),
		databasePath: func() string {
			path := os.Getenv("DATABASE_PATH")
			if path == "" {
				path = "./sqlite.db"
			}
			slog.Debug("env", "DATABASE_PATH", path)
			return path
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),
		metricCollectionInterval: func() time.Duration {
			raw := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if raw == "" {
				return 30 * time.Second
			}
			interval, err := time.ParseDuration(raw)
			if err != nil || interval <= 0 {
				slog.Warn("invalid METRIC_COLLECTION_INTERVAL, using 30s", "value", raw)
				return 30 * time.Second
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", interval)
			return interval
		}(),
		logLevel: func() slog.Level {
			level := os.Getenv("LOG_LEVEL")
			switch level {
			case "debug":
				return slog.LevelDebug
			case "warn":
				return slog.LevelWarn
			case "error":
				return slog.LevelError
			case "", "info":
				return slog.LevelInfo
			default:
				slog.Warn("unknown LOG_LEVEL, using info", "value", level)
				return slog.LevelInfo
			}
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DATABASE_BACKEND env, "sqlite" or "memory"
func (c *Config) GetDatabaseBackend() string {
	return c.databaseBackend
}

// Get DATABASE_PATH env, default to ./sqlite.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get LOG_LEVEL env
func (c *Config) GetLogLevel() slog.Level {
	return c.logLevel
}

// Get METRIC_COLLECTION_INTERVAL env, default to 30s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
